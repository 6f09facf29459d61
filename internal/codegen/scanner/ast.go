package scanner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

var hexLiteral = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)

// ASTParser parses headers with the tree-sitter C++ grammar. Unlike
// LineParser it attributes each offset to its enclosing namespace, so
// constants after a closing brace land in the right place.
type ASTParser struct {
	types   map[string]bool
	onMatch func(Match)
}

func NewASTParser(offsetTypes []string, onMatch func(Match)) *ASTParser {
	if len(offsetTypes) == 0 {
		offsetTypes = []string{DefaultOffsetType}
	}
	types := make(map[string]bool, len(offsetTypes))
	for _, t := range offsetTypes {
		types[normalizeType(t)] = true
	}
	return &ASTParser{types: types, onMatch: onMatch}
}

func (p *ASTParser) Parse(filename string, src []byte) (*OffsetTable, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter: %w", err)
	}
	defer tree.Close()

	table := NewOffsetTable()
	p.walk(tree.RootNode(), nil, filename, src, table)
	table.Prune()
	return table, nil
}

func (p *ASTParser) walk(node *sitter.Node, current *Namespace, filename string, src []byte, table *OffsetTable) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "namespace_definition":
			nameNode := child.ChildByFieldName("name")
			body := child.ChildByFieldName("body")
			if nameNode == nil || body == nil {
				// anonymous namespace: members belong to whatever encloses it
				p.walk(child, current, filename, src, table)
				continue
			}
			ns := table.Namespace(nameNode.Content(src))
			p.report(Match{
				Kind:      MatchNamespace,
				File:      filename,
				Line:      int(child.StartPoint().Row) + 1,
				Namespace: ns.Name,
				Text:      firstLine(child.Content(src)),
			})
			p.walk(body, ns, filename, src, table)

		case "declaration":
			if current != nil {
				p.declaration(child, current, filename, src)
			}

		default:
			p.walk(child, current, filename, src, table)
		}
	}
}

func (p *ASTParser) declaration(node *sitter.Node, ns *Namespace, filename string, src []byte) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil || !p.types[normalizeType(typeNode.Content(src))] {
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		decl := node.NamedChild(i)
		if decl == nil || decl.Type() != "init_declarator" {
			continue
		}
		nameNode := decl.ChildByFieldName("declarator")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil || nameNode.Type() != "identifier" {
			continue
		}
		value := valueNode.Content(src)
		if !hexLiteral.MatchString(value) {
			continue
		}
		name := nameNode.Content(src)
		ns.Set(name, value)
		p.report(Match{
			Kind:      MatchOffset,
			File:      filename,
			Line:      int(decl.StartPoint().Row) + 1,
			Namespace: ns.Name,
			Name:      name,
			Value:     value,
			Text:      firstLine(node.Content(src)),
		})
	}
}

func (p *ASTParser) report(m Match) {
	if p.onMatch != nil {
		p.onMatch(m)
	}
}

func normalizeType(t string) string {
	return strings.Join(strings.Fields(t), "")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
