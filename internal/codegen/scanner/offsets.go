package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	DefaultExtension        = ".hpp"
	DefaultNamespacePattern = `namespace\s+(\w+)\s*\{`
	DefaultOffsetPattern    = `constexpr\s+std::ptrdiff_t\s+(\w+)\s*=\s*(0x[0-9a-fA-F]+);`
	DefaultOffsetType       = "std::ptrdiff_t"

	ParserLine = "line"
	ParserAST  = "ast"
)

// MatchKind tells what a Match was recognized as.
type MatchKind string

const (
	MatchNamespace MatchKind = "namespace"
	MatchOffset    MatchKind = "offset"
)

// Match describes a recognized construct in a header, reported through Options.OnMatch.
type Match struct {
	Kind      MatchKind
	File      string
	Line      int
	Namespace string
	Name      string // offset name, empty for namespace matches
	Value     string // hex literal, empty for namespace matches
	Text      string // trimmed source line
}

// Options controls how headers are discovered and parsed.
type Options struct {
	Extension        string
	Parser           string   // "line" (default) or "ast"
	NamespacePattern string   // line parser only
	OffsetPattern    string   // line parser only
	OffsetTypes      []string // ast parser only
	OnMatch          func(Match)
}

// HeaderParser turns the contents of one header into an offset table.
type HeaderParser interface {
	Parse(filename string, src []byte) (*OffsetTable, error)
}

// LineParser recognizes namespaces and offsets with regular expressions,
// one line at a time. The most recently opened namespace owns every offset
// that follows it.
type LineParser struct {
	namespaceRe *regexp.Regexp
	offsetRe    *regexp.Regexp
	onMatch     func(Match)
}

// NewLineParser compiles the two patterns. Empty patterns fall back to the
// defaults. The namespace pattern needs one capture group (name), the offset
// pattern two (name, value).
func NewLineParser(namespacePattern, offsetPattern string, onMatch func(Match)) (*LineParser, error) {
	if namespacePattern == "" {
		namespacePattern = DefaultNamespacePattern
	}
	if offsetPattern == "" {
		offsetPattern = DefaultOffsetPattern
	}

	nsRe, err := regexp.Compile(namespacePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid namespace pattern: %w", err)
	}
	if nsRe.NumSubexp() < 1 {
		return nil, fmt.Errorf("namespace pattern %q needs a capture group for the name", namespacePattern)
	}

	offRe, err := regexp.Compile(offsetPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid offset pattern: %w", err)
	}
	if offRe.NumSubexp() < 2 {
		return nil, fmt.Errorf("offset pattern %q needs capture groups for name and value", offsetPattern)
	}

	return &LineParser{namespaceRe: nsRe, offsetRe: offRe, onMatch: onMatch}, nil
}

// CRLF and lone CR both end a line.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func (p *LineParser) Parse(filename string, src []byte) (*OffsetTable, error) {
	table := NewOffsetTable()
	var current *Namespace

	for i, line := range strings.Split(lineEndings.Replace(string(src)), "\n") {
		if m := p.namespaceRe.FindStringSubmatch(line); m != nil {
			current = table.Namespace(m[1])
			p.report(Match{
				Kind:      MatchNamespace,
				File:      filename,
				Line:      i + 1,
				Namespace: current.Name,
				Text:      strings.TrimSpace(line),
			})
		}

		if current == nil {
			continue
		}
		if m := p.offsetRe.FindStringSubmatch(line); m != nil {
			current.Set(m[1], m[2])
			p.report(Match{
				Kind:      MatchOffset,
				File:      filename,
				Line:      i + 1,
				Namespace: current.Name,
				Name:      m[1],
				Value:     m[2],
				Text:      strings.TrimSpace(line),
			})
		}
	}

	table.Prune()
	return table, nil
}

func (p *LineParser) report(m Match) {
	if p.onMatch != nil {
		p.onMatch(m)
	}
}

// NewHeaderParser builds the parser selected by opts.Parser.
func NewHeaderParser(opts Options) (HeaderParser, error) {
	switch opts.Parser {
	case "", ParserLine:
		return NewLineParser(opts.NamespacePattern, opts.OffsetPattern, opts.OnMatch)
	case ParserAST:
		return NewASTParser(opts.OffsetTypes, opts.OnMatch), nil
	default:
		return nil, fmt.Errorf("unknown parser %q (supported: %s, %s)", opts.Parser, ParserLine, ParserAST)
	}
}

// ScanResult is the aggregate of every header found under a root directory.
type ScanResult struct {
	Root    string
	Files   []string
	Offsets *OffsetTable
}

// ScanOffsets walks root recursively, parses every header with the configured
// extension and merges the per-file tables in walk order. A variable that
// shows up in several files keeps the value from the last one read.
func ScanOffsets(root string, opts Options) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	parser, err := NewHeaderParser(opts)
	if err != nil {
		return nil, err
	}

	files, err := FindHeaders(root, opts.Extension)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Root:    root,
		Files:   files,
		Offsets: NewOffsetTable(),
	}
	for _, file := range files {
		table, err := ParseHeader(parser, file)
		if err != nil {
			return nil, err
		}
		result.Offsets.Merge(table)
	}
	result.Offsets.Prune()

	return result, nil
}

// FindHeaders lists files under root with the given extension in lexical
// walk order. Hidden files and directories are skipped. A symlinked root is
// followed; returned paths keep root as given.
func FindHeaders(root, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == walkRoot {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) == ext {
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.Join(root, rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// ParseHeader reads a single header and parses it.
func ParseHeader(parser HeaderParser, path string) (*OffsetTable, error) {
	if parser == nil {
		return nil, errors.New("nil header parser")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	table, err := parser.Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}
