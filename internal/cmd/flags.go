package cmd

import (
	"github.com/Alia5/offsetgen/internal/codegen/meta"
	"github.com/Alia5/offsetgen/internal/codegen/scanner"
	"github.com/Alia5/offsetgen/internal/log"
)

// SourceFlags selects the header tree and how it is parsed.
type SourceFlags struct {
	Dir              string   `help:"Directory scanned recursively for header files" default:"A2X Generate Files" env:"OFFSETGEN_DIR"`
	Ext              string   `help:"Extension of the header files to scan" default:".hpp" env:"OFFSETGEN_EXT"`
	Parser           string   `help:"Header parser: line (regular expression per line) or ast (tree-sitter C++)" default:"line" enum:"line,ast" env:"OFFSETGEN_PARSER"`
	NamespacePattern string   `help:"Line parser: namespace pattern with one capture group (empty uses the built-in constexpr std::ptrdiff_t layout)" env:"OFFSETGEN_NAMESPACE_PATTERN"`
	OffsetPattern    string   `help:"Line parser: offset pattern with name and value capture groups (empty uses the built-in layout)" env:"OFFSETGEN_OFFSET_PATTERN"`
	AstTypes         []string `name:"ast-type" help:"AST parser: declared types accepted as offsets" default:"std::ptrdiff_t" env:"OFFSETGEN_AST_TYPES"`
}

func (s SourceFlags) options(matches log.MatchLogger) scanner.Options {
	opts := scanner.Options{
		Extension:        s.Ext,
		Parser:           s.Parser,
		NamespacePattern: s.NamespacePattern,
		OffsetPattern:    s.OffsetPattern,
		OffsetTypes:      s.AstTypes,
	}
	if matches != nil {
		opts.OnMatch = matches.Log
	}
	return opts
}

// OutputFlags names the generated files and the C++ identifiers baked into them.
type OutputFlags struct {
	Output     string `help:"Directory the artifacts are written to" default:"." env:"OFFSETGEN_OUTPUT"`
	JSONFile   string `name:"json-file" help:"File name of the JSON snapshot" default:"offsets.json" env:"OFFSETGEN_JSON_FILE"`
	HeaderFile string `help:"File name of the struct header" default:"offsets.hpp" env:"OFFSETGEN_HEADER_FILE"`
	AssignFile string `help:"File name of the assignment source" default:"set_offsets.cpp" env:"OFFSETGEN_ASSIGN_FILE"`
	FieldType  string `help:"C++ type of every struct field" default:"DWORD" env:"OFFSETGEN_FIELD_TYPE"`
	LookupFunc string `help:"Helper the assignment source calls for every offset" default:"findOffsetByName" env:"OFFSETGEN_LOOKUP_FUNC"`
}

func (o OutputFlags) output() meta.Output {
	return meta.Output{
		Dir:          o.Output,
		SnapshotFile: o.JSONFile,
		HeaderFile:   o.HeaderFile,
		AssignFile:   o.AssignFile,
		FieldType:    o.FieldType,
		LookupFunc:   o.LookupFunc,
	}.WithDefaults()
}
