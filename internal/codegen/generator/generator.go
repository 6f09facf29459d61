package generator

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Alia5/offsetgen/internal/codegen/generator/cpp"
	"github.com/Alia5/offsetgen/internal/codegen/generator/snapshot"
	"github.com/Alia5/offsetgen/internal/codegen/meta"
	"github.com/Alia5/offsetgen/internal/codegen/scanner"
)

type Generator struct {
	root    string
	scan    scanner.Options
	output  meta.Output
	logger  *slog.Logger
	scanned *meta.Metadata
}

type ArtifactGenerator func(logger *slog.Logger, out meta.Output, md *meta.Metadata) error

// Artifacts in the order GenAll writes them.
var Artifacts = []string{"json", "hpp", "cpp"}

var generators = map[string]ArtifactGenerator{
	"json": snapshot.Generate,
	"hpp":  cpp.GenerateHeader,
	"cpp":  cpp.GenerateAssignments,
}

func New(root string, scan scanner.Options, output meta.Output, logger *slog.Logger) *Generator {
	return &Generator{
		root:   root,
		scan:   scan,
		output: output.WithDefaults(),
		logger: logger,
	}
}

func (g *Generator) GenAll() error {
	for _, name := range Artifacts {
		if err := g.GenerateArtifact(name); err != nil {
			return fmt.Errorf("generate %s artifact: %w", name, err)
		}
	}
	return nil
}

func (g *Generator) GenerateArtifact(name string) error {
	gen, ok := generators[name]
	if !ok {
		return fmt.Errorf("unsupported artifact '%s' (supported: %v)", name, Artifacts)
	}

	md, err := g.metadata()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(g.output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", g.output.Dir, err)
	}

	return gen(g.logger, g.output, md)
}

// metadata scans once per Generator so GenAll reads every header a single time.
func (g *Generator) metadata() (*meta.Metadata, error) {
	if g.scanned != nil {
		return g.scanned, nil
	}
	md, err := g.ScanAll()
	if err != nil {
		return nil, err
	}
	g.scanned = md
	return md, nil
}

func (g *Generator) ScanAll() (*meta.Metadata, error) {
	g.logger.Info("Scanning headers", "dir", g.root, "ext", g.scanExt(), "parser", g.scanParser())

	result, err := scanner.ScanOffsets(g.root, g.scan)
	if err != nil {
		return nil, fmt.Errorf("failed to scan offsets: %w", err)
	}
	if len(result.Files) == 0 {
		g.logger.Warn("No header files found", "dir", g.root, "ext", g.scanExt())
	}

	g.logger.Info("Found offsets",
		"files", len(result.Files),
		"namespaces", result.Offsets.Len(),
		"offsets", result.Offsets.Count())

	return &meta.Metadata{
		Root:    result.Root,
		Files:   result.Files,
		Offsets: result.Offsets,
	}, nil
}

func (g *Generator) scanExt() string {
	if g.scan.Extension == "" {
		return scanner.DefaultExtension
	}
	return g.scan.Extension
}

func (g *Generator) scanParser() string {
	if g.scan.Parser == "" {
		return scanner.ParserLine
	}
	return g.scan.Parser
}
