package cmd

import (
	"log/slog"

	"github.com/Alia5/offsetgen/internal/codegen/generator"
	"github.com/Alia5/offsetgen/internal/log"
)

type Generate struct {
	Source   SourceFlags `embed:""`
	Out      OutputFlags `embed:""`
	Artifact string      `help:"Artifact to generate: json, hpp, cpp, or 'all'" default:"all" enum:"json,hpp,cpp,all" env:"OFFSETGEN_ARTIFACT"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, matches log.MatchLogger) error {
	logger.Info("Starting offset generation", "dir", g.Source.Dir, "output", g.Out.Output, "artifact", g.Artifact)

	gen := generator.New(g.Source.Dir, g.Source.options(matches), g.Out.output(), logger)
	if g.Artifact == "" || g.Artifact == "all" {
		return gen.GenAll()
	}
	return gen.GenerateArtifact(g.Artifact)
}
