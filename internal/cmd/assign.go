package cmd

import (
	"log/slog"
	"os"

	"github.com/Alia5/offsetgen/internal/codegen/generator/cpp"
	"github.com/Alia5/offsetgen/internal/codegen/generator/snapshot"
	"github.com/Alia5/offsetgen/internal/codegen/meta"
)

// Assign rebuilds the assignment source from a snapshot, without touching the headers.
type Assign struct {
	Snapshot   string `help:"JSON snapshot to read" default:"offsets.json" env:"OFFSETGEN_SNAPSHOT"`
	Output     string `help:"Directory the assignment source is written to" default:"." env:"OFFSETGEN_OUTPUT"`
	AssignFile string `help:"File name of the assignment source" default:"set_offsets.cpp" env:"OFFSETGEN_ASSIGN_FILE"`
	LookupFunc string `help:"Helper the assignment source calls for every offset" default:"findOffsetByName" env:"OFFSETGEN_LOOKUP_FUNC"`
}

// Run is called by Kong when the assign command is executed.
func (a *Assign) Run(logger *slog.Logger) error {
	logger.Info("Generating assignment source from snapshot", "snapshot", a.Snapshot)

	table, err := snapshot.Load(a.Snapshot)
	if err != nil {
		return err
	}

	out := meta.Output{
		Dir:        a.Output,
		AssignFile: a.AssignFile,
		LookupFunc: a.LookupFunc,
	}.WithDefaults()
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return err
	}

	return cpp.GenerateAssignments(logger, out, &meta.Metadata{Offsets: table})
}
