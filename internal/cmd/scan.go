package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/offsetgen/internal/codegen/generator/snapshot"
	"github.com/Alia5/offsetgen/internal/codegen/scanner"
	"github.com/Alia5/offsetgen/internal/log"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Scan parses the header tree and prints the offset table without writing artifacts.
type Scan struct {
	Source SourceFlags `embed:""`
	Format string      `help:"Output format" default:"text" enum:"text,json,yaml,toml" env:"OFFSETGEN_SCAN_FORMAT"`

	out io.Writer `kong:"-"`
}

// Run is called by Kong when the scan command is executed.
func (s *Scan) Run(logger *slog.Logger, matches log.MatchLogger) error {
	result, err := scanner.ScanOffsets(s.Source.Dir, s.Source.options(matches))
	if err != nil {
		return err
	}
	logger.Debug("Scan complete", "files", len(result.Files), "namespaces", result.Offsets.Len())

	w := s.out
	if w == nil {
		w = os.Stdout
	}
	return writeTable(w, s.Format, result)
}

func writeTable(w io.Writer, format string, result *scanner.ScanResult) error {
	var data []byte
	var err error
	switch format {
	case "", "text":
		return writeSummary(w, result)
	case "json":
		data, err = snapshot.Encode(result.Offsets)
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(result.Offsets)
	case "toml":
		// go-toml sorts map keys, so namespace order is alphabetical here
		data, err = toml.Marshal(result.Offsets.Map())
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeSummary(w io.Writer, result *scanner.ScanResult) error {
	if _, err := fmt.Fprintf(w, "Files: %d\nNamespaces: %d\nOffsets: %d\n",
		len(result.Files), result.Offsets.Len(), result.Offsets.Count()); err != nil {
		return err
	}
	for _, ns := range result.Offsets.Namespaces {
		if _, err := fmt.Fprintf(w, "\n=== %s === (%d)\n", ns.Name, len(ns.Offsets)); err != nil {
			return err
		}
		for _, o := range ns.Offsets {
			if _, err := fmt.Fprintf(w, "  %s = %s\n", o.Name, o.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
