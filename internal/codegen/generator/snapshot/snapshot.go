// Package snapshot writes and reads the JSON form of the offset table.
//
// The file layout is a two-level object, namespaces first and offsets
// second, with both levels kept in the order they were found in the headers
// and every value stored as the literal hex text:
//
//	{
//	    "client_dll": {
//	        "dwEntityList": "0x19CA848"
//	    }
//	}
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alia5/offsetgen/internal/codegen/meta"
	"github.com/Alia5/offsetgen/internal/codegen/scanner"
)

const indent = "    "

func Generate(logger *slog.Logger, out meta.Output, md *meta.Metadata) error {
	path := filepath.Join(out.Dir, out.SnapshotFile)
	logger.Debug("Generating snapshot", "path", path)

	data, err := Encode(md.Offsets)
	if err != nil {
		return fmt.Errorf("encode %s: %w", out.SnapshotFile, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out.SnapshotFile, err)
	}

	logger.Info("Generated snapshot", "path", path, "namespaces", md.Offsets.Len(), "offsets", md.Offsets.Count())
	return nil
}

// Encode returns the indented snapshot without a trailing newline.
func Encode(table *scanner.OffsetTable) ([]byte, error) {
	if table == nil {
		table = scanner.NewOffsetTable()
	}
	compact, err := table.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads a snapshot written by Generate, keeping key order.
func Load(path string) (*scanner.OffsetTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	table := scanner.NewOffsetTable()
	if err := json.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return table, nil
}
