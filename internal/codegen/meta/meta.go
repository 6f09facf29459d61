package meta

import "github.com/Alia5/offsetgen/internal/codegen/scanner"

// Metadata holds everything scanned from the header tree.
// Shared between generator orchestrator and artifact generators.
type Metadata struct {
	Root    string
	Files   []string             // headers that were parsed, in merge order
	Offsets *scanner.OffsetTable // namespaces without offsets are already pruned
}

// Output describes where and how the artifacts are written.
type Output struct {
	Dir          string
	SnapshotFile string // JSON snapshot, e.g. offsets.json
	HeaderFile   string // struct declarations, e.g. offsets.hpp
	AssignFile   string // findOffsetByName assignments, e.g. set_offsets.cpp
	FieldType    string // C++ type of every struct field, e.g. DWORD
	LookupFunc   string // helper called by the assignment source
}

const (
	DefaultSnapshotFile = "offsets.json"
	DefaultHeaderFile   = "offsets.hpp"
	DefaultAssignFile   = "set_offsets.cpp"
	DefaultFieldType    = "DWORD"
	DefaultLookupFunc   = "findOffsetByName"
)

// WithDefaults fills empty fields with the default file names and C++ names.
func (o Output) WithDefaults() Output {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.SnapshotFile == "" {
		o.SnapshotFile = DefaultSnapshotFile
	}
	if o.HeaderFile == "" {
		o.HeaderFile = DefaultHeaderFile
	}
	if o.AssignFile == "" {
		o.AssignFile = DefaultAssignFile
	}
	if o.FieldType == "" {
		o.FieldType = DefaultFieldType
	}
	if o.LookupFunc == "" {
		o.LookupFunc = DefaultLookupFunc
	}
	return o
}
