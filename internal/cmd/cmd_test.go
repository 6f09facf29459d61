package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/offsetgen/internal/codegen/meta"
	"github.com/Alia5/offsetgen/internal/log"
)

const dumperHeader = `namespace cs2_dumper {
    namespace offsets {
        namespace client_dll {
            constexpr std::ptrdiff_t dwEntityList = 0x19CA848;
            constexpr std::ptrdiff_t dwLocalPlayerPawn = 0x1836BB8;
        }
        namespace engine2_dll {
            constexpr std::ptrdiff_t dwBuildNumber = 0x52BBC4;
        }
    }
}
`

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func headerTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "A2X Generate Files")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cs2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cs2", "offsets.hpp"), []byte(dumperHeader), 0o644))
	return root
}

func defaultSource(dir string) SourceFlags {
	return SourceFlags{Dir: dir, Ext: ".hpp", Parser: "line", AstTypes: []string{"std::ptrdiff_t"}}
}

func TestGenerateRun(t *testing.T) {
	out := t.TempDir()
	var matches bytes.Buffer

	g := &Generate{
		Source:   defaultSource(headerTree(t)),
		Out:      OutputFlags{Output: out},
		Artifact: "all",
	}
	require.NoError(t, g.Run(discard(), log.NewMatch(&matches)))

	for _, name := range []string{meta.DefaultSnapshotFile, meta.DefaultHeaderFile, meta.DefaultAssignFile} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}

	assign, err := os.ReadFile(filepath.Join(out, meta.DefaultAssignFile))
	require.NoError(t, err)
	assert.Contains(t, string(assign), `engine2_dll.dwBuildNumber = findOffsetByName(j, "engine2_dll", "dwBuildNumber");`)

	// 4 namespaces opened, 3 offsets
	assert.Equal(t, 7, bytes.Count(matches.Bytes(), []byte("\n")))
}

func TestGenerateRunSingleArtifactCustomNames(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen")

	g := &Generate{
		Source:   defaultSource(headerTree(t)),
		Out:      OutputFlags{Output: out, HeaderFile: "game_offsets.hpp", FieldType: "uintptr_t"},
		Artifact: "hpp",
	}
	require.NoError(t, g.Run(discard(), nil))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "game_offsets.hpp", entries[0].Name())

	header, err := os.ReadFile(filepath.Join(out, "game_offsets.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "\tuintptr_t dwEntityList;\n")
}

func TestGenerateRunMissingDir(t *testing.T) {
	g := &Generate{
		Source:   defaultSource(filepath.Join(t.TempDir(), "nope")),
		Out:      OutputFlags{Output: t.TempDir()},
		Artifact: "all",
	}
	assert.Error(t, g.Run(discard(), nil))
}

func TestAssignRunFromSnapshot(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "offsets.json")
	require.NoError(t, os.WriteFile(snap, []byte(`{"B": {"y": "0x2"}, "A": {"x": "0x1"}}`), 0o644))

	a := &Assign{Snapshot: snap, Output: dir, AssignFile: "set_offsets.cpp", LookupFunc: "findOffsetByName"}
	require.NoError(t, a.Run(discard()))

	data, err := os.ReadFile(filepath.Join(dir, "set_offsets.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "// B Offsets\n"+
		"B.y = findOffsetByName(j, \"B\", \"y\");\n"+
		"\n"+
		"// A Offsets\n"+
		"A.x = findOffsetByName(j, \"A\", \"x\");\n", string(data))
}

func TestAssignRunMissingSnapshot(t *testing.T) {
	a := &Assign{Snapshot: filepath.Join(t.TempDir(), "missing.json"), Output: t.TempDir()}
	assert.Error(t, a.Run(discard()))
}

func TestScanRunFormats(t *testing.T) {
	root := headerTree(t)

	run := func(format string) []byte {
		var buf bytes.Buffer
		s := &Scan{Source: defaultSource(root), Format: format, out: &buf}
		require.NoError(t, s.Run(discard(), nil))
		return buf.Bytes()
	}

	t.Run("text", func(t *testing.T) {
		out := string(run("text"))
		assert.Contains(t, out, "Namespaces: 2\nOffsets: 3\n")
		assert.Contains(t, out, "=== client_dll === (2)\n  dwEntityList = 0x19CA848\n")
	})

	t.Run("json", func(t *testing.T) {
		var got map[string]map[string]string
		require.NoError(t, json.Unmarshal(run("json"), &got))
		assert.Equal(t, "0x52BBC4", got["engine2_dll"]["dwBuildNumber"])
	})

	t.Run("yaml", func(t *testing.T) {
		var got map[string]map[string]string
		require.NoError(t, yaml.Unmarshal(run("yaml"), &got))
		assert.Equal(t, "0x1836BB8", got["client_dll"]["dwLocalPlayerPawn"])
	})

	t.Run("toml", func(t *testing.T) {
		tree, err := toml.LoadBytes(run("toml"))
		require.NoError(t, err)
		assert.Equal(t, "0x19CA848", tree.Get("client_dll.dwEntityList"))
	})
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "offsetgen.yaml")

	c := &ConfigInit{Command: "generate", As: "yaml", Path: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Contains(t, doc, "generate")
	got := doc["generate"]

	assert.Equal(t, "A2X Generate Files", got["dir"])
	assert.Equal(t, ".hpp", got["ext"])
	assert.Equal(t, "offsets.json", got["json-file"])
	assert.Equal(t, "set_offsets.cpp", got["assign-file"])
	assert.Equal(t, "all", got["artifact"])
	assert.Equal(t, []any{"std::ptrdiff_t"}, got["ast-type"])
	assert.Equal(t, "", got["namespace-pattern"])

	// refuses to overwrite without --force
	assert.Error(t, c.Run())
	c.Force = true
	assert.NoError(t, c.Run())
}

func TestConfigInitKeysPerFormat(t *testing.T) {
	dir := t.TempDir()

	run := func(format string) string {
		dest := filepath.Join(dir, "generate."+format)
		require.NoError(t, (&ConfigInit{Command: "generate", As: format, Path: dest}).Run(), format)
		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		return string(data)
	}

	var flat map[string]any
	require.NoError(t, json.Unmarshal([]byte(run("json")), &flat))
	assert.Equal(t, "offsets.json", flat["jsonFile"])
	assert.Equal(t, "DWORD", flat["fieldType"])
	assert.Equal(t, []any{"std::ptrdiff_t"}, flat["astType"])

	tree, err := toml.Load(run("toml"))
	require.NoError(t, err)
	assert.Equal(t, "offsets.json", tree.Get("json-file"))
	assert.Equal(t, "findOffsetByName", tree.Get("lookup-func"))
	assert.Equal(t, "", tree.Get("offset-pattern"))
	assert.Nil(t, tree.Get("jsonFile"))
}

func TestConfigInitFormats(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []string{"json", "toml"} {
		dest := filepath.Join(dir, "scan."+format)
		c := &ConfigInit{Command: "scan", As: format, Path: dest}
		require.NoError(t, c.Run(), format)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "text", format)
		assert.NotContains(t, string(data), "out", format)
	}

	assert.Error(t, (&ConfigInit{Command: "scan", As: "ini", Path: filepath.Join(dir, "x")}).Run())
}

func TestFlagName(t *testing.T) {
	tests := []struct {
		field reflect.StructField
		flag  string
		key   string
	}{
		{reflect.StructField{Name: "Dir"}, "dir", "dir"},
		{reflect.StructField{Name: "HeaderFile"}, "header-file", "headerFile"},
		{reflect.StructField{Name: "NamespacePattern"}, "namespace-pattern", "namespacePattern"},
		{reflect.StructField{Name: "JSONFile", Tag: `name:"json-file"`}, "json-file", "jsonFile"},
		{reflect.StructField{Name: "AstTypes", Tag: `name:"ast-type"`}, "ast-type", "astType"},
	}
	for _, tt := range tests {
		t.Run(tt.field.Name, func(t *testing.T) {
			assert.Equal(t, tt.flag, flagName(tt.field))
			assert.Equal(t, tt.key, configKey(tt.field))
		})
	}
}
