package scanner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAST(t *testing.T, src string, types ...string) *OffsetTable {
	t.Helper()
	table, err := NewASTParser(types, nil).Parse("test.hpp", []byte(src))
	require.NoError(t, err)
	return table
}

func TestASTParserSingleLineExample(t *testing.T) {
	table := parseAST(t, `namespace Foo { constexpr std::ptrdiff_t Bar = 0x10; }`)

	foo, ok := table.Lookup("Foo")
	require.True(t, ok)
	assert.Equal(t, []Offset{{Name: "Bar", Value: "0x10"}}, foo.Offsets)
}

func TestASTParserDumperHeader(t *testing.T) {
	table := parseAST(t, clientHeader)

	assert.Equal(t, []string{"client_dll", "engine2_dll"}, names(table))
	engine, _ := table.Lookup("engine2_dll")
	assert.Equal(t, []Offset{
		{Name: "dwBuildNumber", Value: "0x52BBC4"},
		{Name: "dwNetworkGameClient", Value: "0x52AEC0"},
	}, engine.Offsets)
}

func TestASTParserUsesEnclosingNamespace(t *testing.T) {
	src := `namespace Outer {
    namespace Inner {
        constexpr std::ptrdiff_t a = 0x1;
    }
    constexpr std::ptrdiff_t b = 0x2;
}
constexpr std::ptrdiff_t global = 0x3;
`
	table := parseAST(t, src)

	assert.Equal(t, []string{"Outer", "Inner"}, names(table))
	outer, _ := table.Lookup("Outer")
	inner, _ := table.Lookup("Inner")
	assert.Equal(t, []Offset{{Name: "b", Value: "0x2"}}, outer.Offsets)
	assert.Equal(t, []Offset{{Name: "a", Value: "0x1"}}, inner.Offsets)
}

func TestASTParserFiltersTypesAndValues(t *testing.T) {
	src := `namespace N {
    constexpr std::ptrdiff_t hex = 0x10;
    constexpr std::ptrdiff_t dec = 16;
    constexpr int other = 0x20;
    constexpr std::uintptr_t ptr = 0x30;
}
`
	table := parseAST(t, src)
	n, _ := table.Lookup("N")
	assert.Equal(t, []Offset{{Name: "hex", Value: "0x10"}}, n.Offsets)

	table = parseAST(t, src, "std::ptrdiff_t", "std::uintptr_t")
	n, _ = table.Lookup("N")
	assert.Equal(t, []Offset{{Name: "hex", Value: "0x10"}, {Name: "ptr", Value: "0x30"}}, n.Offsets)
}

func TestASTParserReportsMatches(t *testing.T) {
	var got []Match
	p := NewASTParser(nil, func(m Match) { got = append(got, m) })

	_, err := p.Parse("a.hpp", []byte("namespace A {\n  constexpr std::ptrdiff_t x = 0x4;\n}\n"))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, MatchNamespace, got[0].Kind)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, MatchOffset, got[1].Kind)
	assert.Equal(t, 2, got[1].Line)
	assert.Equal(t, "x", got[1].Name)
	assert.Equal(t, "0x4", got[1].Value)
}

func TestScanOffsetsWithASTParser(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "offsets.hpp"), clientHeader)

	result, err := ScanOffsets(root, Options{Parser: ParserAST})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Offsets.Count())
}
