package cpp

import (
	"io"
	"log/slog"
	"path/filepath"
	"text/template"

	"github.com/Alia5/offsetgen/internal/codegen/meta"
	"github.com/Alia5/offsetgen/internal/codegen/scanner"
)

const headerTemplate = `{{range .Namespaces -}}
inline struct {{sanitize .Name}}Offsets {
{{- range .Offsets}}
	{{$.FieldType}} {{sanitize .Name}};
{{- end}}
} {{sanitize .Name}};

{{end}}`

var headerTmpl = template.Must(template.New("header").Funcs(tplFuncs()).Parse(headerTemplate))

// GenerateHeader writes one inline struct per namespace, each followed by an
// instance named after the namespace. Fields carry no values; they are filled
// at runtime by the assignment source.
func GenerateHeader(logger *slog.Logger, out meta.Output, md *meta.Metadata) error {
	path := filepath.Join(out.Dir, out.HeaderFile)
	logger.Debug("Generating struct header", "path", path)

	if err := writeFile(path, headerTmpl, out, md.Offsets); err != nil {
		return err
	}

	logger.Info("Generated struct header", "path", path, "structs", md.Offsets.Len())
	return nil
}

// RenderHeader writes the struct header for table to w.
func RenderHeader(w io.Writer, out meta.Output, table *scanner.OffsetTable) error {
	return render(w, headerTmpl, out, table)
}
