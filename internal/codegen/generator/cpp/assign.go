package cpp

import (
	"io"
	"log/slog"
	"path/filepath"
	"text/template"

	"github.com/Alia5/offsetgen/internal/codegen/meta"
	"github.com/Alia5/offsetgen/internal/codegen/scanner"
)

// The lookup helper receives the parsed JSON document (j), the namespace and
// the unsanitized variable name, i.e. the exact keys of the snapshot.
const assignTemplate = `{{range $i, $ns := .Namespaces -}}
{{if $i}}
{{end -}}
// {{$ns.Name}} Offsets
{{range $ns.Offsets -}}
{{sanitize $ns.Name}}.{{sanitize .Name}} = {{$.LookupFunc}}(j, "{{$ns.Name}}", "{{.Name}}");
{{end -}}
{{end}}`

var assignTmpl = template.Must(template.New("assign").Funcs(tplFuncs()).Parse(assignTemplate))

// GenerateAssignments writes the source fragment that fills the structs
// declared by GenerateHeader from a loaded snapshot.
func GenerateAssignments(logger *slog.Logger, out meta.Output, md *meta.Metadata) error {
	path := filepath.Join(out.Dir, out.AssignFile)
	logger.Debug("Generating assignment source", "path", path)

	if err := writeFile(path, assignTmpl, out, md.Offsets); err != nil {
		return err
	}

	logger.Info("Generated assignment source", "path", path, "assignments", md.Offsets.Count())
	return nil
}

// RenderAssignments writes the assignment source for table to w.
func RenderAssignments(w io.Writer, out meta.Output, table *scanner.OffsetTable) error {
	return render(w, assignTmpl, out, table)
}
