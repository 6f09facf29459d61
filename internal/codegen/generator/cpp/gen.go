package cpp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Alia5/offsetgen/internal/codegen/meta"
	"github.com/Alia5/offsetgen/internal/codegen/scanner"
)

type templateData struct {
	Namespaces []*scanner.Namespace
	FieldType  string
	LookupFunc string
}

func newTemplateData(out meta.Output, table *scanner.OffsetTable) templateData {
	out = out.WithDefaults()
	data := templateData{FieldType: out.FieldType, LookupFunc: out.LookupFunc}
	if table != nil {
		data.Namespaces = table.Namespaces
	}
	return data
}

func render(w io.Writer, tmpl *template.Template, out meta.Output, table *scanner.OffsetTable) error {
	return tmpl.Execute(w, newTemplateData(out, table))
}

func writeFile(path string, tmpl *template.Template, out meta.Output, table *scanner.OffsetTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := render(f, tmpl, out, table); err != nil {
		return fmt.Errorf("execute %s template: %w", filepath.Base(path), err)
	}
	return f.Close()
}
