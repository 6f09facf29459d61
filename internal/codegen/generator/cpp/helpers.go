package cpp

import (
	"text/template"

	"github.com/Alia5/offsetgen/internal/codegen/common"
)

func tplFuncs() template.FuncMap {
	return template.FuncMap{
		"sanitize": common.SanitizeName,
	}
}
