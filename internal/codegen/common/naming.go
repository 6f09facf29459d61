package common

import "strings"

var identifierReplacer = strings.NewReplacer("::", "_", " ", "_", "-", "_")

// SanitizeName turns a namespace or variable name into a plain C++
// identifier by replacing "::", spaces and hyphens with underscores.
func SanitizeName(s string) string {
	return identifierReplacer.Replace(s)
}
