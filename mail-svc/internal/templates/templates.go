package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse loads every mail template, keyed by file name.
func Parse() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
