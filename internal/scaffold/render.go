package scaffold

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var projectTemplates *template.Template

func init() {
	projectTemplates = template.Must(
		template.New("").ParseFS(templatesFS, "templates/*.tmpl"),
	)
}

// renderTemplate executes a named template with the given data and returns the result.
func renderTemplate(name string, data any) string {
	var buf bytes.Buffer
	if err := projectTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		// Programming error: templates are embedded and parsed at init time.
		panic("scaffold: failed to render template " + name + ": " + err.Error())
	}
	return buf.String()
}
