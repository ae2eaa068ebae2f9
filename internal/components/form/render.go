package form

import (
	"embed"
	"html/template"
	"regexp"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Attr is an extra HTML attribute, used to wire fields to htmx or similar.
type Attr struct {
	Name  string
	Value string
}

var attrNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_:.-]*$`)

// renderAttrs serialises attrs for use inside a tag. Names that are not plain
// attribute names, and inline event handlers, are dropped.
func renderAttrs(attrs []Attr) template.HTMLAttr {
	var b strings.Builder
	for _, a := range attrs {
		if !attrNameRegex.MatchString(a.Name) || strings.HasPrefix(strings.ToLower(a.Name), "on") {
			continue
		}
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(a.Value))
		b.WriteString(`"`)
	}
	return template.HTMLAttr(b.String())
}
