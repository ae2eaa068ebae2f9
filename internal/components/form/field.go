package form

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/google/uuid"
)

type (
	// Props are the presentational inputs shared by every field component.
	Props struct {
		ID           string
		Label        string
		Placeholder  string
		Hint         string
		Name         string
		Autocomplete string
		// Error is rendered verbatim below the input when non-empty.
		Error string
		// AriaInvalid is "true", "false" or "" to omit the attribute.
		AriaInvalid string
		// Attrs are extra attributes rendered on the input element.
		Attrs []Attr
	}

	// TextField is a plain input implementing Binding.
	TextField struct {
		accessor
		Props
		Type string
	}

	fieldView struct {
		ID           string
		Label        string
		Placeholder  string
		Hint         string
		Name         string
		Autocomplete string
		Error        string
		AriaInvalid  string
		Attrs        template.HTMLAttr
		Type         string
		Value        string
		Disabled     bool
	}
)

// NewTextField creates a text field. An empty inputType means "text"; an empty
// p.ID is replaced with a generated one.
func NewTextField(inputType string, p Props) *TextField {
	if inputType == "" {
		inputType = "text"
	}
	if p.ID == "" {
		p.ID = newID("input")
	}
	return &TextField{
		accessor: newAccessor(),
		Props:    p,
		Type:     inputType,
	}
}

func (f *TextField) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "text_field", f.view())
}

func (f *TextField) HTML() (template.HTML, error) {
	return renderHTML(f)
}

func (f *TextField) view() fieldView {
	v := f.Props.view(f.value, f.disabled)
	v.Type = f.Type
	return v
}

func (p Props) view(value string, disabled bool) fieldView {
	return fieldView{
		ID:           p.ID,
		Label:        p.Label,
		Placeholder:  p.Placeholder,
		Hint:         p.Hint,
		Name:         p.Name,
		Autocomplete: p.Autocomplete,
		Error:        p.Error,
		AriaInvalid:  p.AriaInvalid,
		Attrs:        renderAttrs(p.Attrs),
		Value:        value,
		Disabled:     disabled,
	}
}

// newID returns a locally unique element identifier.
func newID(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

type renderer interface {
	Render(w io.Writer) error
}

func renderHTML(r renderer) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
