package form

import (
	"html/template"
	"io"
)

type (
	// PasswordField is a masked input with a show/hide toggle. Visibility is
	// local view state: it is not part of the bound value and never validated.
	PasswordField struct {
		accessor
		Props
		// ToggleAttrs are extra attributes rendered on the toggle button.
		ToggleAttrs []Attr

		visible bool
	}

	passwordView struct {
		fieldView
		Visible     bool
		ToggleLabel string
		ToggleAria  string
		ToggleAttrs template.HTMLAttr
	}
)

// NewPasswordField creates a hidden password field. An empty p.ID is replaced
// with a generated one.
func NewPasswordField(p Props) *PasswordField {
	if p.ID == "" {
		p.ID = newID("password")
	}
	return &PasswordField{
		accessor: newAccessor(),
		Props:    p,
	}
}

func (f *PasswordField) Visible() bool { return f.visible }

// Toggle flips between masked and plain display. The value is untouched.
func (f *PasswordField) Toggle() {
	f.visible = !f.visible
}

func (f *PasswordField) SetVisible(visible bool) {
	f.visible = visible
}

// InputType is the type attribute the input is rendered with.
func (f *PasswordField) InputType() string {
	if f.visible {
		return "text"
	}
	return "password"
}

func (f *PasswordField) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "password_field", f.view())
}

func (f *PasswordField) HTML() (template.HTML, error) {
	return renderHTML(f)
}

func (f *PasswordField) view() passwordView {
	v := passwordView{
		fieldView:   f.Props.view(f.value, f.disabled),
		Visible:     f.visible,
		ToggleLabel: "Show",
		ToggleAria:  "Show password",
		ToggleAttrs: renderAttrs(f.ToggleAttrs),
	}
	v.Type = f.InputType()
	if f.visible {
		v.ToggleLabel = "Hide"
		v.ToggleAria = "Hide password"
	}
	return v
}
