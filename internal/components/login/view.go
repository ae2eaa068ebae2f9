package login

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/andrasnagy-data/oceanpro/internal/components/brand"
	"github.com/andrasnagy-data/oceanpro/internal/components/form"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	brandName    = "Ocean Professional"
	brandTagline = "Secure access to your account"
)

type (
	pageView struct {
		Header template.HTML
		Form   formView
		Year   int
	}

	formView struct {
		Action  string
		Email   slotView
		Pass    slotView
		Submit  submitView
		Message string
	}

	slotView struct {
		Name    string
		Action  string
		Field   template.HTML
		Touched bool
		Dirty   bool
		// Visible is only meaningful for the password slot.
		Visible bool
		Secret  bool
	}

	submitView struct {
		Disabled bool
		Busy     bool
		Label    string
		OOB      bool
	}
)

// fieldSync queues field events per slot. Field requests must never join the
// form's queue, where they would make a following submit get dropped.
const fieldSync = "closest .slot:replace"

// fieldAttrs wires an element to the field event endpoint.
func fieldAttrs(base, name, event, trigger string) []form.Attr {
	return []form.Attr{
		{Name: "hx-post", Value: base + "/fields/" + name},
		{Name: "hx-trigger", Value: trigger},
		{Name: "hx-vals", Value: `{"event":"` + event + `"}`},
		{Name: "hx-target", Value: "#" + name + "-slot"},
		{Name: "hx-swap", Value: "outerHTML"},
		{Name: "hx-include", Value: "closest form"},
		{Name: "hx-sync", Value: fieldSync},
	}
}

// toggleAttrs wires the show/hide button. Cancelling mousedown keeps focus in
// the password input, so pressing the button does not blur the field first.
func toggleAttrs(base string) []form.Attr {
	return append(fieldAttrs(base, FieldPassword, "toggle", "click"),
		form.Attr{Name: "hx-on:mousedown", Value: "event.preventDefault()"})
}

func (s *Screen) formView(base string) (formView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh()
	s.EmailField.Attrs = fieldAttrs(base, FieldEmail, "input", "input changed delay:250ms")
	s.PasswordField.Attrs = fieldAttrs(base, FieldPassword, "input", "input changed delay:250ms")
	s.PasswordField.ToggleAttrs = toggleAttrs(base)

	email, err := s.EmailField.HTML()
	if err != nil {
		return formView{}, err
	}
	password, err := s.PasswordField.HTML()
	if err != nil {
		return formView{}, err
	}

	emailCtl := s.form.Control(FieldEmail)
	passwordCtl := s.form.Control(FieldPassword)

	label := "Sign in"
	if s.loading {
		label = "Signing in…"
	}

	return formView{
		Action: base,
		Email: slotView{
			Name:    FieldEmail,
			Action:  base + "/fields/" + FieldEmail,
			Field:   email,
			Touched: emailCtl.Touched(),
			Dirty:   emailCtl.Dirty(),
		},
		Pass: slotView{
			Name:    FieldPassword,
			Action:  base + "/fields/" + FieldPassword,
			Field:   password,
			Touched: passwordCtl.Touched(),
			Dirty:   passwordCtl.Dirty(),
			Visible: s.PasswordField.Visible(),
			Secret:  true,
		},
		Submit: submitView{
			Disabled: s.loading || !s.form.Valid(),
			Busy:     s.loading,
			Label:    label,
		},
		Message: s.errorMsg,
	}, nil
}

// RenderPage writes the full sign-in document.
func (s *Screen) RenderPage(w io.Writer, base string) error {
	header, err := brand.Header{Brand: brandName, Tagline: brandTagline}.HTML()
	if err != nil {
		return err
	}
	fv, err := s.formView(base)
	if err != nil {
		return err
	}
	return templates.ExecuteTemplate(w, "page", pageView{
		Header: header,
		Form:   fv,
		Year:   time.Now().Year(),
	})
}

// RenderForm writes the form element alone, used as the htmx submit response.
func (s *Screen) RenderForm(w io.Writer, base string) error {
	fv, err := s.formView(base)
	if err != nil {
		return err
	}
	return templates.ExecuteTemplate(w, "login_form", fv)
}

// RenderField writes the slot of one field. With withSubmit set it is followed
// by an out-of-band copy of the submit button so its disabled state follows
// form validity. Only value changes affect validity; blur and toggle responses
// leave the button element alone so a click in progress on it is not lost.
func (s *Screen) RenderField(w io.Writer, base, name string, withSubmit bool) error {
	fv, err := s.formView(base)
	if err != nil {
		return err
	}

	slot := fv.Email
	if name == FieldPassword {
		slot = fv.Pass
	}
	if err := templates.ExecuteTemplate(w, "field_slot", slot); err != nil {
		return err
	}
	if !withSubmit {
		return nil
	}

	fv.Submit.OOB = true
	return templates.ExecuteTemplate(w, "submit_button", fv.Submit)
}
