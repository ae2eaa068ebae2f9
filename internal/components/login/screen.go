package login

import (
	"context"
	"sync"

	"github.com/samber/oops"

	"github.com/andrasnagy-data/oceanpro/internal/components/auth"
	"github.com/andrasnagy-data/oceanpro/internal/components/form"
)

const (
	FieldEmail    = "email"
	FieldPassword = "password"

	// RootPath is where a successful login leads.
	RootPath = "/"

	MsgLoginFailed   = "Login failed"
	MsgUnexpectedErr = "Something went wrong. Try again."
)

const (
	OutcomeBlocked Outcome = iota
	OutcomeBusy
	OutcomeSucceeded
	OutcomeFailed
)

const (
	StateIdle State = iota
	StateSubmitting
)

var fieldMessages = map[string]map[string]string{
	FieldEmail: {
		form.RuleRequired: "Email is required",
		form.RuleEmail:    "Enter a valid email address",
	},
	FieldPassword: {
		form.RuleRequired:  "Password is required",
		form.RuleMinLength: "Password must be at least 8 characters",
	},
}

type (
	Authenticator interface {
		Login(ctx context.Context, creds auth.Credentials) (*auth.Result, error)
	}

	Navigator interface {
		Navigate(path string)
	}

	// Outcome is what a single Submit call ended with.
	Outcome int

	State int

	// Screen holds the sign-in form state and drives the authentication
	// attempt. At most one attempt is in flight; the lock is not held while
	// the authenticator runs so field events keep being processed.
	Screen struct {
		mu sync.Mutex

		authenticator Authenticator
		nav           Navigator

		form          *form.Group
		EmailField    *form.TextField
		PasswordField *form.PasswordField

		loading  bool
		errorMsg string
	}
)

func NewScreen(authenticator Authenticator, nav Navigator) *Screen {
	email := form.NewControl("", form.Required(), form.Email())
	password := form.NewControl("", form.Required(), form.MinLength(8))

	s := &Screen{
		authenticator: authenticator,
		nav:           nav,
		form:          form.NewGroup().Add(FieldEmail, email).Add(FieldPassword, password),
		EmailField: form.NewTextField("email", form.Props{
			ID:           FieldEmail,
			Label:        "Email",
			Name:         FieldEmail,
			Placeholder:  "you@example.com",
			Autocomplete: "email",
		}),
		PasswordField: form.NewPasswordField(form.Props{
			ID:          FieldPassword,
			Label:       "Password",
			Name:        FieldPassword,
			Placeholder: "Enter your password",
		}),
	}

	email.Bind(s.EmailField)
	password.Bind(s.PasswordField)
	return s
}

// Control returns the named form control, or nil for unknown names.
func (s *Screen) Control(name string) *form.Control {
	return s.form.Control(name)
}

// Restore rehydrates a field from state captured by a previous render.
func (s *Screen) Restore(name string, st form.State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.form.Control(name)
	if c == nil {
		return false
	}
	c.Restore(st)
	return true
}

// Input feeds a keystroke-level value change into the named field.
func (s *Screen) Input(name, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case FieldEmail:
		s.EmailField.Input(value)
	case FieldPassword:
		s.PasswordField.Input(value)
	default:
		return false
	}
	return true
}

// Blur marks the named field as touched.
func (s *Screen) Blur(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case FieldEmail:
		s.EmailField.Blur()
	case FieldPassword:
		s.PasswordField.Blur()
	default:
		return false
	}
	return true
}

func (s *Screen) TogglePassword() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PasswordField.Toggle()
}

// ClearPassword empties the password field and hides it again. The field is
// left pristine, so no inline error is shown for it.
func (s *Screen) ClearPassword() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Control(FieldPassword).Reset("")
	s.PasswordField.SetVisible(false)
}

// Submit runs one login attempt with the current values.
func (s *Screen) Submit(ctx context.Context) Outcome {
	s.mu.Lock()
	s.errorMsg = ""
	if !s.form.Valid() {
		s.form.MarkAllAsTouched()
		s.mu.Unlock()
		return OutcomeBlocked
	}
	if s.loading {
		s.mu.Unlock()
		return OutcomeBusy
	}
	s.loading = true
	values := s.form.Values()
	s.mu.Unlock()

	res, err := s.authenticator.Login(ctx, auth.Credentials{
		Email:    values[FieldEmail],
		Password: values[FieldPassword],
	})

	s.mu.Lock()
	s.loading = false
	switch {
	case err != nil:
		s.errorMsg = oops.GetPublic(err, MsgUnexpectedErr)
	case res == nil || !res.Success:
		s.errorMsg = MsgLoginFailed
		if res != nil && res.Error != "" {
			s.errorMsg = res.Error
		}
	default:
		s.mu.Unlock()
		s.nav.Navigate(RootPath)
		return OutcomeSucceeded
	}
	s.mu.Unlock()
	return OutcomeFailed
}

func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return StateSubmitting
	}
	return StateIdle
}

func (s *Screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ErrorMessage is the screen-level alert text, empty when there is none.
func (s *Screen) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorMsg
}

func (s *Screen) SubmitDisabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading || !s.form.Valid()
}

func (s *Screen) SubmitLabel() string {
	if s.Loading() {
		return "Signing in…"
	}
	return "Sign in"
}

// FieldError is the inline message for the named field. It stays empty until
// the field has been touched or edited.
func (s *Screen) FieldError(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldError(name)
}

// AriaInvalid is "true" when FieldError would report a message, else "false".
func (s *Screen) AriaInvalid(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ariaInvalid(s.form.Control(name))
}

func (s *Screen) fieldError(name string) string {
	c := s.form.Control(name)
	if c == nil || !c.ShowErrors() {
		return ""
	}
	return fieldMessages[name][c.FirstError()]
}

func ariaInvalid(c *form.Control) string {
	if c != nil && c.ShowErrors() && !c.Valid() {
		return "true"
	}
	return "false"
}

// refresh copies the derived error state onto the field components before they
// are rendered.
func (s *Screen) refresh() {
	s.EmailField.Error = s.fieldError(FieldEmail)
	s.EmailField.AriaInvalid = ariaInvalid(s.form.Control(FieldEmail))
	s.PasswordField.Error = s.fieldError(FieldPassword)
	s.PasswordField.AriaInvalid = ariaInvalid(s.form.Control(FieldPassword))
}
