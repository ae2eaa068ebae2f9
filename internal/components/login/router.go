package login

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/andrasnagy-data/oceanpro/internal/components/form"
	"github.com/andrasnagy-data/oceanpro/internal/shared/middleware"
)

// MountPath is where the sign-in routes are served from.
const MountPath = "/login"

const (
	eventInput  = "input"
	eventBlur   = "blur"
	eventToggle = "toggle"
)

type (
	Router struct {
		authenticator Authenticator
	}

	// navigation records the target requested by a screen so the handler can
	// turn it into a redirect once Submit returns.
	navigation struct {
		target string
	}
)

func (n *navigation) Navigate(path string) {
	n.target = path
}

func NewRouter(authenticator Authenticator) chi.Router {
	router := &Router{authenticator: authenticator}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.HTMX)
	router.Get("/", r.LoginPage)
	router.Post("/", r.HandleLogInFlow)
	router.Post("/fields/{name}", r.HandleFieldEvent)
	return router
}

func (r *Router) LoginPage(w http.ResponseWriter, req *http.Request) {
	screen := NewScreen(r.authenticator, &navigation{})

	var buf bytes.Buffer
	if err := screen.RenderPage(&buf, MountPath); err != nil {
		hlog.FromRequest(req).Error().Err(err).Msg("Failed to render login page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

func (r *Router) HandleLogInFlow(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	if err := req.ParseForm(); err != nil {
		logger.Warn().Err(err).Msg("Login failed: malformed form")
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	nav := &navigation{}
	screen := r.screenFromRequest(req, nav)
	email := req.PostFormValue(FieldEmail)

	logger.Debug().Str("email", email).Msg("Login attempt")

	status := http.StatusOK
	switch screen.Submit(ctx) {
	case OutcomeSucceeded:
		logger.Debug().Str("email", email).Msg("Login successful")
		middleware.Redirect(w, req, nav.target)
		return
	case OutcomeBlocked:
		logger.Debug().Str("email", email).Msg("Login blocked: form invalid")
		status = http.StatusUnprocessableEntity
	default:
		logger.Warn().Str("email", email).Str("reason", screen.ErrorMessage()).Msg("Login failed")
		status = http.StatusUnauthorized
		// The rejected password is not sent back.
		screen.ClearPassword()
	}

	var (
		buf bytes.Buffer
		err error
	)
	if middleware.IsHTMX(ctx) {
		// htmx only swaps 2xx responses.
		status = http.StatusOK
		err = screen.RenderForm(&buf, MountPath)
	} else {
		err = screen.RenderPage(&buf, MountPath)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render login form")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, &buf)
}

// HandleFieldEvent applies one field interaction and answers with the
// re-rendered field slot. Input events also refresh the submit button.
func (r *Router) HandleFieldEvent(w http.ResponseWriter, req *http.Request) {
	logger := hlog.FromRequest(req)
	name := chi.URLParam(req, "name")

	if name != FieldEmail && name != FieldPassword {
		http.NotFound(w, req)
		return
	}
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	screen := r.screenFromRequest(req, &navigation{})

	event := req.PostFormValue("event")
	switch {
	case event == eventInput:
		screen.Input(name, req.PostFormValue(name))
	case event == eventBlur:
		screen.Blur(name)
	case event == eventToggle && name == FieldPassword:
		screen.TogglePassword()
	default:
		logger.Debug().Str("field", name).Str("event", event).Msg("Unsupported field event")
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := screen.RenderField(&buf, MountPath, name, event == eventInput); err != nil {
		logger.Error().Err(err).Str("field", name).Msg("Failed to render field")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

// screenFromRequest rebuilds a screen from the values and hidden state
// fields posted with the form.
func (r *Router) screenFromRequest(req *http.Request, nav Navigator) *Screen {
	screen := NewScreen(r.authenticator, nav)
	for _, name := range []string{FieldEmail, FieldPassword} {
		screen.Restore(name, form.State{
			Value:   req.PostFormValue(name),
			Touched: formBool(req, name+".touched"),
			Dirty:   formBool(req, name+".dirty"),
		})
	}
	screen.PasswordField.SetVisible(formBool(req, FieldPassword+".visible"))
	return screen
}

func formBool(req *http.Request, key string) bool {
	v, _ := strconv.ParseBool(req.PostFormValue(key))
	return v
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Field responses echo the typed password.
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
