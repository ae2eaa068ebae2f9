package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andrasnagy-data/oceanpro/internal/components/auth"
	"github.com/andrasnagy-data/oceanpro/internal/components/form"
)

func stateOf(value string) form.State {
	return form.State{Value: value}
}

func newTestRouter(authn Authenticator) http.Handler {
	r := chi.NewRouter()
	r.Mount(MountPath, NewRouter(authn))
	return r
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func credentials(email, password string) url.Values {
	return url.Values{FieldEmail: {email}, FieldPassword: {password}}
}

func TestLoginPage(t *testing.T) {
	h := newTestRouter(&mockAuthenticator{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MountPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc := parseBody(t, rec)
	assert.Equal(t, "Sign in · Ocean Professional", doc.Find("title").Text())
	assert.Equal(t, "Ocean Professional", doc.Find("header h1.brand").Text())
	assert.Equal(t, "Secure access to your account", doc.Find("header p.tagline").Text())

	email := doc.Find("input#email")
	assert.Equal(t, "email", email.AttrOr("type", ""))
	assert.Equal(t, "you@example.com", email.AttrOr("placeholder", ""))
	assert.Equal(t, "false", email.AttrOr("aria-invalid", ""))
	assert.Equal(t, "/login/fields/email", email.AttrOr("hx-post", ""))

	password := doc.Find("input#password")
	assert.Equal(t, "password", password.AttrOr("type", ""))
	assert.Equal(t, "Enter your password", password.AttrOr("placeholder", ""))
	assert.Equal(t, "Show password", doc.Find("#password-slot button.toggle").AttrOr("aria-label", ""))

	loginForm := doc.Find("form#login-form")
	assert.Equal(t, "this:drop", loginForm.AttrOr("hx-sync", ""))
	assert.Equal(t, "/login", loginForm.AttrOr("hx-post", ""))

	submit := doc.Find("button#submit")
	_, disabled := submit.Attr("disabled")
	assert.True(t, disabled, "empty form cannot be submitted")
	assert.Equal(t, "Sign in", strings.TrimSpace(submit.Find(".label").Text()))

	assert.Equal(t, 0, doc.Find(".error").Length())
	assert.Equal(t, 0, doc.Find("[role=alert]").Length())
	assert.Equal(t, `Tip: use password "password123" to succeed.`, doc.Find(".footnote").Text())
	assert.Contains(t, doc.Find("footer").Text(), "Ocean Pro")
}

// Field events must not queue behind the form's own request, or a click on
// the submit or toggle button that blurs a field would be dropped.
func TestFieldEventsKeepOwnQueue(t *testing.T) {
	h := newTestRouter(&mockAuthenticator{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MountPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseBody(t, rec)

	assert.Equal(t, "this:drop", doc.Find("form#login-form").AttrOr("hx-sync", ""))

	doc.Find("[hx-trigger]").Each(func(_ int, s *goquery.Selection) {
		assert.NotContains(t, s.AttrOr("hx-trigger", ""), "focusout")
		assert.Equal(t, "closest .slot:replace", s.AttrOr("hx-sync", ""))
	})

	for _, name := range []string{FieldEmail, FieldPassword} {
		slot := doc.Find("#" + name + "-slot")
		require.Equal(t, 1, slot.Length())
		_, hasTrigger := slot.Attr("hx-trigger")
		assert.False(t, hasTrigger, name)

		blur := slot.Find(`input[name="` + name + `.touched"]`)
		assert.Equal(t, "blur from:#"+name, blur.AttrOr("hx-trigger", ""))
		assert.Contains(t, blur.AttrOr("hx-vals", ""), `"blur"`)
	}

	toggle := doc.Find("#password-slot button.toggle")
	require.Equal(t, 1, toggle.Length())
	assert.Equal(t, "click", toggle.AttrOr("hx-trigger", ""))
	assert.Equal(t, "event.preventDefault()", toggle.AttrOr("hx-on:mousedown", ""))
	assert.Equal(t, 0, toggle.ParentsFiltered("[hx-trigger]").Length())
	assert.Equal(t, 0, doc.Find("button#submit").ParentsFiltered("[hx-trigger]").Length())
}

func TestLoginSuccess(t *testing.T) {
	tests := []struct {
		name     string
		htmx     bool
		status   int
		header   string
		location string
	}{
		{name: "htmx", htmx: true, status: http.StatusOK, header: "HX-Redirect", location: "/"},
		{name: "plain form", status: http.StatusSeeOther, header: "Location", location: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := &mockAuthenticator{}
			authn.On("Login", mock.Anything, auth.Credentials{Email: "user@example.com", Password: "password123"}).
				Return(&auth.Result{Success: true, Token: auth.MockToken}, nil).Once()

			rec := postForm(t, newTestRouter(authn), MountPath, credentials("user@example.com", "password123"), tt.htmx)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get(tt.header))
			authn.AssertExpectations(t)
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	tests := []struct {
		name   string
		htmx   bool
		status int
	}{
		{name: "htmx", htmx: true, status: http.StatusOK},
		{name: "plain form", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := &mockAuthenticator{}
			authn.On("Login", mock.Anything, mock.Anything).
				Return(&auth.Result{Success: false, Error: auth.MsgInvalidCredentials}, nil).Once()

			rec := postForm(t, newTestRouter(authn), MountPath, credentials("user@example.com", "wrongpw1"), tt.htmx)
			require.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Header().Get("HX-Redirect"))

			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			doc := parseBody(t, rec)
			assert.Equal(t, "Invalid credentials", strings.TrimSpace(doc.Find("[role=alert]").Text()))
			assert.Equal(t, "user@example.com", doc.Find("input#email").AttrOr("value", ""))

			slot := doc.Find("#password-slot")
			password := slot.Find("input#password")
			assert.Equal(t, "", password.AttrOr("value", "missing"))
			assert.Equal(t, "password", password.AttrOr("type", ""))
			assert.NotContains(t, rec.Body.String(), "wrongpw1")
			assert.Equal(t, 0, slot.Find(".error").Length())
			assert.Equal(t, "false", slot.Find(`input[name="password.touched"]`).AttrOr("value", ""))
			assert.Equal(t, "false", slot.Find(`input[name="password.dirty"]`).AttrOr("value", ""))

			_, disabled := doc.Find("button#submit").Attr("disabled")
			assert.True(t, disabled, "password must be typed again")
			assert.Equal(t, "false", doc.Find("button#submit").AttrOr("aria-busy", ""))
		})
	}
}

func TestLoginHTMXReturnsFormOnly(t *testing.T) {
	authn := &mockAuthenticator{}
	authn.On("Login", mock.Anything, mock.Anything).
		Return(&auth.Result{Success: false, Error: auth.MsgInvalidCredentials}, nil).Once()

	rec := postForm(t, newTestRouter(authn), MountPath, credentials("user@example.com", "wrongpw1"), true)
	doc := parseBody(t, rec)

	assert.Equal(t, 1, doc.Find("form#login-form").Length())
	assert.Equal(t, 0, doc.Find("header.brand-header").Length())
}

func TestLoginBlockedWithoutAuthCall(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		field     string
		wantError string
	}{
		{name: "malformed email", email: "not-an-email", password: "password123", field: FieldEmail, wantError: "Enter a valid email address"},
		{name: "empty password", email: "user@example.com", password: "", field: FieldPassword, wantError: "Password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := &mockAuthenticator{}

			rec := postForm(t, newTestRouter(authn), MountPath, credentials(tt.email, tt.password), false)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			authn.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)

			doc := parseBody(t, rec)
			slot := doc.Find("#" + tt.field + "-slot")
			assert.Equal(t, tt.wantError, slot.Find(".error").Text())
			assert.Equal(t, "true", slot.Find("input#"+tt.field).AttrOr("aria-invalid", ""))
			assert.Equal(t, "true", slot.Find(`input[name="`+tt.field+`.touched"]`).AttrOr("value", ""))

			_, disabled := doc.Find("button#submit").Attr("disabled")
			assert.True(t, disabled)
			assert.Equal(t, 0, doc.Find("[role=alert]").Length())
		})
	}
}

func TestFieldEventInput(t *testing.T) {
	h := newTestRouter(&mockAuthenticator{})
	values := credentials("user@", "")
	values.Set("event", "input")

	rec := postForm(t, h, MountPath+"/fields/email", values, true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec)
	slot := doc.Find("#email-slot")
	require.Equal(t, 1, slot.Length())
	assert.Equal(t, "Enter a valid email address", slot.Find(".error").Text())
	assert.Equal(t, "user@", slot.Find("input#email").AttrOr("value", ""))
	assert.Equal(t, "true", slot.Find(`input[name="email.dirty"]`).AttrOr("value", ""))
	assert.Equal(t, "false", slot.Find(`input[name="email.touched"]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("#password-slot").Length())

	submit := doc.Find("button#submit")
	assert.Equal(t, "true", submit.AttrOr("hx-swap-oob", ""))
	_, disabled := submit.Attr("disabled")
	assert.True(t, disabled)
}

func TestFieldEventEnablesSubmit(t *testing.T) {
	h := newTestRouter(&mockAuthenticator{})
	values := credentials("user@example.com", "password123")
	values.Set("event", "input")
	values.Set("email.dirty", "true")

	rec := postForm(t, h, MountPath+"/fields/password", values, true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec)
	assert.Equal(t, 0, doc.Find(".error").Length())
	assert.Equal(t, "false", doc.Find("input#password").AttrOr("aria-invalid", ""))
	_, disabled := doc.Find("button#submit").Attr("disabled")
	assert.False(t, disabled)
}

func TestFieldEventBlur(t *testing.T) {
	h := newTestRouter(&mockAuthenticator{})
	values := credentials("", "")
	values.Set("event", "blur")

	rec := postForm(t, h, MountPath+"/fields/password", values, true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec)
	slot := doc.Find("#password-slot")
	assert.Equal(t, "Password is required", slot.Find(".error").Text())
	assert.Equal(t, "true", slot.Find(`input[name="password.touched"]`).AttrOr("value", ""))
	assert.Equal(t, "false", slot.Find(`input[name="password.dirty"]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("button#submit").Length(), "blur leaves the submit button in place")
}

func TestFieldEventToggle(t *testing.T) {
	h := newTestRouter(&mockAuthenticator{})
	values := credentials("", "secret-value")
	values.Set("event", "toggle")
	values.Set("password.dirty", "true")

	rec := postForm(t, h, MountPath+"/fields/password", values, true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec)
	input := doc.Find("input#password")
	assert.Equal(t, "text", input.AttrOr("type", ""))
	assert.Equal(t, "secret-value", input.AttrOr("value", ""))
	assert.Equal(t, "true", doc.Find(`input[name="password.visible"]`).AttrOr("value", ""))
	assert.Equal(t, "Hide password", doc.Find("button.toggle").AttrOr("aria-label", ""))
	assert.Equal(t, 0, doc.Find("button#submit").Length())

	values.Set("password.visible", "true")
	rec = postForm(t, h, MountPath+"/fields/password", values, true)
	doc = parseBody(t, rec)
	assert.Equal(t, "password", doc.Find("input#password").AttrOr("type", ""))
	assert.Equal(t, "false", doc.Find(`input[name="password.visible"]`).AttrOr("value", ""))
}

func TestFieldEventRejected(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		event  string
		status int
	}{
		{name: "unknown field", path: "/fields/username", event: "input", status: http.StatusNotFound},
		{name: "unknown event", path: "/fields/email", event: "paste", status: http.StatusBadRequest},
		{name: "toggle on email", path: "/fields/email", event: "toggle", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := credentials("", "")
			values.Set("event", tt.event)

			rec := postForm(t, newTestRouter(&mockAuthenticator{}), MountPath+tt.path, values, true)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
