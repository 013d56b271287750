package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/platform/session"
)

func newHandler(t *testing.T, backend http.Handler) *Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	api, err := apiclient.New(srv.URL, 2*time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("build api client: %v", err)
	}
	sessions := session.NewManager("test-secret-0123456789abcdef", "console_session", time.Hour, false)
	return NewHandler(api, sessions, zerolog.Nop())
}

func postLogin(t *testing.T, h *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return rec
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	h := newHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("path = %s, want /login", r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "admin" || creds["password"] != "secret1" {
			t.Errorf("credentials not forwarded: %v", creds)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "backend-token",
			"user":  map[string]interface{}{"id": 1, "username": "admin", "email": "admin@example.com"},
		})
	}))

	form := url.Values{}
	form.Set("username", "admin")
	form.Set("password", "secret1")
	rec := postLogin(t, h, form)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect = %q, want /", loc)
	}
	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == "console_session" && ck.Value != "" {
			found = true
			if !ck.HttpOnly {
				t.Error("session cookie must be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("no session cookie issued")
	}
}

func TestLoginFetchesIdentityWhenResponseOmitsIt(t *testing.T) {
	h := newHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "backend-token"})
		case "/current-user":
			if got := r.Header.Get("Authorization"); got != "Bearer backend-token" {
				t.Errorf("Authorization = %q", got)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 4, "username": "drsmith", "email": "smith@example.com"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	form := url.Values{}
	form.Set("username", "drsmith")
	form.Set("password", "secret1")
	rec := postLogin(t, h, form)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302: %s", rec.Code, rec.Body.String())
	}
	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "console_session" && ck.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("no session cookie issued")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	h := newHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))

	form := url.Values{}
	form.Set("username", "admin")
	form.Set("password", "wrong")
	rec := postLogin(t, h, form)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Errorf("missing error message: %s", rec.Body.String())
	}
}

func TestLoginMissingFieldsSkipsBackend(t *testing.T) {
	backendHits := 0
	h := newHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHits++
	}))

	form := url.Values{}
	form.Set("username", "admin")
	rec := postLogin(t, h, form)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if backendHits != 0 {
		t.Errorf("blank password must not reach the backend, got %d calls", backendHits)
	}
}

func TestLogoutClearsCookieEvenWhenBackendFails(t *testing.T) {
	h := newHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("console_session", &session.Session{Token: "tok", UserID: 1, Username: "admin"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "console_session" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared")
	}
}
