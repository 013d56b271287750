package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func issueCookie(t *testing.T, m *Manager, s Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := m.Issue(c, s); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no cookie issued")
	}
	return cookies[0]
}

func TestRoundTrip(t *testing.T) {
	m := NewManager("0123456789abcdef0123456789abcdef", "console_session", time.Hour, false)
	cookie := issueCookie(t, m, Session{Token: "backend-token", UserID: 7, Username: "admin", Email: "admin@example.com"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	s, err := m.FromRequest(c)
	if err != nil {
		t.Fatalf("FromRequest: %v", err)
	}
	if s.Token != "backend-token" || s.UserID != 7 || s.Username != "admin" || s.Email != "admin@example.com" {
		t.Errorf("session = %+v", s)
	}
}

func TestExpiredCookieRejected(t *testing.T) {
	m := NewManager("0123456789abcdef0123456789abcdef", "console_session", -time.Minute, false)
	cookie := issueCookie(t, m, Session{Token: "t", UserID: 1})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if _, err := m.FromRequest(c); err != ErrNoSession {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	issuer := NewManager("0123456789abcdef0123456789abcdef", "console_session", time.Hour, false)
	verifier := NewManager("another-secret-another-secret-ab", "console_session", time.Hour, false)
	cookie := issueCookie(t, issuer, Session{Token: "t", UserID: 1})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if _, err := verifier.FromRequest(c); err != ErrNoSession {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestMiddlewareRedirectsPagesAnd401sFragments(t *testing.T) {
	m := NewManager("0123456789abcdef0123456789abcdef", "console_session", time.Hour, false)
	mw := Middleware(m)
	handler := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// Page load without a session: redirect.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	if err := handler(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("page load: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	// Fragment request without a session: 401 with a redirect hint for the
	// page script.
	req = httptest.NewRequest(http.MethodGet, "/patients/rows", nil)
	req.Header.Set("X-Requested-With", "console")
	rec = httptest.NewRecorder()
	err := handler(echo.New().NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("fragment: err = %v, want 401 HTTPError", err)
	}
	if rec.Header().Get("X-Console-Redirect") != "/login" {
		t.Errorf("fragment 401 missing redirect hint, headers %v", rec.Header())
	}
}

func TestMiddlewarePlacesSessionInContext(t *testing.T) {
	m := NewManager("0123456789abcdef0123456789abcdef", "console_session", time.Hour, false)
	cookie := issueCookie(t, m, Session{Token: "t", UserID: 3, Username: "drsmith"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var got *Session
	handler := Middleware(m)(func(c echo.Context) error {
		got = FromContext(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got == nil || got.UserID != 3 || Token(c) != "t" {
		t.Errorf("session in context = %+v", got)
	}
}

func TestEmptySecretGetsEphemeralKey(t *testing.T) {
	m := NewManager("", "console_session", time.Hour, false)
	cookie := issueCookie(t, m, Session{Token: "t", UserID: 1})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	if _, err := m.FromRequest(c); err != nil {
		t.Errorf("ephemeral key must still round-trip: %v", err)
	}
}
