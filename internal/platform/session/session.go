// Package session manages the console's own browser session: a signed JWT
// cookie that carries the backend bearer token and the signed-in user's
// identity. The backend remains the authority on authentication; the cookie
// only lets the console re-attach credentials to later requests.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const contextKey = "console_session"

// ErrNoSession is returned when the request carries no valid session cookie.
var ErrNoSession = errors.New("no valid session")

// Session identifies the signed-in user and holds their backend credentials.
type Session struct {
	Token    string
	UserID   int64
	Username string
	Email    string
}

type claims struct {
	Token    string `json:"tok"`
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues, validates, and clears session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager builds a session manager. An empty secret gets replaced by an
// ephemeral random one, which invalidates all sessions on restart.
func NewManager(secret, cookieName string, ttl time.Duration, secure bool) *Manager {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		rand.Read(key)
	}
	return &Manager{secret: key, cookieName: cookieName, ttl: ttl, secure: secure}
}

// Issue signs a session cookie and sets it on the response.
func (m *Manager) Issue(c echo.Context, s Session) error {
	now := time.Now()
	cl := claims{
		Token:    s.Token,
		UserID:   s.UserID,
		Username: s.Username,
		Email:    s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest parses and validates the session cookie.
func (m *Manager) FromRequest(c echo.Context) (*Session, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	cl := &claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}
	return &Session{
		Token:    cl.Token,
		UserID:   cl.UserID,
		Username: cl.Username,
		Email:    cl.Email,
	}, nil
}

// Middleware validates the session and stores it in the request context.
// Unauthenticated page loads redirect to /login; fragment and JSON requests
// get a bare 401 so callers can handle the redirect themselves.
func Middleware(m *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := m.FromRequest(c)
			if err != nil {
				if wantsHTML(c) {
					return c.Redirect(http.StatusFound, "/login")
				}
				c.Response().Header().Set("X-Console-Redirect", "/login")
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			c.Set(contextKey, s)
			return next(c)
		}
	}
}

// FromContext returns the session placed by Middleware, or nil.
func FromContext(c echo.Context) *Session {
	s, _ := c.Get(contextKey).(*Session)
	return s
}

// Token returns the backend bearer token for the request, or the empty
// string when no session is attached.
func Token(c echo.Context) string {
	if s := FromContext(c); s != nil {
		return s.Token
	}
	return ""
}

func wantsHTML(c echo.Context) bool {
	if c.Request().Header.Get("X-Requested-With") != "" {
		return false
	}
	accept := c.Request().Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.HasPrefix(accept, "*/*")
}
