// Package auth owns the console's sign-in surface: the login page, the
// credential exchange with the backend, and logout. The backend remains the
// authority on credentials; the console only brokers them into a session
// cookie.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/platform/session"
	"github.com/dentadmin/console/internal/view"
)

// loginResponse is the backend's answer to a successful credential check.
type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

type Handler struct {
	api      *apiclient.Client
	sessions *session.Manager
	logger   zerolog.Logger
}

func NewHandler(api *apiclient.Client, sessions *session.Manager, logger zerolog.Logger) *Handler {
	return &Handler{api: api, sessions: sessions, logger: logger}
}

// RegisterRoutes mounts the public sign-in routes on the root router and the
// logout route on the authenticated group.
func (h *Handler) RegisterRoutes(e *echo.Echo, authed *echo.Group) {
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	authed.POST("/logout", h.Logout)
}

// LoginPage serves the standalone sign-in page. An already signed-in browser
// goes straight to the console.
func (h *Handler) LoginPage(c echo.Context) error {
	if _, err := h.sessions.FromRequest(c); err == nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.HTML(http.StatusOK, renderLoginPage(""))
}

// Login exchanges the submitted credentials for a backend token and issues
// the session cookie. Bad credentials re-render the page with a banner.
func (h *Handler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.HTML(http.StatusUnprocessableEntity, renderLoginPage("Username and password are required"))
	}

	var resp loginResponse
	err := h.api.Post(apiclient.RequestContext(c), "", "/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			return c.HTML(http.StatusUnauthorized, renderLoginPage("Invalid username or password"))
		}
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			return c.HTML(http.StatusUnauthorized, renderLoginPage(apiErr.UserMessage("Login failed")))
		}
		h.logger.Error().Err(err).Msg("backend login unreachable")
		return c.HTML(http.StatusBadGateway, renderLoginPage("The backend is not reachable right now"))
	}

	s := session.Session{
		Token:    resp.Token,
		UserID:   resp.User.ID,
		Username: resp.User.Username,
		Email:    resp.User.Email,
	}
	if s.UserID == 0 {
		// Older backends omit identity from the login response.
		var me struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		}
		if err := h.api.Get(apiclient.RequestContext(c), s.Token, "/current-user", nil, &me); err != nil {
			h.logger.Error().Err(err).Msg("current-user lookup failed")
			return c.HTML(http.StatusBadGateway, renderLoginPage("The backend is not reachable right now"))
		}
		s.UserID, s.Username, s.Email = me.ID, me.Username, me.Email
	}
	if err := h.sessions.Issue(c, s); err != nil {
		h.logger.Error().Err(err).Msg("issue session cookie")
		return c.HTML(http.StatusInternalServerError, renderLoginPage("Could not start a session"))
	}

	h.logger.Info().Str("username", s.Username).Int64("user_id", s.UserID).Msg("user signed in")
	if c.Request().Header.Get("X-Requested-With") != "" {
		c.Response().Header().Set("X-Console-Redirect", "/")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusFound, "/")
}

// Logout tells the backend, clears the cookie, and returns to the login
// page. A failed backend call still ends the local session.
func (h *Handler) Logout(c echo.Context) error {
	if tok := session.Token(c); tok != "" {
		if err := h.api.Post(apiclient.RequestContext(c), tok, "/logout", nil, nil); err != nil {
			h.logger.Warn().Err(err).Msg("backend logout failed")
		}
	}
	h.sessions.Clear(c)
	if c.Request().Header.Get("X-Requested-With") != "" {
		c.Response().Header().Set("X-Console-Redirect", "/login")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusFound, "/login")
}

var loginTmpl = view.MustParse("login-page", `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Sign In - Dental Office Admin</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.2/css/all.min.css">
  <link rel="stylesheet" href="/static/console.css">
</head>
<body class="bg-light">
  <div class="container" style="max-width: 420px; margin-top: 10vh;">
    <div class="card shadow-sm">
      <div class="card-body p-4">
        <h1 class="h4 mb-4 text-center"><i class="fas fa-tooth me-2"></i>Dental Office Admin</h1>
        {{if .Error}}<div class="alert alert-danger" role="alert">{{.Error}}</div>{{end}}
        <form method="post" action="/login">
          <div class="mb-3">
            <label class="form-label" for="login-username">Username</label>
            <input type="text" class="form-control" id="login-username" name="username" autocomplete="username" required autofocus>
          </div>
          <div class="mb-3">
            <label class="form-label" for="login-password">Password</label>
            <input type="password" class="form-control" id="login-password" name="password" autocomplete="current-password" required>
          </div>
          <button type="submit" class="btn btn-primary w-100">Sign In</button>
        </form>
      </div>
    </div>
  </div>
</body>
</html>`)

func renderLoginPage(errMsg string) string {
	return string(view.Render(loginTmpl, struct{ Error string }{errMsg}))
}
