package user

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/platform/session"
	"github.com/dentadmin/console/internal/view"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the user fragment and form routes and binds the
// users section to the section controller.
func (h *Handler) RegisterRoutes(g *echo.Group, sections *view.Controller) {
	sections.Register("users", h.Section)

	g.GET("/users/rows", h.Rows)
	g.GET("/users/form", h.NewForm)
	g.GET("/users/:id/form", h.EditForm)
	g.POST("/users/save", h.Save)
	g.GET("/users/:id/confirm-delete", h.ConfirmDelete)
	g.POST("/users/:id/delete", h.Delete)
	g.GET("/users/change-password", h.PasswordForm)
	g.POST("/users/change-password", h.ChangePassword)
}

func currentUserID(c echo.Context) int64 {
	if s := session.FromContext(c); s != nil {
		return s.UserID
	}
	return 0
}

// Section loads the account list and renders the full section.
func (h *Handler) Section(c echo.Context) (template.HTML, error) {
	items, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			return "", err
		}
		return view.ErrorBanner(err, "Failed to load users") + RenderSection(nil, currentUserID(c)), nil
	}
	return RenderSection(items, currentUserID(c)), nil
}

// Rows serves the refreshed table body.
func (h *Handler) Rows(c echo.Context) error {
	if !h.svc.Loaded() {
		if _, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c)); err != nil {
			return view.APIFail(c, err, "Failed to load users")
		}
	}
	return c.HTML(http.StatusOK, string(RenderRows(h.svc.Cached(), currentUserID(c))))
}

// NewForm serves the reset create form.
func (h *Handler) NewForm(c echo.Context) error {
	return c.HTML(http.StatusOK, string(RenderForm(nil)))
}

// EditForm fetches the account and serves the populated edit form.
func (h *Handler) EditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	u, err := h.svc.Get(apiclient.RequestContext(c), session.Token(c), id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load user data")
	}
	return c.HTML(http.StatusOK, string(RenderForm(u)))
}

// Save creates or updates an account depending on the hidden id field.
func (h *Handler) Save(c echo.Context) error {
	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	idRaw := strings.TrimSpace(c.FormValue("id"))

	var err error
	message := "User added successfully"
	if idRaw != "" {
		payload := UpdatePayload{
			Username: strings.TrimSpace(c.FormValue("username")),
			Email:    strings.TrimSpace(c.FormValue("email")),
			IsActive: c.FormValue("is_active") == "true",
		}
		if verr := ValidateUpdate(payload); verr != nil {
			return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, verr.Error())))
		}
		var id int64
		if id, err = strconv.ParseInt(idRaw, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		err = h.svc.Update(ctx, tok, id, payload)
		message = "User updated successfully"
	} else {
		payload := CreatePayload{
			Username: strings.TrimSpace(c.FormValue("username")),
			Email:    strings.TrimSpace(c.FormValue("email")),
			Password: c.FormValue("password"),
		}
		if verr := ValidateCreate(payload); verr != nil {
			return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, verr.Error())))
		}
		err = h.svc.Create(ctx, tok, payload)
	}
	if err != nil {
		return view.APIFail(c, err, "Failed to save user")
	}

	items, err := h.svc.Load(ctx, tok)
	if err != nil {
		return view.APIFail(c, err, "Failed to reload users")
	}
	c.Response().Header().Set("X-Console-Modal", "close")
	return c.HTML(http.StatusOK, string(view.Banner(view.BannerSuccess, message))+string(RenderRows(items, currentUserID(c))))
}

// ConfirmDelete serves the confirmation step. Self-deletion is refused here,
// before any confirmation is even shown.
func (h *Handler) ConfirmDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if id == currentUserID(c) {
		return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, "You cannot delete your own account")))
	}
	u, err := h.svc.Get(apiclient.RequestContext(c), session.Token(c), id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load user data")
	}
	return c.HTML(http.StatusOK, string(RenderDeleteConfirm(u)))
}

// Delete issues the DELETE after confirmation. The self-deletion check runs
// again in case the confirmation fragment was forged.
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if id == currentUserID(c) {
		return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, "You cannot delete your own account")))
	}
	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	if err := h.svc.Delete(ctx, tok, id); err != nil {
		return view.APIFail(c, err, "Failed to delete user")
	}
	items, err := h.svc.Load(ctx, tok)
	if err != nil {
		return view.APIFail(c, err, "Failed to reload users")
	}
	c.Response().Header().Set("X-Console-Modal", "close")
	return c.HTML(http.StatusOK, string(view.Banner(view.BannerSuccess, "User deleted successfully"))+string(RenderRows(items, currentUserID(c))))
}

// PasswordForm serves the signed-in user's password change form.
func (h *Handler) PasswordForm(c echo.Context) error {
	return c.HTML(http.StatusOK, string(RenderPasswordForm()))
}

// ChangePassword changes the signed-in user's password.
func (h *Handler) ChangePassword(c echo.Context) error {
	payload := PasswordChange{
		CurrentPassword: c.FormValue("current_password"),
		NewPassword:     c.FormValue("new_password"),
	}
	if err := ValidatePasswordChange(payload); err != nil {
		return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, err.Error())))
	}
	if err := h.svc.ChangePassword(apiclient.RequestContext(c), session.Token(c), payload); err != nil {
		return view.APIFail(c, err, "Failed to change password")
	}
	c.Response().Header().Set("X-Console-Modal", "close")
	return c.HTML(http.StatusOK, string(view.Banner(view.BannerSuccess, "Password changed successfully")))
}
