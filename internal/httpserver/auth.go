package httpserver

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/roadmap/internal/service"
	"github.com/Skotchmaster/roadmap/internal/transport"
	"github.com/Skotchmaster/roadmap/pkg/cookies"
	"github.com/Skotchmaster/roadmap/pkg/logging"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	SecureCookie bool
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing Email")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing password")
	}

	if _, err := h.Svc.RegisterUser(ctx, req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			l.Warn("register_failed", "status", 400, "reason", "email already registered")
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		return err
	}

	l.Info("user_registered")
	return c.JSON(http.StatusOK, echo.Map{"email": req.Email, "message": "user created"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions_login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Request body")
	}

	if !h.Svc.ValidLogin(ctx, req.Email, req.Password) {
		l.Warn("login_failed", "status", 403)
		return echo.NewHTTPError(http.StatusForbidden, "Invalid Credentials")
	}

	sessionID, err := h.Svc.CreateSession(ctx, req.Email)
	if err != nil {
		return err
	}
	c.SetCookie(cookies.CreateCookie(cookies.SessionCookie, sessionID, "/", h.SecureCookie))

	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{"email": req.Email, "message": "logged in"})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions_logout")

	user := sessionUser(c)
	if err := h.Svc.DestroySession(ctx, user.ID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			l.Warn("logout_failed", "status", 404)
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}
	c.SetCookie(cookies.DeleteCookie(cookies.SessionCookie, "/", h.SecureCookie))

	l.Info("successful_logout")
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	user := sessionUser(c)
	return c.JSON(http.StatusOK, echo.Map{"email": user.Email, "name": user.FullName()})
}

func (h *AuthHTTP) ResetToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reset_password_token")

	var req transport.ResetTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Request body")
	}

	token, err := h.Svc.GetResetPasswordToken(ctx, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			l.Warn("reset_token_failed", "status", 403)
			return echo.NewHTTPError(http.StatusForbidden, "Invalid Credentials")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"email": req.Email, "reset_token": token})
}

func (h *AuthHTTP) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reset_password_update")

	var req transport.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Request body")
	}

	if err := h.Svc.UpdatePassword(ctx, req.ResetToken, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			l.Warn("update_password_failed", "status", 403)
			return echo.NewHTTPError(http.StatusForbidden, "Invalid credentials")
		case errors.Is(err, service.ErrMissingField):
			return echo.NewHTTPError(http.StatusBadRequest, "Missing new password")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"email": req.Email, "message": "Password updated"})
}

func (h *AuthHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_delete")

	req, err := bindDeleteCredentials(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing Email")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing password")
	}

	if err := h.Svc.DeleteUser(ctx, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("delete_user_failed", "status", 403)
			return echo.NewHTTPError(http.StatusForbidden, "Invalid Credentials")
		}
		return err
	}

	l.Info("user_deleted")
	return c.JSON(http.StatusOK, echo.Map{"email": req.Email, "message": "User deleted"})
}

// bindDeleteCredentials reads credentials from a DELETE request. net/http does
// not parse urlencoded bodies for DELETE, so those are decoded here.
func bindDeleteCredentials(c echo.Context) (transport.CredentialsRequest, error) {
	var req transport.CredentialsRequest
	r := c.Request()
	if !strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		err := c.Bind(&req)
		return req, err
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return req, err
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return req, err
	}
	req.Email = values.Get("email")
	req.Password = values.Get("password")
	return req, nil
}
