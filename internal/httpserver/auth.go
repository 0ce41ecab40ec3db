package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/auth-service/internal/events"
	"github.com/hotelhub/auth-service/internal/logging"
	"github.com/hotelhub/auth-service/internal/repo"
	"github.com/hotelhub/auth-service/internal/service"
	"github.com/hotelhub/auth-service/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || len(req.Password) < 6 || len(req.Password) > 40 {
		l.Warn("register_error", "status", 400, "reason", "invalid email or password length")
		return echo.NewHTTPError(http.StatusBadRequest, "email is required and password must be 6-40 characters")
	}

	in := service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		RoleID:          req.RoleID,
	}
	if req.Profile != nil {
		in.Profile = &service.ProfileInput{
			FirstName: req.Profile.FirstName,
			LastName:  req.Profile.LastName,
			Phone:     req.Profile.Phone,
		}
	}

	res, err := h.Svc.Register(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrPasswordMismatch),
			errors.Is(err, repo.ErrRoleNotFound):
			return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: err.Error()})
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "user_registered", res.UserID, res.Email)
	return c.JSON(http.StatusOK, jwtResponse(res))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: err.Error()})
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "user_logged_in", res.UserID, res.Email)
	return c.JSON(http.StatusOK, jwtResponse(res))
}

func (h *AuthHTTP) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.TokenRefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrRefreshNotFound),
			errors.Is(err, service.ErrRefreshTokenExpired):
			return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: err.Error()})
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, transport.TokenRefreshResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *AuthHTTP) ValidateToken(c echo.Context) error {
	var req transport.ValidateTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return c.JSON(http.StatusOK, h.Svc.ValidateToken(req.Token))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	var req transport.LogoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("logout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Logout(ctx, req.UserID); err != nil {
		l.Error("logout_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "user_logged_out", req.UserID, "")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Log out successful!"})
}

// publish is best effort: a broker failure is logged, never surfaced to the
// client.
func (h *AuthHTTP) publish(c echo.Context, eventType, userID, email string) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	event := map[string]any{
		"type":    eventType,
		"user_id": userID,
	}
	if email != "" {
		event["email"] = email
	}
	if err := h.Producer.Publish(ctx, userID, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "type", eventType, "error", err)
	}
}

func jwtResponse(res *service.AuthResult) transport.JwtResponse {
	return transport.JwtResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		ID:           res.UserID,
		Email:        res.Email,
		Role:         res.Role,
	}
}
