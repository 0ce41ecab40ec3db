package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/auth-service/internal/middleware"
	"github.com/hotelhub/auth-service/internal/models"
	"github.com/hotelhub/auth-service/internal/repo"
	"github.com/hotelhub/auth-service/internal/transport"
)

type UserHTTP struct {
	Repo *repo.GormRepo
}

func (h *UserHTTP) Me(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return h.respondUser(c, ident.UserID)
}

func (h *UserHTTP) ByID(c echo.Context) error {
	return h.respondUser(c, c.Param("id"))
}

func (h *UserHTTP) CheckEmail(c echo.Context) error {
	exists, err := h.Repo.EmailExists(c.Request().Context(), c.Param("email"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": exists})
}

func (h *UserHTTP) respondUser(c echo.Context, id string) error {
	ctx := c.Request().Context()

	user, err := h.Repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	role, err := h.Repo.FindRoleByID(ctx, user.RoleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, userResponse(user, role))
}

func userResponse(user *models.User, role *models.Role) transport.UserResponse {
	return transport.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      transport.RoleResponse{ID: role.ID, Name: role.Name},
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
