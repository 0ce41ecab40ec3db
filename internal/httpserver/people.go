package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/auth-service/internal/logging"
	"github.com/hotelhub/auth-service/internal/middleware"
	"github.com/hotelhub/auth-service/internal/models"
	"github.com/hotelhub/auth-service/internal/repo"
	"github.com/hotelhub/auth-service/internal/transport"
)

type PeopleHTTP struct {
	Repo *repo.GormRepo
}

func (h *PeopleHTTP) Me(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return h.respondPerson(c, ident.UserID)
}

func (h *PeopleHTTP) ByUserID(c echo.Context) error {
	return h.respondPerson(c, c.Param("userId"))
}

// Update upserts the caller's profile: missing records are created rather
// than rejected.
func (h *PeopleHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "people_update")

	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	var req transport.ProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Repo.FindUserByID(ctx, ident.UserID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	person, err := h.Repo.FindPersonByUser(ctx, ident.UserID)
	if err != nil {
		if !errors.Is(err, repo.ErrPersonNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		person = &models.Person{UserID: ident.UserID}
	}

	person.FirstName = req.FirstName
	person.LastName = req.LastName
	person.Phone = req.Phone

	if err := h.Repo.SavePerson(ctx, person); err != nil {
		l.Error("update_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, person)
}

func (h *PeopleHTTP) List(c echo.Context) error {
	people, err := h.Repo.ListPeople(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, people)
}

func (h *PeopleHTTP) respondPerson(c echo.Context, userID string) error {
	ctx := c.Request().Context()

	if _, err := h.Repo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	person, err := h.Repo.FindPersonByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrPersonNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "person not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, person)
}
