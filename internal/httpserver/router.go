package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/auth-service/internal/middleware"
	"github.com/hotelhub/auth-service/internal/models"
)

type Deps struct {
	Auth      *AuthHTTP
	Users     *UserHTTP
	People    *PeopleHTTP
	TokenAuth *middleware.TokenAuth
	Logger    *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	if d.Logger != nil {
		e.Use(middleware.RequestLogger(d.Logger))
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// The gate runs on every /api request; absence of a token only matters
	// once a protected route checks for an identity.
	api := e.Group("/api", d.TokenAuth.Authenticate)

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh-token", d.Auth.RefreshToken)
	auth.POST("/validate-token", d.Auth.ValidateToken)
	auth.POST("/logout", d.Auth.Logout)

	users := api.Group("/users")
	users.GET("/check-email/:email", d.Users.CheckEmail)
	users.GET("/me", d.Users.Me, d.TokenAuth.RequireAuth)
	users.GET("/:id", d.Users.ByID, d.TokenAuth.RequireRole(models.RoleAdmin))

	people := api.Group("/people")
	people.GET("/me", d.People.Me, d.TokenAuth.RequireAuth)
	people.PUT("/update", d.People.Update, d.TokenAuth.RequireAuth)
	people.GET("/user/:userId", d.People.ByUserID, d.TokenAuth.RequireRole(models.RoleAdmin))
	people.GET("", d.People.List, d.TokenAuth.RequireRole(models.RoleAdmin))
}
