package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/auth-service/internal/logging"
	"github.com/hotelhub/auth-service/internal/token"
)

const identityKey = "auth_identity"

// Identity is the verified caller established by the gate for one request.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type TokenAuth struct {
	Codec *token.Codec
}

func NewTokenAuth(codec *token.Codec) *TokenAuth {
	return &TokenAuth{Codec: codec}
}

// Authenticate extracts and verifies the bearer token. A missing header means
// an anonymous request, not an error; a bad token just leaves the identity
// unset and lets RequireAuth or RequireRole reject further down the chain.
func (m *TokenAuth) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c.Request())
		if raw == "" {
			return next(c)
		}

		claims, err := m.Codec.Verify(raw)
		if err != nil {
			l := logging.FromContext(c.Request().Context()).With("middleware", "token_auth")
			l.Warn("token rejected", "error", err)
			return next(c)
		}

		c.Set(identityKey, &Identity{
			UserID: claims.Subject,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		return next(c)
	}
}

func (m *TokenAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := IdentityFrom(c); !ok {
			return unauthorized(c, "full authentication is required to access this resource")
		}
		return next(c)
	}
}

// RequireRole demands an exact role-name match. There is no hierarchy: ADMIN
// does not pass a USER-only gate.
func (m *TokenAuth) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return unauthorized(c, "full authentication is required to access this resource")
			}
			if ident.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (*Identity, bool) {
	ident, ok := c.Get(identityKey).(*Identity)
	return ident, ok && ident != nil
}

// unauthorized is the single entry point every unauthenticated rejection goes
// through, producing one uniform 401 body.
func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"status":  http.StatusUnauthorized,
		"error":   "Unauthorized",
		"message": message,
		"path":    c.Request().URL.Path,
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
