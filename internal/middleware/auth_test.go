package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelhub/auth-service/internal/models"
	"github.com/hotelhub/auth-service/internal/token"
)

func newTestEcho(t *testing.T) (*echo.Echo, *token.Codec) {
	t.Helper()

	codec := &token.Codec{Secret: []byte("test-jwt-secret"), TTL: 15 * time.Minute}
	ta := NewTokenAuth(codec)

	e := echo.New()
	api := e.Group("/api", ta.Authenticate)

	identityHandler := func(c echo.Context) error {
		if ident, ok := IdentityFrom(c); ok {
			return c.JSON(http.StatusOK, echo.Map{"user_id": ident.UserID, "role": ident.Role})
		}
		return c.JSON(http.StatusOK, echo.Map{"anonymous": true})
	}

	api.GET("/open", identityHandler)
	api.GET("/protected", identityHandler, ta.RequireAuth)
	api.GET("/admin", identityHandler, ta.RequireRole(models.RoleAdmin))

	return e, codec
}

func issueToken(t *testing.T, codec *token.Codec, role string) (string, string) {
	t.Helper()

	user := &models.User{ID: uuid.NewString(), Email: "guest@hotel.test"}
	tokenStr, err := codec.Issue(user, role)
	require.NoError(t, err)
	return tokenStr, user.ID
}

func doGet(e *echo.Echo, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGate_MissingTokenIsAnonymous(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t)
	rec := doGet(e, "/api/open", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["anonymous"])
}

func TestGate_ValidTokenPopulatesIdentity(t *testing.T) {
	t.Parallel()

	e, codec := newTestEcho(t)
	tokenStr, userID := issueToken(t, codec, models.RoleUser)

	rec := doGet(e, "/api/protected", tokenStr)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID, body["user_id"])
	assert.Equal(t, models.RoleUser, body["role"])
}

func TestRequireAuth_UnauthorizedBody(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t)
	rec := doGet(e, "/api/protected", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, http.StatusUnauthorized, body["status"])
	assert.Equal(t, "Unauthorized", body["error"])
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, "/api/protected", body["path"])
}

func TestRequireAuth_BadTokenRejected(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t)
	rec := doGet(e, "/api/protected", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	e, codec := newTestEcho(t)

	expired := &token.Codec{Secret: codec.Secret, TTL: -time.Minute}
	tokenStr, _ := issueToken(t, expired, models.RoleUser)

	rec := doGet(e, "/api/protected", tokenStr)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	e, codec := newTestEcho(t)

	userToken, _ := issueToken(t, codec, models.RoleUser)
	adminToken, _ := issueToken(t, codec, models.RoleAdmin)
	managerToken, _ := issueToken(t, codec, models.RoleHotelManager)

	assert.Equal(t, http.StatusForbidden, doGet(e, "/api/admin", userToken).Code)
	assert.Equal(t, http.StatusForbidden, doGet(e, "/api/admin", managerToken).Code)
	assert.Equal(t, http.StatusOK, doGet(e, "/api/admin", adminToken).Code)
}

func TestRequireRole_AnonymousGets401(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t)
	rec := doGet(e, "/api/admin", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
