package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelhub/auth-service/internal/models"
	"github.com/hotelhub/auth-service/internal/repo"
	"github.com/hotelhub/auth-service/internal/transport"
)

func registerAccount(t *testing.T, e *echo.Echo, r *repo.GormRepo, email, roleName string, profile map[string]string) transport.JwtResponse {
	t.Helper()

	payload := registerPayload(email)
	if roleName != models.RoleUser {
		role, err := r.FindRoleByName(context.Background(), roleName)
		require.NoError(t, err)
		payload["roleId"] = role.ID
	}
	if profile != nil {
		payload["profile"] = profile
	}

	rec := doJSON(e, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeJwtResponse(t, rec)
}

func getJSON(e *echo.Echo, path, bearer string) *httptest.ResponseRecorder {
	return doJSON(e, http.MethodGet, path, nil, bearer)
}

func TestUsersMe(t *testing.T) {
	t.Parallel()

	e, r := newTestServer(t)
	acc := registerAccount(t, e, r, "me@x.com", models.RoleUser, nil)

	anon := getJSON(e, "/api/users/me", "")
	require.Equal(t, http.StatusUnauthorized, anon.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(anon.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "/api/users/me", body["path"])

	rec := getJSON(e, "/api/users/me", acc.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var user transport.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, acc.ID, user.ID)
	assert.Equal(t, "me@x.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role.Name)
	assert.NotEmpty(t, user.CreatedAt)
}

func TestUsersByID_AdminOnly(t *testing.T) {
	t.Parallel()

	e, r := newTestServer(t)
	user := registerAccount(t, e, r, "plain@x.com", models.RoleUser, nil)
	admin := registerAccount(t, e, r, "admin@x.com", models.RoleAdmin, nil)

	forbidden := getJSON(e, "/api/users/"+admin.ID, user.Token)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	ok := getJSON(e, "/api/users/"+user.ID, admin.Token)
	require.Equal(t, http.StatusOK, ok.Code)

	missing := getJSON(e, "/api/users/no-such-id", admin.Token)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestUsersCheckEmail(t *testing.T) {
	t.Parallel()

	e, r := newTestServer(t)
	registerAccount(t, e, r, "taken@x.com", models.RoleUser, nil)

	rec := getJSON(e, "/api/users/check-email/taken@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"exists":true`)

	rec = getJSON(e, "/api/users/check-email/free@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"exists":false`)
}

func TestPeopleMeAndUpdate(t *testing.T) {
	t.Parallel()

	e, r := newTestServer(t)
	acc := registerAccount(t, e, r, "p@x.com", models.RoleUser, map[string]string{
		"firstName": "Ana", "lastName": "Diaz", "phone": "555-0101",
	})

	rec := getJSON(e, "/api/people/me", acc.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var person models.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &person))
	assert.Equal(t, "Ana", person.FirstName)

	upd := doJSON(e, http.MethodPut, "/api/people/update", map[string]string{
		"firstName": "Anita", "lastName": "Diaz", "phone": "555-0102",
	}, acc.Token)
	require.Equal(t, http.StatusOK, upd.Code)

	rec = getJSON(e, "/api/people/me", acc.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &person))
	assert.Equal(t, "Anita", person.FirstName)
	assert.Equal(t, "555-0102", person.Phone)
}

func TestPeopleUpdate_CreatesMissingRecord(t *testing.T) {
	t.Parallel()

	e, r := newTestServer(t)
	acc := registerAccount(t, e, r, "bare@x.com", models.RoleUser, nil)

	missing := getJSON(e, "/api/people/me", acc.Token)
	assert.Equal(t, http.StatusNotFound, missing.Code)

	upd := doJSON(e, http.MethodPut, "/api/people/update", map[string]string{
		"firstName": "Lee", "lastName": "Chan",
	}, acc.Token)
	require.Equal(t, http.StatusOK, upd.Code)

	person, err := r.FindPersonByUser(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lee", person.FirstName)
}

func TestPeopleAdminRoutes(t *testing.T) {
	t.Parallel()

	e, r := newTestServer(t)
	user := registerAccount(t, e, r, "guest@x.com", models.RoleUser, map[string]string{
		"firstName": "Gia", "lastName": "Moss",
	})
	admin := registerAccount(t, e, r, "root@x.com", models.RoleAdmin, nil)

	list := getJSON(e, "/api/people", admin.Token)
	require.Equal(t, http.StatusOK, list.Code)

	var people []models.Person
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &people))
	require.Len(t, people, 1)
	assert.Equal(t, user.ID, people[0].UserID)

	byUser := getJSON(e, "/api/people/user/"+user.ID, admin.Token)
	assert.Equal(t, http.StatusOK, byUser.Code)

	denied := getJSON(e, "/api/people", user.Token)
	assert.Equal(t, http.StatusForbidden, denied.Code)

	deniedAnon := getJSON(e, "/api/people", "")
	assert.Equal(t, http.StatusUnauthorized, deniedAnon.Code)
}
