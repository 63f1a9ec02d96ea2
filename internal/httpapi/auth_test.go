package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, e *testEnv, email, password string) (userID, token string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Test User",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func TestRegisterLoginMeRoundTrip(t *testing.T) {
	e := newTestEnv(t)

	userID, _ := registerUser(t, e, "trader@example.com", "Secret12!")

	rec := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "trader@example.com",
		"password": "Secret12!",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decodeBody(t, rec)["token"].(string)

	rec = e.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, userID, body["user"].(map[string]any)["id"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newTestEnv(t)
	registerUser(t, e, "dup@example.com", "Secret12!")

	rec := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "dup@example.com",
		"password": "Other123!",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email already registered", decodeBody(t, rec)["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	registerUser(t, e, "who@example.com", "Secret12!")

	rec := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "who@example.com",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginOAuthOnlyAccountFailsGracefully(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.store.UpsertGoogleUser(context.Background(), store.GoogleProfile{
		GoogleID: "g-1",
		Email:    "oauth@example.com",
		Name:     "OAuth Only",
	})
	require.NoError(t, err)

	rec := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "oauth@example.com",
		"password": "anything",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRejectsTamperedToken(t *testing.T) {
	e := newTestEnv(t)
	_, token := registerUser(t, e, "tamper@example.com", "Secret12!")

	rec := e.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token + "x",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRejectsExpiredToken(t *testing.T) {
	e := newTestEnv(t)
	userID, _ := registerUser(t, e, "expired@example.com", "Secret12!")

	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + expired,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeWithoutToken(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodPost, "/api/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "Secret12!",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "short@example.com",
		"password": "abc",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
