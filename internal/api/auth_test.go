package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginEndpoints(t *testing.T) {
	env := SetupTestEnv(t)

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Test User",
		"email":    "user@example.com",
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	w = PerformRequest(env.Router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
}

func TestRegisterValidation(t *testing.T) {
	env := SetupTestEnv(t)

	// Bad email.
	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Test User",
		"email":    "not-an-email",
		"password": "supersecret",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Short password.
	w = PerformRequest(env.Router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Test User",
		"email":    "user@example.com",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	env := SetupTestEnv(t)

	payload := gin.H{
		"name":     "Test User",
		"email":    "user@example.com",
		"password": "supersecret",
	}
	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(env.Router, http.MethodPost, "/api/v1/auth/register", payload, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := SetupTestEnv(t)

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := SetupTestEnv(t)

	for _, path := range []string{"/api/v1/glucose", "/api/v1/doses", "/api/v1/meals", "/api/v1/activity", "/api/v1/dashboard"} {
		w := PerformRequest(env.Router, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}

	w := PerformRequest(env.Router, http.MethodGet, "/api/v1/glucose", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
