package api_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	token, _ := ts.registerUser(t, "alice")
	assert.NotEmpty(t, token)

	// Duplicate email is rejected.
	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      "alice@example.com",
		"username":   "user-alice2",
		"first_name": "Test",
		"last_name":  "User",
		"password":   "s3cretpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Binding failures never reach the service.
	w = ts.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "not-an-email",
		"username": "user-x",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.registerUser(t, "bob")

	w := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decodeJSON(t, w, &resp)
	assert.NotEmpty(t, resp.Token)

	w = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodGet, "/api/v1/users/subscriptions"},
		{http.MethodPost, "/api/v1/recipes"},
		{http.MethodGet, "/api/v1/recipes/download_shopping_cart"},
	} {
		w := ts.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)

		w = ts.do(t, route.method, route.path, "garbage-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s with bad token", route.method, route.path)
	}
}
