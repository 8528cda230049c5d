package authgin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/wooyeon-app/wy-backend/adapters/ginutil"
	"github.com/wooyeon-app/wy-backend/core"
	"github.com/wooyeon-app/wy-backend/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTConfig() core.JWTConfig {
	return core.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "wy",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 14 * 24 * time.Hour,
	}
}

func newProtectedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.GET("/protect_ping", RequireAuth(testJWTConfig()), func(c *gin.Context) {
		claims := GinClaims(c)
		require.NotNil(t, claims)
		require.NotNil(t, ClaimsFrom(c.Request.Context()))
		ginutil.OK(c, "pong")
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, path, authorization string) (*httptest.ResponseRecorder, ginutil.Base) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body ginutil.Base
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := newProtectedRouter(t)

	w, body := doGet(t, r, "/protect_ping", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, 401, body.Code)
	require.Equal(t, "no token", body.Message)
}

func TestRequireAuthNotBearer(t *testing.T) {
	r := newProtectedRouter(t)

	for _, header := range []string{"Token abc", "bearer abc", "Bearer"} {
		w, body := doGet(t, r, "/protect_ping", header)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		require.Equal(t, "no token", body.Message, "header %q", header)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newProtectedRouter(t)

	w, body := doGet(t, r, "/protect_ping", "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, body.Message, "auth failed")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r := newProtectedRouter(t)
	expired, err := token.IssueAccess("test-secret", "wy", "u1", "", -time.Minute)
	require.NoError(t, err)

	w, body := doGet(t, r, "/protect_ping", "Bearer "+expired)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, body.Message, "auth failed")
}

func TestRequireAuthRefreshTokenRejected(t *testing.T) {
	r := newProtectedRouter(t)
	refresh, err := token.IssueRefresh("test-secret", "wy", "u1", time.Hour)
	require.NoError(t, err)

	w, _ := doGet(t, r, "/protect_ping", "Bearer "+refresh)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	r := newProtectedRouter(t)
	access, err := token.IssueAccess("test-secret", "wy", "u1", "a@b.com", time.Minute)
	require.NoError(t, err)

	w, body := doGet(t, r, "/protect_ping", "Bearer "+access)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 200, body.Code)
	require.Equal(t, "pong", body.Data)
	require.Equal(t, "success", body.Message)
}
