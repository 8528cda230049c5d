package authgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wooyeon-app/wy-backend/adapters/ginutil"
	"github.com/wooyeon-app/wy-backend/core"
	"github.com/wooyeon-app/wy-backend/token"
)

// RequireAuth gates protected endpoints on a valid Bearer access token.
// A missing or empty credential and a failed validation both end the request
// with the 401 envelope; distinctions live only in the message.
func RequireAuth(jwtCfg core.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ginutil.BearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			ginutil.Fail(c, http.StatusUnauthorized, http.StatusUnauthorized, "no token")
			return
		}
		claims, err := token.ValidateAccess(raw, jwtCfg.Secret, jwtCfg.Issuer)
		if err != nil {
			ginutil.Fail(c, http.StatusUnauthorized, http.StatusUnauthorized, "auth failed: "+err.Error())
			return
		}
		c.Set(ginClaimsKey, claims)
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}
