package authgin

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/wooyeon-app/wy-backend/token"
)

type claimsCtxKey struct{}

const ginClaimsKey = "auth.claims"

// WithClaims returns a context carrying validated token claims.
func WithClaims(ctx context.Context, c *token.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, c)
}

// ClaimsFrom returns the validated claims attached by RequireAuth, or nil.
func ClaimsFrom(ctx context.Context) *token.Claims {
	c, _ := ctx.Value(claimsCtxKey{}).(*token.Claims)
	return c
}

// GinClaims reads the claims from the gin context.
func GinClaims(c *gin.Context) *token.Claims {
	v, ok := c.Get(ginClaimsKey)
	if !ok {
		return nil
	}
	cl, _ := v.(*token.Claims)
	return cl
}
