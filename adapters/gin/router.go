// Package authgin mounts the login gateway onto a gin engine.
package authgin

import (
	"github.com/gin-gonic/gin"

	"github.com/wooyeon-app/wy-backend/core"
)

// NewRouter builds the gin engine with every route the gateway serves.
func NewRouter(svc *core.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	Mount(r, svc)
	return r
}

// Mount registers the gateway's routes on an existing engine, so callers
// embedding the gateway into a larger server can keep their own middleware.
func Mount(r *gin.Engine, svc *core.Service) {
	h := &handlers{svc: svc}

	r.GET("/", handleHealth)
	r.GET("/ping", handlePing)
	r.GET("/protect_ping", RequireAuth(svc.Config().JWT), handlePing)

	auth := r.Group("/auth")
	auth.GET("/:provider/login", h.handleLogin)
	auth.GET("/:provider/callback", h.handleCallback)
	// Apple delivers its callback as an application/x-www-form-urlencoded
	// POST when response_mode=form_post.
	auth.POST("/:provider/callback", h.handleCallback)

	user := r.Group("/user")
	user.GET("", RequireAuth(svc.Config().JWT), h.handleGetMe)
	user.GET("/:user_id", h.handleGetUser)
	user.POST("", h.handleCreateUser)
	// Phone verification hands out a token pair, so it cannot sit behind the
	// auth gate itself.
	user.POST("/search", h.handleSearchUsers)
	user.POST("/p_num_verify", h.handlePhoneVerify)
}
