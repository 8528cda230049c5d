package authgin

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wooyeon-app/wy-backend/adapters/ginutil"
	"github.com/wooyeon-app/wy-backend/core"
)

type handlers struct {
	svc *core.Service
}

// writeErr maps a service error onto the envelope. Server-side failures get
// logged with their cause; the client only ever sees the message.
func writeErr(c *gin.Context, err error) {
	status := core.HTTPStatus(err)
	appCode := status
	if errors.Is(err, core.ErrInactiveUser) {
		appCode = core.InactiveUserCode
	}
	if status >= http.StatusInternalServerError || status == http.StatusBadGateway {
		ginutil.FailWithLog(c, status, appCode, err.Error(), err)
		return
	}
	ginutil.Fail(c, status, appCode, err.Error())
}

// handleLogin redirects the browser to the provider's authorization page.
func (h *handlers) handleLogin(c *gin.Context) {
	authURL, err := h.svc.AuthorizeURL(c.Request.Context(), c.Param("provider"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// handleCallback finishes a login started at handleLogin. Apple posts its
// callback as a form instead of a query string, so both are read.
func (h *handlers) handleCallback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		code = c.PostForm("code")
		state = c.PostForm("state")
	}
	if code == "" {
		ginutil.Fail(c, http.StatusBadRequest, http.StatusBadRequest, "missing authorization code")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), provider, code, state)
	if err != nil {
		writeErr(c, err)
		return
	}

	// Tools and tests ask for JSON; the app gets its deep link.
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"user_id":       result.UserID,
			"email":         result.Email,
			"name":          result.Name,
		})
		return
	}

	q := url.Values{}
	q.Set("accessToken", result.AccessToken)
	q.Set("refreshToken", result.RefreshToken)
	q.Set("userId", result.UserID)
	q.Set("email", result.Email)
	q.Set("name", result.Name)
	c.Redirect(http.StatusFound, h.svc.Config().DeepLinkBase+"?"+q.Encode())
}

func (h *handlers) handleGetMe(c *gin.Context) {
	claims := GinClaims(c)
	if claims == nil || claims.Subject == "" {
		ginutil.Fail(c, http.StatusUnauthorized, http.StatusUnauthorized, "no token")
		return
	}
	u, err := h.svc.GetUser(c.Request.Context(), claims.Subject)
	if err != nil {
		writeErr(c, err)
		return
	}
	ginutil.OK(c, u)
}

func (h *handlers) handleGetUser(c *gin.Context) {
	u, err := h.svc.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	ginutil.OK(c, u)
}

func (h *handlers) handleCreateUser(c *gin.Context) {
	var u core.User
	if err := c.ShouldBindJSON(&u); err != nil {
		ginutil.Fail(c, http.StatusBadRequest, http.StatusBadRequest, "invalid user payload: "+err.Error())
		return
	}
	if err := h.svc.CreateUser(c.Request.Context(), &u); err != nil {
		writeErr(c, err)
		return
	}
	ginutil.OK(c, true)
}

func (h *handlers) handleSearchUsers(c *gin.Context) {
	var f core.SearchFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		ginutil.Fail(c, http.StatusBadRequest, http.StatusBadRequest, "invalid search payload: "+err.Error())
		return
	}
	users, total, err := h.svc.SearchUsers(c.Request.Context(), f)
	if err != nil {
		writeErr(c, err)
		return
	}
	items := make([]any, len(users))
	for i := range users {
		items[i] = users[i]
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = 20
	}
	ginutil.OKPaged(c, items, f.Page, f.Size, total)
}

type phoneVerifyRequest struct {
	PNum string `json:"p_num"`
}

func (h *handlers) handlePhoneVerify(c *gin.Context) {
	var req phoneVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PNum == "" {
		ginutil.Fail(c, http.StatusBadRequest, http.StatusBadRequest, "p_num is required")
		return
	}
	pair, err := h.svc.VerifyPhone(c.Request.Context(), req.PNum)
	if err != nil {
		writeErr(c, err)
		return
	}
	ginutil.OK(c, pair)
}

func handleHealth(c *gin.Context) { ginutil.OK(c, "success") }
func handlePing(c *gin.Context)   { ginutil.OK(c, "pong") }
