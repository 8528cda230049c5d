// Package ginutil holds the response envelope and small helpers shared by
// the gin handlers.
package ginutil

import (
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Base is the JSON envelope every endpoint answers with.
type Base struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Paged wraps a result page inside the standard envelope.
type Paged struct {
	Items      []any      `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// OK writes a 200 envelope.
func OK(c *gin.Context, data any) {
	c.JSON(200, Base{Code: 200, Data: data, Message: "success"})
}

// OKPaged writes a 200 envelope around a page of items.
func OKPaged(c *gin.Context, items []any, page, size int, total int64) {
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	OK(c, Paged{Items: items, Pagination: Pagination{Page: page, Size: size, Total: total, TotalPages: pages}})
}

// Fail writes an error envelope. appCode usually equals the HTTP status but
// may differ (e.g. the inactive-user app code).
func Fail(c *gin.Context, status, appCode int, message string) {
	c.AbortWithStatusJSON(status, Base{Code: appCode, Message: message})
}

// FailWithLog logs the underlying error before sending the envelope; used
// for 5xx/502 paths where the client message alone is not enough.
func FailWithLog(c *gin.Context, status, appCode int, message string, err error) {
	entry := log.WithFields(log.Fields{
		"status": status,
		"path":   c.FullPath(),
		"method": c.Request.Method,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
	Fail(c, status, appCode, message)
}

// BearerToken extracts the token from an Authorization header value, or ""
// when the header is absent or not a Bearer credential.
func BearerToken(authorization string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		return ""
	}
	return authorization[len(prefix):]
}
