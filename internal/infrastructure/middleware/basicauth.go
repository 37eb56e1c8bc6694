package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluffylabs/cdn-img/internal/infrastructure/auth"
	"github.com/fluffylabs/cdn-img/internal/pkg/httputil"
)

type BasicAuthMiddleware struct {
	checker *auth.CredentialChecker
}

func NewBasicAuthMiddleware(checker *auth.CredentialChecker) *BasicAuthMiddleware {
	return &BasicAuthMiddleware{checker: checker}
}

// Require rejects requests without valid HTTP Basic credentials before the
// body is read.
func (m *BasicAuthMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !m.checker.Check(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="upload"`)
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
			c.Abort()
			return
		}
		c.Next()
	}
}
