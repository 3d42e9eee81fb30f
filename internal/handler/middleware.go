package handler

import (
	"net/http"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireSession gates the admin endpoints behind the process-wide session.
// Without a stored access token no upstream call is ever attempted.
func RequireSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
