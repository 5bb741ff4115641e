package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminKey guards admin routes with a shared secret passed as the `key`
// query parameter. When no secret is configured the routes are disabled
// entirely rather than left open.
func AdminKey(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			log.Warn("Admin endpoint called but no admin key is configured",
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "admin access is disabled",
			})
			return
		}

		key := c.Query("key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			log.Warn("Admin endpoint called with invalid key",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "invalid admin key",
			})
			return
		}

		c.Next()
	}
}
