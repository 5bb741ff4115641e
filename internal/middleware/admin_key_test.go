package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"creature-server/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func adminRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", middleware.AdminKey(secret, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestAdminKey(t *testing.T) {
	t.Run("Valid key passes", func(t *testing.T) {
		r := adminRouter("s3cret")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin?key=s3cret", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Wrong key is rejected", func(t *testing.T) {
		r := adminRouter("s3cret")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin?key=guess", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Missing key is rejected", func(t *testing.T) {
		r := adminRouter("s3cret")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("No configured secret disables the route", func(t *testing.T) {
		r := adminRouter("")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin?key=", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
