package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) adminListCreatures(c *gin.Context) {
	creatures, err := h.cleanup.ListCreatures(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(creatures),
		"creatures": creatures,
	})
}

func (h *Handler) adminDeleteCreature(c *gin.Context) {
	shortID := c.Param("shortId")
	if err := h.cleanup.DeleteCreature(c.Request.Context(), shortID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "shortId": shortID})
}

func (h *Handler) adminCleanup(c *gin.Context) {
	deleted, err := h.cleanup.CleanupExpired(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}
