package handler

import (
	"net/http"

	"creature-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getSuggestions returns trait vocabulary for the creator form. The service
// always produces lists, so this endpoint cannot fail.
func (h *Handler) getSuggestions(c *gin.Context) {
	result := h.suggestions.Suggest(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"bodyParts": result.BodyParts,
		"habitats":  result.Habitats,
	})
}

// generateStory runs the full generation pipeline for the submitted traits.
// Generation degrades internally, so the response is always a story.
func (h *Handler) generateStory(c *gin.Context) {
	var details models.CreatureDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result := h.generation.GenerateCreatureStory(c.Request.Context(), details)
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"story":            result.Story,
		"imagePrompt":      result.ImagePrompt,
		"imageUrl":         result.ImageURL,
		"sceneImagePrompt": result.SceneImagePrompt,
		"sceneImageUrl":    result.SceneImageURL,
	})
}

// saveCreature persists a generated creature and returns its short ID.
func (h *Handler) saveCreature(c *gin.Context) {
	var req saveCreatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	shortID, err := h.creatures.Save(c.Request.Context(), models.CreatureData{
		CreatureDetails: req.CreatureDetails,
		StoryResult:     req.StoryResult,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "shortId": shortID})
}

// getCreature loads a saved creature by short ID.
func (h *Handler) getCreature(c *gin.Context) {
	shortID := c.Param("shortId")
	data, err := h.creatures.Get(c.Request.Context(), shortID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "creature": data})
}

// exportPDF renders the posted creature story as a printable PDF.
func (h *Handler) exportPDF(c *gin.Context) {
	var req exportPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	data := models.CreatureData{
		CreatureDetails: req.CreatureDetails,
		StoryResult:     req.StoryResult,
	}
	out, err := h.exporter.Export(c.Request.Context(), data)
	if err != nil {
		h.logger.Error("PDF export failed",
			zap.String("creature", req.CreatureDetails.Name),
			zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="creature-story.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
