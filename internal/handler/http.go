package handler

import (
	"errors"
	"net/http"

	"creature-server/internal/middleware"
	"creature-server/internal/models"
	"creature-server/internal/pdf"
	"creature-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	generation  *service.GenerationService
	suggestions *service.SuggestionService
	creatures   *service.CreatureService
	storybooks  *service.StorybookService
	cleanup     *service.CleanupService
	exporter    *pdf.Exporter
	adminKey    string
	logger      *zap.Logger
}

func NewHandler(
	generation *service.GenerationService,
	suggestions *service.SuggestionService,
	creatures *service.CreatureService,
	storybooks *service.StorybookService,
	cleanup *service.CleanupService,
	exporter *pdf.Exporter,
	adminKey string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		generation:  generation,
		suggestions: suggestions,
		creatures:   creatures,
		storybooks:  storybooks,
		cleanup:     cleanup,
		exporter:    exporter,
		adminKey:    adminKey,
		logger:      logger.Named("Handler"),
	}
}

// RegisterRoutes mounts all API routes on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/suggestions", h.getSuggestions)
		api.POST("/generate-story", h.generateStory)
		api.POST("/creatures", h.saveCreature)
		api.GET("/creatures/:shortId", h.getCreature)
		api.POST("/pdf", h.exportPDF)

		api.GET("/storybooks", h.listStorybooks)
		api.POST("/storybooks", h.createStorybook)
		api.GET("/storybooks/:id", h.getStorybook)
		api.DELETE("/storybooks/:id", h.deleteStorybook)
		api.PATCH("/storybooks/:id/name", h.updateStorybookName)
		api.PATCH("/storybooks/:id/cover", h.updateStorybookCover)
		api.POST("/storybooks/:id/reorder", h.reorderStories)

		api.POST("/storybook-entries", h.addStoryToBook)
		api.DELETE("/storybook-entries/:id", h.removeStoryFromBook)
		api.GET("/storybook-membership", h.checkMembership)

		admin := api.Group("/admin", middleware.AdminKey(h.adminKey, h.logger))
		{
			admin.GET("/creatures", h.adminListCreatures)
			admin.DELETE("/creatures/:shortId", h.adminDeleteCreature)
			admin.POST("/cleanup", h.adminCleanup)
		}
	}
}

// respondError maps service errors to a JSON error payload.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
		message = "forbidden"
	default:
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}

func (h *Handler) respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}
