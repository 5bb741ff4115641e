package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listStorybooks(c *gin.Context) {
	deviceID := c.Query("deviceId")
	if deviceID == "" {
		h.respondBadRequest(c, "deviceId query parameter is required")
		return
	}

	books, err := h.storybooks.GetAllStorybooks(c.Request.Context(), deviceID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "storybooks": books})
}

func (h *Handler) createStorybook(c *gin.Context) {
	var req createStorybookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := h.storybooks.CreateStorybook(c.Request.Context(), req.DeviceID, req.BookName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "storybook": book})
}

func (h *Handler) getStorybook(c *gin.Context) {
	id, ok := h.storybookID(c)
	if !ok {
		return
	}

	book, err := h.storybooks.GetStorybookByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "storybook": book})
}

func (h *Handler) deleteStorybook(c *gin.Context) {
	id, ok := h.storybookID(c)
	if !ok {
		return
	}

	if err := h.storybooks.DeleteStorybook(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) updateStorybookName(c *gin.Context) {
	id, ok := h.storybookID(c)
	if !ok {
		return
	}

	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.storybooks.UpdateStorybookName(c.Request.Context(), id, req.BookName); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) updateStorybookCover(c *gin.Context) {
	id, ok := h.storybookID(c)
	if !ok {
		return
	}

	var req updateCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.storybooks.UpdateStorybookCover(c.Request.Context(), id, req.CoverImageURL); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) reorderStories(c *gin.Context) {
	id, ok := h.storybookID(c)
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.EntryIDs) == 0 {
		h.respondBadRequest(c, "entryIds must not be empty")
		return
	}

	if err := h.storybooks.ReorderStories(c.Request.Context(), id, req.EntryIDs); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) addStoryToBook(c *gin.Context) {
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// Adding the same creature twice is treated as success so clients can
	// retry the share flow safely.
	already, err := h.storybooks.IsCreatureInStorybook(c.Request.Context(), req.DeviceID, req.CreatureID, req.StorybookID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if already {
		c.JSON(http.StatusOK, gin.H{"success": true, "alreadyInBook": true})
		return
	}

	entry, err := h.storybooks.AddStoryToBook(c.Request.Context(), req.DeviceID, req.CreatureID, req.StorybookID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry})
}

func (h *Handler) removeStoryFromBook(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.respondBadRequest(c, "invalid entry id")
		return
	}

	if err := h.storybooks.RemoveStoryFromBook(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) checkMembership(c *gin.Context) {
	deviceID := c.Query("deviceId")
	creatureID := c.Query("creatureId")
	if deviceID == "" || creatureID == "" {
		h.respondBadRequest(c, "deviceId and creatureId query parameters are required")
		return
	}

	var storybookID int64
	if raw := c.Query("storybookId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.respondBadRequest(c, "invalid storybookId")
			return
		}
		storybookID = parsed
	}

	inBook, err := h.storybooks.IsCreatureInStorybook(c.Request.Context(), deviceID, creatureID, storybookID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inStorybook": inBook})
}

// storybookID parses the :id path parameter, answering the request itself
// when the value is malformed.
func (h *Handler) storybookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondBadRequest(c, "invalid storybook id")
		return 0, false
	}
	return id, true
}
