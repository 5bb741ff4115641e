package handler

import "creature-server/internal/models"

// saveCreatureRequest carries the traits the user picked together with the
// generation output they accepted.
type saveCreatureRequest struct {
	CreatureDetails models.CreatureDetails `json:"creatureDetails" binding:"required"`
	StoryResult     models.StoryResult     `json:"storyResult" binding:"required"`
}

type exportPDFRequest struct {
	CreatureDetails models.CreatureDetails `json:"creatureDetails" binding:"required"`
	StoryResult     models.StoryResult     `json:"storyResult" binding:"required"`
}

type createStorybookRequest struct {
	DeviceID string `json:"deviceId" binding:"required"`
	BookName string `json:"bookName"`
}

type updateNameRequest struct {
	BookName string `json:"bookName" binding:"required"`
}

type updateCoverRequest struct {
	CoverImageURL string `json:"coverImageUrl" binding:"required"`
}

type reorderRequest struct {
	EntryIDs []int64 `json:"entryIds" binding:"required"`
}

type addEntryRequest struct {
	DeviceID    string `json:"deviceId" binding:"required"`
	CreatureID  string `json:"creatureId" binding:"required"`
	StorybookID int64  `json:"storybookId"`
}
