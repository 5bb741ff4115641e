package models

import "time"

// CreatureDetails holds the traits the user picked in the creator form.
// All fields are plain strings; empty values are defaulted before any
// generation step runs.
type CreatureDetails struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	BodyPart1 string `json:"bodyPart1"`
	BodyPart2 string `json:"bodyPart2"`
	Ability   string `json:"ability"`
	Habitat   string `json:"habitat"`
}

// StoryResult is the assembled output of one generation run. Image URLs are
// nil when the image provider was unavailable or failed; they are rewritten
// once when the images are re-hosted into durable storage.
type StoryResult struct {
	Story            string  `json:"story"`
	ImagePrompt      string  `json:"imagePrompt"`
	ImageURL         *string `json:"imageUrl"`
	SceneImagePrompt string  `json:"sceneImagePrompt"`
	SceneImageURL    *string `json:"sceneImageUrl"`
}

// CreatureData is the persisted payload of a creature record, stored as a
// single JSONB column.
type CreatureData struct {
	CreatureDetails CreatureDetails `json:"creatureDetails"`
	StoryResult     StoryResult     `json:"storyResult"`
}

// Creature is a persisted generation result keyed by a short shareable id.
type Creature struct {
	ShortID   string       `json:"shortId" db:"short_id"`
	Data      CreatureData `json:"creatureData" db:"creature_data"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time    `json:"expiresAt" db:"expires_at"`
}

// SuggestionResult is the vocabulary pair shown in the creator form selects.
type SuggestionResult struct {
	BodyParts []string `json:"bodyParts"`
	Habitats  []string `json:"habitats"`
}
