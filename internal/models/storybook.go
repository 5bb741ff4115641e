package models

import "time"

// Storybook is a named, ordered collection of creature entries owned by one
// device. The device id is an opaque client-generated token; there is no
// account behind it.
type Storybook struct {
	ID            int64            `json:"id" db:"id"`
	DeviceID      string           `json:"deviceId" db:"device_id"`
	BookName      string           `json:"bookName" db:"book_name"`
	CoverImageURL *string          `json:"coverImageUrl" db:"cover_image_url"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
	Entries       []StorybookEntry `json:"entries,omitempty" db:"-"`
}

// StorybookEntry is a single (storybook, creature) membership with an
// explicit 1-based page ordinal. Page numbers are contiguous by convention
// only; nothing enforces it atomically.
type StorybookEntry struct {
	ID              int64         `json:"id" db:"id"`
	StorybookID     int64         `json:"storybookId" db:"storybook_id"`
	CreatureShortID string        `json:"creatureShortId" db:"creature_short_id"`
	PageNumber      int           `json:"pageNumber" db:"page_number"`
	AddedAt         time.Time     `json:"addedAt" db:"added_at"`
	Creature        *CreatureData `json:"creature,omitempty" db:"-"`
}
