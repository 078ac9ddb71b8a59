package domain

import (
	"time"
)

// Instrument represents persistent metadata for a tradable instrument.
// The feed only speaks numeric tokens; this row gives them a name.
type Instrument struct {
	Token     uint32    `gorm:"primaryKey" json:"token"`
	Symbol    string    `gorm:"index" json:"symbol"`
	Name      string    `json:"name"`
	Exchange  string    `json:"exchange"`
	IsWatched bool      `json:"is_watched" gorm:"index"` // Included in the live subscription
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
