// models/game.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// DefaultStartingLife is used when an admin creates a game without an
	// explicit starting life (20 = standard Magic duel).
	DefaultStartingLife = 20

	// MinPlayerCount is the smallest roster a match can start with.
	MinPlayerCount = 2
)

// Game is the admin-owned policy template matches are created under.
// Matches copy its policy fields at creation time, so editing a Game never
// changes the behavior of matches that already exist.
type Game struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;uniqueIndex"`
	Slug string `json:"slug" gorm:"uniqueIndex"`

	StartingLife int  `json:"starting_life" gorm:"not null;check:starting_life > 0"`
	FixedMaxLife bool `json:"fixed_max_life" gorm:"default:false"`
	AutoEndMatch bool `json:"auto_end_match" gorm:"default:false"`

	Matches []Match `json:"matches,omitempty" gorm:"foreignKey:GameID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
