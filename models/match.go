// models/match.go
package models

import (
	"fmt"
	"time"
)

// MaxMatchDuration is the safety valve against abandoned matches: an auto-end
// match older than this is finished regardless of life totals.
const MaxMatchDuration = 7 * 24 * time.Hour

// Match is one play session under a Game. It owns its players exclusively and
// moves through exactly two states: active (IsFinished=false) and finished.
// Finished is terminal.
type Match struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	GameID uint `json:"game_id" gorm:"index;not null"`

	Players []Player `json:"players" gorm:"foreignKey:MatchID"`

	// PlayerCount is a snapshot of the roster size taken at creation.
	PlayerCount int `json:"player_count" gorm:"not null"`

	StartingTime time.Time     `json:"starting_time"`
	EndingTime   *time.Time    `json:"ending_time,omitempty"`
	Duration     time.Duration `json:"duration" gorm:"default:0"`

	// AutoEnd is copied from Game.AutoEndMatch at creation time; later game
	// edits do not change it.
	AutoEnd    bool `json:"auto_end" gorm:"default:false"`
	IsFinished bool `json:"is_finished" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Player is a seat within one match, not a person account. Its policy fields
// (StartingLife, FixedMaxLife, MaxLife) are snapshots taken when the match was
// created.
type Player struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	MatchID uint `json:"match_id" gorm:"index;not null"`

	StartingLife int  `json:"starting_life" gorm:"not null"`
	CurrentLife  int  `json:"current_life" gorm:"not null"`
	MaxLife      *int `json:"max_life,omitempty"`
	FixedMaxLife bool `json:"fixed_max_life" gorm:"default:false"`

	// IsDeleted is flipped by the match finalizer, never individually.
	IsDeleted bool `json:"is_deleted" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LifeBound resolves the FixedMaxLife/MaxLife pair into a single answer:
// the cap and whether one applies. Every rule that cares about the bound goes
// through here so the nullable column is checked in exactly one place.
func (p *Player) LifeBound() (int, bool) {
	if !p.FixedMaxLife || p.MaxLife == nil {
		return 0, false
	}
	return *p.MaxLife, true
}

// Defeated reports whether this seat is out of the match. Life may overshoot
// past zero, so anything at or below zero counts.
func (p *Player) Defeated() bool {
	return p.CurrentLife <= 0
}

// Heal raises CurrentLife by amount, clamping at the player's cap when one
// applies. Returns how much was actually applied and whether the cap cut the
// amount short.
func (p *Player) Heal(amount int) (applied int, capped bool) {
	limit, bounded := p.LifeBound()
	if !bounded {
		p.CurrentLife += amount
		return amount, false
	}
	applied = amount
	if p.CurrentLife+amount > limit {
		applied = limit - p.CurrentLife
		capped = true
	}
	p.CurrentLife += applied
	return applied, capped
}

// Damage lowers CurrentLife unconditionally; negative totals are the defeat
// signal, not an error.
func (p *Player) Damage(amount int) {
	p.CurrentLife -= amount
}

// ResetLife restores this player's own recorded starting life, not the game's
// currently configured one.
func (p *Player) ResetLife() {
	p.CurrentLife = p.StartingLife
}

// DefeatedCount counts seats at or below zero life.
func (m *Match) DefeatedCount() int {
	count := 0
	for i := range m.Players {
		if m.Players[i].Defeated() {
			count++
		}
	}
	return count
}

// Elapsed is the stored duration for a finished match, wall-clock time since
// start otherwise.
func (m *Match) Elapsed(now time.Time) time.Duration {
	if m.IsFinished {
		return m.Duration
	}
	return now.Sub(m.StartingTime)
}

// ShouldEnd evaluates the termination predicate: at most one seat still
// standing, or the match has been running past MaxMatchDuration. It does not
// consult AutoEnd; callers decide whether a true result finalizes or is only
// reported.
func (m *Match) ShouldEnd(now time.Time) bool {
	if m.PlayerCount-m.DefeatedCount() <= 1 {
		return true
	}
	return m.Elapsed(now) >= MaxMatchDuration
}

// Finish is the idempotent finalizer. On the first call it stamps the ending
// time and duration, flips IsFinished and soft-deletes every player; it
// returns false without touching anything when the match is already finished.
func (m *Match) Finish(now time.Time) bool {
	if m.IsFinished {
		return false
	}
	ending := now
	m.EndingTime = &ending
	m.Duration = now.Sub(m.StartingTime)
	m.IsFinished = true
	for i := range m.Players {
		m.Players[i].IsDeleted = true
	}
	return true
}

// FormatElapsed renders a duration as days:hours:minutes:seconds, the format
// match status replies use.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d:%02d", days, hours, minutes, seconds)
}
