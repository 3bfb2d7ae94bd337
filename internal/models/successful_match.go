package models

import "time"

// MatchStatus defines the state of a successful match.
type MatchStatus string

const (
	// MatchActive means the swap is ongoing and progress may be recorded.
	MatchActive MatchStatus = "active"

	// MatchCompleted means the participants finished their sessions.
	MatchCompleted MatchStatus = "completed"
)

// SuccessfulMatch is the derived record created when a request is accepted.
// It shares its primary key with the originating request but lives on
// independently of it. At most one row exists per (name, skill) pair.
type SuccessfulMatch struct {
	ID                string      `gorm:"type:uuid;primaryKey"`
	Name              string      `gorm:"size:255;index"`
	Skill             string      `gorm:"size:255;index"`
	Location          string      `gorm:"size:255"`
	TimeAvailability  string      `gorm:"size:255"`
	SessionsCompleted int         `gorm:"not null"`
	Status            MatchStatus `gorm:"type:varchar(20);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
