package models

import "time"

// Review is written by one user about another. Usernames are denormalized at
// creation so reviews stay readable even if a profile is renamed.
type Review struct {
	ID                uint   `gorm:"primaryKey"`
	ReviewerID        uint   `gorm:"not null;index"`
	ReviewerUsername  string `gorm:"size:255"`
	RecipientID       uint   `gorm:"not null;index"`
	RecipientUsername string `gorm:"size:255"`
	ReviewTitle       string `gorm:"size:255;not null"`
	Content           string `gorm:"not null"`
	Rating            int    `gorm:"not null"`
	DatePosted        time.Time  `gorm:"autoCreateTime"`
	LastUpdated       *time.Time // set only when the review is edited
}
