package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents a member of the skill-swap platform.
type User struct {
	gorm.Model
	Name         string `gorm:"size:255"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// Profile attributes, empty until the user fills in their profile.
	Skill             string `gorm:"size:255;index"`
	Location          string `gorm:"size:255"`
	TimeAvailability  string `gorm:"size:255"` // comma-joined hour slots, e.g. "Mon,Wed"
	YearsOfExperience int
	ProfilePicture    string `gorm:"size:512"`
	PortfolioLink     string `gorm:"size:512"`
}

// AvailabilitySlots splits the comma-joined availability string into trimmed slots.
func (u User) AvailabilitySlots() []string {
	if u.TimeAvailability == "" {
		return nil
	}
	parts := strings.Split(u.TimeAvailability, ",")
	slots := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			slots = append(slots, s)
		}
	}
	return slots
}
