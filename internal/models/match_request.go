package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRequestStatus defines the lifecycle state of a skill-swap request.
type MatchRequestStatus string

const (
	// RequestPending means the request has been sent but not yet answered.
	RequestPending MatchRequestStatus = "pending"

	// RequestAccepted means the recipient accepted the swap. Terminal.
	RequestAccepted MatchRequestStatus = "accepted"

	// RequestDeclined means the recipient rejected the swap. Terminal.
	RequestDeclined MatchRequestStatus = "declined"

	// RequestWithdrawn means the sender cancelled the swap. Terminal.
	RequestWithdrawn MatchRequestStatus = "withdrawn"
)

// MatchRequest is one directional skill-swap proposal from a sender to a
// recipient. Participant names and skills are denormalized at creation time so
// the ledger keeps a snapshot even if profiles change later.
type MatchRequest struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	SenderID         uint   `gorm:"not null;index"`
	RecipientID      uint   `gorm:"not null;index"`
	SenderName       string `gorm:"size:255"`
	RecipientName    string `gorm:"size:255"`
	SenderSkill      string `gorm:"size:255"`
	RequestedSkill   string `gorm:"size:255"`
	TimeAvailability string `gorm:"size:255"`
	Status           MatchRequestStatus `gorm:"type:varchar(20);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Sender    User `gorm:"foreignKey:SenderID"`
	Recipient User `gorm:"foreignKey:RecipientID"`
}

// BeforeCreate assigns a fresh UUID when the caller did not provide one.
func (r *MatchRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
