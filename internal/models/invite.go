package models

import "gorm.io/gorm"

// InviteStatus defines the state of a lightweight invite notification.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// Invite is a loose precursor notification between two users. It may spawn a
// MatchRequest for the same pair, but the two records are related only by
// convention (matching sender/receiver ids), not by a foreign key.
type Invite struct {
	gorm.Model
	SenderID   uint         `gorm:"not null;index"`
	ReceiverID uint         `gorm:"not null;index"`
	Status     InviteStatus `gorm:"type:varchar(20);not null"`

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}
