package models

import "gorm.io/gorm"

// Post is a discussion-board entry.
type Post struct {
	gorm.Model
	UserID  *uint  `gorm:"index"` // nullable: posts survive anonymously
	Title   string `gorm:"size:255;not null"`
	Content string `gorm:"not null"`
	Tag     string `gorm:"size:100;not null;index"`
	Author  string `gorm:"size:255;not null"`
}

// Comment belongs to a post. Replies reference their parent comment through
// ParentID rather than encoding the linkage inside the content string.
type Comment struct {
	gorm.Model
	PostID   uint   `gorm:"not null;index"`
	ParentID *uint  `gorm:"index"`
	Name     string `gorm:"size:255;not null"`
	Content  string `gorm:"not null"`

	Post   Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Parent *Comment `gorm:"foreignKey:ParentID"`
}
