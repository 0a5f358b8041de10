package model

import "time"

// Comment lives and dies with its parent Post (cascade delete).
type Comment struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	PostID    uint64       `gorm:"not null;index" json:"post_id"`
	UserID    uint64       `gorm:"not null;index" json:"user_id"`
	User      User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	Images    []Attachment `gorm:"polymorphic:Owner;polymorphicValue:comment" json:"images,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
