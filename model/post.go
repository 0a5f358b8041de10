package model

import "time"

// Post 帖子模型
// Content is limited to 140 characters at creation time; already persisted
// rows are rendered as-is even if the limit later changes.
type Post struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	UserID    uint64       `gorm:"not null;index" json:"user_id"`
	User      User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string       `gorm:"not null;size:140" json:"content"`
	Images    []Attachment `gorm:"polymorphic:Owner;polymorphicValue:post" json:"images,omitempty"`
	Comments  []Comment    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
