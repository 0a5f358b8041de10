package model

import "time"

// User 用户模型
// Name is globally unique and capped at 15 characters; Phone is a raw
// 10 or 11 digit string. Format rules live in api/v1/request, not here.
type User struct {
	ID           uint64      `gorm:"primarykey" json:"id"`
	Name         string      `gorm:"unique;not null;size:15" json:"name"`
	Email        string      `gorm:"unique;not null;size:255" json:"email"`
	Phone        string      `gorm:"not null;size:11" json:"phone"`
	Birthdate    time.Time   `gorm:"not null" json:"birthdate"`
	Website      string      `gorm:"size:255" json:"website"`
	UserName     string      `gorm:"size:50" json:"user_name"`
	Place        string      `gorm:"size:100" json:"place"`
	Description  string      `gorm:"type:text" json:"description"`
	PasswordHash string      `gorm:"not null;size:255" json:"-"` // 忽略JSON序列化
	Avatar       *Attachment `gorm:"polymorphic:Owner;polymorphicValue:user_avatar" json:"avatar,omitempty"`
	Header       *Attachment `gorm:"polymorphic:Owner;polymorphicValue:user_header" json:"header,omitempty"`
	Posts        []Post      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comments     []Comment   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
