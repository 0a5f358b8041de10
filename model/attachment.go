package model

import "time"

// Attachment 附件元数据
// The binary itself lives in the blob store under BlobKey; this row only
// records metadata and the owning entity. OwnerType takes one of
// user_avatar / user_header / post / comment via the polymorphic tags on
// the owning models.
type Attachment struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	OwnerType   string    `gorm:"not null;size:20;index:idx_owner" json:"-"`
	OwnerID     uint64    `gorm:"not null;index:idx_owner" json:"-"`
	BlobKey     string    `gorm:"unique;not null;size:64" json:"-"`
	Filename    string    `gorm:"not null;size:255" json:"filename"`
	ContentType string    `gorm:"not null;size:100" json:"content_type"`
	ByteSize    int64     `gorm:"not null" json:"byte_size"`
	CreatedAt   time.Time `json:"created_at"`
}
