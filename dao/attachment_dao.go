package dao

import (
	"chirp/model"

	"gorm.io/gorm"
)

type AttachmentDAO struct {
	db *gorm.DB
}

func NewAttachmentDAO(db *gorm.DB) *AttachmentDAO {
	return &AttachmentDAO{db: db}
}

// Create 写入附件元数据
func (dao *AttachmentDAO) Create(att *model.Attachment) error {
	return dao.db.Create(att).Error
}

// GetByKey looks up an attachment by its blob key, used by the blob
// redirect and proxy endpoints.
func (dao *AttachmentDAO) GetByKey(key string) (*model.Attachment, error) {
	var att model.Attachment
	if err := dao.db.Where("blob_key = ?", key).First(&att).Error; err != nil {
		return nil, err
	}
	return &att, nil
}
