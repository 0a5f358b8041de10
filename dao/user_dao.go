package dao

import (
	"chirp/model"

	"gorm.io/gorm"
)

type UserDAO struct {
	db *gorm.DB
}

// NewUserDAO 创建一个新的 UserDAO 实例
func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser 创建新用户
func (dao *UserDAO) CreateUser(user *model.User) error {
	return dao.db.Create(user).Error
}

// GetByEmail 根据邮箱获取用户
func (dao *UserDAO) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := dao.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID loads a user with both profile attachments for document rendering.
func (dao *UserDAO) GetByID(id uint64) (*model.User, error) {
	var user model.User
	err := dao.db.Preload("Avatar").Preload("Header").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
