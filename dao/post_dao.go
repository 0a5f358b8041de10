package dao

import (
	"chirp/model"

	"gorm.io/gorm"
)

type PostDAO struct {
	db *gorm.DB
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{db: db}
}

// CreatePost 创建新帖子
func (dao *PostDAO) CreatePost(post *model.Post) error {
	return dao.db.Create(post).Error
}

// GetByID loads the bare post row, without associations.
func (dao *PostDAO) GetByID(id uint64) (*model.Post, error) {
	var post model.Post
	if err := dao.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetForRender loads everything the document builder needs in one pass:
// images in insertion order, the owner with avatar, and comments newest
// first with their authors (avatar included) and images preloaded.
func (dao *PostDAO) GetForRender(id uint64) (*model.Post, error) {
	var post model.Post
	err := dao.db.
		Preload("Images").
		Preload("User").
		Preload("User.Avatar").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		Preload("Comments.User.Avatar").
		Preload("Comments.Images").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateComment 创建评论
func (dao *PostDAO) CreateComment(comment *model.Comment) error {
	return dao.db.Create(comment).Error
}

// AddImage associates an uploaded blob with a post or comment by writing
// the attachment row.
func (dao *PostDAO) AddImage(att *model.Attachment) error {
	return dao.db.Create(att).Error
}
