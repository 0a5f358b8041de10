package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"chirp/internal/storage"
	"chirp/model"
)

// MaxContentLength is the post content cap, counted in runes.
const MaxContentLength = 140

var (
	ErrEmptyContent   = errors.New("content is required")
	ErrContentTooLong = fmt.Errorf("content exceeds %d characters", MaxContentLength)
)

// PostStore is the slice of the DAO the post service needs. *dao.PostDAO
// satisfies it; tests provide stubs.
type PostStore interface {
	CreatePost(post *model.Post) error
	GetByID(id uint64) (*model.Post, error)
	GetForRender(id uint64) (*model.Post, error)
	CreateComment(comment *model.Comment) error
	AddImage(att *model.Attachment) error
}

// PostService owns post/comment creation and attachment ingestion.
type PostService struct {
	store  PostStore
	blobs  storage.BlobStore
	logger *zap.Logger
}

func NewPostService(store PostStore, blobs storage.BlobStore, logger *zap.Logger) *PostService {
	return &PostService{store: store, blobs: blobs, logger: logger}
}

func validateContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

// CreatePost validates and persists a new post for the given user.
func (s *PostService) CreatePost(userID uint64, content string) (*model.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	post := &model.Post{UserID: userID, Content: content}
	if err := s.store.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment against an existing post, then ingests
// any attached images the same way post images are ingested.
func (s *PostService) CreateComment(ctx context.Context, postID, userID uint64, content string, uploads []storage.Upload) (*model.Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.store.GetByID(postID); err != nil {
		return nil, err
	}
	comment := &model.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.store.CreateComment(comment); err != nil {
		return nil, err
	}
	if _, err := s.ingest(ctx, "comment", comment.ID, uploads); err != nil {
		return comment, err
	}
	return comment, nil
}

// AttachImages ingests a batch of uploads for a post and returns the created
// blob refs in input order.
//
// Ingestion is best effort: a failing item aborts the batch but everything
// ingested before it stays persisted and attached. Callers get the refs
// created so far together with the error.
func (s *PostService) AttachImages(ctx context.Context, postID uint64, uploads []storage.Upload) ([]storage.BlobRef, error) {
	if _, err := s.store.GetByID(postID); err != nil {
		return nil, err
	}
	return s.ingest(ctx, "post", postID, uploads)
}

func (s *PostService) ingest(ctx context.Context, ownerType string, ownerID uint64, uploads []storage.Upload) ([]storage.BlobRef, error) {
	refs := make([]storage.BlobRef, 0, len(uploads))
	for i, up := range uploads {
		ref, err := s.blobs.CreateAndUpload(ctx, up)
		if err != nil {
			s.logger.Warn("blob upload failed",
				zap.String("owner_type", ownerType),
				zap.Uint64("owner_id", ownerID),
				zap.Int("index", i),
				zap.Error(err))
			return refs, fmt.Errorf("ingest %s: %w", up.Filename, err)
		}
		att := &model.Attachment{
			OwnerType:   ownerType,
			OwnerID:     ownerID,
			BlobKey:     ref.Key,
			Filename:    ref.Filename,
			ContentType: ref.ContentType,
			ByteSize:    ref.ByteSize,
		}
		if err := s.store.AddImage(att); err != nil {
			// Blob already written; the orphan stays in the store.
			return refs, fmt.Errorf("attach %s: %w", up.Filename, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// GetForRender loads a post with all associations the renderer consumes.
func (s *PostService) GetForRender(id uint64) (*model.Post, error) {
	return s.store.GetForRender(id)
}
