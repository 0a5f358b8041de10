package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chirp/internal/storage"
	"chirp/model"
)

// stubPostStore keeps everything in memory and hands out sequential ids.
type stubPostStore struct {
	posts    map[uint64]*model.Post
	comments []*model.Comment
	images   []*model.Attachment
	nextID   uint64
}

func newStubPostStore() *stubPostStore {
	return &stubPostStore{posts: map[uint64]*model.Post{}, nextID: 1}
}

func (s *stubPostStore) CreatePost(post *model.Post) error {
	post.ID = s.nextID
	s.nextID++
	s.posts[post.ID] = post
	return nil
}

func (s *stubPostStore) GetByID(id uint64) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (s *stubPostStore) GetForRender(id uint64) (*model.Post, error) {
	return s.GetByID(id)
}

func (s *stubPostStore) CreateComment(comment *model.Comment) error {
	comment.ID = s.nextID
	s.nextID++
	s.comments = append(s.comments, comment)
	return nil
}

func (s *stubPostStore) AddImage(att *model.Attachment) error {
	s.images = append(s.images, att)
	return nil
}

// stubBlobStore fails the upload at failAt (1-based), 0 meaning never.
type stubBlobStore struct {
	uploads int
	failAt  int
}

func (s *stubBlobStore) CreateAndUpload(_ context.Context, up storage.Upload) (storage.BlobRef, error) {
	s.uploads++
	if s.failAt != 0 && s.uploads == s.failAt {
		return storage.BlobRef{}, errors.New("store unavailable")
	}
	return storage.BlobRef{
		Key:         fmt.Sprintf("key-%d", s.uploads),
		Filename:    up.Filename,
		ContentType: up.ContentType,
		ByteSize:    up.ByteSize,
	}, nil
}

func (s *stubBlobStore) PresignGet(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubBlobStore) Get(context.Context, string) (io.ReadCloser, string, error) {
	return nil, "", errors.New("not implemented")
}

func newTestService(blobs storage.BlobStore) (*PostService, *stubPostStore) {
	store := newStubPostStore()
	return NewPostService(store, blobs, zap.NewNop()), store
}

func upload(name string) storage.Upload {
	return storage.Upload{
		Reader:      strings.NewReader("fake image bytes"),
		Filename:    name,
		ContentType: "image/png",
		ByteSize:    16,
	}
}

func TestCreatePostContentBounds(t *testing.T) {
	svc, _ := newTestService(&stubBlobStore{})

	post, err := svc.CreatePost(1, strings.Repeat("あ", 140))
	require.NoError(t, err, "exactly 140 runes is accepted")
	assert.NotZero(t, post.ID)

	_, err = svc.CreatePost(1, strings.Repeat("あ", 141))
	assert.ErrorIs(t, err, ErrContentTooLong)

	_, err = svc.CreatePost(1, "")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestAttachImagesInOrder(t *testing.T) {
	svc, store := newTestService(&stubBlobStore{})
	post, err := svc.CreatePost(1, "hello")
	require.NoError(t, err)

	refs, err := svc.AttachImages(context.Background(), post.ID,
		[]storage.Upload{upload("a.png"), upload("b.png"), upload("c.png")})
	require.NoError(t, err)

	require.Len(t, refs, 3)
	assert.Equal(t, "a.png", refs[0].Filename)
	assert.Equal(t, "b.png", refs[1].Filename)
	assert.Equal(t, "c.png", refs[2].Filename)

	require.Len(t, store.images, 3)
	for i, att := range store.images {
		assert.Equal(t, "post", att.OwnerType)
		assert.Equal(t, post.ID, att.OwnerID)
		assert.Equal(t, refs[i].Key, att.BlobKey)
	}
}

func TestAttachImagesBestEffortOnFailure(t *testing.T) {
	svc, store := newTestService(&stubBlobStore{failAt: 2})
	post, err := svc.CreatePost(1, "hello")
	require.NoError(t, err)

	refs, err := svc.AttachImages(context.Background(), post.ID,
		[]storage.Upload{upload("a.png"), upload("b.png"), upload("c.png")})

	require.Error(t, err)
	// The first upload stays persisted and attached; the batch stops at the
	// failing item without rollback.
	require.Len(t, refs, 1)
	assert.Equal(t, "a.png", refs[0].Filename)
	assert.Len(t, store.images, 1)
}

func TestAttachImagesUnknownPost(t *testing.T) {
	svc, _ := newTestService(&stubBlobStore{})

	_, err := svc.AttachImages(context.Background(), 99, []storage.Upload{upload("a.png")})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateCommentWithImages(t *testing.T) {
	svc, store := newTestService(&stubBlobStore{})
	post, err := svc.CreatePost(1, "hello")
	require.NoError(t, err)

	comment, err := svc.CreateComment(context.Background(), post.ID, 2, "nice",
		[]storage.Upload{upload("pic.png")})
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, post.ID, comment.PostID)

	require.Len(t, store.images, 1)
	assert.Equal(t, "comment", store.images[0].OwnerType)
	assert.Equal(t, comment.ID, store.images[0].OwnerID)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	svc, _ := newTestService(&stubBlobStore{})

	_, err := svc.CreateComment(context.Background(), 42, 1, "hi", nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
