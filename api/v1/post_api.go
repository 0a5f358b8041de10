package v1

import (
	"errors"
	"net/http"
	"strconv"

	"chirp/api/v1/request"
	"chirp/internal/metrics"
	"chirp/internal/render"
	"chirp/internal/storage"
	"chirp/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostAPI exposes post creation, comment creation, image ingestion and the
// nested post document endpoint.
type PostAPI struct {
	service  *service.PostService
	renderer *render.Renderer
}

func NewPostAPI(s *service.PostService, r *render.Renderer) *PostAPI {
	return &PostAPI{service: s, renderer: r}
}

func currentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return uint64(id), ok
}

// Create handles new post creation for the authenticated user.
func (p *PostAPI) Create(c *gin.Context) {
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
		return
	}
	post, err := p.service.CreatePost(userID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrContentTooLong) || errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         post.ID,
		"content":    post.Content,
		"user_id":    post.UserID,
		"created_at": post.CreatedAt,
	})
}

// Get serves the nested post document: images, author subset, humanized
// created_at, localized post_create, comments (newest first) and count.
func (p *PostAPI) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	post, err := p.service.GetForRender(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		metrics.IncPostRender("load_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	doc, err := p.renderer.RenderPost(post)
	if err != nil {
		metrics.IncPostRender("render_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.IncPostRender("success")
	c.JSON(http.StatusOK, doc)
}

// UploadImages ingests a multipart batch of images for a post. Ingestion is
// best effort: on a mid-batch failure the already persisted blobs stay
// attached and the response reports how many made it.
func (p *PostAPI) UploadImages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	uploads, err := formUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images provided"})
		return
	}

	refs, err := p.service.AttachImages(c.Request.Context(), id, uploads)
	for range refs {
		metrics.IncBlobIngested("success")
	}
	if err != nil {
		metrics.IncBlobIngested("error")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"ingested": len(refs),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blobs": blobList(refs)})
}

// CreateComment creates a comment on a post, with optional image files in
// the same multipart form.
func (p *PostAPI) CreateComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	var req request.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
		return
	}
	uploads, err := formUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := p.service.CreateComment(c.Request.Context(), id, userID, req.Content, uploads)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         comment.ID,
		"post_id":    comment.PostID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	})
}

// formUploads converts the "images" part of a multipart form into storage
// uploads. Files are closed by gin when the request finishes.
func formUploads(c *gin.Context) ([]storage.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	files := form.File["images"]
	uploads := make([]storage.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, storage.Upload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			ByteSize:    fh.Size,
		})
	}
	return uploads, nil
}

func blobList(refs []storage.BlobRef) []gin.H {
	out := make([]gin.H, 0, len(refs))
	for _, ref := range refs {
		out = append(out, gin.H{
			"key":          ref.Key,
			"filename":     ref.Filename,
			"content_type": ref.ContentType,
			"byte_size":    ref.ByteSize,
		})
	}
	return out
}
