package v1

import (
	"errors"
	"net/http"

	"chirp/dao"
	"chirp/internal/storage"
	"chirp/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BlobAPI serves stored binaries. Redirect is the target of path-relative
// attachment URLs and bounces to a presigned store URL; Proxy is the target
// of host-qualified profile-image URLs and streams through the app.
type BlobAPI struct {
	atts  *dao.AttachmentDAO
	blobs storage.BlobStore
}

func NewBlobAPI(atts *dao.AttachmentDAO, blobs storage.BlobStore) *BlobAPI {
	return &BlobAPI{atts: atts, blobs: blobs}
}

// Redirect 302s to a time-limited presigned URL for the blob.
func (b *BlobAPI) Redirect(c *gin.Context) {
	att, ok := b.lookup(c)
	if !ok {
		return
	}
	url, err := b.blobs.PresignGet(c.Request.Context(), att.BlobKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Proxy streams the blob body through the app with the stored content type.
func (b *BlobAPI) Proxy(c *gin.Context) {
	att, ok := b.lookup(c)
	if !ok {
		return
	}
	body, contentType, err := b.blobs.Get(c.Request.Context(), att.BlobKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer body.Close()
	if contentType == "" {
		contentType = att.ContentType
	}
	c.DataFromReader(http.StatusOK, att.ByteSize, contentType, body, nil)
}

func (b *BlobAPI) lookup(c *gin.Context) (*model.Attachment, bool) {
	att, err := b.atts.GetByKey(c.Param("key"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "blob not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return att, true
}
