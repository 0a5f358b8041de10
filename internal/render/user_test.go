package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderUserFullProfile(t *testing.T) {
	r := newTestRenderer()
	av := attachment(1, "avkey", "me.png")
	hd := attachment(2, "hdkey", "header.jpg")
	u := alice()
	u.Avatar = &av
	u.Header = &hd

	doc := r.RenderUser(&u, FullProfile)

	assert.Equal(t, "alice", doc["name"])
	assert.Equal(t, "09012345678", doc["phone"])
	assert.Equal(t, "http://localhost:3000/api/v1/blobs/proxy/avkey/me.png", doc["avatar_url"])
	assert.Equal(t, "http://localhost:3000/api/v1/blobs/proxy/hdkey/header.jpg", doc["header_image_url"])
}

func TestRenderUserFullProfileWithoutAttachments(t *testing.T) {
	r := newTestRenderer()
	u := alice()

	doc := r.RenderUser(&u, FullProfile)

	// Absent attachments resolve to nil, not an error.
	assert.Contains(t, doc, "avatar_url")
	assert.Nil(t, doc["avatar_url"])
	assert.Nil(t, doc["header_image_url"])
}

func TestRenderUserPostAuthorProfile(t *testing.T) {
	r := newTestRenderer()
	u := alice()

	doc := r.RenderUser(&u, PostAuthorProfile)

	for _, key := range []string{"id", "name", "user_name", "place", "description", "website", "email", "avatar_url"} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "phone")
	assert.NotContains(t, doc, "birthdate")
	assert.NotContains(t, doc, "header_image_url")
}

func TestRenderUserCommentAuthorProfile(t *testing.T) {
	r := newTestRenderer()
	u := alice()

	doc := r.RenderUser(&u, CommentAuthorProfile)

	assert.Len(t, doc, 3)
	assert.Equal(t, uint64(1), doc["id"])
	assert.Equal(t, "alice", doc["name"])
	assert.Contains(t, doc, "avatar_url")
}
