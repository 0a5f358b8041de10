package render

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"chirp/internal/locale"
	"chirp/model"
)

var (
	// ErrMissingUser means the author association was not loaded or the row
	// is gone. Rendering is all-or-nothing; no partial document is returned.
	ErrMissingUser = errors.New("render: author not loaded")
	// ErrBadAttachment means an attachment from an association collection
	// could not be resolved.
	ErrBadAttachment = errors.New("render: unresolvable attachment")
)

// Renderer builds post and user documents. The URL resolver and locale are
// injected at construction; now is swappable for tests.
type Renderer struct {
	resolver *Resolver
	locale   *locale.Locale
	now      func() time.Time
}

func NewRenderer(urls *URLResolver, loc *locale.Locale) *Renderer {
	return &Renderer{
		resolver: NewResolver(urls),
		locale:   loc,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock, used by tests to pin elapsed phrases.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// RenderPost builds the nested post document. The post must come with its
// associations loaded (owner, images, comments with their authors and
// images); see dao.PostDAO.GetForRender.
//
// The document starts from the post's own scalar fields and then overlays
// the computed keys in a fixed order: images, user, created_at, post_create,
// comments, comments_count. Computed keys win over base keys, so the final
// created_at is the humanized phrase while post_create carries the absolute
// localized timestamp.
func (r *Renderer) RenderPost(p *model.Post) (Document, error) {
	if p.User.ID == 0 {
		return nil, fmt.Errorf("%w: post %d", ErrMissingUser, p.ID)
	}

	images, err := r.resolveAll(p.Images, "post", p.ID)
	if err != nil {
		return nil, err
	}

	comments, err := r.renderComments(p.Comments)
	if err != nil {
		return nil, err
	}

	doc := Document{
		"id":         p.ID,
		"user_id":    p.UserID,
		"content":    p.Content,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
	doc["images"] = images
	doc["user"] = r.RenderUser(&p.User, PostAuthorProfile)
	doc["created_at"] = r.locale.HumanizeElapsed(p.CreatedAt, r.now())
	doc["post_create"] = r.locale.FormatLocalized(p.CreatedAt, "post_create")
	doc["comments"] = comments
	doc["comments_count"] = len(p.Comments)
	return doc, nil
}

// resolveAll maps an attachment collection through the resolver in
// path-relative mode, preserving insertion order.
func (r *Renderer) resolveAll(atts []model.Attachment, owner string, ownerID uint64) ([]*AttachmentView, error) {
	views := make([]*AttachmentView, 0, len(atts))
	for i := range atts {
		v := r.resolver.Resolve(&atts[i], PathRelative)
		if v == nil {
			return nil, fmt.Errorf("%w: %s %d attachment %d", ErrBadAttachment, owner, ownerID, atts[i].ID)
		}
		views = append(views, v)
	}
	return views, nil
}

// renderComments orders comments newest first (stable on equal timestamps)
// and renders each with its raw timestamp, resolved images and author view.
func (r *Renderer) renderComments(comments []model.Comment) ([]Document, error) {
	ordered := make([]model.Comment, len(comments))
	copy(ordered, comments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	docs := make([]Document, 0, len(ordered))
	for i := range ordered {
		c := &ordered[i]
		if c.User.ID == 0 {
			return nil, fmt.Errorf("%w: comment %d", ErrMissingUser, c.ID)
		}
		images, err := r.resolveAll(c.Images, "comment", c.ID)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{
			"id":         c.ID,
			"content":    c.Content,
			"created_at": c.CreatedAt,
			"images":     images,
			"user":       r.RenderUser(&c.User, CommentAuthorProfile),
		})
	}
	return docs, nil
}
