// Package render assembles the nested JSON documents served for posts and
// users: resolved attachment views, per-profile user subsets and the derived
// presentation fields (elapsed-time phrase, localized date).
package render

import (
	"fmt"
	"net/url"
	"strings"

	"chirp/model"
)

// Mode selects how an attachment URL is built.
type Mode int

const (
	// ProxiedAbsolute produces a host-qualified URL through the app's blob
	// proxy. Used for user avatar and header images.
	ProxiedAbsolute Mode = iota
	// PathRelative produces a path-only URL to the blob redirect endpoint.
	// Used for post and comment images.
	PathRelative
)

// AttachmentView is the wire shape of one resolved attachment.
type AttachmentView struct {
	ID          uint64 `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	ByteSize    int64  `json:"byte_size"`
	URL         string `json:"url"`
}

// URLResolver builds attachment URLs. It is injected into the Resolver so
// URL construction never reaches for ambient global state.
type URLResolver struct {
	// Host qualifies proxied URLs, e.g. "localhost:3000". A scheme prefix
	// is optional; plain host:port defaults to http.
	Host string
}

func (u *URLResolver) base() string {
	if strings.Contains(u.Host, "://") {
		return u.Host
	}
	return "http://" + u.Host
}

// ProxyURL is the absolute, host-qualified form used for profile images.
func (u *URLResolver) ProxyURL(key, filename string) string {
	return fmt.Sprintf("%s/api/v1/blobs/proxy/%s/%s", u.base(), key, url.PathEscape(filename))
}

// BlobPath is the path-relative form used for post and comment images.
func (u *URLResolver) BlobPath(key, filename string) string {
	return fmt.Sprintf("/api/v1/blobs/%s/%s", key, url.PathEscape(filename))
}

// Resolver turns attachment rows into AttachmentViews.
type Resolver struct {
	urls *URLResolver
}

func NewResolver(urls *URLResolver) *Resolver {
	return &Resolver{urls: urls}
}

// Resolve builds the view for one attachment. Absence (nil, zero row, or a
// row without a blob key) is reported as nil, never as an error; callers
// iterating association collections treat nil as a corrupted record.
func (r *Resolver) Resolve(a *model.Attachment, mode Mode) *AttachmentView {
	if a == nil || a.ID == 0 || a.BlobKey == "" {
		return nil
	}
	view := &AttachmentView{
		ID:          a.ID,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		ByteSize:    a.ByteSize,
	}
	switch mode {
	case ProxiedAbsolute:
		view.URL = r.urls.ProxyURL(a.BlobKey, a.Filename)
	default:
		view.URL = r.urls.BlobPath(a.BlobKey, a.Filename)
	}
	return view
}
