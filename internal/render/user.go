package render

import "chirp/model"

// Document is the nested key-value structure handed to the HTTP layer.
type Document map[string]any

// Profile is a named, fixed field subset used when rendering a user either
// standalone or embedded inside another document.
type Profile int

const (
	// FullProfile: every public scalar plus avatar and header URLs.
	FullProfile Profile = iota
	// PostAuthorProfile: the subset embedded under a post document.
	// Deliberately excludes phone and birthdate.
	PostAuthorProfile
	// CommentAuthorProfile: id and name only; the avatar URL is still
	// merged in explicitly.
	CommentAuthorProfile
)

// RenderUser renders one user with the given profile. Attachment URLs that
// cannot be resolved (no avatar uploaded) come back as nil values, matching
// the optional has-one association.
func (r *Renderer) RenderUser(u *model.User, p Profile) Document {
	switch p {
	case PostAuthorProfile:
		return Document{
			"id":          u.ID,
			"name":        u.Name,
			"user_name":   u.UserName,
			"place":       u.Place,
			"description": u.Description,
			"website":     u.Website,
			"email":       u.Email,
			"avatar_url":  r.avatarURL(u),
		}
	case CommentAuthorProfile:
		doc := Document{
			"id":   u.ID,
			"name": u.Name,
		}
		// Avatar resolution is always explicit here, even though the
		// profile itself only names id and name.
		doc["avatar_url"] = r.avatarURL(u)
		return doc
	default:
		return Document{
			"id":               u.ID,
			"name":             u.Name,
			"email":            u.Email,
			"phone":            u.Phone,
			"birthdate":        u.Birthdate,
			"website":          u.Website,
			"user_name":        u.UserName,
			"place":            u.Place,
			"description":      u.Description,
			"created_at":       u.CreatedAt,
			"updated_at":       u.UpdatedAt,
			"avatar_url":       r.avatarURL(u),
			"header_image_url": r.headerURL(u),
		}
	}
}

func (r *Renderer) avatarURL(u *model.User) any {
	if v := r.resolver.Resolve(u.Avatar, ProxiedAbsolute); v != nil {
		return v.URL
	}
	return nil
}

func (r *Renderer) headerURL(u *model.User) any {
	if v := r.resolver.Resolve(u.Header, ProxiedAbsolute); v != nil {
		return v.URL
	}
	return nil
}
