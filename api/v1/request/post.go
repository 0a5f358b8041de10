package request

type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=140"`
}

// CreateCommentRequest is bound from the multipart form so a comment can
// carry image files alongside its content.
type CreateCommentRequest struct {
	Content string `form:"content" binding:"required"`
}
