package dto

// ── blog ──

// CreatePostRequest a new post. Published posts get a publication time.
type CreatePostRequest struct {
	Title     string `json:"title"     binding:"required,max=200"`
	Summary   string `json:"summary"   binding:"omitempty,max=500"`
	Body      string `json:"body"      binding:"required"`
	Published bool   `json:"published"`
}

// UpdatePostRequest partial update.
type UpdatePostRequest struct {
	Title     *string `json:"title"     binding:"omitempty,min=1,max=200"`
	Summary   *string `json:"summary"   binding:"omitempty,max=500"`
	Body      *string `json:"body"      binding:"omitempty,min=1"`
	Published *bool   `json:"published"`
}

// PostResponse a blog post.
type PostResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Body        string  `json:"body"`
	Author      string  `json:"author"`
	Published   bool    `json:"published"`
	PublishedAt *string `json:"published_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
