package domain

import "time"

// Post is a blog entry written by a user, optionally tagged to a shop.
// Content is stored as Markdown; HTML submitted by rich-text editors is
// converted before it reaches the store. Slugs are globally unique.
type Post struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	ShopID      string    `json:"shop_id,omitempty"`
	CategoryIDs []string  `json:"category_ids,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary,omitempty"`
	Content     string    `json:"content"`
	CoverURL    string    `json:"cover_url,omitempty"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (p *Post) Touch() {
	p.UpdatedAt = time.Now()
}

// IsAuthor reports whether the given user wrote this post. Post
// mutations are strictly author-only; even admins go through the
// author's account.
func (p *Post) IsAuthor(u *User) bool {
	return p.AuthorID == u.ID
}
