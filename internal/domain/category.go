package domain

import "time"

// CategoryKind separates product categories from post categories.
// The two namespaces are independent; each has its own slug uniqueness.
type CategoryKind string

const (
	// CategoryKindProduct categorizes shop products.
	CategoryKindProduct CategoryKind = "product"
	// CategoryKindPost categorizes blog posts.
	CategoryKindPost CategoryKind = "post"
)

// Category is an admin-curated label for products or posts.
type Category struct {
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	ID        string       `json:"id"`
	Kind      CategoryKind `json:"kind"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (c *Category) Touch() {
	c.UpdatedAt = time.Now()
}
