package domain

import "time"

// Product is a single listing inside a shop. Slugs are unique per shop,
// not globally; two shops can both sell a "blue-mug".
type Product struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Details     string    `json:"details,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Quantity    int       `json:"quantity"`
	IsFeatured  bool      `json:"is_featured"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now()
}
