// Package search provides full-text search functionality using Bleve.
// It enables federated search across shops, products, albums, and posts
// with faceted filtering, fuzzy matching, and price-range queries.
package search

import (
	"github.com/shopfolio/shopfolio-server/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeShop    DocType = "shop"
	DocTypeProduct DocType = "product"
	DocTypeAlbum   DocType = "album"
	DocTypePost    DocType = "post"
)

// SearchDocument is the unified document structure for the Bleve index.
// All searchable entities are indexed as SearchDocuments with type
// discrimination, which keeps cross-entity search a single query.
type SearchDocument struct {
	// Identity
	ID   string  `json:"id"`   // Original entity ID (shop-xxx, product-xxx, etc.)
	Type DocType `json:"type"` // Discriminator for result grouping
	Slug string  `json:"slug,omitempty"`

	// Primary searchable text (different meaning per type)
	// Shop/Product/Album: name, Post: title
	Name string `json:"name"`

	Description string `json:"description,omitempty"`

	// Post-specific fields (empty for other types)
	Summary string `json:"summary,omitempty"`
	Content string `json:"content,omitempty"`

	// Owning shop, for scoped search. Empty for shops themselves and
	// for posts with no shop tag.
	ShopID string `json:"shop_id,omitempty"`

	// Category for exact filtering (products and posts).
	CategoryID string `json:"category_id,omitempty"`

	// Product-specific fields for range queries and sorting
	PriceCents int64 `json:"price_cents,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Slug != "" {
		m["slug"] = d.Slug
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Summary != "" {
		m["summary"] = d.Summary
	}
	if d.Content != "" {
		m["content"] = d.Content
	}
	if d.ShopID != "" {
		m["shop_id"] = d.ShopID
	}
	if d.CategoryID != "" {
		m["category_id"] = d.CategoryID
	}
	if d.PriceCents > 0 {
		m["price_cents"] = d.PriceCents
	}

	return m
}

// ShopToSearchDocument converts a domain Shop to a SearchDocument.
func ShopToSearchDocument(s *domain.Shop) *SearchDocument {
	return &SearchDocument{
		ID:          s.ID,
		Type:        DocTypeShop,
		Slug:        s.Slug,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt.UnixMilli(),
		UpdatedAt:   s.UpdatedAt.UnixMilli(),
	}
}

// ProductToSearchDocument converts a domain Product to a SearchDocument.
func ProductToSearchDocument(p *domain.Product) *SearchDocument {
	return &SearchDocument{
		ID:          p.ID,
		Type:        DocTypeProduct,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		ShopID:      p.ShopID,
		CategoryID:  p.CategoryID,
		PriceCents:  p.PriceCents,
		CreatedAt:   p.CreatedAt.UnixMilli(),
		UpdatedAt:   p.UpdatedAt.UnixMilli(),
	}
}

// AlbumToSearchDocument converts a domain Album to a SearchDocument.
// Callers index only public albums; unlisted and private albums stay
// out of the index entirely.
func AlbumToSearchDocument(a *domain.Album) *SearchDocument {
	return &SearchDocument{
		ID:          a.ID,
		Type:        DocTypeAlbum,
		Slug:        a.Slug,
		Name:        a.Name,
		Description: a.Description,
		ShopID:      a.ShopID,
		CreatedAt:   a.CreatedAt.UnixMilli(),
		UpdatedAt:   a.UpdatedAt.UnixMilli(),
	}
}

// PostToSearchDocument converts a domain Post to a SearchDocument.
func PostToSearchDocument(p *domain.Post) *SearchDocument {
	return &SearchDocument{
		ID:        p.ID,
		Type:      DocTypePost,
		Slug:      p.Slug,
		Name:      p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		ShopID:    p.ShopID,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}
