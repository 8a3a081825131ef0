package domain

import (
	"net/url"
	"slices"
	"strings"
	"time"
)

// ShopContact holds a shop's public contact details.
type ShopContact struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Shop represents a user's personal storefront. Every user owns at most
// one shop; the store enforces that with a unique index on OwnerID.
type Shop struct {
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	ImageURLs   []string    `json:"image_urls,omitempty"`
	Contact     ShopContact `json:"contact"`
	ProductIDs  []string    `json:"product_ids"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (s *Shop) Touch() {
	s.UpdatedAt = time.Now()
}

// CanMutate reports whether the given user may modify this shop or the
// products and albums inside it. Owners and admins may; everyone else
// gets a forbidden error at the service layer.
func (s *Shop) CanMutate(u *User) bool {
	return s.OwnerID == u.ID || u.IsAdmin()
}

// SanitizeLinks clears any link field that is not a safe URL.
// Junk values are silently dropped rather than rejected.
func (s *Shop) SanitizeLinks() {
	s.AvatarURL = SanitizeURL(s.AvatarURL)
	s.Contact.Facebook = SanitizeURL(s.Contact.Facebook)

	images := s.ImageURLs[:0]
	for _, raw := range s.ImageURLs {
		if clean := SanitizeURL(raw); clean != "" {
			images = append(images, clean)
		}
	}
	s.ImageURLs = images
}

// SanitizeURL returns the value unchanged when it is an absolute http(s)
// URL or a local /uploads/ path, and the empty string otherwise.
func SanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "/uploads/") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return raw
	}
	return ""
}

// AddProduct adds a product ID to the shop's listing if not already present.
func (s *Shop) AddProduct(productID string) bool {
	if slices.Contains(s.ProductIDs, productID) {
		return false // Already present
	}
	s.ProductIDs = append(s.ProductIDs, productID)
	return true
}

// RemoveProduct removes a product ID from the shop's listing.
func (s *Shop) RemoveProduct(productID string) bool {
	for i, id := range s.ProductIDs {
		if id == productID {
			s.ProductIDs = append(s.ProductIDs[:i], s.ProductIDs[i+1:]...)
			return true
		}
	}
	return false
}

// ContainsProduct checks if a product ID is listed in this shop.
func (s *Shop) ContainsProduct(productID string) bool {
	return slices.Contains(s.ProductIDs, productID)
}
