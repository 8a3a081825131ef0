package domain

import (
	"slices"
	"time"
)

// AlbumVisibility controls who can discover an album.
type AlbumVisibility string

const (
	// VisibilityPublic albums appear in listings and are viewable by anyone.
	VisibilityPublic AlbumVisibility = "public"
	// VisibilityUnlisted albums are viewable by direct link but never listed.
	VisibilityUnlisted AlbumVisibility = "unlisted"
	// VisibilityPrivate albums are viewable only by the shop owner and admins.
	VisibilityPrivate AlbumVisibility = "private"
)

// Valid reports whether v is one of the known visibility values.
func (v AlbumVisibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityUnlisted || v == VisibilityPrivate
}

// AlbumItem is a product's membership in an album. Positions are dense
// and zero-based: an album with n items always carries positions 0..n-1
// with no gaps or duplicates.
type AlbumItem struct {
	ProductID string `json:"product_id"`
	Position  int    `json:"position"`
	Note      string `json:"note,omitempty"`
}

// Album is an ordered grouping of products within a single shop.
// Every item's product belongs to the same shop as the album.
type Album struct {
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	CreatedBy   string          `json:"created_by"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Theme       string          `json:"theme,omitempty"`
	Description string          `json:"description,omitempty"`
	CoverURL    string          `json:"cover_url,omitempty"`
	Visibility  AlbumVisibility `json:"visibility"`
	Items       []AlbumItem     `json:"items"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (a *Album) Touch() {
	a.UpdatedAt = time.Now()
}

// ContainsProduct checks if a product is already an item of this album.
func (a *Album) ContainsProduct(productID string) bool {
	return slices.ContainsFunc(a.Items, func(it AlbumItem) bool {
		return it.ProductID == productID
	})
}

// ProductIDs returns the album's product IDs in position order.
func (a *Album) ProductIDs() []string {
	ids := make([]string, len(a.Items))
	for i, it := range a.Items {
		ids[i] = it.ProductID
	}
	return ids
}

// AddProducts appends the given products to the end of the album in the
// order given. Products already in the album and duplicates within the
// input are skipped, so the call is idempotent. Returns how many items
// were actually appended.
func (a *Album) AddProducts(productIDs []string) int {
	added := 0
	for _, pid := range productIDs {
		if a.ContainsProduct(pid) {
			continue
		}
		a.Items = append(a.Items, AlbumItem{
			ProductID: pid,
			Position:  len(a.Items),
		})
		added++
	}
	return added
}

// RemoveProduct removes a product from the album and renumbers the
// remaining items so positions stay dense. Returns false when the
// product was not an item.
func (a *Album) RemoveProduct(productID string) bool {
	for i, it := range a.Items {
		if it.ProductID == productID {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			a.renumber()
			return true
		}
	}
	return false
}

// Reorder rearranges items so that the given products come first, in
// the order given. Items not mentioned keep their relative order and
// follow at the tail. Mentioned products that are not items of the
// album are ignored; callers validate membership before reordering.
func (a *Album) Reorder(productIDs []string) {
	byProduct := make(map[string]AlbumItem, len(a.Items))
	for _, it := range a.Items {
		byProduct[it.ProductID] = it
	}

	reordered := make([]AlbumItem, 0, len(a.Items))
	mentioned := make(map[string]bool, len(productIDs))
	for _, pid := range productIDs {
		if mentioned[pid] {
			continue
		}
		mentioned[pid] = true
		if it, ok := byProduct[pid]; ok {
			reordered = append(reordered, it)
		}
	}

	// Unmentioned items keep their relative order at the tail.
	for _, it := range a.Items {
		if !mentioned[it.ProductID] {
			reordered = append(reordered, it)
		}
	}

	a.Items = reordered
	a.renumber()
}

// SetNote updates the note on a product's item. Returns false when the
// product is not an item of the album.
func (a *Album) SetNote(productID, note string) bool {
	for i := range a.Items {
		if a.Items[i].ProductID == productID {
			a.Items[i].Note = note
			return true
		}
	}
	return false
}

// renumber reassigns dense zero-based positions in slice order.
func (a *Album) renumber() {
	for i := range a.Items {
		a.Items[i].Position = i
	}
}
