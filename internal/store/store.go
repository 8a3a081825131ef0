// Package store persists the application's aggregates in an embedded
// badger database. Uniqueness constraints (slugs, emails, one shop per
// owner) are enforced by index writes inside the same transaction as
// the entity write, never by a separate read.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/shopfolio/shopfolio-server/internal/domain"
)

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on the
// search implementation.
type SearchIndexer interface {
	IndexShop(ctx context.Context, shop *domain.Shop) error
	DeleteShop(ctx context.Context, shopID string) error
	IndexProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	IndexAlbum(ctx context.Context, a *domain.Album) error
	DeleteAlbum(ctx context.Context, albumID string) error
	IndexPost(ctx context.Context, p *domain.Post) error
	DeletePost(ctx context.Context, postID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexShop is a no-op.
func (NoopSearchIndexer) IndexShop(context.Context, *domain.Shop) error { return nil }

// DeleteShop is a no-op.
func (NoopSearchIndexer) DeleteShop(context.Context, string) error { return nil }

// IndexProduct is a no-op.
func (NoopSearchIndexer) IndexProduct(context.Context, *domain.Product) error { return nil }

// DeleteProduct is a no-op.
func (NoopSearchIndexer) DeleteProduct(context.Context, string) error { return nil }

// IndexAlbum is a no-op.
func (NoopSearchIndexer) IndexAlbum(context.Context, *domain.Album) error { return nil }

// DeleteAlbum is a no-op.
func (NoopSearchIndexer) DeleteAlbum(context.Context, string) error { return nil }

// IndexPost is a no-op.
func (NoopSearchIndexer) IndexPost(context.Context, *domain.Post) error { return nil }

// DeletePost is a no-op.
func (NoopSearchIndexer) DeletePost(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Search indexer for keeping search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular dependencies.
	searchIndexer SearchIndexer

	// Generic entities
	Users      *Entity[domain.User]
	Sessions   *Entity[domain.Session]
	Shops      *Entity[domain.Shop]
	Products   *Entity[domain.Product]
	Albums     *Entity[domain.Album]
	Posts      *Entity[domain.Post]
	Categories *Entity[domain.Category]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	// Initialize generic entities
	store.initUsers()
	store.initSessions()
	store.initShops()
	store.initProducts()
	store.initAlbums()
	store.initPosts()
	store.initCategories()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before the search service can be created).
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// initUsers initializes the Users entity on the store.
// Username and email are both unique, matched case-insensitively.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform("username",
			func(u *domain.User) []string {
				return []string{normalizeHandle(u.Username)}
			},
			normalizeHandle,
		).
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeHandle(u.Email)}
			},
			normalizeHandle,
		)
}

// initSessions initializes the Sessions entity on the store.
// The refresh token hash is unique; the user lookup supports listing
// and revoking all of a user's sessions.
func (s *Store) initSessions() {
	s.Sessions = NewEntity[domain.Session](s, "session:").
		WithIndex("token", func(sess *domain.Session) []string {
			return []string{sess.RefreshTokenHash}
		}).
		WithLookup("user", func(sess *domain.Session) []string {
			return []string{sess.UserID}
		})
}

// initShops initializes the Shops entity on the store.
// The owner index is what makes "one shop per user" hold under
// concurrent creates.
func (s *Store) initShops() {
	s.Shops = NewEntity[domain.Shop](s, "shop:").
		WithIndex("owner", func(sh *domain.Shop) []string {
			return []string{sh.OwnerID}
		}).
		WithIndex("slug", func(sh *domain.Shop) []string {
			return []string{sh.Slug}
		})
}

// initProducts initializes the Products entity on the store.
// Slugs are unique per shop, so the index key is shopID/slug.
func (s *Store) initProducts() {
	s.Products = NewEntity[domain.Product](s, "product:").
		WithIndex("slug", func(p *domain.Product) []string {
			return []string{scopedSlug(p.ShopID, p.Slug)}
		}).
		WithLookup("shop", func(p *domain.Product) []string {
			return []string{p.ShopID}
		}).
		WithLookup("category", func(p *domain.Product) []string {
			if p.CategoryID == "" {
				return nil
			}
			return []string{p.CategoryID}
		})
}

// initAlbums initializes the Albums entity on the store.
func (s *Store) initAlbums() {
	s.Albums = NewEntity[domain.Album](s, "album:").
		WithIndex("slug", func(a *domain.Album) []string {
			return []string{scopedSlug(a.ShopID, a.Slug)}
		}).
		WithLookup("shop", func(a *domain.Album) []string {
			return []string{a.ShopID}
		})
}

// initPosts initializes the Posts entity on the store.
// Post slugs are globally unique.
func (s *Store) initPosts() {
	s.Posts = NewEntity[domain.Post](s, "post:").
		WithIndex("slug", func(p *domain.Post) []string {
			return []string{p.Slug}
		}).
		WithLookup("author", func(p *domain.Post) []string {
			return []string{p.AuthorID}
		}).
		WithLookup("shop", func(p *domain.Post) []string {
			if p.ShopID == "" {
				return nil
			}
			return []string{p.ShopID}
		}).
		WithLookup("category", func(p *domain.Post) []string {
			return p.CategoryIDs
		})
}

// initCategories initializes the Categories entity on the store.
// Product and post categories are independent namespaces, so the slug
// index is scoped by kind.
func (s *Store) initCategories() {
	s.Categories = NewEntity[domain.Category](s, "category:").
		WithIndex("slug", func(c *domain.Category) []string {
			return []string{string(c.Kind) + "/" + c.Slug}
		}).
		WithLookup("kind", func(c *domain.Category) []string {
			return []string{string(c.Kind)}
		})
}

// scopedSlug builds the composite index key for shop-scoped slugs.
func scopedSlug(shopID, slug string) string {
	return shopID + "/" + slug
}

// normalizeHandle normalizes a username or email for consistent lookups.
// Lowercases and trims whitespace.
func normalizeHandle(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
