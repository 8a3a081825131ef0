package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

var (
	// ErrShopNotFound is returned when a shop cannot be found by ID, slug, or owner.
	ErrShopNotFound = errors.New("shop not found")
	// ErrShopSlugExists is returned when the shop slug is already taken.
	ErrShopSlugExists = errors.New("shop slug already in use")
	// ErrOwnerHasShop is returned when the user already owns a shop.
	ErrOwnerHasShop = errors.New("user already owns a shop")
)

// CreateShop creates a new shop. The owner and slug indexes make both
// "one shop per user" and slug uniqueness hold under concurrent creates.
func (s *Store) CreateShop(ctx context.Context, shop *domain.Shop) error {
	err := s.Shops.Create(ctx, shop.ID, shop)
	if err == nil {
		s.indexShop(ctx, shop)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) {
		switch conflict.Index {
		case "owner":
			return ErrOwnerHasShop
		case "slug":
			return ErrShopSlugExists
		}
	}
	return err
}

// GetShop retrieves a shop by ID.
func (s *Store) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	shop, err := s.Shops.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrShopNotFound
	}
	return shop, err
}

// GetShopBySlug retrieves a shop by slug.
func (s *Store) GetShopBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	shop, err := s.Shops.GetByIndex(ctx, "slug", slug)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrShopNotFound
	}
	return shop, err
}

// GetShopByOwner retrieves the shop owned by the given user, if any.
func (s *Store) GetShopByOwner(ctx context.Context, ownerID string) (*domain.Shop, error) {
	shop, err := s.Shops.GetByIndex(ctx, "owner", ownerID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrShopNotFound
	}
	return shop, err
}

// UpdateShop updates an existing shop.
func (s *Store) UpdateShop(ctx context.Context, shop *domain.Shop) error {
	shop.Touch()
	err := s.Shops.Update(ctx, shop.ID, shop)
	if err == nil {
		s.indexShop(ctx, shop)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrShopSlugExists
	}
	if errors.Is(err, ErrNotFound) {
		return ErrShopNotFound
	}
	return err
}

// DeleteShop removes a shop document. Cascading deletes of products,
// albums, and post tags are orchestrated by the shop service.
func (s *Store) DeleteShop(ctx context.Context, shopID string) error {
	if err := s.Shops.Delete(ctx, shopID); err != nil {
		return err
	}
	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeleteShop(ctx, shopID); err != nil {
			s.logger.Warn("failed to remove shop from search index", "shop_id", shopID, "error", err)
		}
	}
	return nil
}

// ListShops returns all shops.
func (s *Store) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	var shops []*domain.Shop
	for shop, err := range s.Shops.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list shops: %w", err)
		}
		shops = append(shops, shop)
	}
	return shops, nil
}

// indexShop pushes a shop into the search index, logging on failure.
// Search staleness is tolerable; a failed write here must not fail the
// store operation that triggered it.
func (s *Store) indexShop(ctx context.Context, shop *domain.Shop) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.IndexShop(ctx, shop); err != nil {
		s.logger.Warn("failed to index shop", "shop_id", shop.ID, "error", err)
	}
}
