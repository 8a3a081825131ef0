package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

var (
	// ErrProductNotFound is returned when a product cannot be found by ID or slug.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductSlugExists is returned when the slug is already taken within the shop.
	ErrProductSlugExists = errors.New("product slug already in use in this shop")
)

// CreateProduct creates a new product. Slug uniqueness is scoped to the
// product's shop.
func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	err := s.Products.Create(ctx, p.ID, p)
	if err == nil {
		s.indexProduct(ctx, p)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrProductSlugExists
	}
	return err
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.Products.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// GetProductBySlug retrieves a product by its shop-scoped slug.
func (s *Store) GetProductBySlug(ctx context.Context, shopID, slug string) (*domain.Product, error) {
	p, err := s.Products.GetByIndex(ctx, "slug", scopedSlug(shopID, slug))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// UpdateProduct updates an existing product.
func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	p.Touch()
	err := s.Products.Update(ctx, p.ID, p)
	if err == nil {
		s.indexProduct(ctx, p)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrProductSlugExists
	}
	if errors.Is(err, ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// DeleteProduct removes a product document. Album and shop membership
// cleanup is orchestrated by the product service.
func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.Products.Delete(ctx, productID); err != nil {
		return err
	}
	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeleteProduct(ctx, productID); err != nil {
			s.logger.Warn("failed to remove product from search index", "product_id", productID, "error", err)
		}
	}
	return nil
}

// ListProducts returns all products.
func (s *Store) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	for p, err := range s.Products.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

// ListShopProducts returns all products belonging to a shop.
func (s *Store) ListShopProducts(ctx context.Context, shopID string) ([]*domain.Product, error) {
	var products []*domain.Product
	for p, err := range s.Products.ListByLookup(ctx, "shop", shopID) {
		if err != nil {
			return nil, fmt.Errorf("list shop products: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *Store) indexProduct(ctx context.Context, p *domain.Product) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.IndexProduct(ctx, p); err != nil {
		s.logger.Warn("failed to index product", "product_id", p.ID, "error", err)
	}
}
