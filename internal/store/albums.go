package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

var (
	// ErrAlbumNotFound is returned when an album cannot be found by ID or slug.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrAlbumSlugExists is returned when the slug is already taken within the shop.
	ErrAlbumSlugExists = errors.New("album slug already in use in this shop")
)

// CreateAlbum creates a new album. Slug uniqueness is scoped to the
// album's shop.
func (s *Store) CreateAlbum(ctx context.Context, a *domain.Album) error {
	err := s.Albums.Create(ctx, a.ID, a)
	if err == nil {
		s.indexAlbum(ctx, a)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrAlbumSlugExists
	}
	return err
}

// GetAlbum retrieves an album by ID.
func (s *Store) GetAlbum(ctx context.Context, id string) (*domain.Album, error) {
	a, err := s.Albums.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAlbumNotFound
	}
	return a, err
}

// GetAlbumBySlug retrieves an album by its shop-scoped slug.
func (s *Store) GetAlbumBySlug(ctx context.Context, shopID, slug string) (*domain.Album, error) {
	a, err := s.Albums.GetByIndex(ctx, "slug", scopedSlug(shopID, slug))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAlbumNotFound
	}
	return a, err
}

// UpdateAlbum updates an existing album.
func (s *Store) UpdateAlbum(ctx context.Context, a *domain.Album) error {
	a.Touch()
	err := s.Albums.Update(ctx, a.ID, a)
	if err == nil {
		s.indexAlbum(ctx, a)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrAlbumSlugExists
	}
	if errors.Is(err, ErrNotFound) {
		return ErrAlbumNotFound
	}
	return err
}

// DeleteAlbum removes an album. Idempotent.
func (s *Store) DeleteAlbum(ctx context.Context, albumID string) error {
	if err := s.Albums.Delete(ctx, albumID); err != nil {
		return err
	}
	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeleteAlbum(ctx, albumID); err != nil {
			s.logger.Warn("failed to remove album from search index", "album_id", albumID, "error", err)
		}
	}
	return nil
}

// ListAlbums returns all albums.
func (s *Store) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	var albums []*domain.Album
	for a, err := range s.Albums.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list albums: %w", err)
		}
		albums = append(albums, a)
	}
	return albums, nil
}

// ListShopAlbums returns all albums belonging to a shop.
func (s *Store) ListShopAlbums(ctx context.Context, shopID string) ([]*domain.Album, error) {
	var albums []*domain.Album
	for a, err := range s.Albums.ListByLookup(ctx, "shop", shopID) {
		if err != nil {
			return nil, fmt.Errorf("list shop albums: %w", err)
		}
		albums = append(albums, a)
	}
	return albums, nil
}

func (s *Store) indexAlbum(ctx context.Context, a *domain.Album) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.IndexAlbum(ctx, a); err != nil {
		s.logger.Warn("failed to index album", "album_id", a.ID, "error", err)
	}
}
