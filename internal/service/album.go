package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/id"
	"github.com/shopfolio/shopfolio-server/internal/slug"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

// AlbumService manages ordered product groupings within shops. Every
// mutation re-checks the owner-or-admin gate, and every product added
// to an album must belong to the album's shop.
type AlbumService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAlbumService creates a new album service.
func NewAlbumService(store *store.Store, logger *slog.Logger) *AlbumService {
	return &AlbumService{store: store, logger: logger}
}

// CreateAlbumRequest contains the fields for creating an album.
type CreateAlbumRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Theme       string `json:"theme,omitempty" validate:"max=50"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	CoverURL    string `json:"cover_url,omitempty"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=public unlisted private"`
}

// UpdateAlbumRequest contains the patchable album metadata. Nil means
// "leave unchanged". Items are managed through their own operations.
type UpdateAlbumRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Theme       *string `json:"theme,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	CoverURL    *string `json:"cover_url,omitempty"`
	Visibility  *string `json:"visibility,omitempty" validate:"omitempty,oneof=public unlisted private"`
}

// ListAlbumsParams filters and paginates the public album listing.
type ListAlbumsParams struct {
	ShopID string
	Query  string
	Page   int
	Limit  int
}

// AlbumSummary annotates an album with its item count for listings.
type AlbumSummary struct {
	*domain.Album
	ProductCount int `json:"product_count"`
}

// AlbumItemDetail is an album item expanded with its product.
type AlbumItemDetail struct {
	domain.AlbumItem
	Product *domain.Product `json:"product"`
}

// AlbumDetail is an album with its items' products expanded.
type AlbumDetail struct {
	Album *domain.Album     `json:"album"`
	Items []AlbumItemDetail `json:"items"`
}

// CreateAlbum creates an empty album in a shop. Owner or admin only.
func (s *AlbumService) CreateAlbum(ctx context.Context, actor *domain.User, shopID string, req CreateAlbumRequest) (*domain.Album, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	shop, err := s.requireMutableShop(ctx, actor, shopID)
	if err != nil {
		return nil, err
	}

	albumID, err := id.Generate("album")
	if err != nil {
		return nil, fmt.Errorf("generate album ID: %w", err)
	}

	visibility := domain.AlbumVisibility(req.Visibility)
	if req.Visibility == "" {
		visibility = domain.VisibilityPublic
	}

	album := &domain.Album{
		ID:          albumID,
		ShopID:      shop.ID,
		CreatedBy:   actor.ID,
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Theme:       req.Theme,
		Description: req.Description,
		CoverURL:    domain.SanitizeURL(req.CoverURL),
		Visibility:  visibility,
		Items:       []domain.AlbumItem{},
	}
	album.Touch()
	album.CreatedAt = album.UpdatedAt

	if err := s.store.CreateAlbum(ctx, album); err != nil {
		if errors.Is(err, store.ErrAlbumSlugExists) {
			return nil, domainerrors.Conflict("an album with this name already exists in this shop")
		}
		return nil, fmt.Errorf("create album: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Album created", "album_id", albumID, "shop_id", shop.ID)
	}

	return album, nil
}

// ListAlbums returns a page of albums sorted by most recently updated,
// each annotated with its item count. Only public albums appear.
func (s *AlbumService) ListAlbums(ctx context.Context, params ListAlbumsParams) (*store.PageResult[AlbumSummary], error) {
	page := store.NormalizePage(params.Page)
	limit := store.NormalizeLimit(params.Limit, 12)

	var albums []*domain.Album
	var err error
	if params.ShopID != "" {
		albums, err = s.store.ListShopAlbums(ctx, params.ShopID)
	} else {
		albums, err = s.store.ListAlbums(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	q := strings.ToLower(params.Query)
	summaries := make([]AlbumSummary, 0, len(albums))
	for _, a := range albums {
		if a.Visibility != domain.VisibilityPublic {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(a.Name), q) {
			continue
		}
		summaries = append(summaries, AlbumSummary{Album: a, ProductCount: len(a.Items)})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})

	result := store.PaginateSlice(summaries, page, limit)
	return &result, nil
}

// GetAlbumBySlug resolves an album by its shop-scoped slug and expands
// each item's product.
func (s *AlbumService) GetAlbumBySlug(ctx context.Context, shopID, albumSlug string) (*AlbumDetail, error) {
	album, err := s.store.GetAlbumBySlug(ctx, shopID, albumSlug)
	if err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			return nil, domainerrors.NotFound("album not found")
		}
		return nil, fmt.Errorf("get album by slug: %w", err)
	}

	items := make([]AlbumItemDetail, 0, len(album.Items))
	for _, it := range album.Items {
		product, err := s.store.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				// Dangling reference, skip rather than fail the read
				continue
			}
			return nil, fmt.Errorf("get album product %s: %w", it.ProductID, err)
		}
		items = append(items, AlbumItemDetail{AlbumItem: it, Product: product})
	}

	return &AlbumDetail{Album: album, Items: items}, nil
}

// UpdateAlbumMeta applies a partial metadata update. Owner or admin
// only. Renaming the album regenerates its slug within the shop.
func (s *AlbumService) UpdateAlbumMeta(ctx context.Context, actor *domain.User, albumID string, req UpdateAlbumRequest) (*domain.Album, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	album, err := s.requireMutableAlbum(ctx, actor, albumID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		album.Name = *req.Name
		album.Slug = slug.Make(*req.Name)
	}
	if req.Theme != nil {
		album.Theme = *req.Theme
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.CoverURL != nil {
		album.CoverURL = domain.SanitizeURL(*req.CoverURL)
	}
	if req.Visibility != nil {
		album.Visibility = domain.AlbumVisibility(*req.Visibility)
	}

	if err := s.store.UpdateAlbum(ctx, album); err != nil {
		if errors.Is(err, store.ErrAlbumSlugExists) {
			return nil, domainerrors.Conflict("an album with this name already exists in this shop")
		}
		return nil, fmt.Errorf("update album: %w", err)
	}

	return album, nil
}

// AddProducts appends products to the end of an album. Every product
// must belong to the album's shop; if any does not, nothing is added.
// Products already in the album are skipped, so the call is idempotent.
func (s *AlbumService) AddProducts(ctx context.Context, actor *domain.User, albumID string, productIDs []string) (*domain.Album, error) {
	if len(productIDs) == 0 {
		return nil, domainerrors.Validation("product_ids must not be empty")
	}

	album, err := s.requireMutableAlbum(ctx, actor, albumID)
	if err != nil {
		return nil, err
	}

	// All-or-nothing: reject the whole call when any product is missing
	// or belongs to another shop.
	var rejected []string
	for _, pid := range productIDs {
		product, err := s.store.GetProduct(ctx, pid)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				rejected = append(rejected, pid)
				continue
			}
			return nil, fmt.Errorf("get product %s: %w", pid, err)
		}
		if product.ShopID != album.ShopID {
			rejected = append(rejected, pid)
		}
	}
	if len(rejected) > 0 {
		return nil, domainerrors.ValidationWithDetails("products do not belong to this shop",
			map[string][]string{"product_ids": rejected})
	}

	added := album.AddProducts(productIDs)
	if added > 0 {
		if err := s.store.UpdateAlbum(ctx, album); err != nil {
			return nil, fmt.Errorf("update album: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("Products added to album",
			"album_id", albumID,
			"requested", len(productIDs),
			"added", added,
		)
	}

	return album, nil
}

// RemoveProduct removes a product from an album. Remaining items keep
// their relative order and are renumbered from zero.
func (s *AlbumService) RemoveProduct(ctx context.Context, actor *domain.User, albumID, productID string) (*domain.Album, error) {
	album, err := s.requireMutableAlbum(ctx, actor, albumID)
	if err != nil {
		return nil, err
	}

	if !album.RemoveProduct(productID) {
		return nil, domainerrors.NotFound("product is not in this album")
	}

	if err := s.store.UpdateAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("update album: %w", err)
	}

	return album, nil
}

// ReorderItems places the given products first, in the order given;
// items not mentioned keep their relative order at the tail. A reorder
// covering only a subset of items is therefore valid.
func (s *AlbumService) ReorderItems(ctx context.Context, actor *domain.User, albumID string, orderedProductIDs []string) (*domain.Album, error) {
	album, err := s.requireMutableAlbum(ctx, actor, albumID)
	if err != nil {
		return nil, err
	}

	album.Reorder(orderedProductIDs)

	if err := s.store.UpdateAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("update album: %w", err)
	}

	return album, nil
}

// DeleteAlbum hard-deletes an album. The referenced products are left
// untouched.
func (s *AlbumService) DeleteAlbum(ctx context.Context, actor *domain.User, albumID string) error {
	album, err := s.requireMutableAlbum(ctx, actor, albumID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteAlbum(ctx, album.ID); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Album deleted", "album_id", albumID)
	}

	return nil
}

// requireMutableShop loads a shop and enforces the owner-or-admin gate.
func (s *AlbumService) requireMutableShop(ctx context.Context, actor *domain.User, shopID string) (*domain.Shop, error) {
	shop, err := s.store.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, store.ErrShopNotFound) {
			return nil, domainerrors.NotFound("shop not found")
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	if !shop.CanMutate(actor) {
		return nil, domainerrors.Forbidden("you don't own this shop")
	}
	return shop, nil
}

// requireMutableAlbum loads an album and enforces the owner-or-admin
// gate on its shop.
func (s *AlbumService) requireMutableAlbum(ctx context.Context, actor *domain.User, albumID string) (*domain.Album, error) {
	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			return nil, domainerrors.NotFound("album not found")
		}
		return nil, fmt.Errorf("get album: %w", err)
	}
	if _, err := s.requireMutableShop(ctx, actor, album.ShopID); err != nil {
		return nil, err
	}
	return album, nil
}
