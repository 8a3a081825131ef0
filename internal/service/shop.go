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

// ShopService manages shop lifecycle and the one-shop-per-user rule.
type ShopService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewShopService creates a new shop service.
func NewShopService(store *store.Store, logger *slog.Logger) *ShopService {
	return &ShopService{store: store, logger: logger}
}

// CreateShopRequest contains the fields for opening a shop.
type CreateShopRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=100"`
	Description string             `json:"description,omitempty" validate:"max=2000"`
	AvatarURL   string             `json:"avatar_url,omitempty"`
	ImageURLs   []string           `json:"image_urls,omitempty"`
	Contact     domain.ShopContact `json:"contact,omitzero"`
}

// UpdateShopRequest contains the patchable shop fields. Nil means
// "leave unchanged".
type UpdateShopRequest struct {
	Name        *string             `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=2000"`
	AvatarURL   *string             `json:"avatar_url,omitempty"`
	ImageURLs   *[]string           `json:"image_urls,omitempty"`
	Contact     *domain.ShopContact `json:"contact,omitempty"`
}

// ShopDetail is a shop expanded with its owner and products.
type ShopDetail struct {
	Shop     *domain.Shop      `json:"shop"`
	Owner    *domain.User      `json:"owner"`
	Products []*domain.Product `json:"products"`
}

// ListShopsParams filters and paginates the public shop listing.
type ListShopsParams struct {
	Query   string
	OwnerID string
	Page    int
	Limit   int
}

// CreateShop opens a shop for the actor. Each user gets at most one;
// a second attempt conflicts and reports the existing shop's ID so
// clients can redirect to it.
func (s *ShopService) CreateShop(ctx context.Context, actor *domain.User, req CreateShopRequest) (*domain.Shop, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	shopID, err := id.Generate("shop")
	if err != nil {
		return nil, fmt.Errorf("generate shop ID: %w", err)
	}

	shop := &domain.Shop{
		ID:          shopID,
		OwnerID:     actor.ID,
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		ImageURLs:   req.ImageURLs,
		Contact:     req.Contact,
		ProductIDs:  []string{},
	}
	shop.SanitizeLinks()
	shop.Touch()
	shop.CreatedAt = shop.UpdatedAt

	if err := s.store.CreateShop(ctx, shop); err != nil {
		switch {
		case errors.Is(err, store.ErrOwnerHasShop):
			existing, lookupErr := s.store.GetShopByOwner(ctx, actor.ID)
			if lookupErr != nil {
				return nil, domainerrors.Conflict("you already have a shop")
			}
			return nil, domainerrors.ConflictWithDetails("you already have a shop",
				map[string]string{"shop_id": existing.ID})
		case errors.Is(err, store.ErrShopSlugExists):
			return nil, domainerrors.Conflict("a shop with this name already exists")
		}
		return nil, fmt.Errorf("create shop: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Shop created", "shop_id", shopID, "owner_id", actor.ID)
	}

	return shop, nil
}

// GetShop returns a shop expanded with its owner and products.
func (s *ShopService) GetShop(ctx context.Context, shopID string) (*ShopDetail, error) {
	shop, err := s.store.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, store.ErrShopNotFound) {
			return nil, domainerrors.NotFound("shop not found")
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}

	return s.expandShop(ctx, shop)
}

// GetShopBySlug returns a shop by its public slug, expanded with its
// owner and products.
func (s *ShopService) GetShopBySlug(ctx context.Context, shopSlug string) (*ShopDetail, error) {
	shop, err := s.store.GetShopBySlug(ctx, shopSlug)
	if err != nil {
		if errors.Is(err, store.ErrShopNotFound) {
			return nil, domainerrors.NotFound("shop not found")
		}
		return nil, fmt.Errorf("get shop by slug: %w", err)
	}

	return s.expandShop(ctx, shop)
}

// GetMyShop returns the actor's own shop.
func (s *ShopService) GetMyShop(ctx context.Context, actor *domain.User) (*ShopDetail, error) {
	shop, err := s.store.GetShopByOwner(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrShopNotFound) {
			return nil, domainerrors.NotFound("you don't have a shop yet")
		}
		return nil, fmt.Errorf("get shop by owner: %w", err)
	}

	return s.expandShop(ctx, shop)
}

// UpdateShop applies a partial update. Owner or admin only. Renaming
// the shop regenerates its slug.
func (s *ShopService) UpdateShop(ctx context.Context, actor *domain.User, shopID string, req UpdateShopRequest) (*domain.Shop, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	shop, err := s.requireMutableShop(ctx, actor, shopID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shop.Name = *req.Name
		shop.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.AvatarURL != nil {
		shop.AvatarURL = *req.AvatarURL
	}
	if req.ImageURLs != nil {
		shop.ImageURLs = *req.ImageURLs
	}
	if req.Contact != nil {
		shop.Contact = *req.Contact
	}
	shop.SanitizeLinks()

	if err := s.store.UpdateShop(ctx, shop); err != nil {
		if errors.Is(err, store.ErrShopSlugExists) {
			return nil, domainerrors.Conflict("a shop with this name already exists")
		}
		return nil, fmt.Errorf("update shop: %w", err)
	}

	return shop, nil
}

// DeleteShop removes a shop and cascades: its products and albums are
// hard-deleted, and posts tagged to it lose their tag.
func (s *ShopService) DeleteShop(ctx context.Context, actor *domain.User, shopID string) error {
	shop, err := s.requireMutableShop(ctx, actor, shopID)
	if err != nil {
		return err
	}

	products, err := s.store.ListShopProducts(ctx, shopID)
	if err != nil {
		return fmt.Errorf("list shop products: %w", err)
	}
	for _, p := range products {
		if err := s.store.DeleteProduct(ctx, p.ID); err != nil {
			return fmt.Errorf("delete product %s: %w", p.ID, err)
		}
	}

	albums, err := s.store.ListShopAlbums(ctx, shopID)
	if err != nil {
		return fmt.Errorf("list shop albums: %w", err)
	}
	for _, a := range albums {
		if err := s.store.DeleteAlbum(ctx, a.ID); err != nil {
			return fmt.Errorf("delete album %s: %w", a.ID, err)
		}
	}

	posts, err := s.store.ListShopPosts(ctx, shopID)
	if err != nil {
		return fmt.Errorf("list shop posts: %w", err)
	}
	for _, p := range posts {
		p.ShopID = ""
		if err := s.store.UpdatePost(ctx, p); err != nil {
			return fmt.Errorf("clear shop tag on post %s: %w", p.ID, err)
		}
	}

	if err := s.store.DeleteShop(ctx, shop.ID); err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Shop deleted",
			"shop_id", shopID,
			"products", len(products),
			"albums", len(albums),
			"posts_untagged", len(posts),
		)
	}

	return nil
}

// ListShops returns a page of shops, optionally filtered by owner or
// by a case-insensitive name substring.
func (s *ShopService) ListShops(ctx context.Context, params ListShopsParams) (*store.PageResult[*domain.Shop], error) {
	page := store.NormalizePage(params.Page)
	limit := store.NormalizeLimit(params.Limit, 12)

	shops, err := s.store.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}

	filtered := shops[:0]
	q := strings.ToLower(params.Query)
	for _, sh := range shops {
		if params.OwnerID != "" && sh.OwnerID != params.OwnerID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(sh.Name), q) {
			continue
		}
		filtered = append(filtered, sh)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	result := store.PaginateSlice(filtered, page, limit)
	return &result, nil
}

// expandShop loads the owner and product documents referenced by a shop.
func (s *ShopService) expandShop(ctx context.Context, shop *domain.Shop) (*ShopDetail, error) {
	owner, err := s.store.GetUser(ctx, shop.OwnerID)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("get shop owner: %w", err)
	}

	products, err := s.store.ListShopProducts(ctx, shop.ID)
	if err != nil {
		return nil, fmt.Errorf("list shop products: %w", err)
	}

	return &ShopDetail{
		Shop:     shop,
		Owner:    owner,
		Products: products,
	}, nil
}

// requireMutableShop loads a shop and enforces the owner-or-admin gate.
func (s *ShopService) requireMutableShop(ctx context.Context, actor *domain.User, shopID string) (*domain.Shop, error) {
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
