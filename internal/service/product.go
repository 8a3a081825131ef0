package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/id"
	"github.com/shopfolio/shopfolio-server/internal/slug"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

// ProductService manages product listings within shops.
type ProductService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(store *store.Store, logger *slog.Logger) *ProductService {
	return &ProductService{store: store, logger: logger}
}

// CreateProductRequest contains the fields for listing a product.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description,omitempty" validate:"max=5000"`
	Details     string   `json:"details,omitempty" validate:"max=10000"`
	CategoryID  string   `json:"category_id,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	PriceCents  int64    `json:"price_cents,omitempty" validate:"gte=0"`
	Currency    string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	Quantity    int      `json:"quantity,omitempty" validate:"gte=0"`
	IsFeatured  bool     `json:"is_featured,omitempty"`
}

// UpdateProductRequest contains the patchable product fields. Nil
// means "leave unchanged". The shop assignment is immutable.
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Details     *string   `json:"details,omitempty" validate:"omitempty,max=10000"`
	CategoryID  *string   `json:"category_id,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	ImageURLs   *[]string `json:"image_urls,omitempty"`
	PriceCents  *int64    `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
	Currency    *string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	Quantity    *int      `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	IsFeatured  *bool     `json:"is_featured,omitempty"`
}

// ListProductsParams filters and paginates the public product listing.
type ListProductsParams struct {
	ShopID     string
	CategoryID string
	Page       int
	Limit      int
}

// CreateProduct lists a new product in a shop. Owner or admin only.
// The product is also appended to the shop's product list.
func (s *ProductService) CreateProduct(ctx context.Context, actor *domain.User, shopID string, req CreateProductRequest) (*domain.Product, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	shop, err := s.requireMutableShop(ctx, actor, shopID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != "" {
		cat, err := s.store.GetCategory(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrCategoryNotFound) {
				return nil, domainerrors.NotFound("product category not found")
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
		if cat.Kind != domain.CategoryKindProduct {
			return nil, domainerrors.Validation("category is not a product category")
		}
	}

	productID, err := id.Generate("prod")
	if err != nil {
		return nil, fmt.Errorf("generate product ID: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	product := &domain.Product{
		ID:          productID,
		ShopID:      shop.ID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Details:     req.Details,
		ImageURL:    domain.SanitizeURL(req.ImageURL),
		PriceCents:  req.PriceCents,
		Currency:    currency,
		Quantity:    req.Quantity,
		IsFeatured:  req.IsFeatured,
	}
	for _, raw := range req.ImageURLs {
		if clean := domain.SanitizeURL(raw); clean != "" {
			product.ImageURLs = append(product.ImageURLs, clean)
		}
	}
	product.Touch()
	product.CreatedAt = product.UpdatedAt

	if err := s.store.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, store.ErrProductSlugExists) {
			return nil, domainerrors.Conflict("a product with this name already exists in this shop")
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	// Keep the shop's product list in sync. Set semantics: adding an
	// already-listed ID is a no-op.
	if shop.AddProduct(productID) {
		if err := s.store.UpdateShop(ctx, shop); err != nil {
			return nil, fmt.Errorf("update shop product list: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("Product created", "product_id", productID, "shop_id", shop.ID)
	}

	return product, nil
}

// GetProductBySlug resolves a product by its shop-scoped slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, shopID, productSlug string) (*domain.Product, error) {
	product, err := s.store.GetProductBySlug(ctx, shopID, productSlug)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return nil, domainerrors.NotFound("product not found")
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return product, nil
}

// ListProducts returns a page of products, optionally filtered by shop
// and category.
func (s *ProductService) ListProducts(ctx context.Context, params ListProductsParams) (*store.PageResult[*domain.Product], error) {
	page := store.NormalizePage(params.Page)
	limit := store.NormalizeLimit(params.Limit, 20)

	var products []*domain.Product
	var err error
	switch {
	case params.ShopID != "":
		products, err = s.store.ListShopProducts(ctx, params.ShopID)
	default:
		products, err = s.store.ListProducts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if params.CategoryID != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.CategoryID == params.CategoryID {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	result := store.PaginateSlice(products, page, limit)
	return &result, nil
}

// UpdateProduct applies a partial update. Owner or admin only.
// Renaming the product regenerates its slug within the shop.
func (s *ProductService) UpdateProduct(ctx context.Context, actor *domain.User, productID string, req UpdateProductRequest) (*domain.Product, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	product, _, err := s.requireMutableProduct(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
		product.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Details != nil {
		product.Details = *req.Details
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.ImageURL != nil {
		product.ImageURL = domain.SanitizeURL(*req.ImageURL)
	}
	if req.ImageURLs != nil {
		product.ImageURLs = nil
		for _, raw := range *req.ImageURLs {
			if clean := domain.SanitizeURL(raw); clean != "" {
				product.ImageURLs = append(product.ImageURLs, clean)
			}
		}
	}
	if req.PriceCents != nil {
		product.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, store.ErrProductSlugExists) {
			return nil, domainerrors.Conflict("a product with this name already exists in this shop")
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes a product. Owner or admin only. The product is
// pulled out of the shop's product list and out of any album of the
// same shop that references it.
func (s *ProductService) DeleteProduct(ctx context.Context, actor *domain.User, productID string) error {
	product, shop, err := s.requireMutableProduct(ctx, actor, productID)
	if err != nil {
		return err
	}

	albums, err := s.store.ListShopAlbums(ctx, shop.ID)
	if err != nil {
		return fmt.Errorf("list shop albums: %w", err)
	}
	for _, a := range albums {
		if a.RemoveProduct(productID) {
			if err := s.store.UpdateAlbum(ctx, a); err != nil {
				return fmt.Errorf("remove product from album %s: %w", a.ID, err)
			}
		}
	}

	if shop.RemoveProduct(productID) {
		if err := s.store.UpdateShop(ctx, shop); err != nil {
			return fmt.Errorf("update shop product list: %w", err)
		}
	}

	if err := s.store.DeleteProduct(ctx, product.ID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Product deleted", "product_id", productID, "shop_id", shop.ID)
	}

	return nil
}

// requireMutableShop loads a shop and enforces the owner-or-admin gate.
func (s *ProductService) requireMutableShop(ctx context.Context, actor *domain.User, shopID string) (*domain.Shop, error) {
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

// requireMutableProduct loads a product and its shop, enforcing the
// owner-or-admin gate on the shop.
func (s *ProductService) requireMutableProduct(ctx context.Context, actor *domain.User, productID string) (*domain.Product, *domain.Shop, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return nil, nil, domainerrors.NotFound("product not found")
		}
		return nil, nil, fmt.Errorf("get product: %w", err)
	}
	shop, err := s.requireMutableShop(ctx, actor, product.ShopID)
	if err != nil {
		return nil, nil, err
	}
	return product, shop, nil
}
