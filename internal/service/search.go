package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	"github.com/shopfolio/shopfolio-server/internal/search"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

// SearchService bridges the store and the search index. It implements
// store.SearchIndexer so writes flow into the index, and exposes the
// query side to the API layer.
type SearchService struct {
	index  *search.SearchIndex
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search executes a query against the index.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if params.Limit <= 0 || params.Limit > store.MaxPageSize {
		params.Limit = 20
	}
	return s.index.Search(ctx, params)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// IndexShop adds or updates a shop in the search index.
func (s *SearchService) IndexShop(ctx context.Context, shop *domain.Shop) error {
	return s.index.IndexDocument(search.ShopToSearchDocument(shop))
}

// DeleteShop removes a shop from the search index.
func (s *SearchService) DeleteShop(ctx context.Context, shopID string) error {
	return s.index.DeleteDocument(shopID)
}

// IndexProduct adds or updates a product in the search index.
func (s *SearchService) IndexProduct(ctx context.Context, p *domain.Product) error {
	return s.index.IndexDocument(search.ProductToSearchDocument(p))
}

// DeleteProduct removes a product from the search index.
func (s *SearchService) DeleteProduct(ctx context.Context, productID string) error {
	return s.index.DeleteDocument(productID)
}

// IndexAlbum adds or updates an album in the search index. Only public
// albums are searchable; unlisted and private albums are removed so a
// visibility downgrade takes them out of results.
func (s *SearchService) IndexAlbum(ctx context.Context, a *domain.Album) error {
	if a.Visibility != domain.VisibilityPublic {
		return s.index.DeleteDocument(a.ID)
	}
	return s.index.IndexDocument(search.AlbumToSearchDocument(a))
}

// DeleteAlbum removes an album from the search index.
func (s *SearchService) DeleteAlbum(ctx context.Context, albumID string) error {
	return s.index.DeleteDocument(albumID)
}

// IndexPost adds or updates a post in the search index.
func (s *SearchService) IndexPost(ctx context.Context, p *domain.Post) error {
	return s.index.IndexDocument(search.PostToSearchDocument(p))
}

// DeletePost removes a post from the search index.
func (s *SearchService) DeletePost(ctx context.Context, postID string) error {
	return s.index.DeleteDocument(postID)
}

// RebuildIndex drops the index and reindexes every searchable document
// from the store. Used at startup recovery and by admin tooling.
func (s *SearchService) RebuildIndex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	var docs []*search.SearchDocument

	shops, err := s.store.ListShops(ctx)
	if err != nil {
		return fmt.Errorf("list shops: %w", err)
	}
	for _, sh := range shops {
		docs = append(docs, search.ShopToSearchDocument(sh))
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	for _, p := range products {
		docs = append(docs, search.ProductToSearchDocument(p))
	}

	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return fmt.Errorf("list albums: %w", err)
	}
	for _, a := range albums {
		if a.Visibility == domain.VisibilityPublic {
			docs = append(docs, search.AlbumToSearchDocument(a))
		}
	}

	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	for _, p := range posts {
		docs = append(docs, search.PostToSearchDocument(p))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Search index rebuilt", "documents", len(docs))
	}

	return nil
}
