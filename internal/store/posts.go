package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

var (
	// ErrPostNotFound is returned when a post cannot be found by ID or slug.
	ErrPostNotFound = errors.New("post not found")
	// ErrPostSlugExists is returned when the post slug is already taken.
	ErrPostSlugExists = errors.New("post slug already in use")
)

// CreatePost creates a new post. Post slugs are globally unique.
func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	err := s.Posts.Create(ctx, p.ID, p)
	if err == nil {
		s.indexPost(ctx, p)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrPostSlugExists
	}
	return err
}

// GetPost retrieves a post by ID.
func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.Posts.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}

// GetPostBySlug retrieves a post by slug.
func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	p, err := s.Posts.GetByIndex(ctx, "slug", slug)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}

// UpdatePost updates an existing post.
func (s *Store) UpdatePost(ctx context.Context, p *domain.Post) error {
	p.Touch()
	err := s.Posts.Update(ctx, p.ID, p)
	if err == nil {
		s.indexPost(ctx, p)
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrPostSlugExists
	}
	if errors.Is(err, ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

// DeletePost removes a post. Idempotent.
func (s *Store) DeletePost(ctx context.Context, postID string) error {
	if err := s.Posts.Delete(ctx, postID); err != nil {
		return err
	}
	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeletePost(ctx, postID); err != nil {
			s.logger.Warn("failed to remove post from search index", "post_id", postID, "error", err)
		}
	}
	return nil
}

// ListPosts returns all posts.
func (s *Store) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post
	for p, err := range s.Posts.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// ListUserPosts returns all posts written by a user.
func (s *Store) ListUserPosts(ctx context.Context, authorID string) ([]*domain.Post, error) {
	var posts []*domain.Post
	for p, err := range s.Posts.ListByLookup(ctx, "author", authorID) {
		if err != nil {
			return nil, fmt.Errorf("list user posts: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// ListShopPosts returns all posts tagged to a shop.
func (s *Store) ListShopPosts(ctx context.Context, shopID string) ([]*domain.Post, error) {
	var posts []*domain.Post
	for p, err := range s.Posts.ListByLookup(ctx, "shop", shopID) {
		if err != nil {
			return nil, fmt.Errorf("list shop posts: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// ListCategoryPosts returns all posts filed under a category.
func (s *Store) ListCategoryPosts(ctx context.Context, categoryID string) ([]*domain.Post, error) {
	var posts []*domain.Post
	for p, err := range s.Posts.ListByLookup(ctx, "category", categoryID) {
		if err != nil {
			return nil, fmt.Errorf("list category posts: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *Store) indexPost(ctx context.Context, p *domain.Post) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.IndexPost(ctx, p); err != nil {
		s.logger.Warn("failed to index post", "post_id", p.ID, "error", err)
	}
}
