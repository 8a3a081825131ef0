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
	"github.com/shopfolio/shopfolio-server/internal/markdown"
	"github.com/shopfolio/shopfolio-server/internal/slug"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

// PostService manages blog posts. Post mutations are strictly
// author-only; admins get no override here, unlike shop mutations.
type PostService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(store *store.Store, logger *slog.Logger) *PostService {
	return &PostService{store: store, logger: logger}
}

// CreatePostRequest contains the fields for publishing a post.
type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=200"`
	Summary     string   `json:"summary,omitempty" validate:"max=500"`
	Content     string   `json:"content" validate:"required"`
	CoverURL    string   `json:"cover_url,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}

// UpdatePostRequest contains the patchable post fields. Nil means
// "leave unchanged".
type UpdatePostRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Summary     *string   `json:"summary,omitempty" validate:"omitempty,max=500"`
	Content     *string   `json:"content,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	CategoryIDs *[]string `json:"category_ids,omitempty"`
}

// ListPostsParams filters the public post listing.
type ListPostsParams struct {
	CategoryID string
	ShopID     string
}

// MyPostsParams filters and paginates the author's own posts.
type MyPostsParams struct {
	Page       int
	Limit      int
	CategoryID string
	Search     string
}

// CreatePost publishes a new post by the actor. HTML content from
// rich-text editors is converted to Markdown before storage. Slugs are
// globally unique.
func (s *PostService) CreatePost(ctx context.Context, actor *domain.User, req CreatePostRequest) (*domain.Post, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if err := s.checkPostCategories(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}

	postID, err := id.Generate("post")
	if err != nil {
		return nil, fmt.Errorf("generate post ID: %w", err)
	}

	post := &domain.Post{
		ID:          postID,
		AuthorID:    actor.ID,
		CategoryIDs: req.CategoryIDs,
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Summary:     req.Summary,
		Content:     markdown.Normalize(req.Content),
		CoverURL:    domain.SanitizeURL(req.CoverURL),
	}
	post.Touch()
	post.CreatedAt = post.UpdatedAt

	if err := s.store.CreatePost(ctx, post); err != nil {
		if errors.Is(err, store.ErrPostSlugExists) {
			return nil, domainerrors.Conflict("a post with this title already exists")
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Post created", "post_id", postID, "author_id", actor.ID)
	}

	return post, nil
}

// GetPostBySlug resolves a post by its globally unique slug.
func (s *PostService) GetPostBySlug(ctx context.Context, postSlug string) (*domain.Post, error) {
	post, err := s.store.GetPostBySlug(ctx, postSlug)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, domainerrors.NotFound("post not found")
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return post, nil
}

// ListPosts returns public posts, optionally filtered by category or
// shop tag, newest first.
func (s *PostService) ListPosts(ctx context.Context, params ListPostsParams) ([]*domain.Post, error) {
	var posts []*domain.Post
	var err error
	switch {
	case params.ShopID != "":
		posts, err = s.store.ListShopPosts(ctx, params.ShopID)
	case params.CategoryID != "":
		posts, err = s.store.ListCategoryPosts(ctx, params.CategoryID)
	default:
		posts, err = s.store.ListPosts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	// When both filters are set, the shop lookup drives and the
	// category narrows.
	if params.ShopID != "" && params.CategoryID != "" {
		filtered := posts[:0]
		for _, p := range posts {
			if postHasCategory(p, params.CategoryID) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

// GetMyPosts returns a page of the actor's own posts, optionally
// narrowed by category or by a case-insensitive substring match on
// title or summary.
func (s *PostService) GetMyPosts(ctx context.Context, actor *domain.User, params MyPostsParams) (*store.PageResult[*domain.Post], error) {
	page := store.NormalizePage(params.Page)
	limit := store.NormalizeLimit(params.Limit, 10)

	posts, err := s.store.ListUserPosts(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}

	q := strings.ToLower(params.Search)
	filtered := posts[:0]
	for _, p := range posts {
		if params.CategoryID != "" && !postHasCategory(p, params.CategoryID) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Summary), q) {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	result := store.PaginateSlice(filtered, page, limit)
	return &result, nil
}

// UpdatePost applies a partial update. Author only. Retitling the post
// regenerates its slug.
func (s *PostService) UpdatePost(ctx context.Context, actor *domain.User, postID string, req UpdatePostRequest) (*domain.Post, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	post, err := s.requireAuthoredPost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil {
		if err := s.checkPostCategories(ctx, *req.CategoryIDs); err != nil {
			return nil, err
		}
		post.CategoryIDs = *req.CategoryIDs
	}
	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = slug.Make(*req.Title)
	}
	if req.Summary != nil {
		post.Summary = *req.Summary
	}
	if req.Content != nil {
		post.Content = markdown.Normalize(*req.Content)
	}
	if req.CoverURL != nil {
		post.CoverURL = domain.SanitizeURL(*req.CoverURL)
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, store.ErrPostSlugExists) {
			return nil, domainerrors.Conflict("a post with this title already exists")
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	return post, nil
}

// DeletePost removes a post. Author only.
func (s *PostService) DeletePost(ctx context.Context, actor *domain.User, postID string) error {
	post, err := s.requireAuthoredPost(ctx, actor, postID)
	if err != nil {
		return err
	}

	if err := s.store.DeletePost(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Post deleted", "post_id", postID)
	}

	return nil
}

// TagShop sets or clears a post's shop tag. Author only. Setting
// requires the shop to exist; clearing always succeeds.
func (s *PostService) TagShop(ctx context.Context, actor *domain.User, postID, shopID string) (*domain.Post, error) {
	post, err := s.requireAuthoredPost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if shopID != "" {
		if _, err := s.store.GetShop(ctx, shopID); err != nil {
			if errors.Is(err, store.ErrShopNotFound) {
				return nil, domainerrors.NotFound("shop not found")
			}
			return nil, fmt.Errorf("get shop: %w", err)
		}
	}

	post.ShopID = shopID
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return post, nil
}

// requireAuthoredPost loads a post and enforces the author-only rule.
func (s *PostService) requireAuthoredPost(ctx context.Context, actor *domain.User, postID string) (*domain.Post, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, domainerrors.NotFound("post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if !post.IsAuthor(actor) {
		return nil, domainerrors.Forbidden("only the author can modify this post")
	}
	return post, nil
}

// checkPostCategories verifies every referenced category exists and is
// a post category.
func (s *PostService) checkPostCategories(ctx context.Context, categoryIDs []string) error {
	for _, cid := range categoryIDs {
		cat, err := s.store.GetCategory(ctx, cid)
		if err != nil {
			if errors.Is(err, store.ErrCategoryNotFound) {
				return domainerrors.NotFoundf("post category %s not found", cid)
			}
			return fmt.Errorf("get category: %w", err)
		}
		if cat.Kind != domain.CategoryKindPost {
			return domainerrors.Validationf("category %s is not a post category", cid)
		}
	}
	return nil
}

func postHasCategory(p *domain.Post, categoryID string) bool {
	for _, cid := range p.CategoryIDs {
		if cid == categoryID {
			return true
		}
	}
	return false
}
