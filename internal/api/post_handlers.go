package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

func (s *Server) registerPostRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createPost",
		Method:      http.MethodPost,
		Path:        "/api/v1/posts",
		Summary:     "Create post",
		Description: "Publishes a blog post. HTML content is converted to Markdown.",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts",
		Summary:     "List posts",
		Description: "Returns posts, optionally filtered by category or shop tag, newest first",
		Tags:        []string{"Posts"},
	}, s.handleListPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMyPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/me",
		Summary:     "Get my posts",
		Description: "Returns a page of the authenticated user's posts",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMyPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPostBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{slug}",
		Summary:     "Get post",
		Description: "Returns a post by its globally unique slug",
		Tags:        []string{"Posts"},
	}, s.handleGetPostBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePost",
		Method:      http.MethodPatch,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Update post",
		Description: "Applies a partial update. Author only.",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePost",
		Method:      http.MethodDelete,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Delete post",
		Description: "Deletes a post. Author only.",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "tagPostShop",
		Method:      http.MethodPut,
		Path:        "/api/v1/posts/{id}/shop",
		Summary:     "Tag post with shop",
		Description: "Sets or clears the post's shop tag. Author only.",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTagPostShop)
}

// === DTOs ===

// CreatePostInput wraps the create post request for Huma.
type CreatePostInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreatePostRequest
}

// PostOutput wraps a post for Huma.
type PostOutput struct {
	Body *domain.Post
}

// ListPostsInput contains parameters for listing posts.
type ListPostsInput struct {
	CategoryID string `query:"category_id" doc:"Filter by category"`
	ShopID     string `query:"shop_id" doc:"Filter by shop tag"`
}

// ListPostsResponse contains the matching posts.
type ListPostsResponse struct {
	Posts []*domain.Post `json:"posts" doc:"Matching posts, newest first"`
}

// ListPostsOutput wraps the post list for Huma.
type ListPostsOutput struct {
	Body ListPostsResponse
}

// GetMyPostsInput contains parameters for the author's own posts.
type GetMyPostsInput struct {
	Authorization string `header:"Authorization"`
	Page          int    `query:"page" doc:"Page number, 1-based"`
	Limit         int    `query:"limit" doc:"Page size"`
	CategoryID    string `query:"category_id" doc:"Filter by category"`
	Search        string `query:"q" doc:"Case-insensitive title or summary filter"`
}

// MyPostsResponse contains a page of the author's posts.
type MyPostsResponse struct {
	Posts   []*domain.Post `json:"posts" doc:"Posts on this page"`
	Total   int            `json:"total" doc:"Total matching posts"`
	Page    int            `json:"page" doc:"Current page"`
	Limit   int            `json:"limit" doc:"Page size"`
	HasMore bool           `json:"has_more" doc:"Whether more pages exist"`
}

// MyPostsOutput wraps the paginated posts for Huma.
type MyPostsOutput struct {
	Body MyPostsResponse
}

// GetPostBySlugInput contains parameters for resolving a post.
type GetPostBySlugInput struct {
	Slug string `path:"slug" doc:"Post slug"`
}

// UpdatePostInput wraps the update post request for Huma.
type UpdatePostInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Post ID"`
	Body          service.UpdatePostRequest
}

// DeletePostInput contains parameters for deleting a post.
type DeletePostInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Post ID"`
}

// TagPostShopRequest names the shop to tag, empty to clear.
type TagPostShopRequest struct {
	ShopID string `json:"shop_id,omitempty" doc:"Shop ID, empty or omitted clears the tag"`
}

// TagPostShopInput wraps the tag request for Huma.
type TagPostShopInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Post ID"`
	Body          TagPostShopRequest
}

// === Handlers ===

func (s *Server) handleCreatePost(ctx context.Context, input *CreatePostInput) (*PostOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	post, err := s.services.Post.CreatePost(ctx, actor, input.Body)
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: post}, nil
}

func (s *Server) handleListPosts(ctx context.Context, input *ListPostsInput) (*ListPostsOutput, error) {
	posts, err := s.services.Post.ListPosts(ctx, service.ListPostsParams{
		CategoryID: input.CategoryID,
		ShopID:     input.ShopID,
	})
	if err != nil {
		return nil, err
	}

	return &ListPostsOutput{Body: ListPostsResponse{Posts: posts}}, nil
}

func (s *Server) handleGetMyPosts(ctx context.Context, input *GetMyPostsInput) (*MyPostsOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Post.GetMyPosts(ctx, actor, service.MyPostsParams{
		Page:       input.Page,
		Limit:      input.Limit,
		CategoryID: input.CategoryID,
		Search:     input.Search,
	})
	if err != nil {
		return nil, err
	}

	return &MyPostsOutput{Body: MyPostsResponse{
		Posts:   result.Items,
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		HasMore: result.HasMore,
	}}, nil
}

func (s *Server) handleGetPostBySlug(ctx context.Context, input *GetPostBySlugInput) (*PostOutput, error) {
	post, err := s.services.Post.GetPostBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: post}, nil
}

func (s *Server) handleUpdatePost(ctx context.Context, input *UpdatePostInput) (*PostOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	post, err := s.services.Post.UpdatePost(ctx, actor, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: post}, nil
}

func (s *Server) handleDeletePost(ctx context.Context, input *DeletePostInput) (*MessageOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Post.DeletePost(ctx, actor, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Post deleted"}}, nil
}

func (s *Server) handleTagPostShop(ctx context.Context, input *TagPostShopInput) (*PostOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	post, err := s.services.Post.TagShop(ctx, actor, input.ID, input.Body.ShopID)
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: post}, nil
}
