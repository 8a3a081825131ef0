package api

import (
	"github.com/shopfolio/shopfolio-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth     *service.AuthService
	Session  *service.SessionService
	Shop     *service.ShopService
	Product  *service.ProductService
	Album    *service.AlbumService
	Post     *service.PostService
	Category *service.CategoryService
	Search   *service.SearchService
	Upload   *service.UploadService
}
