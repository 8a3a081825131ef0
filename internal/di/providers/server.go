package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/shopfolio/shopfolio-server/internal/api"
	"github.com/shopfolio/shopfolio-server/internal/config"
	"github.com/shopfolio/shopfolio-server/internal/logger"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Get all services
	authService := do.MustInvoke[*service.AuthService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	shopService := do.MustInvoke[*service.ShopService](i)
	productService := do.MustInvoke[*service.ProductService](i)
	albumService := do.MustInvoke[*service.AlbumService](i)
	postService := do.MustInvoke[*service.PostService](i)
	categoryService := do.MustInvoke[*service.CategoryService](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	uploadService := do.MustInvoke[*service.UploadService](i)

	services := &api.Services{
		Auth:     authService,
		Session:  sessionService,
		Shop:     shopService,
		Product:  productService,
		Album:    albumService,
		Post:     postService,
		Category: categoryService,
		Search:   searchService,
		Upload:   uploadService,
	}

	handler := api.NewServer(api.Options{
		Store:             storeHandle.Store,
		Services:          services,
		Logger:            log.Logger,
		UploadsDir:        cfg.UploadsPath(),
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		AuthRatePerMinute: cfg.Auth.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
