// Package api provides the HTTP API server and handlers for the Shopfolio application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shopfolio/shopfolio-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
	uploadsDir      string
}

// Options configures the API server.
type Options struct {
	Store      *store.Store
	Services   *Services
	Logger     *slog.Logger
	UploadsDir string

	// AllowedOrigins for CORS; defaults to allowing all.
	AllowedOrigins []string
	// AuthRatePerMinute limits login/register attempts per client IP;
	// defaults to 20.
	AuthRatePerMinute int
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(opts Options) *Server {
	router := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	authRate := opts.AuthRatePerMinute
	if authRate <= 0 {
		authRate = 20
	}
	authBurst := max(authRate/2, 1)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("Shopfolio API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           opts.Store,
		services:        opts.Services,
		router:          router,
		api:             api,
		logger:          opts.Logger,
		authRateLimiter: NewRateLimiter(authRate, time.Minute, authBurst),
		uploadsDir:      opts.UploadsDir,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerShopRoutes()
	s.registerProductRoutes()
	s.registerAlbumRoutes()
	s.registerPostRoutes()
	s.registerCategoryRoutes()
	s.registerSearchRoutes()
	s.registerUploadRoutes()
	s.registerStaticRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// registerStaticRoutes serves uploaded images from disk. File names are
// server-generated UUIDs, so long-lived caching is safe.
func (s *Server) registerStaticRoutes() {
	if s.uploadsDir == "" {
		return
	}

	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir)))
	s.router.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", CacheOneWeek)
		fileServer.ServeHTTP(w, r)
	})
}
