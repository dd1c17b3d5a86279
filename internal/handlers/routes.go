package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/metrics"
	"github.com/apex-supplements/store-api/internal/middleware"
	"github.com/apex-supplements/store-api/internal/repository"
	"github.com/apex-supplements/store-api/internal/service"
)

// RouterDeps are the collaborators the HTTP API is assembled from.
type RouterDeps struct {
	Catalog        repository.CatalogRepository
	Users          repository.UserRepository
	Token          auth.StaticToken
	Metrics        *metrics.Metrics
	Log            *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires services, handlers and middleware into a chi router.
func NewRouter(deps RouterDeps) http.Handler {
	cartService := service.NewCartService(deps.Catalog, deps.Token)
	productService := service.NewProductService(deps.Catalog)
	authService := service.NewAuthService(deps.Users, deps.Catalog, deps.Token)

	healthHandler := NewHealthHandler(deps.Catalog, deps.Log)
	cartHandler := NewCartHandler(cartService, deps.Metrics, deps.Log)
	productHandler := NewProductHandler(productService, deps.Log)
	authHandler := NewAuthHandler(authService, deps.Log)
	viewedHandler := NewViewedHandler(deps.Token, deps.Log)

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(deps.Log))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "api_key"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(NotFound(deps.Log))
	r.MethodNotAllowed(MethodNotAllowed(deps.Log))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// The browser client posts here directly.
	r.Post("/cart/validate", cartHandler.ValidateCart)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/cart/validate", cartHandler.ValidateCart)
		r.Post("/products/viewed", viewedHandler.Acknowledge)

		// Catalog read endpoints require the login token
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(deps.Token))
			r.Get("/products", productHandler.ListProducts)
			r.Get("/products/featured", productHandler.ListFeatured)
			r.Get("/products/{productId}", productHandler.GetProduct)
			r.Get("/categories", productHandler.ListCategories)
		})
	})

	return r
}
