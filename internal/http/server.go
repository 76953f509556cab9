// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"oxa/internal/http/handlers"
	"oxa/internal/http/middleware"
	"oxa/internal/modules/catalog"
	"oxa/internal/modules/order"
	"oxa/internal/modules/stats"
)

// Sessions bundles the lifecycle the server needs on the session store.
type Sessions interface {
	handlers.Sessions
	middleware.SessionResolver
}

type ServerDeps struct {
	Orders   *order.Service
	Catalog  *catalog.Service
	Watcher  order.Watcher
	Stats    stats.Source
	Sessions Sessions
	Uploader handlers.Uploader
	Log      *slog.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(s.deps.Log), middleware.Recovery(s.deps.Log))

	authHandler := handlers.NewAuthHandler(s.deps.Catalog, s.deps.Sessions)
	r.POST("/api/login", authHandler.Login)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(s.deps.Sessions))
	api.POST("/logout", authHandler.Logout)

	orderHandler := handlers.NewOrderHandler(s.deps.Orders, s.deps.Watcher, s.deps.Log)
	api.GET("/orders/feed", orderHandler.Feed)
	api.POST("/orders/:id/advance", orderHandler.Advance)

	dashboardHandler := handlers.NewDashboardHandler(s.deps.Stats, s.deps.Log)
	api.GET("/dashboard/metrics", dashboardHandler.Metrics)
	api.GET("/dashboard/revenue", dashboardHandler.Revenue)
	api.GET("/dashboard/top-products", dashboardHandler.TopProducts)

	productHandler := handlers.NewProductHandler(s.deps.Catalog)
	api.GET("/products", productHandler.List)
	api.GET("/products/categories", productHandler.Categories)
	api.POST("/products", productHandler.Create)
	api.PUT("/products/:id", productHandler.Update)
	api.DELETE("/products/:id", productHandler.Delete)

	settingsHandler := handlers.NewSettingsHandler(s.deps.Catalog)
	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", settingsHandler.Update)

	if s.deps.Uploader != nil {
		uploadHandler := handlers.NewUploadHandler(s.deps.Uploader)
		api.POST("/upload", uploadHandler.Upload)
	}

	return r
}
