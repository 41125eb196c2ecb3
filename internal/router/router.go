package router

import (
	"net/http"

	alertH "github.com/fekuna/florist-marketplace-service/internal/alert/handler"
	catalogH "github.com/fekuna/florist-marketplace-service/internal/catalog/handler"
	listingH "github.com/fekuna/florist-marketplace-service/internal/listing/handler"
	orderH "github.com/fekuna/florist-marketplace-service/internal/order/handler"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
)

type Config struct {
	JWTSecret  []byte
	RateLimit  float64
	RateBurst  int
	CORSOrigin string
}

type Handlers struct {
	Catalog *catalogH.CatalogHandler
	Listing *listingH.ListingHandler
	Alert   *alertH.AlertHandler
	Order   *orderH.OrderHandler
}

// New builds the REST API served next to the gRPC services.
func New(cfg Config, h Handlers, log logger.ZapLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(cfg.CORSOrigin))
	if cfg.RateLimit > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := api.Group("/products")
	products.GET("", h.Catalog.ListProducts)
	products.GET("/trending", h.Catalog.Trending)
	products.GET("/:canonicalName", h.Catalog.ProductDetail)

	vendor := api.Group("/vendor", middleware.Authenticate(cfg.JWTSecret), middleware.RequireVendor())
	vendor.GET("/products", h.Listing.List)
	vendor.POST("/products", h.Listing.Create)
	vendor.PUT("/products/:id", h.Listing.Update)
	vendor.DELETE("/products/:id", h.Listing.Delete)

	vendor.PUT("/notifications/read", h.Alert.MarkRead)
	vendor.PUT("/notifications/read-all", h.Alert.MarkAllRead)
	vendor.GET("/notifications/:vendorId", h.Alert.List)
	vendor.GET("/notifications/:vendorId/unread-count", h.Alert.UnreadCount)

	orders := api.Group("/orders", middleware.Authenticate(cfg.JWTSecret), middleware.RequireBuyer())
	orders.POST("", h.Order.Place)
	orders.GET("", h.Order.List)

	return r
}
