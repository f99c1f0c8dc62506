package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tripveda/tour-backoffice/internal/config"
	"github.com/tripveda/tour-backoffice/internal/handler"
	"github.com/tripveda/tour-backoffice/internal/middleware"
)

// RegisterRoutes registers routes that have no collaborators on the provided
// Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint is used by load balancers and monitoring systems
	// to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterBookings registers the booking and worksheet endpoints under /v1.
// Rate limiting applies to the whole group; response caching only to the
// reads, since booking saves must always re-resolve the catalogue.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, w *handler.WorksheetHandler, rdb *redis.Client) {
	g := e.Group("/v1", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings", b.ListBookings)
	g.GET("/bookings/:id", b.GetBooking)
	g.PUT("/bookings/:id", b.UpdateBooking)
	g.DELETE("/bookings/:id", b.DeleteBooking)

	g.POST("/bookings/:id/worksheet/generate", w.GenerateWorksheet)
	g.GET("/bookings/:id/worksheet", w.GetWorksheet)
	g.PUT("/bookings/:id/worksheet", w.SaveWorksheet)
	g.GET("/bookings/:id/worksheet/download", w.DownloadWorksheet)
}

// RegisterCatalogue registers the hotel catalogue endpoints.  The reads are
// the only routes with response caching: the catalogue changes rarely and
// the booking UI polls it constantly.  The cache middleware only captures
// the methods it is configured for, so the update passes straight through.
func RegisterCatalogue(e *echo.Echo, h *handler.CatalogueHandler, rdb *redis.Client) {
	g := e.Group("/v1",
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)
	g.GET("/hotels", h.ListHotels)
	g.GET("/hotels/:id", h.GetHotel)
	g.PUT("/hotels/:id", h.UpdateHotel)
}
