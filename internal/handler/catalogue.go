package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tripveda/tour-backoffice/internal/model"
	"github.com/tripveda/tour-backoffice/internal/repository"
)

// CatalogueHandler exposes the hotel catalogue endpoints: browse and fetch
// for the booking UI, plus the staff price update.  Writes invalidate the
// per-hotel resolution cache so a repriced hotel never resolves stale.
type CatalogueHandler struct {
	Hotels *repository.HotelRepo
	Cache  *repository.CachedHotelLookup
}

// NewCatalogueHandler constructs a CatalogueHandler.  cache may be nil when
// Redis is not configured.
func NewCatalogueHandler(h *repository.HotelRepo, cache *repository.CachedHotelLookup) *CatalogueHandler {
	return &CatalogueHandler{Hotels: h, Cache: cache}
}

// hotelUpdateRequest carries the mutable catalogue fields of one hotel.
type hotelUpdateRequest struct {
	Name             string  `json:"name"`
	Image            string  `json:"image"`
	Price            float64 `json:"price"`
	Rating           float64 `json:"rating"`
	Reviews          int     `json:"reviews"`
	GoogleReviewLink string  `json:"googleReviewLink"`
	IsActive         bool    `json:"isActive"`
}

// ListHotels handles GET /v1/hotels?location=City.
func (h *CatalogueHandler) ListHotels(c echo.Context) error {
	location := strings.TrimSpace(c.QueryParam("location"))
	if location == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "location is required"})
	}
	items, err := h.Hotels.ListByLocation(c.Request().Context(), location)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetHotel handles GET /v1/hotels/:id.
func (h *CatalogueHandler) GetHotel(c echo.Context) error {
	hotel, err := h.Hotels.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, hotel)
}

// UpdateHotel handles PUT /v1/hotels/:id.  It rewrites the mutable catalogue
// fields and drops the hotel's cached resolution record.
func (h *CatalogueHandler) UpdateHotel(c echo.Context) error {
	id := c.Param("id")
	var req hotelUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "price must not be negative"})
	}
	hotel := &model.Hotel{
		Name:             strings.TrimSpace(req.Name),
		Image:            req.Image,
		Price:            req.Price,
		Rating:           req.Rating,
		Reviews:          req.Reviews,
		GoogleReviewLink: req.GoogleReviewLink,
		IsActive:         req.IsActive,
	}
	if err := h.Hotels.UpdateHotel(c.Request().Context(), id, hotel); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if h.Cache != nil {
		h.Cache.Invalidate(c.Request().Context(), id)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "hotel updated"})
}
