package handler // handler package contains the booking endpoints

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tripveda/tour-backoffice/internal/itinerary"
	"github.com/tripveda/tour-backoffice/internal/model"
	"github.com/tripveda/tour-backoffice/internal/queue"
	"github.com/tripveda/tour-backoffice/internal/repository"
	queue_publisher "github.com/tripveda/tour-backoffice/internal/service"
	"github.com/tripveda/tour-backoffice/internal/sheet"
)

// BookingHandler wires the booking endpoints to their collaborators: the
// reconciliation engine, the repositories, and the event publisher.  Every
// create and update resolves the itinerary, persists the booking, and
// re-reconciles the worksheet in one request.
type BookingHandler struct {
	Bookings   *repository.BookingRepo
	Counters   *repository.CounterRepo
	Worksheets *repository.WorksheetRepo
	Engine     *itinerary.Engine
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(b *repository.BookingRepo, c *repository.CounterRepo, w *repository.WorksheetRepo, e *itinerary.Engine) *BookingHandler {
	return &BookingHandler{Bookings: b, Counters: c, Worksheets: w, Engine: e}
}

// bookingRequest is the wire shape of a booking create/update body.  The
// selection matrices arrive raw and are normalized by the engine.
type bookingRequest struct {
	ClientDetails    model.ClientDetails      `json:"clientDetails"`
	ItineraryData    model.ItineraryData      `json:"itineraryData"`
	AddOns           []model.AddOn            `json:"addons"`
	Selections       itinerary.RawMatrix      `json:"hotelSelections"`
	Overrides        itinerary.RawMatrix      `json:"userSelectedHotels"`
	TemplateHotels   itinerary.RawMatrix      `json:"templateHotels"`
	SelectedCategory string                   `json:"selectedCategory"`
	Pricing          map[string]any           `json:"pricing"`
	Offers           map[string]any           `json:"offers"`
	Festival         *itinerary.FestivalOffer `json:"festivalOffer"`
}

// buildDocument resolves the itinerary for req and assembles the persisted
// booking document, deriving trip dates and pickup/dropoff from the plan.
func (h *BookingHandler) buildDocument(ctx context.Context, req *bookingRequest) (model.BookingDocument, error) {
	resolved, err := h.Engine.Resolve(ctx, itinerary.Input{
		Selections:       req.Selections,
		Overrides:        req.Overrides,
		TemplateHotels:   req.TemplateHotels,
		TravelDate:       req.ClientDetails.TravelDate,
		SelectedCategory: req.SelectedCategory,
		Pricing:          req.Pricing,
		Offers:           req.Offers,
		Festival:         req.Festival,
	})
	if err != nil {
		return model.BookingDocument{}, err
	}

	doc := model.BookingDocument{
		ClientDetails: req.ClientDetails,
		ItineraryData: req.ItineraryData,
		AddOns:        req.AddOns,
		Itinerary:     resolved,
	}
	if days := len(req.ItineraryData.Days); days > 0 {
		doc.ItineraryData.PickupLocation = req.ItineraryData.Days[0].Location
		doc.ItineraryData.DropLocation = req.ItineraryData.Days[days-1].Location
		end := resolved.TripStart.AddDate(0, 0, days-1)
		doc.TripDates = model.TripDates{
			Start: resolved.TripStart.Format("02-01-2006"),
			End:   end.Format("02-01-2006"),
		}
	}
	return doc, nil
}

// sheetInput projects a booking document into the worksheet reconciler's
// input: one stay per day, place and meal slot for the selected category,
// taken from the resolved selection matrix.
func sheetInput(doc model.BookingDocument) sheet.Input {
	in := sheet.Input{
		TravelDate: time.Now().UTC(),
		Travelers:  doc.ClientDetails.Travelers,
		Vehicle: sheet.Vehicle{
			Km:         doc.ItineraryData.Vehicle.Km,
			PricePerKm: doc.ItineraryData.Vehicle.PricePerKm,
			Parking:    doc.ItineraryData.Vehicle.Parking,
			Assistance: doc.ItineraryData.Vehicle.Assistance,
			Boat:       doc.ItineraryData.Vehicle.Boat,
		},
	}
	for _, addon := range doc.AddOns {
		in.AddOns = append(in.AddOns, sheet.ExtraCharge{Title: addon.Name, Price: addon.Price})
	}
	if doc.Itinerary == nil {
		return in
	}
	in.TravelDate = doc.Itinerary.TripStart

	category := selectedCategory(doc)
	days := doc.Itinerary.Selections[category]
	for i := range doc.ItineraryData.Days {
		plan := sheet.DayPlan{Stays: map[string]map[string]sheet.StayHotel{}}
		for place, meals := range days[strconv.Itoa(i+1)] {
			for meal, options := range meals {
				for _, opt := range options {
					if !opt.Selected {
						continue
					}
					if plan.Stays[place] == nil {
						plan.Stays[place] = map[string]sheet.StayHotel{}
					}
					plan.Stays[place][meal] = sheet.StayHotel{
						Name:     opt.Name,
						Category: opt.Category,
						Price:    opt.Price,
					}
				}
			}
		}
		in.Days = append(in.Days, plan)
	}
	return in
}

// selectedCategory picks the category the worksheet is built from: the one
// the client chose, or the only category present in the resolved matrix.
func selectedCategory(doc model.BookingDocument) string {
	if doc.Itinerary == nil {
		return ""
	}
	for cat, entry := range doc.Itinerary.Pricing {
		if entry.Selected {
			if _, ok := doc.Itinerary.Selections[cat]; ok {
				return cat
			}
		}
	}
	for cat := range doc.Itinerary.Selections {
		return cat
	}
	return ""
}

// reconcileWorksheet regenerates the booking's worksheet, merging with the
// stored one.  Worksheet failures are logged, not returned: the booking save
// already succeeded and the sheet can be regenerated on demand.
func (h *BookingHandler) reconcileWorksheet(ctx context.Context, b *model.Booking) {
	var prev *sheet.Sheet
	if w, err := h.Worksheets.Load(ctx, b.ID); err != nil {
		log.Printf("booking: worksheet load failed for %s: %v", b.Reference, err)
		return
	} else if w != nil {
		prev = &w.Data
	}
	next := sheet.Reconcile(sheetInput(b.Document), prev)
	if _, err := h.Worksheets.Save(ctx, b.ID, next); err != nil {
		log.Printf("booking: worksheet save failed for %s: %v", b.Reference, err)
	}
}

// publishEvent emits a booking lifecycle event in the background.
func publishEvent(b *model.Booking, action string) {
	ev := queue.BookingUpdatedEvent{
		BookingID:   b.ID,
		Reference:   b.Reference,
		Action:      action,
		ClientName:  b.Document.ClientDetails.Name,
		Travelers:   b.Document.ClientDetails.Travelers,
		TravelDate:  b.Document.ClientDetails.TravelDate,
		UpdateCount: b.UpdateCount,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if b.Document.Itinerary != nil {
		ev.GrandTotal = b.Document.Itinerary.GrandTotal
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingUpdated(ctx, ev)
	}()
}

// CreateBooking handles POST /v1/bookings.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.ClientDetails.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "client name is required"})
	}
	ctx := c.Request().Context()

	doc, err := h.buildDocument(ctx, &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not resolve itinerary"})
	}
	ref, err := h.Counters.NextBookingReference(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not allocate booking reference"})
	}
	b := &model.Booking{Reference: ref, Document: doc}
	if err := h.Bookings.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create booking"})
	}

	h.reconcileWorksheet(ctx, b)
	publishEvent(b, "created")
	return c.JSON(http.StatusCreated, b)
}

// UpdateBooking handles PUT /v1/bookings/:id.  The itinerary is re-resolved,
// the update counter bumped, and the worksheet re-reconciled against the
// stored one so staff edits survive.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	doc, err := h.buildDocument(ctx, &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not resolve itinerary"})
	}
	b.Document = doc
	if err := h.Bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not update booking"})
	}

	h.reconcileWorksheet(ctx, b)
	publishEvent(b, "updated")
	return c.JSON(http.StatusOK, b)
}

// GetBooking handles GET /v1/bookings/:id.  Numeric ids and human references
// (RT001) are both accepted.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	ctx := c.Request().Context()
	param := c.Param("id")

	var b *model.Booking
	var err error
	if id, perr := strconv.ParseUint(param, 10, 64); perr == nil {
		b, err = h.Bookings.GetByID(ctx, id)
	} else {
		b, err = h.Bookings.GetByReference(ctx, param)
	}
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, b)
}

// ListBookings handles GET /v1/bookings with an optional ?limit=N.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = n
	}
	items, err := h.Bookings.List(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if items == nil {
		items = []*model.Booking{}
	}
	return c.JSON(http.StatusOK, items)
}

// DeleteBooking handles DELETE /v1/bookings/:id.  The worksheet is removed
// with the booking.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not delete booking"})
	}
	publishEvent(b, "deleted")
	return c.NoContent(http.StatusNoContent)
}
