package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tripveda/tour-backoffice/internal/model"
	"github.com/tripveda/tour-backoffice/internal/repository"
	"github.com/tripveda/tour-backoffice/internal/sheet"
)

// WorksheetHandler exposes the per-booking worksheet endpoints: generate,
// fetch, staff save, and Excel download.
type WorksheetHandler struct {
	Bookings   *repository.BookingRepo
	Worksheets *repository.WorksheetRepo
}

// NewWorksheetHandler constructs a WorksheetHandler.
func NewWorksheetHandler(b *repository.BookingRepo, w *repository.WorksheetRepo) *WorksheetHandler {
	return &WorksheetHandler{Bookings: b, Worksheets: w}
}

func (h *WorksheetHandler) booking(c echo.Context) (*model.Booking, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return b, nil
}

// GenerateWorksheet handles POST /v1/bookings/:id/worksheet/generate.  It
// rebuilds the worksheet from the booking, merging with the stored sheet so
// staff edits and row history survive regeneration.
func (h *WorksheetHandler) GenerateWorksheet(c echo.Context) error {
	b, errResp := h.booking(c)
	if b == nil {
		return errResp
	}
	ctx := c.Request().Context()

	var prev *sheet.Sheet
	if w, err := h.Worksheets.Load(ctx, b.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	} else if w != nil {
		prev = &w.Data
	}
	next := sheet.Reconcile(sheetInput(b.Document), prev)
	w, err := h.Worksheets.Save(ctx, b.ID, next)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save worksheet"})
	}
	return c.JSON(http.StatusOK, w)
}

// GetWorksheet handles GET /v1/bookings/:id/worksheet.
func (h *WorksheetHandler) GetWorksheet(c echo.Context) error {
	b, errResp := h.booking(c)
	if b == nil {
		return errResp
	}
	w, err := h.Worksheets.Load(c.Request().Context(), b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "worksheet not found"})
	}
	return c.JSON(http.StatusOK, w)
}

// SaveWorksheet handles PUT /v1/bookings/:id/worksheet.  The staff UI sends
// the whole edited sheet body; it replaces the stored one as-is.  Concurrent
// saves are last-writer-wins.
func (h *WorksheetHandler) SaveWorksheet(c echo.Context) error {
	b, errResp := h.booking(c)
	if b == nil {
		return errResp
	}
	var body struct {
		SheetData sheet.Sheet `json:"sheetData"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(body.SheetData.Rows) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sheetData is required"})
	}
	w, err := h.Worksheets.Save(c.Request().Context(), b.ID, &body.SheetData)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save worksheet"})
	}
	return c.JSON(http.StatusOK, w)
}

// DownloadWorksheet handles GET /v1/bookings/:id/worksheet/download and
// streams the xlsx rendering of the stored sheet.
func (h *WorksheetHandler) DownloadWorksheet(c echo.Context) error {
	b, errResp := h.booking(c)
	if b == nil {
		return errResp
	}
	w, err := h.Worksheets.Load(c.Request().Context(), b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "worksheet not found"})
	}

	client := b.Document.ClientDetails
	data, err := sheet.BuildWorkbook(&w.Data, sheet.ExportMeta{
		ClientName: client.Name,
		Mobile:     client.Mobile,
		Travelers:  client.Travelers,
		Reference:  b.Reference,
		TravelDate: client.TravelDate,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not render worksheet"})
	}

	filename := sheet.ExportFilename(client.Name, time.Now().UTC())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%s`, filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
