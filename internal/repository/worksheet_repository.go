package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/tripveda/tour-backoffice/internal/model"
	"github.com/tripveda/tour-backoffice/internal/sheet"
)

// WorksheetRepo loads and stores the per-booking worksheet document.  The
// sheet body lives in a JSON column; one row per booking, upserted on save.
type WorksheetRepo struct {
	db *sql.DB
}

// NewWorksheetRepo returns a new WorksheetRepo bound to the given database.
func NewWorksheetRepo(db *sql.DB) *WorksheetRepo { return &WorksheetRepo{db: db} }

// Load fetches the worksheet for a booking.  A booking without a worksheet
// yields (nil, nil): first generation has no previous sheet to merge with
// and that is not an error.
func (r *WorksheetRepo) Load(ctx context.Context, bookingID uint64) (*model.Worksheet, error) {
	const q = `SELECT id, booking_id, data, created_at, updated_at
	           FROM worksheets WHERE booking_id = ?`
	var w model.Worksheet
	var data []byte
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(&w.ID, &w.BookingID, &data, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &w.Data); err != nil {
		return nil, err
	}
	return &w, nil
}

// Save upserts the worksheet body for a booking and reads the stored row
// back so the caller gets ids and timestamps.
func (r *WorksheetRepo) Save(ctx context.Context, bookingID uint64, s *sheet.Sheet) (*model.Worksheet, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	const qUpsert = `INSERT INTO worksheets (booking_id, data) VALUES (?, ?)
	                 ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, qUpsert, bookingID, data); err != nil {
		return nil, err
	}
	return r.Load(ctx, bookingID)
}
