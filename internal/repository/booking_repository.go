package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/tripveda/tour-backoffice/internal/model"
)

// ErrBookingNotFound is returned when a booking cannot be found in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides CRUD operations for bookings.  The booking body is
// a JSON document column; only the identity, reference and audit fields are
// first-class columns so the document can evolve without migrations.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a new booking.  The caller supplies the already-assigned
// reference; on success the booking's ID and timestamps are populated.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	doc, err := json.Marshal(b.Document)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO bookings (reference, doc, update_count) VALUES (?, ?, 0)`
	res, err := r.db.ExecContext(ctx, qInsert, b.Reference, doc)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const qSelect = `SELECT update_count, created_at, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, b.ID).Scan(&b.UpdateCount, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID fetches a booking by primary key.  Returns ErrBookingNotFound when
// no row matches.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, reference, doc, update_count, created_at, updated_at FROM bookings WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetByReference fetches a booking by its human reference (RT001, ...).
func (r *BookingRepo) GetByReference(ctx context.Context, ref string) (*model.Booking, error) {
	const q = `SELECT id, reference, doc, update_count, created_at, updated_at FROM bookings WHERE reference = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, ref))
}

func (r *BookingRepo) scanOne(row *sql.Row) (*model.Booking, error) {
	var b model.Booking
	var doc []byte
	if err := row.Scan(&b.ID, &b.Reference, &doc, &b.UpdateCount, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &b.Document); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bookings newest first.  limit <= 0 means no limit.
func (r *BookingRepo) List(ctx context.Context, limit int) ([]*model.Booking, error) {
	q := `SELECT id, reference, doc, update_count, created_at, updated_at
	      FROM bookings ORDER BY id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Booking
	for rows.Next() {
		var b model.Booking
		var doc []byte
		if err := rows.Scan(&b.ID, &b.Reference, &doc, &b.UpdateCount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(doc, &b.Document); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the booking document and bumps the update counter.  The
// refreshed counter and timestamp are read back into b.  Returns
// ErrBookingNotFound when the row does not exist.
func (r *BookingRepo) Update(ctx context.Context, b *model.Booking) error {
	doc, err := json.Marshal(b.Document)
	if err != nil {
		return err
	}
	const q = `UPDATE bookings
	           SET doc = ?, update_count = update_count + 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, doc, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	const qSelect = `SELECT update_count, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, b.ID).Scan(&b.UpdateCount, &b.UpdatedAt)
}

// Delete removes a booking and its worksheet in one transaction.  Returns
// ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM worksheets WHERE booking_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrBookingNotFound
		return err
	}
	return nil
}
