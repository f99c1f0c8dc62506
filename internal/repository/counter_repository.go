package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// bookingCounter is the counters row backing booking references.
const bookingCounter = "booking_ref"

// CounterRepo hands out monotonically increasing sequence values from the
// counters table.  It backs the human booking references (RT001, RT002, ...)
// which must never repeat even across deletes.
type CounterRepo struct {
	db *sql.DB
}

// NewCounterRepo returns a new CounterRepo bound to the given database.
func NewCounterRepo(db *sql.DB) *CounterRepo { return &CounterRepo{db: db} }

// Next atomically increments and returns the named counter, creating it at 1
// on first use.  The LAST_INSERT_ID trick makes the read-back race-free
// without an explicit transaction.
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	const qBump = `INSERT INTO counters (name, value) VALUES (?, 1)
	               ON DUPLICATE KEY UPDATE value = LAST_INSERT_ID(value + 1)`
	res, err := r.db.ExecContext(ctx, qBump, name)
	if err != nil {
		return 0, err
	}
	n, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// fresh row: LAST_INSERT_ID reflects the auto-inc key, not the value
		n = 1
	}
	return n, nil
}

// NextBookingReference returns the next human booking reference.
func (r *CounterRepo) NextBookingReference(ctx context.Context) (string, error) {
	n, err := r.Next(ctx, bookingCounter)
	if err != nil {
		return "", err
	}
	return FormatBookingReference(n), nil
}

// FormatBookingReference renders a sequence value as a booking reference.
// Values beyond 999 simply grow wider.
func FormatBookingReference(n int64) string {
	return fmt.Sprintf("RT%03d", n)
}
