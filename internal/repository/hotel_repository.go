// Package repository contains data access logic separated from HTTP handlers.
// This file implements the hotel catalogue queries.  The reconciliation engine
// depends on resolving an arbitrary id set in a single round trip, so the
// batched lookup here is the hot path of every booking save.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tripveda/tour-backoffice/internal/itinerary"
	"github.com/tripveda/tour-backoffice/internal/model"
)

// ErrHotelNotFound is returned when a hotel cannot be found in the DB.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelRepo encapsulates all database queries related to the hotel
// catalogue.  It depends on a sql.DB connection configured elsewhere.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// GetByID fetches a single hotel joined with its category and location
// names.  It returns ErrHotelNotFound when no active row matches.
func (r *HotelRepo) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	const q = `SELECT h.id, h.name, h.image, c.name, l.name, h.rating, h.reviews,
	                  h.price, h.google_review_link, h.is_active, h.created_at, h.updated_at
	           FROM hotels h
	           JOIN categories c ON c.id = h.category_id
	           JOIN locations l ON l.id = h.location_id
	           WHERE h.id = ? AND h.is_active = 1`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&h.ID, &h.Name, &h.Image, &h.Category, &h.Location, &h.Rating, &h.Reviews,
		&h.Price, &h.GoogleReviewLink, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ResolveHotels fetches display records for the given id set in one query.
// Ids absent from the result were not found (or inactive); the caller maps
// those to its sentinel records.  An empty id set returns an empty map
// without touching the database.
func (r *HotelRepo) ResolveHotels(ctx context.Context, ids []string) (map[string]itinerary.DisplayRecord, error) {
	out := make(map[string]itinerary.DisplayRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	q := `SELECT h.id, h.name, h.image, c.name, l.name, h.rating, h.reviews,
	             h.price, h.google_review_link
	      FROM hotels h
	      JOIN categories c ON c.id = h.category_id
	      JOIN locations l ON l.id = h.location_id
	      WHERE h.is_active = 1 AND h.id IN (` + placeholders + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rec itinerary.DisplayRecord
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Image, &rec.Category, &rec.Location,
			&rec.Rating, &rec.Reviews, &rec.Price, &rec.GoogleReviewLink,
		); err != nil {
			return nil, err
		}
		out[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateHotel rewrites the mutable catalogue fields of one hotel.  Category
// and location assignments are fixed at import time and not editable here.
// It returns ErrHotelNotFound when the id matches no row, active or not.
func (r *HotelRepo) UpdateHotel(ctx context.Context, id string, h *model.Hotel) error {
	var exists string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM hotels WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHotelNotFound
		}
		return err
	}
	const q = `UPDATE hotels
	           SET name = ?, image = ?, price = ?, rating = ?, reviews = ?,
	               google_review_link = ?, is_active = ?, updated_at = NOW()
	           WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q,
		h.Name, h.Image, h.Price, h.Rating, h.Reviews, h.GoogleReviewLink, h.IsActive, id,
	)
	return err
}

// ListByLocation returns the active hotels of one location ordered by name.
// It backs the catalogue browse endpoint the booking UI uses to offer
// candidates.
func (r *HotelRepo) ListByLocation(ctx context.Context, location string) ([]*model.Hotel, error) {
	const q = `SELECT h.id, h.name, h.image, c.name, l.name, h.rating, h.reviews,
	                  h.price, h.google_review_link, h.is_active, h.created_at, h.updated_at
	           FROM hotels h
	           JOIN categories c ON c.id = h.category_id
	           JOIN locations l ON l.id = h.location_id
	           WHERE h.is_active = 1 AND l.name = ?
	           ORDER BY h.name`
	rows, err := r.db.QueryContext(ctx, q, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Hotel
	for rows.Next() {
		h := new(model.Hotel)
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Image, &h.Category, &h.Location, &h.Rating, &h.Reviews,
			&h.Price, &h.GoogleReviewLink, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
