package model

import "time"

// Hotel is one catalogue hotel row, joined with its category and location
// names.  IDs are 24-character hex identifiers carried over from the legacy
// catalogue import, stored as CHAR(24).
//
// Fields:
//  ID               – legacy hex identifier, primary key.
//  Name             – hotel display name.
//  Image            – primary image URL.
//  Category         – category name (Standard, Deluxe, ...).
//  Location         – city or area name.
//  Rating           – aggregate review rating.
//  Reviews          – review count.
//  Price            – double room sticker price.
//  GoogleReviewLink – optional external review URL.
//  IsActive         – soft-delete flag; inactive hotels resolve as not found.
type Hotel struct {
	ID               string    // hotels.id
	Name             string    // hotels.name
	Image            string    // hotels.image
	Category         string    // categories.name
	Location         string    // locations.name
	Rating           float64   // hotels.rating
	Reviews          int       // hotels.reviews
	Price            float64   // hotels.price
	GoogleReviewLink string    // hotels.google_review_link
	IsActive         bool      // hotels.is_active
	CreatedAt        time.Time // hotels.created_at
	UpdatedAt        time.Time // hotels.updated_at
}
