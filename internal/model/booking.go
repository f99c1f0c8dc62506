package model

import (
	"time"

	"github.com/tripveda/tour-backoffice/internal/itinerary"
)

// ClientDetails captures who is travelling.  It is embedded in the booking
// document and rendered on the worksheet export header.
//
// Fields:
//  Name       – client full name.
//  Mobile     – contact number.
//  Email      – optional contact email.
//  Travelers  – party size, used for per-person transport math.
//  TravelDate – trip start date as entered (DD-MM-YYYY).
type ClientDetails struct {
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email,omitempty"`
	Travelers  int    `json:"travelers"`
	TravelDate string `json:"travelDate"`
}

// TripDates holds the derived trip boundaries.  Start mirrors the client's
// travel date; End is start plus the itinerary length.
type TripDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ItineraryDay is one day of the selected itinerary template.
type ItineraryDay struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
}

// VehiclePlan carries the booking's transport figures.  Kilometre-based
// vehicle cost plus flat charges for parking, assistance and boat rides.
type VehiclePlan struct {
	Km         float64 `json:"km"`
	PricePerKm float64 `json:"pricePerKm"`
	Parking    float64 `json:"parking,omitempty"`
	Assistance float64 `json:"assistance,omitempty"`
	Boat       float64 `json:"boat,omitempty"`
}

// AddOn is a named extra charge attached to the booking.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ItineraryData describes the day-by-day plan the booking is built on.
//
// Fields:
//  Days           – ordered itinerary days; the index maps onto calendar dates.
//  Vehicle        – transport figures.
//  PickupLocation – derived from the first day's location.
//  DropLocation   – derived from the last day's location.
type ItineraryData struct {
	Days           []ItineraryDay `json:"days"`
	Vehicle        VehiclePlan    `json:"vehicle"`
	PickupLocation string         `json:"pickupLocation,omitempty"`
	DropLocation   string         `json:"dropLocation,omitempty"`
}

// BookingDocument is the JSON body persisted in the bookings.doc column.
// Everything the reconciliation engine produced is embedded here so reads
// never have to re-resolve the catalogue.
type BookingDocument struct {
	ClientDetails ClientDetails       `json:"clientDetails"`
	TripDates     TripDates           `json:"tripDates"`
	ItineraryData ItineraryData       `json:"itineraryData"`
	AddOns        []AddOn             `json:"addons,omitempty"`
	Itinerary     *itinerary.Resolved `json:"itinerary,omitempty"`
}

// Booking is one tour booking row.
//
// Fields:
//  ID          – primary key identifier.
//  Reference   – human booking reference (RT001, RT002, ...), unique.
//  Document    – the full booking document body.
//  UpdateCount – bumped on every update, drives change auditing.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64          `json:"id"`
	Reference   string          `json:"bookingId"`
	Document    BookingDocument `json:"document"`
	UpdateCount int             `json:"updateCount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
