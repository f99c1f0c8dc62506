// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingUpdatedEvent is published whenever a booking is created or updated.
// It carries enough information for downstream consumers to log, notify or
// trigger analytics without querying the primary database.
type BookingUpdatedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	Reference   string  `json:"reference"`
	Action      string  `json:"action"` // "created" | "updated" | "deleted"
	ClientName  string  `json:"client_name"`
	Travelers   int     `json:"travelers"`
	TravelDate  string  `json:"travel_date"`
	GrandTotal  float64 `json:"grand_total"`
	UpdateCount int     `json:"update_count"`
	OccurredAt  string  `json:"occurred_at"`
}
