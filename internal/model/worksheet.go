package model

import (
	"time"

	"github.com/tripveda/tour-backoffice/internal/sheet"
)

// Worksheet is the persisted operational worksheet for one booking.  Exactly
// one worksheet exists per booking; regeneration merges into it rather than
// replacing it.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – owning booking, unique.
//  Data      – the worksheet body (rows + budget), stored as JSON.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Worksheet struct {
	ID        uint64      `json:"id"`
	BookingID uint64      `json:"bookingId"`
	Data      sheet.Sheet `json:"sheetData"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
