// Package sheet builds and maintains the operational worksheet derived from a
// booking.  Regenerating a worksheet after a booking change is a merge, not a
// rebuild: rows the staff touched keep their manual values, rows the booking
// changed keep a one-step history of what they replaced, and rows that fell
// out of the booking stay visible as tombstones.
package sheet

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Row type tags.
const (
	RowDay       = "day"
	RowTransport = "transport"
	RowSummary   = "summary"
)

// rowDateFormat renders sheet dates like "12-Jan-25".
const rowDateFormat = "02-Jan-06"

// PreviousHotel is one entry of a day row's replacement history.  The history
// holds at most the immediately replaced hotel; it is reset on every booking
// change so stale entries never accumulate.
type PreviousHotel struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	MealType string  `json:"mealType"`
	Category string  `json:"category"`
}

// ExtraCharge is a flat add-on charge, either derived from the booking or
// entered by the staff on the transport row.
type ExtraCharge struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// TransportDetails carries the transport row's figures.  VehicleKm and
// VehiclePricePerKm come from the booking when set there; staff-entered
// values survive regeneration whenever the booking contributes zero.
type TransportDetails struct {
	PerPerson              float64       `json:"perPerson"`
	Nights                 int           `json:"nights"`
	Parking                float64       `json:"parking"`
	Assistance             float64       `json:"assistance"`
	Boat                   float64       `json:"boat"`
	VehicleKm              float64       `json:"vehicleKm"`
	VehiclePricePerKm      float64       `json:"vehiclePricePerKm"`
	CalculatedVehicleTotal float64       `json:"calculatedVehicleTotal"`
	Others                 []ExtraCharge `json:"others"`
}

// Row is one worksheet row.  Which fields are meaningful depends on Type:
// day rows carry the stay and pricing columns, transport rows carry
// Transport, summary rows carry Label and Value.
type Row struct {
	Type string `json:"type"`

	Date            string          `json:"date,omitempty"`
	Place           string          `json:"place,omitempty"`
	HotelName       string          `json:"hotelName,omitempty"`
	Category        string          `json:"category,omitempty"`
	MealType        string          `json:"mealType,omitempty"`
	DoubleRoomPrice float64         `json:"doubleRoomPrice"`
	RoomCount       int             `json:"roomCount"`
	TotalRoomPrice  float64         `json:"totalRoomPrice"`
	ExtraBedCount   int             `json:"extraBedCount"`
	ExtraBedPrice   float64         `json:"extraBedPrice"`
	TotalExtraPrice float64         `json:"totalExtraPrice"`
	ManualEdit      bool            `json:"isModified"`
	BookingChanged  bool            `json:"isSheetModified"`
	Added           bool            `json:"isNew"`
	Removed         bool            `json:"isRemoved"`
	HotelNotes      string          `json:"hotelNotes,omitempty"`
	CheckIn         string          `json:"checkIn,omitempty"`
	CheckOut        string          `json:"checkOut,omitempty"`
	PreviousHotels  []PreviousHotel `json:"previousHotels,omitempty"`

	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`

	Transport *TransportDetails `json:"transportDetails,omitempty"`
}

// Budget is the worksheet's recomputed totals block.  It is derived from the
// day and transport rows on every reconciliation and never carried over.
type Budget struct {
	Pax                    int     `json:"pax"`
	HotelTotal             float64 `json:"hotelTotal"`
	TransportTotal         float64 `json:"transportTotal"`
	AdditionalChargesTotal float64 `json:"additionalChargesTotal"`
	GrandTotal             float64 `json:"grandTotal"`
}

// Sheet is the persisted worksheet document body.
type Sheet struct {
	Rows   []Row  `json:"rows"`
	Budget Budget `json:"budget"`
}

// StayHotel is the selected hotel for one place and meal slot, as the
// itinerary engine resolved it.
type StayHotel struct {
	Name     string
	Category string
	Price    float64
	Notes    string
}

// DayPlan is one itinerary day's selected stays: place name to meal slot to
// the hotel chosen for it.
type DayPlan struct {
	Stays map[string]map[string]StayHotel
}

// Vehicle carries the booking's transport figures.
type Vehicle struct {
	Km         float64
	PricePerKm float64
	Parking    float64
	Assistance float64
	Boat       float64
}

// Input is everything one reconciliation reads from the booking.
type Input struct {
	TravelDate time.Time
	Travelers  int
	Days       []DayPlan
	Vehicle    Vehicle
	AddOns     []ExtraCharge
}

func rowKey(date, place, mealType string) string {
	return fmt.Sprintf("%s|%s|%s", date, place, mealType)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reconcile builds the worksheet for in, merging against prev (nil for a
// first generation).  Day rows are matched by date, place and meal slot:
// a matched row whose hotel, price or category changed is flagged and keeps
// the replaced hotel as its one-entry history; an unchanged matched row
// carries its manual edits and history forward verbatim; an unmatched new
// row is flagged as added; a previous row no booking slot claims is kept as
// a removed tombstone.  Staff-priced columns always win over booking values
// on matched rows.  The budget block is recomputed from scratch.
func Reconcile(in Input, prev *Sheet) *Sheet {
	travelers := in.Travelers
	if travelers <= 0 {
		travelers = 1
	}

	existing := make(map[string]Row)
	if prev != nil {
		for _, row := range prev.Rows {
			if row.Type == RowDay {
				existing[rowKey(row.Date, row.Place, row.MealType)] = row
			}
		}
	}

	var rows []Row
	var hotelTotal float64
	claimed := make(map[string]struct{})

	for i, day := range in.Days {
		date := in.TravelDate.AddDate(0, 0, i).Format(rowDateFormat)
		for _, place := range sortedKeys(day.Stays) {
			meals := day.Stays[place]
			for _, mealType := range sortedKeys(meals) {
				hotel := meals[mealType]
				if hotel.Name == "" {
					continue
				}
				key := rowKey(date, place, mealType)
				claimed[key] = struct{}{}

				old, matched := existing[key]
				row := Row{
					Type:      RowDay,
					Date:      date,
					Place:     place,
					HotelName: hotel.Name,
					Category:  hotel.Category,
					MealType:  mealType,
					Added:     !matched,
				}
				if matched {
					changed := hotel.Name != old.HotelName ||
						hotel.Price != old.DoubleRoomPrice ||
						hotel.Category != old.Category
					row.ManualEdit = old.ManualEdit
					if changed {
						row.BookingChanged = true
						row.PreviousHotels = []PreviousHotel{{
							Name:     old.HotelName,
							Price:    old.DoubleRoomPrice,
							MealType: mealType,
							Category: old.Category,
						}}
					} else {
						row.PreviousHotels = old.PreviousHotels
					}
					row.BookingChanged = row.BookingChanged || old.BookingChanged

					row.DoubleRoomPrice = old.DoubleRoomPrice
					if row.DoubleRoomPrice == 0 {
						row.DoubleRoomPrice = hotel.Price
					}
					row.RoomCount = old.RoomCount
					if row.RoomCount == 0 {
						row.RoomCount = 1
					}
					row.ExtraBedCount = old.ExtraBedCount
					row.ExtraBedPrice = old.ExtraBedPrice
					row.HotelNotes = old.HotelNotes
					if row.HotelNotes == "" {
						row.HotelNotes = hotel.Notes
					}
					row.CheckIn = old.CheckIn
					row.CheckOut = old.CheckOut
				} else {
					row.DoubleRoomPrice = hotel.Price
					row.RoomCount = 1
					row.HotelNotes = hotel.Notes
				}

				row.TotalRoomPrice = row.DoubleRoomPrice * float64(row.RoomCount)
				row.TotalExtraPrice = float64(row.ExtraBedCount) * row.ExtraBedPrice
				hotelTotal += row.TotalRoomPrice + row.TotalExtraPrice
				rows = append(rows, row)
			}
		}
	}

	// Tombstones for previous day rows no booking slot claims anymore.
	if prev != nil {
		for _, row := range prev.Rows {
			if row.Type != RowDay {
				continue
			}
			if _, ok := claimed[rowKey(row.Date, row.Place, row.MealType)]; ok {
				continue
			}
			row.Removed = true
			rows = append(rows, row)
		}
	}

	var additionalCharges float64
	for _, addon := range in.AddOns {
		additionalCharges += addon.Price
	}
	vehicleTotal := in.Vehicle.Km * in.Vehicle.PricePerKm
	transportTotal := vehicleTotal + additionalCharges

	transport := TransportDetails{
		PerPerson:              math.Round(transportTotal / float64(travelers)),
		Nights:                 len(in.Days),
		Parking:                in.Vehicle.Parking,
		Assistance:             in.Vehicle.Assistance,
		Boat:                   in.Vehicle.Boat,
		VehicleKm:              in.Vehicle.Km,
		VehiclePricePerKm:      in.Vehicle.PricePerKm,
		CalculatedVehicleTotal: vehicleTotal,
	}
	for _, addon := range in.AddOns {
		transport.Others = append(transport.Others, addon)
	}
	if prev != nil {
		if old := prev.transportRow(); old != nil && old.Transport != nil {
			prevT := old.Transport
			if transport.Parking == 0 {
				transport.Parking = prevT.Parking
			}
			if transport.Assistance == 0 {
				transport.Assistance = prevT.Assistance
			}
			if transport.Boat == 0 {
				transport.Boat = prevT.Boat
			}
			if transport.VehicleKm == 0 {
				transport.VehicleKm = prevT.VehicleKm
			}
			if transport.VehiclePricePerKm == 0 {
				transport.VehiclePricePerKm = prevT.VehiclePricePerKm
			}
			if transport.CalculatedVehicleTotal == 0 {
				transport.CalculatedVehicleTotal = prevT.CalculatedVehicleTotal
			}
			if len(prevT.Others) > 0 {
				transport.Others = prevT.Others
			}
		}
	}
	rows = append(rows, Row{Type: RowTransport, Transport: &transport})

	grandTotal := hotelTotal + transportTotal
	rows = append(rows,
		Row{Type: RowSummary, Label: "Pax", Value: fmt.Sprintf("%d", travelers)},
		Row{Type: RowSummary, Label: "Total Hotel Prices", Value: formatAmount(hotelTotal)},
		Row{Type: RowSummary, Label: "Vehicle Price", Value: formatAmount(vehicleTotal)},
		Row{Type: RowSummary, Label: "Additional Charges", Value: formatAmount(additionalCharges)},
		Row{Type: RowSummary, Label: "Grand Total", Value: formatAmount(grandTotal)},
	)

	return &Sheet{
		Rows: rows,
		Budget: Budget{
			Pax:                    travelers,
			HotelTotal:             hotelTotal,
			TransportTotal:         transportTotal,
			AdditionalChargesTotal: additionalCharges,
			GrandTotal:             grandTotal,
		},
	}
}

func (s *Sheet) transportRow() *Row {
	for i := range s.Rows {
		if s.Rows[i].Type == RowTransport {
			return &s.Rows[i]
		}
	}
	return nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("₹%.0f", v)
}
