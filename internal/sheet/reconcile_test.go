package sheet

import (
	"testing"
	"time"
)

func tripStart() time.Time {
	return time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
}

func baseInput() Input {
	return Input{
		TravelDate: tripStart(),
		Travelers:  4,
		Days: []DayPlan{
			{Stays: map[string]map[string]StayHotel{
				"Jaipur": {"breakfast": {Name: "Hotel Amber", Category: "Deluxe", Price: 3200}},
			}},
			{Stays: map[string]map[string]StayHotel{
				"Udaipur": {"dinner": {Name: "Lake Palace", Category: "Deluxe", Price: 5400}},
			}},
		},
		Vehicle: Vehicle{Km: 400, PricePerKm: 15},
		AddOns:  []ExtraCharge{{Title: "Guide", Price: 2000}},
	}
}

func dayRows(s *Sheet) []Row {
	var out []Row
	for _, r := range s.Rows {
		if r.Type == RowDay {
			out = append(out, r)
		}
	}
	return out
}

func findDay(t *testing.T, s *Sheet, date, place, meal string) Row {
	t.Helper()
	for _, r := range dayRows(s) {
		if r.Date == date && r.Place == place && r.MealType == meal {
			return r
		}
	}
	t.Fatalf("no day row %s/%s/%s in %+v", date, place, meal, dayRows(s))
	return Row{}
}

func TestReconcile_FirstGeneration(t *testing.T) {
	s := Reconcile(baseInput(), nil)

	days := dayRows(s)
	if len(days) != 2 {
		t.Fatalf("got %d day rows, want 2", len(days))
	}
	first := findDay(t, s, "10-Jan-25", "Jaipur", "breakfast")
	if !first.Added || first.Removed || first.ManualEdit || first.BookingChanged {
		t.Fatalf("fresh row flags = %+v, want only Added", first)
	}
	if first.DoubleRoomPrice != 3200 || first.RoomCount != 1 || first.TotalRoomPrice != 3200 {
		t.Fatalf("fresh row pricing = %+v", first)
	}
	second := findDay(t, s, "11-Jan-25", "Udaipur", "dinner")
	if second.HotelName != "Lake Palace" {
		t.Fatalf("second day row = %+v", second)
	}

	// budget: hotels 8600, vehicle 6000, addons 2000
	b := s.Budget
	if b.Pax != 4 || b.HotelTotal != 8600 || b.TransportTotal != 8000 ||
		b.AdditionalChargesTotal != 2000 || b.GrandTotal != 16600 {
		t.Fatalf("budget = %+v", b)
	}
	tr := s.transportRow()
	if tr == nil || tr.Transport == nil {
		t.Fatalf("no transport row")
	}
	if tr.Transport.PerPerson != 2000 || tr.Transport.Nights != 2 {
		t.Fatalf("transport = %+v", tr.Transport)
	}
}

func TestReconcile_UnchangedRowCarriesManualState(t *testing.T) {
	in := baseInput()
	prev := Reconcile(in, nil)

	// staff repriced the Jaipur row and flagged it as manually edited
	for i := range prev.Rows {
		r := &prev.Rows[i]
		if r.Type == RowDay && r.Place == "Jaipur" {
			r.ManualEdit = true
			r.RoomCount = 3
			r.ExtraBedCount = 1
			r.ExtraBedPrice = 800
			r.HotelNotes = "sea-facing rooms"
			r.PreviousHotels = []PreviousHotel{{Name: "Old Palace", Price: 2800, MealType: "breakfast", Category: "Deluxe"}}
		}
	}

	next := Reconcile(in, prev)
	row := findDay(t, next, "10-Jan-25", "Jaipur", "breakfast")
	if !row.ManualEdit {
		t.Fatalf("manual edit flag lost: %+v", row)
	}
	if row.Added || row.BookingChanged {
		t.Fatalf("unchanged row flags = %+v", row)
	}
	if row.RoomCount != 3 || row.ExtraBedCount != 1 || row.ExtraBedPrice != 800 {
		t.Fatalf("staff pricing lost: %+v", row)
	}
	if row.TotalRoomPrice != 9600 || row.TotalExtraPrice != 800 {
		t.Fatalf("derived totals = %+v", row)
	}
	if row.HotelNotes != "sea-facing rooms" {
		t.Fatalf("notes lost: %q", row.HotelNotes)
	}
	if len(row.PreviousHotels) != 1 || row.PreviousHotels[0].Name != "Old Palace" {
		t.Fatalf("history lost: %+v", row.PreviousHotels)
	}
}

func TestReconcile_BookingChangeRecordsHistory(t *testing.T) {
	in := baseInput()
	prev := Reconcile(in, nil)
	for i := range prev.Rows {
		r := &prev.Rows[i]
		if r.Type == RowDay && r.Place == "Jaipur" {
			r.ManualEdit = true
			// pre-existing history must be replaced, not appended to
			r.PreviousHotels = []PreviousHotel{{Name: "Ancient Stay", Price: 2000, MealType: "breakfast", Category: "Standard"}}
		}
	}

	in.Days[0].Stays["Jaipur"]["breakfast"] = StayHotel{Name: "Rambagh Retreat", Category: "Deluxe", Price: 4100}
	next := Reconcile(in, prev)

	row := findDay(t, next, "10-Jan-25", "Jaipur", "breakfast")
	if !row.BookingChanged {
		t.Fatalf("booking change not flagged: %+v", row)
	}
	if !row.ManualEdit {
		t.Fatalf("manual-edit flag lost across a booking change: %+v", row)
	}
	if row.HotelName != "Rambagh Retreat" {
		t.Fatalf("hotel not updated: %+v", row)
	}
	if len(row.PreviousHotels) != 1 || row.PreviousHotels[0].Name != "Hotel Amber" || row.PreviousHotels[0].Price != 3200 {
		t.Fatalf("history = %+v, want exactly the replaced hotel", row.PreviousHotels)
	}
	// staff room price outlives a booking reprice
	if row.DoubleRoomPrice != 3200 {
		t.Fatalf("room price = %v, want the previously captured 3200", row.DoubleRoomPrice)
	}
}

func TestReconcile_RemovedRowBecomesTombstone(t *testing.T) {
	in := baseInput()
	prev := Reconcile(in, nil)
	for i := range prev.Rows {
		r := &prev.Rows[i]
		if r.Type == RowDay && r.Place == "Udaipur" {
			r.ManualEdit = true
		}
	}

	in.Days = in.Days[:1] // drop the Udaipur day
	next := Reconcile(in, prev)

	row := findDay(t, next, "11-Jan-25", "Udaipur", "dinner")
	if !row.Removed {
		t.Fatalf("dropped row not tombstoned: %+v", row)
	}
	if !row.ManualEdit {
		t.Fatalf("tombstone lost manual edit flag: %+v", row)
	}
	if row.HotelName != "Lake Palace" {
		t.Fatalf("tombstone content = %+v", row)
	}
}

func TestReconcile_TransportMergePreservesManualCharges(t *testing.T) {
	in := baseInput()
	prev := Reconcile(in, nil)
	pt := prev.transportRow().Transport
	pt.Parking = 500
	pt.Assistance = 300
	pt.Boat = 1200
	pt.Others = []ExtraCharge{{Title: "Camel ride", Price: 900}}

	// booking contributes zero for all flat charges
	next := Reconcile(in, prev)
	nt := next.transportRow().Transport
	if nt.Parking != 500 || nt.Assistance != 300 || nt.Boat != 1200 {
		t.Fatalf("manual flat charges lost: %+v", nt)
	}
	if len(nt.Others) != 1 || nt.Others[0].Title != "Camel ride" {
		t.Fatalf("manual extra charges lost: %+v", nt.Others)
	}

	// a nonzero booking value wins over the manual one
	in.Vehicle.Parking = 750
	next = Reconcile(in, prev)
	if next.transportRow().Transport.Parking != 750 {
		t.Fatalf("booking parking ignored: %+v", next.transportRow().Transport)
	}
}

func TestReconcile_BudgetRecomputedNotCarried(t *testing.T) {
	in := baseInput()
	prev := Reconcile(in, nil)
	prev.Budget.GrandTotal = 999999 // stale manual tampering must not survive

	in.Days = in.Days[:1]
	next := Reconcile(in, prev)

	// hotels: only Jaipur counts (tombstones excluded), vehicle 6000, addons 2000
	b := next.Budget
	if b.HotelTotal != 3200 || b.GrandTotal != 3200+6000+2000 {
		t.Fatalf("budget = %+v", b)
	}
}

func TestReconcile_ZeroTravelersDefaultsToOne(t *testing.T) {
	in := baseInput()
	in.Travelers = 0
	s := Reconcile(in, nil)
	if s.Budget.Pax != 1 {
		t.Fatalf("pax = %d, want 1", s.Budget.Pax)
	}
	if s.transportRow().Transport.PerPerson != 8000 {
		t.Fatalf("per person = %v, want 8000", s.transportRow().Transport.PerPerson)
	}
}

func TestReconcile_SummaryRowsRenderTotals(t *testing.T) {
	s := Reconcile(baseInput(), nil)
	want := map[string]string{
		"Pax":                "4",
		"Total Hotel Prices": "₹8600",
		"Vehicle Price":      "₹6000",
		"Additional Charges": "₹2000",
		"Grand Total":        "₹16600",
	}
	seen := 0
	for _, r := range s.Rows {
		if r.Type != RowSummary {
			continue
		}
		seen++
		if v, ok := want[r.Label]; !ok || v != r.Value {
			t.Fatalf("summary %q = %q, want %q", r.Label, r.Value, v)
		}
	}
	if seen != len(want) {
		t.Fatalf("got %d summary rows, want %d", seen, len(want))
	}
}
