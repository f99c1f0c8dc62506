package itinerary

import (
	"testing"
	"time"
)

func testRecords() map[string]DisplayRecord {
	return map[string]DisplayRecord{
		idA: {ID: idA, Name: "Hotel Amber"},
		idB: {ID: idB, Name: "Lake Palace"},
	}
}

func twoCandidateMatrix() Selections {
	return Selections{
		"Deluxe": {"1": {"Jaipur": {"breakfast": []string{idA, idB}}}},
	}
}

func start() time.Time {
	return time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
}

func TestResolveSelections_OverrideWins(t *testing.T) {
	over := Overrides{"Deluxe": {"1": {"Jaipur": {"breakfast": idB}}}}
	out := ResolveSelections(twoCandidateMatrix(), over, testRecords(), PerCategoryWindow, start())

	options := out["Deluxe"]["1"]["Jaipur"]["breakfast"]
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2", len(options))
	}
	if options[0].Selected {
		t.Fatalf("first candidate selected despite override: %+v", options[0])
	}
	if !options[1].Selected || options[1].Name != "Lake Palace" {
		t.Fatalf("override candidate not selected: %+v", options[1])
	}
}

func TestResolveSelections_FallbackToFirstCandidate(t *testing.T) {
	// an override naming a hotel outside the candidate list must not leave
	// the slot with zero selections
	over := Overrides{"Deluxe": {"1": {"Jaipur": {"breakfast": idC}}}}
	out := ResolveSelections(twoCandidateMatrix(), over, testRecords(), PerCategoryWindow, start())

	options := out["Deluxe"]["1"]["Jaipur"]["breakfast"]
	if !options[0].Selected || options[1].Selected {
		t.Fatalf("want first candidate selected, got %+v", options)
	}
}

func TestResolveSelections_DuplicateCandidateSelectedOnce(t *testing.T) {
	sel := Selections{
		"Deluxe": {"1": {"Jaipur": {"breakfast": []string{idA, idA}}}},
	}
	out := ResolveSelections(sel, nil, testRecords(), PerCategoryWindow, start())

	options := out["Deluxe"]["1"]["Jaipur"]["breakfast"]
	n := 0
	for _, o := range options {
		if o.Selected {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("%d options selected, want exactly 1", n)
	}
}

func TestResolveSelections_UnknownRefGetsSentinel(t *testing.T) {
	sel := Selections{
		"Deluxe": {"1": {"Jaipur": {"breakfast": []string{idC}}}},
	}
	out := ResolveSelections(sel, nil, testRecords(), PerCategoryWindow, start())

	options := out["Deluxe"]["1"]["Jaipur"]["breakfast"]
	if options[0].Name != "Hotel Not Found" || options[0].ID != idC {
		t.Fatalf("unknown ref resolved to %+v", options[0])
	}
}

func TestResolveSelections_PerDayPerMealWindows(t *testing.T) {
	sel := Selections{
		"Deluxe": {
			"1": {"Jaipur": {"breakfast": []string{idA}, "dinner": []string{idB}}},
			"2": {"Udaipur": {"breakfast": []string{idA}}},
		},
	}
	out := ResolveSelections(sel, nil, testRecords(), PerDayPerMealWindow, start())

	// dinner is day 1's biggest meal: its stay extends to day 2
	dinner := out["Deluxe"]["1"]["Jaipur"]["dinner"][0]
	if got := dinner.CheckOut.Format("2006-01-02"); got != "2025-01-11" {
		t.Fatalf("dinner checkout = %s, want 2025-01-11", got)
	}
	breakfast := out["Deluxe"]["1"]["Jaipur"]["breakfast"][0]
	if !breakfast.CheckIn.Equal(breakfast.CheckOut) {
		t.Fatalf("non-extending meal should have a same-day window, got %v–%v", breakfast.CheckIn, breakfast.CheckOut)
	}
}

func TestResolveOverrides_AlwaysSelected(t *testing.T) {
	over := Overrides{"Deluxe": {"1": {"Jaipur": {"breakfast": idB}}}}
	out := ResolveOverrides(over, testRecords(), twoCandidateMatrix(), PerCategoryWindow, start())

	opt := out["Deluxe"]["1"]["Jaipur"]["breakfast"]
	if !opt.Selected || opt.Name != "Lake Palace" {
		t.Fatalf("override option = %+v", opt)
	}
}

func TestResolveOverrides_OverrideOnlyDayGetsWindow(t *testing.T) {
	// a staff pick on a day the selection matrix never mentions must still
	// receive a real stay window under the per-day strategy
	sel := twoCandidateMatrix()
	over := Overrides{"Deluxe": {"5": {"Agra": {"dinner": idB}}}}
	out := ResolveOverrides(over, testRecords(), sel, PerDayPerMealWindow, start())

	opt := out["Deluxe"]["5"]["Agra"]["dinner"]
	wantIn := time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC)
	wantOut := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !opt.CheckIn.Equal(wantIn) || !opt.CheckOut.Equal(wantOut) {
		t.Fatalf("window = %v..%v, want %v..%v", opt.CheckIn, opt.CheckOut, wantIn, wantOut)
	}
}

func TestResolveOverrides_NilInNilOut(t *testing.T) {
	if out := ResolveOverrides(nil, testRecords(), twoCandidateMatrix(), PerCategoryWindow, start()); out != nil {
		t.Fatalf("ResolveOverrides(nil) = %v, want nil", out)
	}
}
