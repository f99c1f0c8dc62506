package itinerary

import (
	"context"
	"testing"
)

// fakeLookup records every batch it receives so tests can assert the
// exactly-one-lookup contract.
type fakeLookup struct {
	known   map[string]DisplayRecord
	batches [][]string
	fail    bool
}

func (f *fakeLookup) ResolveHotels(_ context.Context, ids []string) (map[string]DisplayRecord, error) {
	f.batches = append(f.batches, ids)
	if f.fail {
		return nil, context.DeadlineExceeded
	}
	out := make(map[string]DisplayRecord, len(ids))
	for _, id := range ids {
		if rec, ok := f.known[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}

func catalogue() *fakeLookup {
	return &fakeLookup{known: map[string]DisplayRecord{
		idA: {ID: idA, Name: "Hotel Amber", Category: "Deluxe", Location: "Jaipur", Rating: 4.2, Reviews: 310, Price: 3200},
		idB: {ID: idB, Name: "Lake Palace", Category: "Deluxe", Location: "Jaipur", Rating: 4.7, Reviews: 1210, Price: 5400},
	}}
}

func sampleInput() Input {
	return Input{
		Selections: RawMatrix{
			"Deluxe": {
				"2": {"Jaipur": {"breakfast": []any{idA, idB}}},
			},
		},
		Overrides: RawMatrix{
			"Deluxe": {"2": {"Jaipur": {"breakfast": idB}}},
		},
		TravelDate:       "10-01-2025",
		SelectedCategory: "Deluxe",
		Pricing:          map[string]any{"Deluxe": 18000.0},
		Offers:           map[string]any{"Deluxe": 500.0},
		Festival:         &FestivalOffer{Name: "Diwali", Value: 10, Selected: true},
	}
}

func TestEngineResolve_SingleBatchedLookup(t *testing.T) {
	lookup := catalogue()
	eng := NewEngine(lookup)
	in := sampleInput()
	// repeat idA across many cells: still one lookup with a set of unique ids
	in.Selections["Deluxe"]["3"] = map[string]map[string]any{
		"Udaipur": {"lunch": []any{idA}, "dinner": []any{idA}},
	}
	if _, err := eng.Resolve(context.Background(), in); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(lookup.batches) != 1 {
		t.Fatalf("catalogue consulted %d times, want exactly 1", len(lookup.batches))
	}
	if len(lookup.batches[0]) != 2 {
		t.Fatalf("lookup batch = %v, want the 2 unique ids", lookup.batches[0])
	}
}

func TestEngineResolve_OverridePicksSelected(t *testing.T) {
	eng := NewEngine(catalogue())
	res, err := eng.Resolve(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	options := res.Selections["Deluxe"]["2"]["Jaipur"]["breakfast"]
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2", len(options))
	}
	if options[0].Selected || !options[1].Selected {
		t.Fatalf("selected flags = [%v %v], want override %s selected", options[0].Selected, options[1].Selected, idB)
	}
}

func TestEngineResolve_ExactlyOneSelectedPerSlot(t *testing.T) {
	eng := NewEngine(catalogue())
	in := sampleInput()
	in.Overrides = nil // no override: first candidate wins
	res, err := eng.Resolve(context.Background(), in)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, days := range res.Selections {
		for _, locations := range days {
			for _, meals := range locations {
				for meal, options := range meals {
					n := 0
					for _, o := range options {
						if o.Selected {
							n++
						}
					}
					if n != 1 {
						t.Fatalf("meal %s has %d selected options, want exactly 1", meal, n)
					}
				}
			}
		}
	}
}

func TestEngineResolve_UnknownAndInvalidRefsDegrade(t *testing.T) {
	eng := NewEngine(catalogue())
	in := sampleInput()
	unknown := "64f1a2b3c4d5e6f708091aff"
	in.Selections["Deluxe"]["2"]["Jaipur"]["dinner"] = []any{unknown, "garbage-reference-value!!"}
	res, err := eng.Resolve(context.Background(), in)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	options := res.Selections["Deluxe"]["2"]["Jaipur"]["dinner"]
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2 sentinel options", len(options))
	}
	if options[0].Name != "Hotel Not Found" {
		t.Fatalf("unknown ref resolved to %q, want not-found sentinel", options[0].Name)
	}
	if options[1].Name != "Invalid Hotel ID" {
		t.Fatalf("invalid ref resolved to %q, want invalid sentinel", options[1].Name)
	}
}

func TestEngineResolve_LookupFailureDegradesToSentinels(t *testing.T) {
	lookup := catalogue()
	lookup.fail = true
	eng := NewEngine(lookup)
	res, err := eng.Resolve(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Resolve() must not propagate lookup failure, got %v", err)
	}
	options := res.Selections["Deluxe"]["2"]["Jaipur"]["breakfast"]
	for _, o := range options {
		if o.Name != "Hotel Not Found" {
			t.Fatalf("after lookup failure option resolved to %q, want not-found sentinel", o.Name)
		}
	}
}

func TestEngineResolve_StampsCategoryWindow(t *testing.T) {
	eng := NewEngine(catalogue())
	in := sampleInput()
	in.Selections["Deluxe"]["4"] = map[string]map[string]any{"Jodhpur": {"dinner": []any{idA}}}
	res, err := eng.Resolve(context.Background(), in)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	w, ok := res.Windows["Deluxe"]
	if !ok {
		t.Fatalf("no category window in result")
	}
	for _, o := range res.Selections["Deluxe"]["2"]["Jaipur"]["breakfast"] {
		if !o.CheckIn.Equal(w.CheckIn) || !o.CheckOut.Equal(w.CheckOut) {
			t.Fatalf("option window %v–%v differs from category window %v–%v", o.CheckIn, o.CheckOut, w.CheckIn, w.CheckOut)
		}
	}
}

func TestEngineResolve_EmptyCategoryOmitted(t *testing.T) {
	eng := NewEngine(catalogue())
	in := sampleInput()
	in.Selections["Luxury"] = map[string]map[string]map[string]any{
		"1": {"Jaipur": {"breakfast": []any{}}},
	}
	res, err := eng.Resolve(context.Background(), in)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, ok := res.Selections["Luxury"]; ok {
		t.Fatalf("category with no candidates should be omitted: %v", res.Selections)
	}
}

func TestEngineResolve_TotalsAndAnnotations(t *testing.T) {
	eng := NewEngine(catalogue())
	res, err := eng.Resolve(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.TotalAmount["Deluxe"] != 15750 || res.GrandTotal != 15750 {
		t.Fatalf("totals = %v / %v, want 15750 / 15750", res.TotalAmount, res.GrandTotal)
	}
	if !res.Pricing["Deluxe"].Selected {
		t.Fatalf("pricing entry for selected category not flagged: %+v", res.Pricing)
	}
}
