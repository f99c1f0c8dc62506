// Package itinerary implements the reconciliation engine that turns a sparse
// hotel selection matrix into fully resolved, dated, priced booking data.
// The pipeline is: normalize both matrices, collect the complete reference
// set, resolve it against the catalogue in one batched lookup, infer stay
// windows per category, resolve every cell to options with a single selected
// candidate, and run the pricing waterfall.  Every malformed input has a
// defined degraded output; nothing in here aborts a request.
package itinerary

import (
	"context"
	"time"
)

// Engine wires the catalogue lookup and the stay-window strategy into one
// reusable resolver.  It is stateless and safe for concurrent use.
type Engine struct {
	Hotels   HotelLookup
	Strategy WindowStrategy
}

// NewEngine returns an engine using the per-category window strategy, the
// behavior booking persistence relies on.
func NewEngine(hotels HotelLookup) *Engine {
	return &Engine{Hotels: hotels, Strategy: PerCategoryWindow}
}

// Input is everything one resolution needs.  Matrices arrive in their raw
// wire shape; pricing maps are loosely typed (numbers or {value: n} objects).
type Input struct {
	Selections       RawMatrix
	Overrides        RawMatrix
	TemplateHotels   RawMatrix // matrix embedded in the static itinerary template
	TravelDate       string
	SelectedCategory string
	Pricing          map[string]any
	Offers           map[string]any
	Festival         *FestivalOffer
}

// Resolved is the itinerary fragment embedded back into the booking document
// at save time.
type Resolved struct {
	Selections     ResolvedSelections        `json:"hotelSelections"`
	Overrides      ResolvedOverrides         `json:"userSelectedHotels,omitempty"`
	TemplateHotels ResolvedSelections        `json:"templateHotels,omitempty"`
	Pricing        map[string]PricingEntry   `json:"pricing,omitempty"`
	Offers         map[string]PricingEntry   `json:"offers,omitempty"`
	Festival       *FestivalOffer            `json:"festivalOffer,omitempty"`
	Windows        map[string]StayWindow     `json:"categoryWindows,omitempty"`
	TotalAmount    map[string]float64        `json:"totalAmount"`
	GrandTotal     float64                   `json:"grandTotal"`
	TripStart      time.Time                 `json:"tripStart"`
}

// Resolve runs the full pipeline.  The catalogue is consulted exactly once
// no matter how many matrices or cells reference a hotel; lookup failures
// degrade to sentinel records rather than erroring.
func (e *Engine) Resolve(ctx context.Context, in Input) (*Resolved, error) {
	sel := NormalizeMatrix(in.Selections)
	over := NormalizeOverrides(in.Overrides)
	tmpl := NormalizeMatrix(in.TemplateHotels)
	tripStart := ParseTravelDate(in.TravelDate)

	ids := ReferencedIDs(over, sel, tmpl)
	records := ResolveRefs(ctx, e.Hotels, ids)

	festival := in.Festival
	if festival != nil {
		f := *festival
		f.Selected = f.Selected && f.Value > 0
		festival = &f
	}
	totals, grand := CategoryTotals(in.Pricing, in.Offers, festival)

	out := &Resolved{
		Selections:     ResolveSelections(sel, over, records, e.Strategy, tripStart),
		Overrides:      ResolveOverrides(over, records, sel, e.Strategy, tripStart),
		TemplateHotels: ResolveSelections(tmpl, over, records, e.Strategy, tripStart),
		Pricing:        AnnotatePricing(in.Pricing, in.SelectedCategory),
		Offers:         AnnotatePricing(in.Offers, in.SelectedCategory),
		Festival:       festival,
		Windows:        CategoryWindows(sel, over, tripStart),
		TotalAmount:    totals,
		GrandTotal:     grand,
		TripStart:      tripStart,
	}
	return out, nil
}
