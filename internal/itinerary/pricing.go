package itinerary

import "math"

// PricingEntry is one category's sticker price (or fixed offer) as embedded
// into the resolved itinerary.  Selected is cosmetic: it mirrors which
// category is the client's active choice and never influences totals.
type PricingEntry struct {
	Value    float64 `json:"value"`
	Category string  `json:"category,omitempty"`
	Selected bool    `json:"selected"`
}

// FestivalOffer is the single global percentage discount.  It is applied
// once, after the per-category fixed offer, and only when Selected is true
// with a positive value.
type FestivalOffer struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Selected bool    `json:"selected"`
}

// Active reports whether the offer should participate in totals.
func (f *FestivalOffer) Active() bool {
	return f != nil && f.Selected && f.Value > 0
}

// AsNumber coerces a loosely typed pricing value (number, or an object
// wrapping one under "value") to a float64.  Anything non-numeric coerces to
// zero so totals are always finite.
func AsNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return sanitize(t)
	case int:
		return float64(t)
	case PricingEntry:
		return sanitize(t.Value)
	case map[string]any:
		if inner, ok := t["value"]; ok {
			return AsNumber(inner)
		}
	}
	return 0
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CategoryTotals runs the discount waterfall: for every category whose
// sticker price is positive, total = (price − offer) reduced by the festival
// percentage.  The computation always starts from the raw sticker values, so
// re-running it on every save never compounds the festival discount.
// Categories with sticker price ≤ 0 contribute nothing and are omitted.
func CategoryTotals(pricing, offers map[string]any, festival *FestivalOffer) (map[string]float64, float64) {
	totals := make(map[string]float64, len(pricing))
	var grand float64
	for category, rawPrice := range pricing {
		price := AsNumber(rawPrice)
		if price <= 0 {
			continue
		}
		offer := AsNumber(offers[category])
		afterOffer := price - offer
		total := afterOffer
		if festival.Active() {
			total = afterOffer - afterOffer*festival.Value/100
		}
		total = sanitize(total)
		totals[category] = total
		grand += total
	}
	return totals, sanitize(grand)
}

// AnnotatePricing converts a loose pricing (or offers) map into entries with
// the cosmetic Selected flag set for the client's active category.  An empty
// selectedCategory marks every entry selected, matching how previews render
// all tiers at once.
func AnnotatePricing(raw map[string]any, selectedCategory string) map[string]PricingEntry {
	if raw == nil {
		return nil
	}
	out := make(map[string]PricingEntry, len(raw))
	for category, v := range raw {
		out[category] = PricingEntry{
			Value:    AsNumber(v),
			Category: category,
			Selected: selectedCategory == "" || category == selectedCategory,
		}
	}
	return out
}
