package itinerary

import (
	"context"
	"log"
	"sort"
)

// DisplayRecord is the denormalized hotel view embedded into booking
// documents.  It carries everything the rendering collaborators need so
// they never have to touch the catalogue themselves.
type DisplayRecord struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Image            string  `json:"image"`
	Category         string  `json:"category"`
	Location         string  `json:"location"`
	Rating           float64 `json:"rating"`
	Reviews          int     `json:"reviews"`
	Price            float64 `json:"price,omitempty"`
	GoogleReviewLink string  `json:"googleReviewLink,omitempty"`
}

// Sentinel display names.  Rendering must never crash on a stale or mistyped
// reference, so unresolvable ids degrade to one of these records instead of
// an error.
const (
	notFoundName   = "Hotel Not Found"
	invalidRefName = "Invalid Hotel ID"
	unknownLabel   = "N/A"
)

// NotFoundRecord returns the sentinel for a syntactically valid reference the
// catalogue does not know.
func NotFoundRecord(id string) DisplayRecord {
	return DisplayRecord{ID: id, Name: notFoundName, Category: unknownLabel, Location: unknownLabel}
}

// InvalidRecord returns the sentinel for a reference that is not a catalogue
// object id at all.
func InvalidRecord(id string) DisplayRecord {
	return DisplayRecord{ID: id, Name: invalidRefName, Category: unknownLabel, Location: unknownLabel}
}

// HotelLookup is the catalogue read the engine consumes.  Implementations
// must resolve the whole id set in a single round trip.
type HotelLookup interface {
	ResolveHotels(ctx context.Context, ids []string) (map[string]DisplayRecord, error)
}

// ReferencedIDs returns the sorted set of every reference appearing in the
// given matrices.  Overrides may be nil.  The result feeds exactly one
// batched catalogue lookup regardless of how many cells repeat a reference.
func ReferencedIDs(over Overrides, matrices ...Selections) []string {
	set := make(map[string]struct{})
	for _, sel := range matrices {
		for _, days := range sel {
			for _, locations := range days {
				for _, meals := range locations {
					for _, refs := range meals {
						for _, ref := range refs {
							set[ref] = struct{}{}
						}
					}
				}
			}
		}
	}
	for _, days := range over {
		for _, locations := range days {
			for _, meals := range locations {
				for _, ref := range meals {
					set[ref] = struct{}{}
				}
			}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveRefs resolves every reference in ids to a display record using one
// batched lookup for the syntactically valid subset.  Invalid references map
// to the invalid sentinel, valid-but-unknown references to the not-found
// sentinel.  A failed lookup degrades the whole set to sentinels rather than
// aborting: a stale reference must never block the rest of a multi-category
// itinerary from resolving.
func ResolveRefs(ctx context.Context, lookup HotelLookup, ids []string) map[string]DisplayRecord {
	out := make(map[string]DisplayRecord, len(ids))
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if IsHotelRef(id) {
			valid = append(valid, id)
		} else {
			out[id] = InvalidRecord(id)
		}
	}
	var found map[string]DisplayRecord
	if len(valid) > 0 {
		var err error
		found, err = lookup.ResolveHotels(ctx, valid)
		if err != nil {
			log.Printf("itinerary: hotel lookup failed, degrading to sentinels: %v", err)
			found = nil
		}
	}
	for _, id := range valid {
		if rec, ok := found[id]; ok {
			out[id] = rec
		} else {
			out[id] = NotFoundRecord(id)
		}
	}
	return out
}
