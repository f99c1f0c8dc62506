package repository

import (
	"context"
	"testing"

	"github.com/tripveda/tour-backoffice/internal/itinerary"
)

const cacheTestID = "64f1a2b3c4d5e6f708091a0a"

// staticLookup is an in-memory HotelLookup counting how often it is hit.
type staticLookup struct {
	records map[string]itinerary.DisplayRecord
	calls   int
}

func (s *staticLookup) ResolveHotels(_ context.Context, ids []string) (map[string]itinerary.DisplayRecord, error) {
	s.calls++
	out := make(map[string]itinerary.DisplayRecord, len(ids))
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}

func TestCachedHotelLookup_NilClientPassesThrough(t *testing.T) {
	inner := &staticLookup{records: map[string]itinerary.DisplayRecord{
		cacheTestID: {ID: cacheTestID, Name: "Hotel Amber"},
	}}
	c := NewCachedHotelLookup(inner, nil, 0)

	got, err := c.ResolveHotels(context.Background(), []string{cacheTestID})
	if err != nil {
		t.Fatalf("ResolveHotels() error = %v", err)
	}
	if got[cacheTestID].Name != "Hotel Amber" {
		t.Fatalf("record = %+v, want Hotel Amber", got[cacheTestID])
	}
	if inner.calls != 1 {
		t.Fatalf("inner lookups = %d, want 1", inner.calls)
	}
}

func TestCachedHotelLookup_InvalidateWithoutClientIsNoOp(t *testing.T) {
	c := NewCachedHotelLookup(&staticLookup{}, nil, 0)
	// must not panic when Redis is not configured
	c.Invalidate(context.Background(), cacheTestID)
}
