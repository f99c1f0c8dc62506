package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripveda/tour-backoffice/internal/itinerary"
)

// CachedHotelLookup layers a Redis cache over a catalogue lookup.  Booking
// saves resolve the same hotel set over and over while staff iterate on a
// quote, so per-id records are cached individually and only the misses hit
// the database.  A nil Redis client disables caching entirely; cache errors
// degrade to the underlying lookup and are logged, never returned.
type CachedHotelLookup struct {
	inner  itinerary.HotelLookup
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewCachedHotelLookup wraps inner with a Redis cache.  client may be nil.
func NewCachedHotelLookup(inner itinerary.HotelLookup, client *redis.Client, ttl time.Duration) *CachedHotelLookup {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedHotelLookup{inner: inner, client: client, ttl: ttl, prefix: "hotel:"}
}

// ResolveHotels satisfies itinerary.HotelLookup.  Cached ids are served from
// Redis; the remainder is fetched from the inner lookup in one batch and
// written back with the configured TTL.
func (c *CachedHotelLookup) ResolveHotels(ctx context.Context, ids []string) (map[string]itinerary.DisplayRecord, error) {
	if c.client == nil || len(ids) == 0 {
		return c.inner.ResolveHotels(ctx, ids)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.prefix + id
	}
	out := make(map[string]itinerary.DisplayRecord, len(ids))
	missing := ids
	if vals, err := c.client.MGet(ctx, keys...).Result(); err == nil {
		missing = missing[:0:0]
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var rec itinerary.DisplayRecord
			if err := json.Unmarshal([]byte(s), &rec); err != nil {
				missing = append(missing, ids[i])
				continue
			}
			out[ids[i]] = rec
		}
	} else {
		log.Printf("hotel cache: mget failed, falling through: %v", err)
	}
	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := c.inner.ResolveHotels(ctx, missing)
	if err != nil {
		return nil, err
	}
	pipe := c.client.Pipeline()
	for id, rec := range fetched {
		out[id] = rec
		if body, err := json.Marshal(rec); err == nil {
			pipe.Set(ctx, c.prefix+id, body, c.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("hotel cache: write-back failed: %v", err)
	}
	return out, nil
}

// Invalidate drops the cached records for the given ids.  Called after
// catalogue writes so stale prices never survive a hotel update.
func (c *CachedHotelLookup) Invalidate(ctx context.Context, ids ...string) {
	if c.client == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.prefix + id
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("hotel cache: invalidate failed: %v", err)
	}
}
