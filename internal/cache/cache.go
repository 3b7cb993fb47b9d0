// Package cache stores short-lived computed views (study batches, progress overviews)
// keyed per learner.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vytor/studyflash/internal/calendar"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
	Close() error
}

const namespace = "studyflash"

func BatchPrefix(userID int64) string {
	return fmt.Sprintf("%s:batch:%d:", namespace, userID)
}

// BatchKey names a study batch for one session length on today's calendar day, so a
// batch never outlives the day its due flags were computed for.
func BatchKey(userID int64, minutes float64, today time.Time) string {
	return fmt.Sprintf("%s%s:%g", BatchPrefix(userID), calendar.Key(today), minutes)
}

func OverviewPrefix(userID int64) string {
	return fmt.Sprintf("%s:overview:%d:", namespace, userID)
}

// OverviewKey names a progress overview on today's calendar day.
func OverviewKey(userID int64, today time.Time) string {
	return OverviewPrefix(userID) + calendar.Key(today)
}

// GetJSON loads and decodes a cached value. A value that no longer decodes is
// reported as a miss.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool, error) {
	var out T
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, nil
	}
	return out, true, nil
}

func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, ttl)
}

// Noop never stores anything. It is used when no Redis URL is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) DeletePrefix(context.Context, string) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
func (Noop) Close() error { return nil }
