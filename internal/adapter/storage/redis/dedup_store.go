package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupStore implements ports.WebhookDedupStore. A key exists only for events
// that finished processing successfully, so a hit means the redelivery can be
// acknowledged without touching the database. Misses fall through to the
// unique constraint on webhook_events, which stays the source of truth.
type DedupStore struct {
	client *goredis.Client
	prefix string
}

// NewDedupStore creates a new Redis-backed webhook dedup store.
func NewDedupStore(client *goredis.Client) *DedupStore {
	return &DedupStore{
		client: client,
		prefix: "webhook:settled:",
	}
}

func (s *DedupStore) key(eventType, externalRef string) string {
	return s.prefix + eventType + ":" + externalRef
}

// IsSettled reports whether the event was already processed to completion.
func (s *DedupStore) IsSettled(ctx context.Context, eventType, externalRef string) (bool, error) {
	err := s.client.Get(ctx, s.key(eventType, externalRef)).Err()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis dedup get: %w", err)
	}
	return true, nil
}

// MarkSettled records the event as settled for the retention window.
func (s *DedupStore) MarkSettled(ctx context.Context, eventType, externalRef string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(eventType, externalRef), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis dedup set: %w", err)
	}
	return nil
}
