package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"pixdrop/internal/domain"
)

const defaultEventsKey = "pixdrop:events"

// cmdable is the slice of the go-redis API the store needs.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// EventStore keeps the whole event collection as one JSON array under a
// single key. Every Load and Save round-trips to Redis so stateless
// invocations never depend on in-memory state. Beyond single-key
// read-then-write there is no transactional guarantee: concurrent
// Load-mutate-Save cycles are last-writer-wins.
type EventStore struct {
	client cmdable
	key    string
}

// NewEventStore connects to Redis using a URL (redis:// or rediss://) and
// verifies the connection before returning.
func NewEventStore(redisURL, key string) (*EventStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	if key == "" {
		key = defaultEventsKey
	}
	return &EventStore{client: client, key: key}, nil
}

// Load returns all stored events. A key that was never written loads as an
// empty collection; any other failure wraps ErrStoreUnavailable.
func (s *EventStore) Load(ctx context.Context) ([]*domain.Event, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*domain.Event{}, nil
		}
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrStoreUnavailable, s.key, err)
	}
	var events []*domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStoreUnavailable, s.key, err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// Save replaces the stored collection with events.
func (s *EventStore) Save(ctx context.Context, events []*domain.Event) error {
	if events == nil {
		events = []*domain.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", domain.ErrStoreUnavailable, s.key, err)
	}
	return nil
}
