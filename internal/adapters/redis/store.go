package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/ali/pkg/domain"
)

// HistoryStore implements ports.HistoryStore as a capped Redis list.
// Entries are pushed on the right, so the list reads oldest first.
type HistoryStore struct {
	client     *backend.Client
	key        string
	maxEntries int64
	ttl        time.Duration
}

type Option func(*HistoryStore)

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(s *HistoryStore) {
		s.key = key
	}
}

// WithMaxEntries caps the list; older entries are trimmed on append. Zero keeps everything.
func WithMaxEntries(n int64) Option {
	return func(s *HistoryStore) {
		s.maxEntries = n
	}
}

// WithTTL expires the whole history after a period without appends.
func WithTTL(ttl time.Duration) Option {
	return func(s *HistoryStore) {
		s.ttl = ttl
	}
}

// New creates a store from a redis:// URL.
func New(url string, opts ...Option) (*HistoryStore, error) {
	options, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(options), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *HistoryStore {
	store := &HistoryStore{
		client:     client,
		key:        "ali:history",
		maxEntries: 10000,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Append pushes entry to the list.
func (s *HistoryStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, s.key, data)
	if s.maxEntries > 0 {
		pipe.LTrim(ctx, s.key, -s.maxEntries, -1)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, oldest first. A limit <= 0 returns everything.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}

	values, err := s.client.LRange(ctx, s.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(values))
	for _, v := range values {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Close closes the redis client.
func (s *HistoryStore) Close() error {
	return s.client.Close()
}
