// Package drafts keeps in-progress sale drafts in redis so a register can
// resume an unfinished sale. Payloads are opaque JSON; the store never
// inspects them.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "drafts:sale:"

// ErrNotFound is returned when the draft id has no entry, including drafts
// that expired.
var ErrNotFound = errors.New("drafts: not found")

// Draft is a stored draft with its metadata envelope.
type Draft struct {
	ID        string          `json:"id"`
	SavedAt   time.Time       `json:"savedAt"`
	Payload   json.RawMessage `json:"payload"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// Store is the redis-backed draft store.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewStore constructs a Store. Drafts expire after ttl.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl, now: time.Now}
}

// WithClock overrides the wall clock, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Save stores the payload under a fresh uuid and returns the stored draft.
func (s *Store) Save(ctx context.Context, payload json.RawMessage) (Draft, error) {
	if !json.Valid(payload) {
		return Draft{}, fmt.Errorf("drafts: payload is not valid JSON")
	}
	saved := s.now().UTC()
	draft := Draft{
		ID:        uuid.NewString(),
		SavedAt:   saved,
		Payload:   payload,
		ExpiresAt: saved.Add(s.ttl),
	}
	raw, err := json.Marshal(draft)
	if err != nil {
		return Draft{}, fmt.Errorf("drafts: encode: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+draft.ID, raw, s.ttl).Err(); err != nil {
		return Draft{}, fmt.Errorf("drafts: save: %w", err)
	}
	return draft, nil
}

// Get fetches one draft by id.
func (s *Store) Get(ctx context.Context, id string) (Draft, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("drafts: get: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, fmt.Errorf("drafts: decode: %w", err)
	}
	return draft, nil
}

// Delete removes one draft. Deleting an absent draft returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("drafts: delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all live drafts, newest first.
func (s *Store) List(ctx context.Context) ([]Draft, error) {
	var (
		cursor uint64
		drafts []Draft
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, keyPrefix+"*", 64).Result()
		if err != nil {
			return nil, fmt.Errorf("drafts: scan: %w", err)
		}
		for _, key := range keys {
			raw, err := s.client.Get(ctx, key).Bytes()
			if err == redis.Nil {
				// Expired between scan and get.
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("drafts: get %s: %w", key, err)
			}
			var draft Draft
			if err := json.Unmarshal(raw, &draft); err != nil {
				return nil, fmt.Errorf("drafts: decode %s: %w", key, err)
			}
			drafts = append(drafts, draft)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].SavedAt.After(drafts[j].SavedAt)
	})
	return drafts, nil
}
