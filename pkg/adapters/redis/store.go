package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix used when none is set.
const DefaultPrefix = "wayfinder:record:"

// Store implements ports.RecordStore using Redis, so external observers
// (dashboards, other agents' tooling) can read the last-known screen states.
//
// Records are stored as JSON, one key per navigable and kind, indexed by a ZSET
// scored by expiry. Records read back carry NavigableID but no reference.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix (e.g. per session).
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client (e.g. for health checks).
func (s *Store) Client() *backend.Client {
	return s.client
}

func member(id string, kind domain.StateKind) string {
	return id + "|" + string(kind)
}

func (s *Store) key(m string) string {
	return s.prefix + m
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Put stores rec as the last-known record for its navigable and kind.
func (s *Store) Put(ctx context.Context, rec domain.StateRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	m := member(rec.NavigableID, rec.Kind)
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(m), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: m})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Last returns the last-known record.
func (s *Store) Last(ctx context.Context, navigableID string, kind domain.StateKind) (domain.StateRecord, error) {
	val, err := s.client.Get(ctx, s.key(member(navigableID, kind))).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.StateRecord{}, domain.ErrRecordNotFound
		}
		return domain.StateRecord{}, fmt.Errorf("failed to get from redis: %w", err)
	}
	return decode(val)
}

// List returns every live record, lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]domain.StateRecord, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune index: %w", err)
	}

	members, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list index: %w", err)
	}
	if len(members) == 0 {
		return []domain.StateRecord{}, nil
	}
	sort.Strings(members)

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = s.key(m)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	records := make([]domain.StateRecord, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // expired between index read and MGET
		}
		rec, err := decode(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Clear removes every record under the prefix.
func (s *Store) Clear(ctx context.Context) error {
	members, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list index: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, m := range members {
		pipe.Del(ctx, s.key(m))
	}
	pipe.Del(ctx, s.indexKey())
	_, err = pipe.Exec(ctx)
	return err
}

func decode(raw string) (domain.StateRecord, error) {
	var rec domain.StateRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.StateRecord{}, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return rec, nil
}
