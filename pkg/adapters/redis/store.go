package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/statesync/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.OverlayStore using Redis.
// Each machine gets a JSON snapshot key and a flat hash of layer fields
// ("0.current", "0.last", ...) that lightweight overlays can HGETALL.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for snapshots.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for snapshots.
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
		prefix: "statesync:overlay:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(machine string) string {
	return s.prefix + machine
}

func (s *Store) layersKey(machine string) string {
	return s.prefix + machine + ":layers"
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Publish writes the snapshot and its layer hash in one pipeline.
func (s *Store) Publish(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	fields := make(map[string]any, len(snap.Layers)*5)
	for _, l := range snap.Layers {
		p := strconv.Itoa(l.Index) + "."
		fields[p+"name"] = l.Name
		fields[p+"current"] = l.Current.String()
		fields[p+"last"] = l.Last.String()
		fields[p+"machine"] = l.Machine.String()
		fields[p+"last_machine"] = l.LastMachine.String()
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(snap.Machine), data, s.ttl)

	// Replace the hash so layers from an older layout do not linger
	pipe.Del(ctx, s.layersKey(snap.Machine))
	if len(fields) > 0 {
		pipe.HSet(ctx, s.layersKey(snap.Machine), fields)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.layersKey(snap.Machine), s.ttl)
		}
	}

	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: snap.Machine,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}
	return nil
}

// Load retrieves the latest snapshot of machine.
func (s *Store) Load(ctx context.Context, machine string) (domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key(machine)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// LayerFields returns the raw layer hash of machine.
func (s *Store) LayerFields(ctx context.Context, machine string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, s.layersKey(machine)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read layer hash: %w", err)
	}
	return fields, nil
}

// Delete removes the snapshot of machine.
func (s *Store) Delete(ctx context.Context, machine string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(machine), s.layersKey(machine))
	pipe.ZRem(ctx, s.indexKey(), machine)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns machines with a live snapshot, pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired snapshots: %w", err)
	}

	machines, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return machines, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
