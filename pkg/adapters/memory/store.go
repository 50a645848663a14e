package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/statesync/pkg/domain"
)

// Store implements ports.OverlayStore in memory.
// Safe for concurrent use, so a frame loop can publish while HTTP handlers read.
type Store struct {
	data map[string]domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Snapshot),
	}
}

// Publish stores a copy of the snapshot.
func (s *Store) Publish(ctx context.Context, snap domain.Snapshot) error {
	copied := clone(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[snap.Machine] = copied
	return nil
}

// Load retrieves a copy of the latest snapshot of machine.
func (s *Store) Load(ctx context.Context, machine string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[machine]
	if !ok {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}

	// Copy on read so callers can't mutate the store through shared slices
	return clone(snap), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, machine string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, machine)
	return nil
}

// List returns the machines with a snapshot, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	machines := make([]string, 0, len(s.data))
	for id := range s.data {
		machines = append(machines, id)
	}
	sort.Strings(machines)
	return machines, nil
}

func clone(snap domain.Snapshot) domain.Snapshot {
	out := snap
	out.Layers = append([]domain.LayerView(nil), snap.Layers...)
	out.States = append([]domain.StateView(nil), snap.States...)
	return out
}
