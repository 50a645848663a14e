package ports

import (
	"context"

	"github.com/aretw0/statesync/pkg/domain"
)

// OverlayStore keeps the latest snapshot of each machine for read-only overlays.
// Snapshots are diagnostics, not durable state: nothing reads them back into a machine.
type OverlayStore interface {
	// Publish replaces the snapshot stored for snap.Machine.
	Publish(ctx context.Context, snap domain.Snapshot) error

	// Load returns the latest snapshot of machine.
	// Returns domain.ErrSnapshotNotFound if nothing was published.
	Load(ctx context.Context, machine string) (domain.Snapshot, error)

	// Delete removes the snapshot of machine.
	Delete(ctx context.Context, machine string) error

	// List returns the machines with a published snapshot.
	List(ctx context.Context) ([]string, error)
}
