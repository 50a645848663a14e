package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/statesync/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractSnapshot(machine string) domain.Snapshot {
	return domain.Snapshot{
		Machine: machine,
		Frame:   42,
		Active:  true,
		Layers: []domain.LayerView{
			{Index: 0, Name: "Base", Current: "Run", Last: "Idle"},
			{Index: 1, Name: "Upper", Machine: "Combat"},
		},
		States: []domain.StateView{
			{Kind: "Idle", Enabled: true},
			{Kind: "Run", Enabled: true, Executing: true, Frames: 5, Seconds: 0.08},
		},
	}
}

// RunOverlayStoreContract runs a suite of tests to verify that an OverlayStore implementation
// adheres to the defined interface contract.
func RunOverlayStoreContract(t *testing.T, store OverlayStore) {
	ctx := context.Background()
	machine := "contract-machine-" + time.Now().Format("20060102150405")

	t.Run("Publish and Load", func(t *testing.T) {
		snap := contractSnapshot(machine)

		err := store.Publish(ctx, snap)
		require.NoError(t, err, "Publish should not return error")

		loaded, err := store.Load(ctx, machine)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Frame, loaded.Frame)
		assert.Equal(t, snap.Layers, loaded.Layers)
		assert.Equal(t, domain.Kind("Run"), loaded.States[1].Kind)
		assert.InDelta(t, 0.08, loaded.States[1].Seconds, 1e-9)
	})

	t.Run("Publish Replaces", func(t *testing.T) {
		snap := contractSnapshot(machine)
		snap.Frame = 43
		snap.Layers[0].Current = ""
		require.NoError(t, store.Publish(ctx, snap))

		loaded, err := store.Load(ctx, machine)
		require.NoError(t, err)
		assert.Equal(t, uint64(43), loaded.Frame)
		assert.Empty(t, loaded.Layers[0].Current)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+machine)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Publish(ctx, contractSnapshot(machine)))

		err := store.Delete(ctx, machine)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, machine)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := machine + "-1"
		id2 := machine + "-2"
		_ = store.Publish(ctx, contractSnapshot(id1))
		_ = store.Publish(ctx, contractSnapshot(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		machines, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, machines, id1)
		assert.Contains(t, machines, id2)
	})
}
