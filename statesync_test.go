package statesync_test

import (
	"log/slog"
	"testing"

	"github.com/aretw0/statesync"
	"github.com/aretw0/statesync/internal/testutils"
	"github.com/aretw0/statesync/pkg/adapters/memory"
	"github.com/aretw0/statesync/pkg/domain"
	"github.com/aretw0/statesync/pkg/relay"
	"github.com/aretw0/statesync/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindState struct {
	state.Base
	kind domain.Kind
}

func (k *kindState) Kind() domain.Kind { return k.kind }

func newMachine(t *testing.T, opts ...statesync.Option) (*statesync.Machine, *testutils.RecordingHandler) {
	t.Helper()
	logger, rec := testutils.NewRecordingLogger(t)
	opts = append([]statesync.Option{statesync.WithLogger(logger)}, opts...)
	return statesync.New(memory.NewDriver("Base", "Upper"), opts...), rec
}

func TestMachine_Activate(t *testing.T) {
	m, rec := newMachine(t)
	run := &kindState{kind: "RunState"}
	idle := &kindState{kind: "IdleState"}
	require.NoError(t, m.Add(run, idle))

	assert.Nil(t, m.Registry())
	assert.False(t, run.Enabled(), "states are disabled until the machine activates")

	require.NoError(t, m.Activate())
	assert.True(t, m.Active())
	assert.True(t, run.Enabled())
	assert.Equal(t, 2, m.Registry().Len())
	assert.Equal(t, 2, m.Layers().Len())

	got, ok := m.LookupByName("RUNSTATE")
	require.True(t, ok)
	assert.Same(t, run, got)

	assert.ErrorIs(t, m.Activate(), domain.ErrAlreadyActive)
	assert.ErrorIs(t, m.Add(&kindState{kind: "Late"}), domain.ErrAlreadyActive)
	assert.Zero(t, rec.Count(slog.LevelError))
}

func TestMachine_ActivateWithoutDriver(t *testing.T) {
	m := statesync.New(nil)
	assert.ErrorIs(t, m.Activate(), domain.ErrNotActive)
	assert.False(t, m.Active())
}

func TestMachine_DuplicateKind(t *testing.T) {
	m, rec := newMachine(t)
	first := &kindState{kind: "RunState"}
	second := &kindState{kind: "RunState"}
	require.NoError(t, m.Add(first, second))

	require.NoError(t, m.Activate())
	got, _ := m.Lookup("RunState")
	assert.Same(t, first, got)
	assert.Equal(t, 1, rec.Count(slog.LevelError))
}

func TestMachine_DuplicateKindStrict(t *testing.T) {
	m, _ := newMachine(t, statesync.WithStrict(true))
	require.NoError(t, m.Add(&kindState{kind: "RunState"}, &kindState{kind: "RunState"}))

	err := m.Activate()
	assert.ErrorIs(t, err, domain.ErrDuplicateKind)
	assert.False(t, m.Active())
}

func TestMachine_DuplicateKindStrictRetry(t *testing.T) {
	m, _ := newMachine(t, statesync.WithStrict(true))
	require.NoError(t, m.Add(&kindState{kind: "Run"}, &kindState{kind: "Run"}))

	require.ErrorIs(t, m.Activate(), domain.ErrDuplicateKind)
	assert.ErrorIs(t, m.Activate(), domain.ErrDuplicateKind, "retry must fail the same way")
	assert.False(t, m.Active())
	assert.Nil(t, m.Registry())
	assert.Nil(t, m.Layers())
}

func TestMachine_Locator(t *testing.T) {
	run := &kindState{kind: "Run"}
	idle := &kindState{kind: "Idle"}
	m, rec := newMachine(t, statesync.WithLocator(memory.NewLocator(run)))

	// The same object reached through Add and the locator is registered once.
	require.NoError(t, m.Add(run, idle))
	require.NoError(t, m.Activate())
	assert.Equal(t, 2, m.Registry().Len())
	assert.Zero(t, rec.Count(slog.LevelError))
}

// lateLocator finds states that did not exist when the machine activated.
type lateLocator struct {
	late []state.State
}

func (l *lateLocator) States() []state.State { return nil }

func (l *lateLocator) Locate(name string) (state.State, bool) {
	for _, s := range l.late {
		if s.Kind().Matches(name) {
			return s, true
		}
	}
	return nil, false
}

func TestMachine_ResolveFallsBackToLocator(t *testing.T) {
	loc := &lateLocator{}
	m, _ := newMachine(t, statesync.WithLocator(loc))

	_, err := m.Resolve("Run")
	assert.ErrorIs(t, err, domain.ErrNotActive)

	run := &kindState{kind: "Run"}
	require.NoError(t, m.Add(run))
	require.NoError(t, m.Activate())

	got, err := m.Resolve("run")
	require.NoError(t, err)
	assert.Same(t, run, got)

	_, err = m.Resolve("Late")
	assert.ErrorIs(t, err, domain.ErrUnresolvedName)

	late := &kindState{kind: "Late"}
	loc.late = append(loc.late, late)
	got, err = m.Resolve("late")
	require.NoError(t, err)
	assert.Same(t, late, got)
	assert.Same(t, m, late.Owner())

	_, registered := m.Lookup("Late")
	assert.False(t, registered, "located states are not registered")
}

func TestBind_MissingParent(t *testing.T) {
	logger, rec := testutils.NewRecordingLogger(t)
	run := &kindState{kind: "Run"}

	m := statesync.Bind(run, nil, memory.NewDriver("Base"), statesync.WithLogger(logger))
	require.NotNil(t, m)
	assert.Equal(t, 1, rec.Count(slog.LevelWarn))
	assert.Same(t, m, run.Owner())

	require.NoError(t, m.Activate())
	_, ok := m.Lookup("Run")
	assert.True(t, ok)

	other := &kindState{kind: "Idle"}
	m2, _ := newMachine(t)
	assert.Same(t, m2, statesync.Bind(other, m2, nil))
}

func TestMachine_Activation(t *testing.T) {
	m, rec := newMachine(t)
	run := &kindState{kind: "RunState"}
	require.NoError(t, m.Add(run))
	require.NoError(t, m.Activate())

	r := relay.NewState("RunState")
	r.OnStateEnter(m, 0)
	assert.Equal(t, run, m.Layers().Current(0))

	for i := 0; i < 5; i++ {
		r.OnStateUpdate(m, 0, 0.016)
	}
	assert.Equal(t, uint64(5), run.TotalFrames())
	assert.InDelta(t, 0.08, run.TotalSeconds(), 1e-9)

	r.OnStateExit(m, 0)
	assert.Zero(t, run.TotalFrames())
	assert.Zero(t, run.TotalSeconds())
	assert.Nil(t, m.Layers().Current(0))
	assert.Equal(t, run, m.Layers().Last(0))
	assert.Zero(t, rec.Count(slog.LevelError))
}

func TestMachine_UnresolvedRelay(t *testing.T) {
	m, rec := newMachine(t)
	require.NoError(t, m.Add(&kindState{kind: "Idle"}))
	require.NoError(t, m.Activate())

	r := relay.NewState("Jump")
	r.OnStateEnter(m, 0)
	for i := 0; i < 30; i++ {
		r.OnStateUpdate(m, 0, 0.016)
	}
	r.OnStateExit(m, 0)

	assert.Equal(t, 1, rec.Count(slog.LevelError))
	assert.Nil(t, m.Layers().Current(0))
}

func TestMachine_NameLabelsLogs(t *testing.T) {
	m, rec := newMachine(t, statesync.WithName("hero"))
	require.NoError(t, m.Activate())

	relay.NewState("Jump").OnStateEnter(m, 0)

	records := rec.Records()
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Equal(t, "hero", r.Attrs["machine"])
	}
}

func TestMachine_ErrorsBeforeActivate(t *testing.T) {
	m, _ := newMachine(t)
	s := &kindState{kind: "Run"}

	assert.ErrorIs(t, m.EnterState(0, s), domain.ErrNotActive)
	assert.ErrorIs(t, m.UpdateState(0, s, 0.1), domain.ErrNotActive)
	assert.ErrorIs(t, m.ExitState(0, s), domain.ErrNotActive)
	assert.ErrorIs(t, m.EnterMachine(0, s), domain.ErrNotActive)
	assert.ErrorIs(t, m.ExitMachine(0, s), domain.ErrNotActive)
	assert.ErrorIs(t, m.Validate("Run"), domain.ErrNotActive)
	_, ok := m.Lookup("Run")
	assert.False(t, ok)
	_, ok = m.LookupByName("Run")
	assert.False(t, ok)
}

func TestMachine_Hooks(t *testing.T) {
	var events []domain.StateEvent
	record := func(e *domain.StateEvent) { events = append(events, *e) }

	m, _ := newMachine(t, statesync.WithLifecycleHooks(domain.LifecycleHooks{
		OnEnter:  record,
		OnUpdate: record,
		OnExit:   record,
	}))
	run := &kindState{kind: "Run"}
	loco := &kindState{kind: "Locomotion"}
	require.NoError(t, m.Add(run, loco))
	require.NoError(t, m.Activate())

	require.NoError(t, m.EnterMachine(0, loco))
	require.NoError(t, m.EnterState(1, run))
	require.NoError(t, m.UpdateState(1, run, 0.5))
	require.NoError(t, m.UpdateState(1, run, 0.5))
	require.NoError(t, m.ExitState(1, run))
	require.NoError(t, m.ExitMachine(0, loco))

	require.Len(t, events, 6)
	assert.Equal(t, domain.EventMachineEnter, events[0].Type)
	assert.Equal(t, domain.EventStateEnter, events[1].Type)
	assert.Equal(t, 1, events[1].Layer)

	assert.Equal(t, domain.EventStateUpdate, events[3].Type)
	assert.InDelta(t, 0.5, events[3].Delta, 1e-12)
	assert.Equal(t, uint64(2), events[3].Frames)

	exit := events[4]
	assert.Equal(t, domain.EventStateExit, exit.Type)
	assert.Equal(t, domain.Kind("Run"), exit.Kind)
	assert.Equal(t, uint64(2), exit.Frames, "exit events carry the counters observed before the reset")
	assert.InDelta(t, 1.0, exit.Seconds, 1e-12)

	assert.Equal(t, domain.EventMachineExit, events[5].Type)
}

func TestMachine_RejectedCallsFireNoHooks(t *testing.T) {
	fired := 0
	m, _ := newMachine(t, statesync.WithLifecycleHooks(domain.LifecycleHooks{
		OnEnter: func(*domain.StateEvent) { fired++ },
		OnExit:  func(*domain.StateEvent) { fired++ },
	}))
	a := &kindState{kind: "A"}
	b := &kindState{kind: "B"}
	require.NoError(t, m.Add(a, b))
	require.NoError(t, m.Activate())

	require.NoError(t, m.EnterState(0, a))
	assert.ErrorIs(t, m.EnterState(0, b), domain.ErrLayerOccupied)
	assert.ErrorIs(t, m.ExitState(0, b), domain.ErrStateMismatch)
	assert.Equal(t, 1, fired)
}

func TestMachine_Deactivate(t *testing.T) {
	m, _ := newMachine(t)
	run := &kindState{kind: "Run"}
	require.NoError(t, m.Add(run))
	require.NoError(t, m.Activate())
	require.NoError(t, m.EnterState(0, run))

	m.Deactivate()
	assert.False(t, m.Active())
	assert.False(t, run.Enabled())
	assert.True(t, run.Executing(), "deactivation does not end activations")

	require.NoError(t, m.Activate())
	assert.True(t, run.Enabled())
	assert.Equal(t, run, m.Layers().Current(0), "layers survive reactivation")
}

func TestMachine_Validate(t *testing.T) {
	m, _ := newMachine(t)
	require.NoError(t, m.Add(&kindState{kind: "Run"}))
	require.NoError(t, m.Activate())

	assert.NoError(t, m.Validate("run"))
	assert.ErrorIs(t, m.Validate("run", "Jump"), domain.ErrUnresolvedName)
}

func TestMachine_Snapshot(t *testing.T) {
	m, _ := newMachine(t, statesync.WithName("hero"))
	a := &kindState{kind: "A"}
	b := &kindState{kind: "B"}
	require.NoError(t, m.Add(a, b))
	require.NoError(t, m.Activate())

	require.NoError(t, m.EnterState(0, a))
	require.NoError(t, m.EnterState(1, b))
	require.NoError(t, m.UpdateState(1, b, 0.25))
	require.NoError(t, m.ExitState(0, a))

	snap := m.Snapshot(42)
	assert.Equal(t, "hero", snap.Machine)
	assert.Equal(t, uint64(42), snap.Frame)
	assert.True(t, snap.Active)

	require.Len(t, snap.Layers, 2)
	assert.Equal(t, domain.LayerView{Index: 0, Name: "Base", Last: "A"}, snap.Layers[0])
	assert.Equal(t, domain.LayerView{Index: 1, Name: "Upper", Current: "B"}, snap.Layers[1])

	view, ok := snap.State("b")
	require.True(t, ok)
	assert.True(t, view.Executing)
	assert.Equal(t, uint64(1), view.Frames)

	// Later calls do not leak into an earlier snapshot.
	require.NoError(t, m.UpdateState(1, b, 0.25))
	view, _ = snap.State("B")
	assert.Equal(t, uint64(1), view.Frames)
}
