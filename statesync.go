package statesync

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/statesync/pkg/domain"
	"github.com/aretw0/statesync/pkg/layers"
	"github.com/aretw0/statesync/pkg/ports"
	"github.com/aretw0/statesync/pkg/registry"
	"github.com/aretw0/statesync/pkg/relay"
	"github.com/aretw0/statesync/pkg/state"
)

// Machine is the synchronization core. It owns the registry and the layer
// tracker, and relays forward the driver's lifecycle calls to it.
type Machine struct {
	Name string

	driver  ports.Driver
	locator ports.Locator
	hooks   []domain.LifecycleHooks
	logger  *slog.Logger
	strict  bool

	pending  []state.State
	registry *registry.Registry
	tracker  *layers.Tracker
	active   bool
}

var _ relay.Host = (*Machine)(nil)

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithName labels the machine in logs and snapshots.
func WithName(name string) Option {
	return func(m *Machine) {
		m.Name = name
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLocator injects the component locator of the owning object graph.
func WithLocator(l ports.Locator) Option {
	return func(m *Machine) {
		m.locator = l
	}
}

// WithLifecycleHooks registers observability hooks. It can be given more than once.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = append(m.hooks, hooks)
	}
}

// WithStrict makes Activate fail on duplicate kinds instead of logging and continuing.
// Meant for tests and CI builds.
func WithStrict(strict bool) Option {
	return func(m *Machine) {
		m.strict = strict
	}
}

// New creates an inactive machine driven by driver.
func New(driver ports.Driver, opts ...Option) *Machine {
	m := &Machine{driver: driver}
	for _, opt := range opts {
		opt(m)
	}

	// Ensure logger is initialized
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if m.Name != "" {
		m.logger = m.logger.With("machine", m.Name)
	}
	return m
}

// Bind attaches s to parent. When parent is nil a machine is created for s,
// a warning is logged and the new machine is returned.
func Bind(s state.State, parent *Machine, driver ports.Driver, opts ...Option) *Machine {
	if parent == nil {
		parent = New(driver, opts...)
		parent.logger.Warn("state has no parent machine, creating one",
			"kind", s.Kind(),
			"err", domain.ErrMissingParent,
		)
	}
	if err := parent.Add(s); err != nil {
		parent.logger.Error("bind failed", "kind", s.Kind(), "err", err)
	}
	return parent
}

// Add queues states for registration. States are attached to the machine
// immediately and registered when it activates.
func (m *Machine) Add(states ...state.State) error {
	if m.registry != nil {
		return fmt.Errorf("%w: registry is already built", domain.ErrAlreadyActive)
	}
	for _, s := range states {
		state.Attach(s, m)
		m.pending = append(m.pending, s)
	}
	return nil
}

// Activate builds the registry and the layers on first call, then marks
// the machine active. Later calls after Deactivate only reactivate it.
func (m *Machine) Activate() error {
	if m.active {
		return domain.ErrAlreadyActive
	}
	if m.registry != nil {
		m.active = true
		m.logger.Debug("machine reactivated")
		return nil
	}
	if m.driver == nil {
		return fmt.Errorf("%w: no driver configured", domain.ErrNotActive)
	}

	candidates := m.pending
	if m.locator != nil {
		for _, s := range m.locator.States() {
			state.Attach(s, m)
			candidates = append(candidates, s)
		}
	}

	reg := registry.NewRegistry()
	var errs []error
	for _, s := range candidates {
		if err := reg.Register(s); err != nil {
			if existing, ok := reg.Lookup(s.Kind()); ok && existing == s {
				// Same object reached through Add and the locator.
				continue
			}
			m.logger.Error("state registration rejected", "kind", s.Kind(), "err", err)
			errs = append(errs, err)
		}
	}
	// A strict failure leaves the machine unbuilt, so every retry fails the same way.
	if m.strict && len(errs) > 0 {
		return fmt.Errorf("activate: %w", errors.Join(errs...))
	}

	m.pending = nil
	m.registry = reg
	m.tracker = layers.New(ports.LayerNames(m.driver))
	m.active = true
	m.logger.Debug("machine activated", "states", reg.Len(), "layers", m.tracker.Len())
	return nil
}

// Deactivate marks the machine inactive. Registry and layers are kept; states
// report Enabled() == false until the next Activate.
func (m *Machine) Deactivate() {
	m.active = false
}

// Active reports whether the machine is active.
func (m *Machine) Active() bool {
	return m.active
}

// Logger returns the machine logger.
func (m *Machine) Logger() *slog.Logger {
	return m.logger
}

// Registry returns the registry, or nil before the first Activate.
func (m *Machine) Registry() *registry.Registry {
	return m.registry
}

// Layers returns the layer tracker, or nil before the first Activate.
func (m *Machine) Layers() *layers.Tracker {
	return m.tracker
}

// Lookup returns the state registered for kind.
func (m *Machine) Lookup(kind domain.Kind) (state.State, bool) {
	if m.registry == nil {
		return nil, false
	}
	return m.registry.Lookup(kind)
}

// LookupByName returns the state whose kind matches name ignoring case.
func (m *Machine) LookupByName(name string) (state.State, bool) {
	if m.registry == nil {
		return nil, false
	}
	return m.registry.LookupByName(name)
}

// Resolve implements relay.Host. It falls back to the locator for names the
// registry does not know; located states are not registered.
func (m *Machine) Resolve(name string) (state.State, error) {
	if m.registry == nil {
		return nil, domain.ErrNotActive
	}
	if s, ok := m.registry.LookupByName(name); ok {
		return s, nil
	}
	if m.locator != nil {
		if s, ok := m.locator.Locate(name); ok {
			m.logger.Debug("relay resolved through locator", "name", name, "kind", s.Kind())
			state.Attach(s, m)
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnresolvedName, name)
}

// Validate checks every relay name against the registry.
func (m *Machine) Validate(names ...string) error {
	if m.registry == nil {
		return domain.ErrNotActive
	}
	return m.registry.Validate(names...)
}

// EnterState starts the activation of s on layer.
func (m *Machine) EnterState(layer int, s state.State) error {
	if m.tracker == nil {
		return domain.ErrNotActive
	}
	if err := m.tracker.Enter(layer, s); err != nil {
		return err
	}
	m.fire(domain.EventStateEnter, layer, s, 0, state.View(s))
	return nil
}

// UpdateState counts one frame of delta seconds on s.
// layer only labels the emitted event.
func (m *Machine) UpdateState(layer int, s state.State, delta float64) error {
	if m.tracker == nil {
		return domain.ErrNotActive
	}
	if err := m.tracker.Update(s, delta); err != nil {
		return err
	}
	m.fire(domain.EventStateUpdate, layer, s, delta, state.View(s))
	return nil
}

// ExitState ends the activation of s on layer.
func (m *Machine) ExitState(layer int, s state.State) error {
	if m.tracker == nil {
		return domain.ErrNotActive
	}
	before := state.View(s)
	if err := m.tracker.Exit(layer, s); err != nil {
		return err
	}
	m.fire(domain.EventStateExit, layer, s, 0, before)
	return nil
}

// EnterMachine starts a sub-machine activation of s on layer.
func (m *Machine) EnterMachine(layer int, s state.State) error {
	if m.tracker == nil {
		return domain.ErrNotActive
	}
	if err := m.tracker.EnterMachine(layer, s); err != nil {
		return err
	}
	m.fire(domain.EventMachineEnter, layer, s, 0, state.View(s))
	return nil
}

// ExitMachine ends the sub-machine activation of s on layer.
func (m *Machine) ExitMachine(layer int, s state.State) error {
	if m.tracker == nil {
		return domain.ErrNotActive
	}
	before := state.View(s)
	if err := m.tracker.ExitMachine(layer, s); err != nil {
		return err
	}
	m.fire(domain.EventMachineExit, layer, s, 0, before)
	return nil
}

func (m *Machine) fire(typ domain.EventType, layer int, s state.State, delta float64, view domain.StateView) {
	if typ != domain.EventStateUpdate {
		m.logger.Debug(string(typ), "layer", layer, "kind", s.Kind(), "frames", view.Frames)
	}
	if len(m.hooks) == 0 {
		return
	}
	e := &domain.StateEvent{
		Type:    typ,
		Layer:   layer,
		Kind:    s.Kind(),
		Delta:   delta,
		Frames:  view.Frames,
		Seconds: view.Seconds,
	}
	for _, h := range m.hooks {
		h.Fire(e)
	}
}

// Snapshot copies the current layers and states for overlays.
// frame is stamped as given; the machine does not count frames itself.
func (m *Machine) Snapshot(frame uint64) domain.Snapshot {
	snap := domain.Snapshot{
		Machine: m.Name,
		Frame:   frame,
		Active:  m.active,
	}
	if m.tracker != nil {
		snap.Layers = m.tracker.Views()
	}
	if m.registry != nil {
		for _, s := range m.registry.States() {
			snap.States = append(snap.States, state.View(s))
		}
	}
	return snap
}
