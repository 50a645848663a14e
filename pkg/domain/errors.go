package domain

import "errors"

// ErrMissingParent is reported when a state has no owning machine and one is created for it.
var ErrMissingParent = errors.New("missing parent machine")

// ErrUnresolvedName is returned when a relay name matches no registered kind.
var ErrUnresolvedName = errors.New("unresolved binder name")

// ErrDuplicateKind is returned when a second state registers an existing kind.
// The first registration is kept.
var ErrDuplicateKind = errors.New("duplicate kind registration")

// ErrInvalidKind is returned when a state reports an empty kind.
var ErrInvalidKind = errors.New("invalid kind")

// ErrLayerOccupied is returned when a layer receives Enter while another activation is open.
var ErrLayerOccupied = errors.New("layer already has a current state")

// ErrLayerOutOfRange is returned for layer indexes outside [0, layerCount).
var ErrLayerOutOfRange = errors.New("layer index out of range")

// ErrStateMismatch is returned when Exit targets a state that is not current on the layer.
var ErrStateMismatch = errors.New("state is not current on layer")

// ErrNotExecuting is returned when Update or Exit reaches an idle state.
var ErrNotExecuting = errors.New("state is not executing")

// ErrAlreadyExecuting is returned when Enter reaches a state that is executing on another layer.
var ErrAlreadyExecuting = errors.New("state is already executing")

// ErrNotActive is returned when the machine is used before Activate.
var ErrNotActive = errors.New("machine is not active")

// ErrAlreadyActive is returned by operations that are only valid before activation.
var ErrAlreadyActive = errors.New("machine already activated")

// ErrSnapshotNotFound is returned by overlay stores that have nothing published yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")
