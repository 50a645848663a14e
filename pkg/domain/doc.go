/*
Package domain contains the core types shared by every statesync package.

It defines the identity of state implementations (Kind), the read-only views
handed to observers (LayerView, StateView, Snapshot), the lifecycle events
emitted by the synchronization core and the sentinel errors of its error
taxonomy. This package is kept pure and free of I/O.

# Key Entities

  - Kind: the stable, manually assigned identity of a concrete state implementation.
  - LayerView: a value copy of one layer's current/last bookkeeping.
  - StateEvent: what lifecycle hooks receive on enter, update and exit.
  - LifecycleHooks: callbacks for logging, metrics and tracing.
*/
package domain
