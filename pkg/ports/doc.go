/*
Package ports defines the interfaces between the synchronization core and its
external collaborators.

# Key Interfaces

  - Driver: the frame-driven engine that owns the relays. Read once at activation.
  - Locator: finds persistent state objects in the owning object graph.
  - OverlayStore: publishes read-only snapshots for debug overlays.
*/
package ports
