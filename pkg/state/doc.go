/*
Package state provides the persistent state objects that the synchronization
core drives.

A concrete state embeds Base, returns a constant Kind and overrides any of the
OnEnter, OnUpdate and OnExit hooks:

	const KindRun domain.Kind = "Run"

	type Run struct {
		state.Base
		Speed float64
	}

	func (r *Run) Kind() domain.Kind { return KindRun }

	func (r *Run) OnUpdate() {
		if !r.Enabled() {
			return
		}
		// per-frame behavior
	}

Enabled is advisory. The core runs every hook regardless of it; states that
care return early.
*/
package state
