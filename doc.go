/*
Package statesync keeps persistent, inspectable state objects in step with a
frame-driven state machine that someone else owns.

The driver (an animation or behavior engine) creates short-lived relays,
destroys them whenever the driven object is disabled and calls them once per
frame for every active layer. statesync gives those calls a stable home: a
Registry maps each state Kind to one long-lived state object, a layer tracker
remembers the current and last state of every parallel layer, and each
activation accumulates its own frame and second counters.

# Concept

The Machine is purely reactive. It never decides when a transition happens;
it forwards what the driver reports and keeps the bookkeeping honest:

  - at most one current state per layer,
  - timing counters reset exactly at enter and at exit,
  - a relay resolves its name once per instance and no-ops forever if it cannot.

Everything runs on the caller's goroutine. There is no locking, no timer and
no background work.

# Usage

	type Run struct{ state.Base }

	func (r *Run) Kind() domain.Kind { return "Run" }

	func main() {
		driver := memory.NewDriver("Base", "Upper")
		m := statesync.New(driver, statesync.WithName("hero"))
		if err := m.Add(&Run{}); err != nil {
			log.Fatal(err)
		}
		if err := m.Activate(); err != nil {
			log.Fatal(err)
		}

		// The driver owns relays; here we play its part.
		r := relay.NewState("run")
		r.OnStateEnter(m, 0)
		for i := 0; i < 3; i++ {
			r.OnStateUpdate(m, 0, 1.0/60)
		}
		r.OnStateExit(m, 0)
	}
*/
package statesync
