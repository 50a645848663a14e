/*
Package relay implements the proxies the external driver invokes on every
lifecycle call.

Relays are owned by the driver: it creates them, calls them once per frame
per active layer and destroys them whenever the driven object is disabled.
A relay therefore stores only its configured name. On its first call it
resolves that name through the Host; after that it forwards to the Host for
the rest of its life. A relay whose name does not resolve logs one error and
stays inert until the driver replaces it with a fresh instance.

	r := relay.NewState("Run")
	r.OnStateEnter(machine, 0)
	r.OnStateUpdate(machine, 0, dt)
	r.OnStateExit(machine, 0)
*/
package relay
