/*
Package timeline is a scripted driver. It reads a timeline file describing
layers and the frames at which states are entered and exited, then plays it
against a relay host exactly the way an engine would: relays are created on
demand, cached while the driver is enabled, destroyed on disable and
recreated on enable, and every active relay is ticked once per frame.

A timeline in YAML:

	name: hero
	delta: 0.016
	frames: 120
	layers: [Base, Upper]
	states: [Idle, Run, Aim, Locomotion]
	events:
	  - { frame: 0, layer: 0, enter: Idle }
	  - { frame: 10, layer: 0, enter: Run }
	  - { frame: 20, machine: Locomotion }
	  - { frame: 30, layer: 1, enter: Aim }
	  - { frame: 50, layer: 1, exit: true }
	  - { frame: 60, disable: true }
	  - { frame: 61, enable: true }

JSON and TOML files with the same keys are accepted too.
*/
package timeline
