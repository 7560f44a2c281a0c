// Package scenario describes scripted input sessions and replays them
// against an Engine on a fixed frame clock.
//
// A scenario is a YAML document:
//
//	name: mouse-takeover
//	fps: 60
//	duration: 1.5
//	modes:
//	  keyboard_and_mouse: 0
//	steps:
//	  - at: 0.5
//	    action: mouse_move
//	    args: {x: 0.2, y: -0.1}
//	  - at: 1.0
//	    action: expect
//	    args: {hand: right, target: mouse}
//
// Actions are the input kinds of handik.Apply plus set_modes,
// avatar_loaded, avatar_unloaded, feed, lost, play_motion and expect.
package scenario
