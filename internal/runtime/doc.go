// Package runtime implements the hand target arbitration core.
//
// A HandMachine owns the current and previous state of one hand and blends
// between them after every accepted transition. The Integrator owns both
// machines, gates raw input against the active Modes, drains the generator
// request queue once per frame and enforces the cooldown and idle-timeout
// policies.
//
// Nothing in this package locks. All calls except Modes are expected on the
// goroutine that drives Update.
package runtime
