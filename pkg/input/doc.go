// Package input is the synchronous event dispatch shared by the integrator and
// the generators.
//
// The integrator gates raw device input against the current modes and raises
// the events that passed. Generators subscribe in their constructors. Handlers
// run on the caller's goroutine, in subscription order.
package input
