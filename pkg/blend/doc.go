// Package blend holds the interpolation math used when a hand switches source:
// the cubic ease curve, position lerp and rotation slerp.
package blend
