/*
Package handik arbitrates which input device drives each of an avatar's hands and blends the hand IK targets when control changes.

Every device (keyboard, pointer, gamepad, arcade stick, MIDI controller, image tracking) is a Generator that produces a hand state. Generators never write the hand targets themselves: they ask to take over a hand, and the integrator accepts or rejects the request against the current Modes. Continuous input such as the pointer or a stick is dropped while the hand is in its cooldown; discrete triggers such as key presses always fire. Accepted changes are blended over a short eased transition so the hands never jump.

# Concept

The engine is frame driven and single threaded. Input calls and mode changes happen between frames; Update runs the generators, drains the queued requests in arrival order, blends both hands and hands the result to a TargetSink. Hosts that receive input on other goroutines go through pkg/runner, which marshals commands onto the frame loop.

# Key Features

  - Mutual exclusion: each hand follows exactly one target type at a time.
  - Cooldown: a hand that just switched ignores continuous input from other devices for 0.3s.
  - Smooth blends: transitions ease over 0.25s from the previous pose.
  - Mode gating: keyboard, mouse, gamepad and MIDI input are routed according to the active Modes, including word-to-motion redirection.
  - Motions: typed words, number keys, gamepad buttons and MIDI notes can trigger clips.

# Usage

	package main

	import (
		"log"

		"github.com/aretw0/handik"
		"github.com/aretw0/handik/pkg/domain"
	)

	func main() {
		eng, err := handik.New(
			handik.WithTargetSink(domain.TargetSinkFunc(func(h domain.Hand, p domain.Pose) {
				// Write p to the avatar's IK target for h.
			})),
		)
		if err != nil {
			log.Fatal(err)
		}
		eng.OnAvatarLoaded()

		// Per frame: feed input, then update.
		eng.KeyDown("a")
		eng.Update(1.0 / 60)
	}
*/
package handik
