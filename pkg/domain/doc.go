/*
Package domain contains the core domain models of the handik engine.

It defines the vocabulary shared by the arbitration core, the generators and the
adapters: which hand is being driven, which input source currently owns it, the
pose a source produces and the mode flags that gate raw input. This package is
kept pure and free of I/O, following the same hexagonal split as the rest of the
module.

# Key Entities

  - Hand: the limb being driven (left or right).
  - TargetType: the semantic input source a hand is tracking.
  - HandState: the momentary pose contract a generator exposes for one hand.
  - Generator: a collaborator producing HandStates for one input device.
  - Modes: the immutable snapshot of global mode flags.
  - LifecycleHooks: observability callbacks for transitions and mode changes.
*/
package domain
