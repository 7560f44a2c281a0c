package domain

import "errors"

// ErrSnapshotNotFound is returned when a profile has no persisted snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrUnknownTargetType is returned when a target type name cannot be parsed.
var ErrUnknownTargetType = errors.New("unknown target type")

// ErrUnknownInput is returned when an input kind is not recognised by a transport.
var ErrUnknownInput = errors.New("unknown input kind")

// ErrRunnerStopped is returned when a command is submitted to a stopped runner.
var ErrRunnerStopped = errors.New("runner stopped")

// ErrInvalidConfig wraps configuration validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// ErrScenarioNotFound is returned when a loader has no scenario with the given name.
var ErrScenarioNotFound = errors.New("scenario not found")
