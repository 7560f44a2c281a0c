/*
Package ports defines the driven ports (interfaces) of handik.

These interfaces decouple the engine and its transports from storage, so
snapshots and scenarios can live in memory, on disk, in Redis or in a Loam
repository.

# Key Interfaces

  - SnapshotStore: persists per-profile mode snapshots.
  - ScenarioLoader: retrieves scripted input scenarios by name.
*/
package ports
