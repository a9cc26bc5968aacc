/*
Package ports defines the driven ports (interfaces) around the NFA engine.

These interfaces decouple the core logic from external implementations, allowing
adapters (HTTP, MCP, the CLI session commands) to work with various storage backends.

# Key Interfaces

  - Stepper: The operations an adapter needs from an engine (Start, Step, Trace).
  - ComputationStore: Responsible for persisting and loading resumable computations.
  - DistributedLocker: Provides distributed locking for handling concurrent access to a computation.
*/
package ports
