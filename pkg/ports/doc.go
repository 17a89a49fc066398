/*
Package ports defines the driven ports (interfaces) of the wayfinder engine.

These interfaces decouple the navigation core from external implementations,
allowing the engine to work with various record stores and UI drivers.

# Key Interfaces

  - RecordStore: keeps the last State Record observed per navigable and kind.
  - Driver: the boundary to the UI automation layer (actions and probes).
  - Navigator: the session surface consumed by transport adapters.
*/
package ports
