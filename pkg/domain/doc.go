/*
Package domain contains the core domain models of the wayfinder navigation engine.

It defines what a screen is to the engine, how its observed status is captured,
and the events emitted while an agent moves between screens. The package is
kept pure and free of drivers, storage or transport concerns.

# Key Entities

  - Navigable: one distinct, identifiable application screen or state.
  - Transition: an executable edge from a navigable towards a neighbor.
  - StateRecord: an immutable, timestamped observation of a navigable's status.
  - LifecycleHooks: callbacks fired on hops, arrivals and published records.
*/
package domain
