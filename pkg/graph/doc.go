/*
Package graph holds the navigation graph of a session and answers path queries.

Edges are never stored: an edge (A, B) exists exactly when B appears among
A's transitions at query time, so the graph cannot drift from what screens
actually declare.

Shortest paths are computed by breadth-first search. Neighbors are visited in
declaration order and the first parent to discover a node wins, which makes
the chosen path deterministic for a fixed set of transitions.
*/
package graph
