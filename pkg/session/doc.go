/*
Package session hosts several independent navigation sessions in one process.

Each agent (device, browser tab, test worker) gets its own session keyed by
ID. Operations on a session are serialized by a per-session lock; locks are
reference counted and released as soon as nobody holds them.
*/
package session
