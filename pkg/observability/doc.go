/*
Package observability provides tools for monitoring the navigation engine.

It turns lifecycle hooks into Prometheus metrics and structured log lines, and
combines several hook sets into one.
*/
package observability
