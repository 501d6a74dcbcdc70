// Package orchestrator wires the loader → scanner → generator → splice
// pipeline, providing dependency injection friendly helpers for consumers that
// prefer a single entry point.
package orchestrator
