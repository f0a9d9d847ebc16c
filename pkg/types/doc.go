// Package types defines the Executor interface, the Task value, and
// standard error types shared by all Conductor execution backends.
// See docs/ARCHITECTURE.md § Main Interface.
package types
