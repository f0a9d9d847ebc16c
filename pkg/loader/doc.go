// Package loader resolves a configured logical executor name into a live
// execution backend. Resolution tries, in order: the fixed registry of
// core executors, the "{plugin}.{Type}" plugin convention, and finally a
// literal dotted location. The reserved hybrid name bypasses all three
// and is built by the composite rule. A process-wide default executor is
// created lazily from configuration, once.
// See docs/ARCHITECTURE.md § Executor Loader.
package loader
