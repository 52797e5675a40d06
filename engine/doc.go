// Package engine defines the capability set of an external allocator engine.
//
// # Overview
//
// memkit never allocates memory itself. Every request ends up in an Engine,
// an opaque collaborator that owns heaps, free lists, statistics and
// options. This package only describes that boundary:
//
//   - Core: the entry points the allocation router dispatches to
//   - Counted, Strings, Introspection: flat forwarding calls
//   - Heaps: isolated arenas with their own default-heap designation
//   - Diagnostics: callbacks, statistics, lifecycle hooks, huge OS pages
//   - Options: the boolean/integer option table
//
// # Implementations
//
//   - engine/goheap: pure Go, backed by pinned Go memory (default build)
//   - engine/mimalloc: cgo binding to libmimalloc (build tag "mimalloc")
//   - engine/enginetest: recording wrapper for tests
//
// # Sentinels
//
// Failures are reported the way a C allocator reports them: a nil pointer,
// false, zero, or an errno-style int. Engines never panic on exhaustion.
//
// # Ownership
//
// A pointer returned by an engine belongs to the caller until it is passed
// back to Free, Realloc (on success) or a heap destroy. Passing a pointer
// from another engine is undefined behavior.
package engine
