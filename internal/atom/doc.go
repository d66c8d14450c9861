// Package atom owns the Atom feed contract: entities, validation, the entry
// collection, and document rendering.
//
// Ownership boundary:
// - entity schemas and their fail-fast validators
// - feed lifecycle (validate on construction, validate on write)
// - deterministic serialization over the markup primitives
//
// Everything is synchronous and in-memory. A Feed is not safe for concurrent
// mutation; callers share one behind their own synchronization if they must.
package atom
