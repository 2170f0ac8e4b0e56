// Package bridge is the adapter layer between script hosts and the media
// engine.
//
// Every operation takes an opaque handle from the resource table, unboxes
// its arguments into native primitives, makes at most a bounded number of
// engine calls, and boxes the result back. There is no adapter-owned state
// beyond the wrapped handles: no queuing, no retries, no background work.
//
// # Error Model
//
// Construction failures (engine or render-context instantiation) are the
// only returned errors. Everything operational travels as a status code
// (negative = failure, engine codes verbatim) or a sentinel value: Absent
// for unreadable properties, nil for unavailable frames. Operations on a
// dead handle degrade to those same sentinels; the resource table's
// liveness flag guarantees they never touch freed native state.
//
// # Frame Ownership
//
// RenderFrame renders into an internal buffer and returns a fresh copy.
// Callers may retain frames across subsequent renders without aliasing.
package bridge
