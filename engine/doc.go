// Package engine provides the libmpv integration layer.
//
// This package wraps libmpv's client and render APIs behind the root
// package's Engine and RenderContext contracts. Each Engine value owns one
// mpv_handle; each RenderContext owns one software-mode mpv_render_context.
//
// # Build Tags
//
// The cgo binding is gated behind the "libmpv" build tag:
//
//	go build -tags libmpv ./...
//
// Without the tag, NewProvider returns a provider whose Create fails with an
// unsupported-build error, so code depending on this package (including the
// CLI and tests using fakes) compiles and runs on machines without the mpv
// development headers.
//
// # Status Codes
//
// Named constants mirror libmpv's mpv_error enum. The engine never remaps
// codes; StatusName exists only for log readability.
//
// # Threads
//
// libmpv runs its own decode and render threads internally. This package
// never spawns goroutines and performs no blocking waits; Update is a poll,
// Render is a synchronous draw into a caller-supplied buffer.
package engine
