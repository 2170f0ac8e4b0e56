// Package peartube provides an embeddable bridge to the libmpv media engine.
//
// The bridge marshals handles, commands, properties, and software-rendered
// video frames between libmpv's native C API and dynamically-typed script
// hosts. All playback logic, demuxing, decoding, and rendering happen inside
// libmpv; this library only forwards calls and copies frame buffers.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	peartube/            Root package with the Engine, RenderContext, and
//	                     Provider contracts and the guest Memory interface
//	├── bridge/          The adapter layer: handle-based playback operations
//	├── resource/        Process-wide handle table with liveness tracking
//	├── engine/          libmpv integration (cgo, build tag "libmpv")
//	│   └── enginetest/  Instrumented fake engine for tests
//	├── script/luahost/  gopher-lua host module exposing the bridge
//	├── script/wasmhost/ wazero host module exposing the bridge
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Create a bridge over the libmpv provider and drive playback:
//
//	b := bridge.New(engine.NewProvider())
//	defer b.Close()
//
//	h, err := b.Create()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b.Initialize(h)
//	b.Command(h, []string{"loadfile", "movie.mkv"})
//
//	rh, err := b.RenderCreate(h, 1280, 720)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if b.RenderUpdate(rh) {
//	    frame := b.RenderFrame(rh) // 1280*720*4 RGBA bytes, caller-owned
//	    _ = frame
//	}
//	b.RenderFree(rh)
//	b.Destroy(h)
//
// # Status Codes
//
// Engine status codes follow libmpv's convention: zero or positive means
// success, negative means failure. Codes pass through the bridge verbatim.
// Operational failures are reported through status codes and sentinel
// values; only construction failures are returned as errors.
//
// # Thread Safety
//
// The bridge and its resource table are safe for concurrent use. Concurrent
// operations on a single engine handle are serialized only as far as libmpv
// itself serializes them. Returned frame buffers are fresh copies and never
// alias the bridge's internal buffer.
package peartube
