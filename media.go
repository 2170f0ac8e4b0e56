package peartube

// Status is an engine-defined result code. Zero or positive values indicate
// success, negative values indicate failure. The bridge never reinterprets
// status codes; they travel from the engine to the caller verbatim.
type Status int

// StatusOK is the engine's generic success code.
const StatusOK Status = 0

// Failed reports whether the status indicates failure.
func (s Status) Failed() bool { return s < 0 }

// BytesPerPixel is the size of one RGBA pixel. Frames are packed row-major
// with a stride of width*BytesPerPixel and no padding.
const BytesPerPixel = 4

// UpdateFrame is the render-update flag bit indicating a new frame should be
// rendered. Other bits are engine-internal and ignored by the bridge.
const UpdateFrame uint64 = 1 << 0

// Engine is one instance of the native media engine. Implementations wrap a
// single mpv_handle (or a fake for tests). All methods are synchronous and
// make exactly one native call.
type Engine interface {
	// SetOptionString sets an option before Initialize.
	SetOptionString(name, value string) Status

	// Initialize starts the engine after options have been applied.
	Initialize() Status

	// Command forwards an ordered argument list to the engine's generic
	// command dispatcher. The engine validates argument semantics.
	Command(args []string) Status

	// Typed property access. A negative status means the property could not
	// be read or written in that representation.
	GetPropertyDouble(name string) (float64, Status)
	GetPropertyFlag(name string) (bool, Status)
	GetPropertyString(name string) (string, Status)
	SetPropertyDouble(name string, value float64) Status
	SetPropertyFlag(name string, value bool) Status
	SetPropertyString(name, value string) Status

	// CreateRenderContext creates a software-mode render context bound to
	// this engine instance.
	CreateRenderContext() (RenderContext, error)

	// Destroy terminates the engine and frees the native instance.
	Destroy()
}

// RenderContext is a software render target bound to an Engine.
type RenderContext interface {
	// Render draws the current frame into buf as packed RGBA. buf must hold
	// at least height*stride bytes.
	Render(buf []byte, width, height, stride int) Status

	// Update polls the context for pending update flags without blocking.
	Update() uint64

	// Free releases the native render context.
	Free()
}

// Provider creates engine instances. The libmpv-backed provider lives in the
// engine package; enginetest has an instrumented fake.
type Provider interface {
	Create() (Engine, error)
}

// Memory is linear guest memory as seen by the wasm host module. Offsets and
// lengths are validated by implementations.
type Memory interface {
	Read(offset, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}
