package bridge

import (
	"runtime"
	"strconv"

	"go.uber.org/zap"

	peartube "github.com/ayooooo123/peartube"
	"github.com/ayooooo123/peartube/errors"
	"github.com/ayooooo123/peartube/resource"
)

// StatusFailure is the bridge's failure sentinel, returned without any
// native call when an argument cannot be dispatched or a handle is dead.
const StatusFailure peartube.Status = -1

// Options applied to every engine before Initialize. Software-only video
// output through the render API, automatic hardware-decode preference, and
// no auto-close at end of stream.
var defaultOptions = [...][2]string{
	{"vo", "libmpv"},
	{"hwdec", "auto"},
	{"keep-open", "yes"},
}

// Bridge exposes the engine's handle-based API to script hosts.
// Safe for concurrent use; per-handle serialization is the engine's concern.
type Bridge struct {
	provider peartube.Provider
	table    *resource.Table
	log      *zap.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// WithObserver subscribes an observer to handle lifecycle events.
func WithObserver(o resource.Observer) Option {
	return func(b *Bridge) { b.table.Subscribe(o) }
}

// New creates a bridge over the given engine provider.
func New(p peartube.Provider, opts ...Option) *Bridge {
	b := &Bridge{
		provider: p,
		table:    resource.NewTable(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resources exposes the handle table for accounting and leak checks.
func (b *Bridge) Resources() *resource.Table { return b.table }

// player wraps one live engine instance.
type player struct {
	engine peartube.Engine
}

// Drop terminates the engine if still live. Idempotent; also runs as a
// finalizer safety net when a script host leaks the handle.
func (p *player) Drop() {
	if p.engine != nil {
		p.engine.Destroy()
		p.engine = nil
	}
}

// renderTarget wraps one render context plus its fixed-size RGBA buffer.
// Dimensions are immutable for the handle's lifetime.
type renderTarget struct {
	ctx    peartube.RenderContext
	buf    []byte
	width  int
	height int
}

// Drop releases the context and the buffer independently; either may
// already be gone. Idempotent.
func (r *renderTarget) Drop() {
	if r.ctx != nil {
		r.ctx.Free()
		r.ctx = nil
	}
	r.buf = nil
}

func (b *Bridge) player(h resource.Handle) (*player, bool) {
	v, ok := b.table.GetTyped(h, resource.TypePlayer)
	if !ok {
		return nil, false
	}
	p := v.(*player)
	if p.engine == nil {
		return nil, false
	}
	return p, true
}

func (b *Bridge) render(h resource.Handle) (*renderTarget, bool) {
	v, ok := b.table.GetTyped(h, resource.TypeRender)
	if !ok {
		return nil, false
	}
	return v.(*renderTarget), true
}

// Create instantiates one engine and returns its handle. Construction
// failure is the only operation that returns an error; nothing is retained
// on failure.
func (b *Bridge) Create() (resource.Handle, error) {
	eng, err := b.provider.Create()
	if err != nil {
		return 0, err
	}

	p := &player{engine: eng}
	h := b.table.Insert(resource.TypePlayer, p)
	if h == 0 {
		eng.Destroy()
		return 0, errors.InvalidInput(errors.PhaseCreate, "bridge closed")
	}

	runtime.SetFinalizer(p, (*player).Drop)
	b.log.Debug("engine created", zap.Uint32("handle", uint32(h)))
	return h, nil
}

// Initialize applies the fixed default options and starts the engine,
// returning the engine's status verbatim. A negative status is reported,
// not raised.
func (b *Bridge) Initialize(h resource.Handle) peartube.Status {
	p, ok := b.player(h)
	if !ok {
		return StatusFailure
	}

	for _, opt := range defaultOptions {
		if s := p.engine.SetOptionString(opt[0], opt[1]); s.Failed() {
			b.log.Warn("default option rejected",
				zap.String("option", opt[0]),
				zap.Int("status", int(s)))
		}
	}

	status := p.engine.Initialize()
	b.log.Debug("engine initialized",
		zap.Uint32("handle", uint32(h)),
		zap.Int("status", int(status)))
	return status
}

// Destroy terminates the engine and invalidates the handle. Safe to repeat.
func (b *Bridge) Destroy(h resource.Handle) {
	if _, ok := b.table.GetTyped(h, resource.TypePlayer); !ok {
		return
	}
	b.table.Remove(h)
	b.log.Debug("engine destroyed", zap.Uint32("handle", uint32(h)))
}

// Command forwards an ordered argument list to the engine's command
// dispatcher. Argument semantics are the engine's to validate.
func (b *Bridge) Command(h resource.Handle, args []string) peartube.Status {
	p, ok := b.player(h)
	if !ok {
		return StatusFailure
	}
	return p.engine.Command(args)
}

// propertyProbes is the fixed trial order for GetProperty: numeric first
// (most playback telemetry is numeric), then flag, then string. The first
// representation the engine accepts wins.
var propertyProbes = [...]func(e peartube.Engine, name string) (Value, peartube.Status){
	func(e peartube.Engine, name string) (Value, peartube.Status) {
		v, s := e.GetPropertyDouble(name)
		return Number(v), s
	},
	func(e peartube.Engine, name string) (Value, peartube.Status) {
		v, s := e.GetPropertyFlag(name)
		return Bool(v), s
	},
	func(e peartube.Engine, name string) (Value, peartube.Status) {
		v, s := e.GetPropertyString(name)
		return String(v), s
	},
}

// GetProperty reads a named property, probing representations in the fixed
// priority order. If no representation is accepted it returns Absent, never
// an error.
func (b *Bridge) GetProperty(h resource.Handle, name string) Value {
	p, ok := b.player(h)
	if !ok {
		return Absent
	}

	for _, probe := range propertyProbes {
		if v, s := probe(p.engine, name); !s.Failed() {
			return v
		}
	}
	return Absent
}

// SetProperty inspects the boxed kind exactly once and dispatches to the
// matching typed setter. Any other kind yields the failure sentinel without
// a native call.
func (b *Bridge) SetProperty(h resource.Handle, name string, v Value) peartube.Status {
	p, ok := b.player(h)
	if !ok {
		return StatusFailure
	}

	switch v.Kind() {
	case KindNumber:
		return p.engine.SetPropertyDouble(name, v.Number())
	case KindBool:
		return p.engine.SetPropertyFlag(name, v.Bool())
	case KindString:
		return p.engine.SetPropertyString(name, v.Str())
	default:
		return StatusFailure
	}
}

// RenderCreate creates a software render context bound to the engine handle
// and allocates a width*height*4 RGBA buffer for it. Context creation
// failure returns an error; if the bridge-side record cannot be retained
// the context is released so nothing leaks.
func (b *Bridge) RenderCreate(h resource.Handle, width, height int) (resource.Handle, error) {
	if width <= 0 || height <= 0 {
		return 0, errors.InvalidInput(errors.PhaseRender, "width and height must be positive")
	}

	p, ok := b.player(h)
	if !ok {
		return 0, errors.NotFound(errors.PhaseRender, "engine handle", strconv.FormatUint(uint64(h), 10))
	}

	ctx, err := p.engine.CreateRenderContext()
	if err != nil {
		return 0, err
	}

	rt := &renderTarget{
		ctx:    ctx,
		buf:    make([]byte, width*height*peartube.BytesPerPixel),
		width:  width,
		height: height,
	}

	rh := b.table.Insert(resource.TypeRender, rt)
	if rh == 0 {
		ctx.Free()
		return 0, errors.InvalidInput(errors.PhaseRender, "bridge closed")
	}

	runtime.SetFinalizer(rt, (*renderTarget).Drop)
	b.log.Debug("render context created",
		zap.Uint32("handle", uint32(rh)),
		zap.Int("width", width),
		zap.Int("height", height))
	return rh, nil
}

// RenderFrame renders the current frame and returns a fresh caller-owned
// copy of the RGBA buffer. It returns nil both when the handle has been
// freed and when the native render fails; the failed status is visible at
// debug level only.
func (b *Bridge) RenderFrame(h resource.Handle) []byte {
	rt, ok := b.render(h)
	if !ok || rt.ctx == nil || rt.buf == nil {
		return nil
	}

	stride := rt.width * peartube.BytesPerPixel
	if s := rt.ctx.Render(rt.buf, rt.width, rt.height, stride); s.Failed() {
		b.log.Debug("render failed",
			zap.Uint32("handle", uint32(h)),
			zap.Int("status", int(s)))
		return nil
	}

	out := make([]byte, len(rt.buf))
	copy(out, rt.buf)
	return out
}

// RenderFree releases the render context and buffer and invalidates the
// handle. Safe to repeat.
func (b *Bridge) RenderFree(h resource.Handle) {
	if _, ok := b.render(h); !ok {
		return
	}
	b.table.Remove(h)
	b.log.Debug("render context freed", zap.Uint32("handle", uint32(h)))
}

// RenderUpdate polls the context's update flags and reports whether a new
// frame is ready to render. Other flag bits are ignored. A freed handle
// reports false.
func (b *Bridge) RenderUpdate(h resource.Handle) bool {
	rt, ok := b.render(h)
	if !ok || rt.ctx == nil {
		return false
	}
	return rt.ctx.Update()&peartube.UpdateFrame != 0
}

// Close drops every live handle, releasing native resources, and refuses
// further creates.
func (b *Bridge) Close() error {
	return b.table.Close()
}
