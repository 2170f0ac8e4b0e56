// Package wasmhost exposes the bridge to wasm guests through a wazero host
// module.
//
// The module name is "peartube:mpv". Functions mirror the bridge operations
// at a flat i32/f64 ABI: handles and statuses are i32, strings travel
// through guest linear memory as (ptr, len) pairs, and command arguments
// arrive as one NUL-separated block. Property reads and frames are copied
// into caller-supplied buffers; see the individual exports for their return
// conventions. Invalid memory ranges yield the failure sentinel rather than
// trapping the guest.
package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	peartube "github.com/ayooooo123/peartube"
	"github.com/ayooooo123/peartube/bridge"
	"github.com/ayooooo123/peartube/errors"
	"github.com/ayooooo123/peartube/resource"
)

// ModuleName is the import namespace guests link against.
const ModuleName = "peartube:mpv"

// Host instantiates the "peartube:mpv" module over a bridge.
type Host struct {
	bridge *bridge.Bridge
	log    *zap.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for marshaling failures.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// New wraps a bridge for wasm guests.
func New(b *bridge.Bridge, opts ...Option) *Host {
	h := &Host{bridge: b, log: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// guestMemory adapts wazero's linear memory to the Memory contract. Reads
// copy out of the module's address space so the returned bytes stay valid
// across guest calls.
type guestMemory struct {
	mem api.Memory
}

func (g guestMemory) Read(offset, length uint32) ([]byte, error) {
	buf, ok := g.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseScript, int(offset), int(length), int(g.mem.Size()))
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	return cp, nil
}

func (g guestMemory) Write(offset uint32, data []byte) error {
	if !g.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseScript, int(offset), len(data), int(g.mem.Size()))
	}
	return nil
}

var _ peartube.Memory = guestMemory{}

const (
	i32 = api.ValueTypeI32
	f64 = api.ValueTypeF64
)

// Instantiate registers and instantiates the host module on r.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(ModuleName)

	// create() -> handle; 0 on construction failure.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			handle, err := h.bridge.Create()
			if err != nil {
				h.log.Warn("guest create failed", zap.Error(err))
				stack[0] = 0
				return
			}
			stack[0] = uint64(handle)
		}), nil, []api.ValueType{i32}).
		Export("create")

	// initialize(handle) -> status.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = statusResult(h.bridge.Initialize(handleAt(stack, 0)))
		}), []api.ValueType{i32}, []api.ValueType{i32}).
		Export("initialize")

	// destroy(handle).
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			h.bridge.Destroy(handleAt(stack, 0))
		}), []api.ValueType{i32}, nil).
		Export("destroy")

	// command(handle, argsPtr, argsLen) -> status. Arguments are one
	// NUL-separated block.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			args, err := readArgs(guestMemory{mod.Memory()}, u32At(stack, 1), u32At(stack, 2))
			if err != nil {
				h.log.Warn("guest command args unreadable", zap.Error(err))
				stack[0] = statusResult(bridge.StatusFailure)
				return
			}
			stack[0] = statusResult(h.bridge.Command(handleAt(stack, 0), args))
		}), []api.ValueType{i32, i32, i32}, []api.ValueType{i32}).
		Export("command")

	// get_property(handle, namePtr, nameLen, outPtr, outCap) -> n.
	// n > 0: tagged value written, n bytes long. n == 0: property absent.
	// n < 0: buffer too small, -n bytes required, nothing written.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestMemory{mod.Memory()}
			name, err := readString(mem, u32At(stack, 1), u32At(stack, 2))
			if err != nil {
				h.log.Warn("guest property name unreadable", zap.Error(err))
				stack[0] = i32Result(0)
				return
			}
			v := h.bridge.GetProperty(handleAt(stack, 0), name)
			if v.IsAbsent() {
				stack[0] = i32Result(0)
				return
			}
			n, err := writeResult(mem, u32At(stack, 3), u32At(stack, 4), encodeValue(v))
			if err != nil {
				h.log.Warn("guest property buffer unwritable", zap.Error(err))
				stack[0] = i32Result(0)
				return
			}
			stack[0] = i32Result(n)
		}), []api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("get_property")

	// set_property_number(handle, namePtr, nameLen, value) -> status.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			h.setProperty(mod, stack, func(_ guestMemory) (bridge.Value, error) {
				return bridge.Number(api.DecodeF64(stack[3])), nil
			})
		}), []api.ValueType{i32, i32, i32, f64}, []api.ValueType{i32}).
		Export("set_property_number")

	// set_property_bool(handle, namePtr, nameLen, value) -> status.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			h.setProperty(mod, stack, func(_ guestMemory) (bridge.Value, error) {
				return bridge.Bool(api.DecodeI32(stack[3]) != 0), nil
			})
		}), []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("set_property_bool")

	// set_property_string(handle, namePtr, nameLen, valPtr, valLen) -> status.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			h.setProperty(mod, stack, func(mem guestMemory) (bridge.Value, error) {
				s, err := readString(mem, u32At(stack, 3), u32At(stack, 4))
				if err != nil {
					return bridge.Absent, err
				}
				return bridge.String(s), nil
			})
		}), []api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("set_property_string")

	// render_create(handle, width, height) -> render handle; 0 on failure.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			rh, err := h.bridge.RenderCreate(handleAt(stack, 0), int(api.DecodeI32(stack[1])), int(api.DecodeI32(stack[2])))
			if err != nil {
				h.log.Warn("guest render_create failed", zap.Error(err))
				stack[0] = 0
				return
			}
			stack[0] = uint64(rh)
		}), []api.ValueType{i32, i32, i32}, []api.ValueType{i32}).
		Export("render_create")

	// render_frame(renderHandle, outPtr, outCap) -> n.
	// n > 0: n frame bytes written. n == -1: null sentinel (freed handle or
	// render failure). Other n < 0: buffer too small, -n bytes required.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			frame := h.bridge.RenderFrame(handleAt(stack, 0))
			if frame == nil {
				stack[0] = i32Result(-1)
				return
			}
			n, err := writeResult(guestMemory{mod.Memory()}, u32At(stack, 1), u32At(stack, 2), frame)
			if err != nil {
				h.log.Warn("guest frame buffer unwritable", zap.Error(err))
				stack[0] = i32Result(-1)
				return
			}
			stack[0] = i32Result(n)
		}), []api.ValueType{i32, i32, i32}, []api.ValueType{i32}).
		Export("render_frame")

	// render_free(renderHandle).
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			h.bridge.RenderFree(handleAt(stack, 0))
		}), []api.ValueType{i32}, nil).
		Export("render_free")

	// render_update(renderHandle) -> 1 if a new frame is ready, else 0.
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			if h.bridge.RenderUpdate(handleAt(stack, 0)) {
				stack[0] = 1
			} else {
				stack[0] = 0
			}
		}), []api.ValueType{i32}, []api.ValueType{i32}).
		Export("render_update")

	return builder.Instantiate(ctx)
}

// setProperty reads the property name from guest memory, extracts the value
// with extract, and forwards the set. Marshaling failures yield the failure
// sentinel without touching the engine.
func (h *Host) setProperty(mod api.Module, stack []uint64, extract func(guestMemory) (bridge.Value, error)) {
	mem := guestMemory{mod.Memory()}
	name, err := readString(mem, u32At(stack, 1), u32At(stack, 2))
	if err != nil {
		h.log.Warn("guest property name unreadable", zap.Error(err))
		stack[0] = statusResult(bridge.StatusFailure)
		return
	}
	v, err := extract(mem)
	if err != nil {
		h.log.Warn("guest property value unreadable", zap.Error(err))
		stack[0] = statusResult(bridge.StatusFailure)
		return
	}
	stack[0] = statusResult(h.bridge.SetProperty(handleAt(stack, 0), name, v))
}

func handleAt(stack []uint64, i int) resource.Handle {
	return resource.Handle(api.DecodeU32(stack[i]))
}

func u32At(stack []uint64, i int) uint32 {
	return api.DecodeU32(stack[i])
}

func statusResult(s peartube.Status) uint64 {
	return api.EncodeI32(int32(s))
}

func i32Result(n int32) uint64 {
	return api.EncodeI32(n)
}
