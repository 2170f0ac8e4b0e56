//go:build libmpv

package engine

/*
#cgo pkg-config: mpv
#include <stdlib.h>
#include <mpv/client.h>
#include <mpv/render.h>

// Software render API wrappers. The render_param arrays must live on the C
// side so cgo pointer rules are satisfied.

static int pt_render_create(mpv_handle *mpv, mpv_render_context **ctx) {
	mpv_render_param params[] = {
		{MPV_RENDER_PARAM_API_TYPE, (void *)MPV_RENDER_API_TYPE_SW},
		{MPV_RENDER_PARAM_INVALID, NULL},
	};
	return mpv_render_context_create(ctx, mpv, params);
}

static int pt_render_frame(mpv_render_context *ctx, int w, int h, int stride, void *buf) {
	int size[2] = {w, h};
	int pitch = stride;
	mpv_render_param params[] = {
		{MPV_RENDER_PARAM_SW_SIZE, size},
		{MPV_RENDER_PARAM_SW_FORMAT, (void *)"rgba"},
		{MPV_RENDER_PARAM_SW_STRIDE, &pitch},
		{MPV_RENDER_PARAM_SW_POINTER, buf},
		{MPV_RENDER_PARAM_INVALID, NULL},
	};
	return mpv_render_context_render(ctx, params);
}
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	peartube "github.com/ayooooo123/peartube"
	"github.com/ayooooo123/peartube/errors"
)

type libmpvProvider struct{}

// NewProvider returns the libmpv-backed engine provider.
func NewProvider() peartube.Provider { return libmpvProvider{} }

func (libmpvProvider) Create() (peartube.Engine, error) {
	h := C.mpv_create()
	if h == nil {
		return nil, errors.Instantiation(errors.PhaseCreate, int(StatusNoMem))
	}
	Logger().Debug("mpv instance created")
	return &mpvEngine{handle: h}, nil
}

// mpvEngine wraps one mpv_handle.
type mpvEngine struct {
	handle *C.mpv_handle
}

func (e *mpvEngine) SetOptionString(name, value string) peartube.Status {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	cv := C.CString(value)
	defer C.free(unsafe.Pointer(cv))
	return peartube.Status(C.mpv_set_option_string(e.handle, cn, cv))
}

func (e *mpvEngine) Initialize() peartube.Status {
	return peartube.Status(C.mpv_initialize(e.handle))
}

func (e *mpvEngine) Command(args []string) peartube.Status {
	// mpv_command takes a NULL-terminated array of C string pointers.
	cargs := make([]*C.char, len(args)+1)
	for i, a := range args {
		cargs[i] = C.CString(a)
	}
	defer func() {
		for _, p := range cargs {
			if p != nil {
				C.free(unsafe.Pointer(p))
			}
		}
	}()
	return peartube.Status(C.mpv_command(e.handle, &cargs[0]))
}

func (e *mpvEngine) GetPropertyDouble(name string) (float64, peartube.Status) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	var v C.double
	s := C.mpv_get_property(e.handle, cn, C.MPV_FORMAT_DOUBLE, unsafe.Pointer(&v))
	return float64(v), peartube.Status(s)
}

func (e *mpvEngine) GetPropertyFlag(name string) (bool, peartube.Status) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	var v C.int
	s := C.mpv_get_property(e.handle, cn, C.MPV_FORMAT_FLAG, unsafe.Pointer(&v))
	return v != 0, peartube.Status(s)
}

func (e *mpvEngine) GetPropertyString(name string) (string, peartube.Status) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	var v *C.char
	s := C.mpv_get_property(e.handle, cn, C.MPV_FORMAT_STRING, unsafe.Pointer(&v))
	if s < 0 || v == nil {
		return "", peartube.Status(s)
	}
	out := C.GoString(v)
	C.mpv_free(unsafe.Pointer(v))
	return out, peartube.Status(s)
}

func (e *mpvEngine) SetPropertyDouble(name string, value float64) peartube.Status {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	v := C.double(value)
	return peartube.Status(C.mpv_set_property(e.handle, cn, C.MPV_FORMAT_DOUBLE, unsafe.Pointer(&v)))
}

func (e *mpvEngine) SetPropertyFlag(name string, value bool) peartube.Status {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	var v C.int
	if value {
		v = 1
	}
	return peartube.Status(C.mpv_set_property(e.handle, cn, C.MPV_FORMAT_FLAG, unsafe.Pointer(&v)))
}

func (e *mpvEngine) SetPropertyString(name, value string) peartube.Status {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	cv := C.CString(value)
	defer C.free(unsafe.Pointer(cv))
	return peartube.Status(C.mpv_set_property_string(e.handle, cn, cv))
}

func (e *mpvEngine) CreateRenderContext() (peartube.RenderContext, error) {
	var ctx *C.mpv_render_context
	status := peartube.Status(C.pt_render_create(e.handle, &ctx))
	if status.Failed() {
		Logger().Warn("render context creation failed",
			zap.Int("status", int(status)),
			zap.String("reason", StatusName(status)))
		return nil, errors.Instantiation(errors.PhaseRender, int(status))
	}
	return &mpvRenderContext{ctx: ctx}, nil
}

func (e *mpvEngine) Destroy() {
	if e.handle == nil {
		return
	}
	C.mpv_terminate_destroy(e.handle)
	e.handle = nil
	Logger().Debug("mpv instance destroyed")
}

// mpvRenderContext wraps one software-mode mpv_render_context.
type mpvRenderContext struct {
	ctx *C.mpv_render_context
}

func (r *mpvRenderContext) Render(buf []byte, width, height, stride int) peartube.Status {
	if r.ctx == nil || len(buf) < height*stride {
		return StatusInvalidParameter
	}
	return peartube.Status(C.pt_render_frame(r.ctx, C.int(width), C.int(height), C.int(stride), unsafe.Pointer(&buf[0])))
}

func (r *mpvRenderContext) Update() uint64 {
	if r.ctx == nil {
		return 0
	}
	return uint64(C.mpv_render_context_update(r.ctx))
}

func (r *mpvRenderContext) Free() {
	if r.ctx == nil {
		return
	}
	C.mpv_render_context_free(r.ctx)
	r.ctx = nil
}
