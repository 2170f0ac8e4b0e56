package wasmhost

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/ayooooo123/peartube/bridge"
	"github.com/ayooooo123/peartube/engine/enginetest"
)

// newHostModule instantiates the host module on a fresh runtime. The
// returned module's exports are called directly; functions that touch guest
// memory are exercised through the codec tests instead, since the host
// module itself has none.
func newHostModule(t *testing.T, p *enginetest.Provider) api.Module {
	t.Helper()
	ctx := context.Background()

	b := bridge.New(p)
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() {
		r.Close(ctx)
		b.Close()
	})

	mod, err := New(b).Instantiate(ctx, r)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	return mod
}

func call(t *testing.T, mod api.Module, name string, params ...uint64) []uint64 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	if fn == nil {
		t.Fatalf("export %q missing", name)
	}
	res, err := fn.Call(context.Background(), params...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func TestExportsPresent(t *testing.T) {
	mod := newHostModule(t, enginetest.NewProvider())
	for _, name := range []string{
		"create", "initialize", "destroy", "command",
		"get_property", "set_property_number", "set_property_bool", "set_property_string",
		"render_create", "render_frame", "render_free", "render_update",
	} {
		if mod.ExportedFunction(name) == nil {
			t.Errorf("export %q missing", name)
		}
	}
}

func TestGuestLifecycle(t *testing.T) {
	p := enginetest.NewProvider()
	mod := newHostModule(t, p)

	h := call(t, mod, "create")[0]
	if h == 0 {
		t.Fatal("create returned the null handle")
	}
	if st := call(t, mod, "initialize", h)[0]; api.DecodeI32(st) != 0 {
		t.Errorf("initialize status = %d, want 0", api.DecodeI32(st))
	}

	rh := call(t, mod, "render_create", h, 4, 2)[0]
	if rh == 0 {
		t.Fatal("render_create returned the null handle")
	}
	if dirty := call(t, mod, "render_update", rh)[0]; dirty != 1 {
		t.Errorf("render_update = %d, want 1", dirty)
	}

	call(t, mod, "render_free", rh)
	if dirty := call(t, mod, "render_update", rh)[0]; dirty != 0 {
		t.Errorf("render_update after free = %d, want 0", dirty)
	}

	call(t, mod, "destroy", h)
	if p.LiveEngines() != 0 || p.LiveContexts() != 0 {
		t.Errorf("leaked: %d engines, %d contexts", p.LiveEngines(), p.LiveContexts())
	}
}

func TestGuestCreateFailure(t *testing.T) {
	p := enginetest.NewProvider()
	p.CreateErr = context.DeadlineExceeded
	mod := newHostModule(t, p)

	if h := call(t, mod, "create")[0]; h != 0 {
		t.Errorf("create = %d, want the null handle on failure", h)
	}
}

func TestGuestRenderCreateRejectsDimensions(t *testing.T) {
	p := enginetest.NewProvider()
	mod := newHostModule(t, p)

	h := call(t, mod, "create")[0]
	if rh := call(t, mod, "render_create", h, 0, 2)[0]; rh != 0 {
		t.Errorf("render_create with zero width = %d, want 0", rh)
	}
	if p.LiveContexts() != 0 {
		t.Error("a render context leaked from a rejected creation")
	}
}

func TestGuestDeadHandle(t *testing.T) {
	p := enginetest.NewProvider()
	mod := newHostModule(t, p)

	h := call(t, mod, "create")[0]
	call(t, mod, "destroy", h)

	if st := api.DecodeI32(call(t, mod, "initialize", h)[0]); st >= 0 {
		t.Errorf("initialize on dead handle = %d, want a failure status", st)
	}
	// Repeated destroy stays a no-op.
	call(t, mod, "destroy", h)
}
