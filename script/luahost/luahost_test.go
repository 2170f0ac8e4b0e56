package luahost

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/ayooooo123/peartube"
	"github.com/ayooooo123/peartube/bridge"
	"github.com/ayooooo123/peartube/engine/enginetest"
	"github.com/ayooooo123/peartube/errors"
)

func newState(t *testing.T, p *enginetest.Provider) (*lua.LState, *bridge.Bridge) {
	t.Helper()
	b := bridge.New(p)
	L := lua.NewState()
	Register(L, b)
	t.Cleanup(func() {
		L.Close()
		b.Close()
	})
	return L, b
}

func lastEngine(t *testing.T, p *enginetest.Provider) *enginetest.Engine {
	t.Helper()
	if len(p.Engines) == 0 {
		t.Fatal("no engine was created")
	}
	return p.Engines[len(p.Engines)-1]
}

func TestLifecycle(t *testing.T) {
	p := enginetest.NewProvider()
	L, _ := newState(t, p)

	err := L.DoString(`
		h = mpv.create()
		st = mpv.initialize(h)
		cmd = mpv.command(h, {"loadfile", "movie.mkv"})
		mpv.destroy(h)
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	if st := L.GetGlobal("st"); st != lua.LNumber(0) {
		t.Errorf("initialize status = %v, want 0", st)
	}
	if cmd := L.GetGlobal("cmd"); cmd != lua.LNumber(0) {
		t.Errorf("command status = %v, want 0", cmd)
	}

	eng := lastEngine(t, p)
	if len(eng.Commands) != 1 || eng.Commands[0][0] != "loadfile" {
		t.Errorf("commands = %v, want [[loadfile movie.mkv]]", eng.Commands)
	}
	if eng.Destroyed == 0 {
		t.Error("engine was not destroyed")
	}
}

func TestCreateFailureRaises(t *testing.T) {
	p := enginetest.NewProvider()
	p.CreateErr = errors.Instantiation(errors.PhaseCreate, -1)
	L, _ := newState(t, p)

	err := L.DoString(`mpv.create()`)
	if err == nil {
		t.Fatal("expected a Lua error from mpv.create")
	}
	if !strings.Contains(err.Error(), "mpv.create") {
		t.Errorf("error %q does not name the failing call", err)
	}
}

func TestGetProperty(t *testing.T) {
	p := enginetest.NewProvider()
	L, _ := newState(t, p)

	if err := L.DoString(`h = mpv.create()`); err != nil {
		t.Fatal(err)
	}
	eng := lastEngine(t, p)
	eng.Doubles["time-pos"] = 12.5
	eng.Flags["pause"] = true
	eng.Strings["media-title"] = "clip"

	err := L.DoString(`
		pos = mpv.get_property(h, "time-pos")
		paused = mpv.get_property(h, "pause")
		title = mpv.get_property(h, "media-title")
		missing = mpv.get_property(h, "no-such-property")
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	if v := L.GetGlobal("pos"); v != lua.LNumber(12.5) {
		t.Errorf("time-pos = %v, want 12.5", v)
	}
	if v := L.GetGlobal("paused"); v != lua.LTrue {
		t.Errorf("pause = %v, want true", v)
	}
	if v := L.GetGlobal("title"); v != lua.LString("clip") {
		t.Errorf("media-title = %v, want clip", v)
	}
	if v := L.GetGlobal("missing"); v != lua.LNil {
		t.Errorf("missing property = %v, want nil", v)
	}
}

func TestSetProperty(t *testing.T) {
	p := enginetest.NewProvider()
	L, _ := newState(t, p)

	err := L.DoString(`
		h = mpv.create()
		a = mpv.set_property(h, "speed", 2.0)
		b = mpv.set_property(h, "pause", true)
		c = mpv.set_property(h, "hwdec", "no")
		d = mpv.set_property(h, "bogus", {})
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	eng := lastEngine(t, p)
	if eng.Doubles["speed"] != 2.0 {
		t.Errorf("speed = %v, want 2.0", eng.Doubles["speed"])
	}
	if !eng.Flags["pause"] {
		t.Error("pause flag not set")
	}
	if eng.Strings["hwdec"] != "no" {
		t.Errorf("hwdec = %q, want no", eng.Strings["hwdec"])
	}
	for _, name := range []string{"a", "b", "c"} {
		if v := L.GetGlobal(name); v != lua.LNumber(0) {
			t.Errorf("%s = %v, want 0", name, v)
		}
	}
	if v := L.GetGlobal("d"); v != lua.LNumber(bridge.StatusFailure) {
		t.Errorf("table-valued set = %v, want %d", v, bridge.StatusFailure)
	}
	if n, ok := eng.Calls["SetPropertyString"]; ok && n > 1 {
		t.Errorf("unexpected extra native set calls: %v", eng.Calls)
	}
}

func TestCommandRejectsNonStringArgs(t *testing.T) {
	p := enginetest.NewProvider()
	L, _ := newState(t, p)

	err := L.DoString(`
		h = mpv.create()
		mpv.command(h, {"seek", {}})
	`)
	if err == nil {
		t.Fatal("expected an argument error")
	}
}

func TestRendering(t *testing.T) {
	p := enginetest.NewProvider()
	L, _ := newState(t, p)

	err := L.DoString(`
		h = mpv.create()
		r = mpv.render_create(h, 4, 2)
		dirty = mpv.render_update(r)
		frame = mpv.render_frame(r)
		mpv.render_free(r)
		after = mpv.render_frame(r)
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	if v := L.GetGlobal("dirty"); v != lua.LTrue {
		t.Errorf("render_update = %v, want true", v)
	}
	frame, ok := L.GetGlobal("frame").(lua.LString)
	if !ok {
		t.Fatalf("frame = %v, want a string", L.GetGlobal("frame"))
	}
	if len(frame) != 4*2*peartube.BytesPerPixel {
		t.Errorf("frame length = %d, want %d", len(frame), 4*2*peartube.BytesPerPixel)
	}
	if v := L.GetGlobal("after"); v != lua.LNil {
		t.Errorf("frame after free = %v, want nil", v)
	}
}

func TestLoader(t *testing.T) {
	p := enginetest.NewProvider()
	b := bridge.New(p)
	L := lua.NewState()
	defer L.Close()
	defer b.Close()

	L.PreloadModule(ModuleName, Loader(b))
	err := L.DoString(`
		local m = require("mpv")
		h = m.create()
	`)
	if err != nil {
		t.Fatalf("require failed: %v", err)
	}
	if len(p.Engines) != 1 {
		t.Fatalf("engines created = %d, want 1", len(p.Engines))
	}
}
