// Package luahost exposes the bridge to embedded Lua scripts.
//
// The module mirrors the bridge's operation surface one to one. Handles are
// plain integers, property values map to Lua's native number/boolean/string
// types, the Absent sentinel maps to nil, and frames arrive as Lua byte
// strings (already independently owned copies). Construction failures are
// raised as Lua errors; everything else is reported through return values.
package luahost

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/ayooooo123/peartube/bridge"
	"github.com/ayooooo123/peartube/resource"
)

// ModuleName is the table scripts receive from require or as a global.
const ModuleName = "mpv"

// Register installs the module as a global table on L.
func Register(L *lua.LState, b *bridge.Bridge) {
	L.SetGlobal(ModuleName, newModule(L, b))
}

// Loader returns a gopher-lua module loader for use with PreloadModule:
//
//	L.PreloadModule(luahost.ModuleName, luahost.Loader(b))
func Loader(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(newModule(L, b))
		return 1
	}
}

func newModule(L *lua.LState, b *bridge.Bridge) *lua.LTable {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"create":        createFn(b),
		"initialize":    initializeFn(b),
		"destroy":       destroyFn(b),
		"command":       commandFn(b),
		"get_property":  getPropertyFn(b),
		"set_property":  setPropertyFn(b),
		"render_create": renderCreateFn(b),
		"render_frame":  renderFrameFn(b),
		"render_free":   renderFreeFn(b),
		"render_update": renderUpdateFn(b),
	})
	return mod
}

func handleArg(L *lua.LState, n int) resource.Handle {
	return resource.Handle(L.CheckInt(n))
}

func createFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		h, err := b.Create()
		if err != nil {
			L.RaiseError("mpv.create: %s", err)
			return 0
		}
		L.Push(lua.LNumber(h))
		return 1
	}
}

func initializeFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LNumber(b.Initialize(handleArg(L, 1))))
		return 1
	}
}

func destroyFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		b.Destroy(handleArg(L, 1))
		return 0
	}
}

func commandFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		h := handleArg(L, 1)
		tbl := L.CheckTable(2)

		args := make([]string, 0, tbl.Len())
		for i := 1; i <= tbl.Len(); i++ {
			lv := tbl.RawGetInt(i)
			switch lv.Type() {
			case lua.LTString, lua.LTNumber:
				args = append(args, lv.String())
			default:
				L.ArgError(2, "command arguments must be strings")
				return 0
			}
		}

		L.Push(lua.LNumber(b.Command(h, args)))
		return 1
	}
}

func getPropertyFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		v := b.GetProperty(handleArg(L, 1), L.CheckString(2))
		L.Push(boxValue(v))
		return 1
	}
}

func setPropertyFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		h := handleArg(L, 1)
		name := L.CheckString(2)
		v := unboxValue(L.Get(3))
		L.Push(lua.LNumber(b.SetProperty(h, name, v)))
		return 1
	}
}

func renderCreateFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		rh, err := b.RenderCreate(handleArg(L, 1), L.CheckInt(2), L.CheckInt(3))
		if err != nil {
			L.RaiseError("mpv.render_create: %s", err)
			return 0
		}
		L.Push(lua.LNumber(rh))
		return 1
	}
}

func renderFrameFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		frame := b.RenderFrame(handleArg(L, 1))
		if frame == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(frame))
		return 1
	}
}

func renderFreeFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		b.RenderFree(handleArg(L, 1))
		return 0
	}
}

func renderUpdateFn(b *bridge.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(b.RenderUpdate(handleArg(L, 1))))
		return 1
	}
}

// boxValue converts a bridge value to its Lua representation; Absent maps
// to nil.
func boxValue(v bridge.Value) lua.LValue {
	switch v.Kind() {
	case bridge.KindNumber:
		return lua.LNumber(v.Number())
	case bridge.KindBool:
		return lua.LBool(v.Bool())
	case bridge.KindString:
		return lua.LString(v.Str())
	default:
		return lua.LNil
	}
}

// unboxValue converts a Lua value into a boxed bridge value. Types outside
// number/boolean/string box as Absent, which the bridge rejects with the
// failure sentinel and no native call.
func unboxValue(lv lua.LValue) bridge.Value {
	switch x := lv.(type) {
	case lua.LNumber:
		return bridge.Number(float64(x))
	case lua.LBool:
		return bridge.Bool(bool(x))
	case lua.LString:
		return bridge.String(string(x))
	default:
		return bridge.Absent
	}
}
