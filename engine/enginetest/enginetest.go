// Package enginetest provides an instrumented in-memory engine for tests.
//
// The fake records every native call by method name, serves properties from
// typed maps (mirroring the engine's per-format accessors), and renders a
// deterministic pattern that changes per call so buffer-aliasing bugs show
// up. Failure modes are switchable per instance.
//
// Not safe for concurrent use; tests drive it from a single goroutine, like
// the bridge itself does.
package enginetest

import (
	peartube "github.com/ayooooo123/peartube"
	"github.com/ayooooo123/peartube/engine"
)

// Provider creates fake engines and tracks them for leak assertions.
type Provider struct {
	// CreateErr, when set, makes Create fail (the construction-failure path).
	CreateErr error

	// Engines holds every engine handed out, in creation order.
	Engines []*Engine
}

// NewProvider returns an empty fake provider.
func NewProvider() *Provider { return &Provider{} }

// Create hands out a new fake engine, or CreateErr if set.
func (p *Provider) Create() (peartube.Engine, error) {
	if p.CreateErr != nil {
		return nil, p.CreateErr
	}
	e := &Engine{
		Options: make(map[string]string),
		Doubles: make(map[string]float64),
		Flags:   make(map[string]bool),
		Strings: make(map[string]string),
		Calls:   make(map[string]int),
	}
	p.Engines = append(p.Engines, e)
	return e, nil
}

// LiveContexts counts render contexts that have been created but not freed.
func (p *Provider) LiveContexts() int {
	n := 0
	for _, e := range p.Engines {
		for _, c := range e.Contexts {
			if c.Freed == 0 {
				n++
			}
		}
	}
	return n
}

// LiveEngines counts engines that have not been destroyed.
func (p *Provider) LiveEngines() int {
	n := 0
	for _, e := range p.Engines {
		if e.Destroyed == 0 {
			n++
		}
	}
	return n
}

// Engine is a scriptable fake implementing peartube.Engine.
type Engine struct {
	Options map[string]string
	Doubles map[string]float64
	Flags   map[string]bool
	Strings map[string]string

	// Calls counts native calls by method name.
	Calls map[string]int

	// Commands records every argument list passed to Command.
	Commands [][]string

	// Overridable results.
	InitStatus    peartube.Status
	CommandStatus peartube.Status
	SetStatus     peartube.Status
	CtxErr        error

	Contexts  []*RenderContext
	Destroyed int
}

func (e *Engine) SetOptionString(name, value string) peartube.Status {
	e.Calls["SetOptionString"]++
	e.Options[name] = value
	return engine.StatusSuccess
}

func (e *Engine) Initialize() peartube.Status {
	e.Calls["Initialize"]++
	return e.InitStatus
}

func (e *Engine) Command(args []string) peartube.Status {
	e.Calls["Command"]++
	cp := make([]string, len(args))
	copy(cp, args)
	e.Commands = append(e.Commands, cp)
	return e.CommandStatus
}

func (e *Engine) GetPropertyDouble(name string) (float64, peartube.Status) {
	e.Calls["GetPropertyDouble"]++
	if v, ok := e.Doubles[name]; ok {
		return v, engine.StatusSuccess
	}
	return 0, engine.StatusPropertyFormat
}

func (e *Engine) GetPropertyFlag(name string) (bool, peartube.Status) {
	e.Calls["GetPropertyFlag"]++
	if v, ok := e.Flags[name]; ok {
		return v, engine.StatusSuccess
	}
	return false, engine.StatusPropertyFormat
}

func (e *Engine) GetPropertyString(name string) (string, peartube.Status) {
	e.Calls["GetPropertyString"]++
	if v, ok := e.Strings[name]; ok {
		return v, engine.StatusSuccess
	}
	return "", engine.StatusPropertyNotFound
}

func (e *Engine) SetPropertyDouble(name string, value float64) peartube.Status {
	e.Calls["SetPropertyDouble"]++
	if e.SetStatus.Failed() {
		return e.SetStatus
	}
	e.Doubles[name] = value
	return engine.StatusSuccess
}

func (e *Engine) SetPropertyFlag(name string, value bool) peartube.Status {
	e.Calls["SetPropertyFlag"]++
	if e.SetStatus.Failed() {
		return e.SetStatus
	}
	e.Flags[name] = value
	return engine.StatusSuccess
}

func (e *Engine) SetPropertyString(name, value string) peartube.Status {
	e.Calls["SetPropertyString"]++
	if e.SetStatus.Failed() {
		return e.SetStatus
	}
	e.Strings[name] = value
	return engine.StatusSuccess
}

func (e *Engine) CreateRenderContext() (peartube.RenderContext, error) {
	e.Calls["CreateRenderContext"]++
	if e.CtxErr != nil {
		return nil, e.CtxErr
	}
	c := &RenderContext{UpdateFlags: peartube.UpdateFrame}
	e.Contexts = append(e.Contexts, c)
	return c, nil
}

func (e *Engine) Destroy() {
	e.Calls["Destroy"]++
	e.Destroyed++
}

// NativeCalls sums every recorded call.
func (e *Engine) NativeCalls() int {
	n := 0
	for _, c := range e.Calls {
		n += c
	}
	return n
}

// RenderContext is a fake software render target.
type RenderContext struct {
	// UpdateFlags is returned verbatim from Update.
	UpdateFlags uint64

	// RenderStatus, when negative, makes Render fail.
	RenderStatus peartube.Status

	Renders int
	Freed   int
}

// Render fills buf with a byte derived from the call count, so consecutive
// frames are distinguishable in aliasing tests.
func (c *RenderContext) Render(buf []byte, width, height, stride int) peartube.Status {
	c.Renders++
	if c.RenderStatus.Failed() {
		return c.RenderStatus
	}
	fill := byte(c.Renders)
	for y := 0; y < height; y++ {
		row := buf[y*stride : y*stride+width*peartube.BytesPerPixel]
		for i := range row {
			row[i] = fill
		}
	}
	return engine.StatusSuccess
}

func (c *RenderContext) Update() uint64 {
	return c.UpdateFlags
}

func (c *RenderContext) Free() {
	c.Freed++
}
