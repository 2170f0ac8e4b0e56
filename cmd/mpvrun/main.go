package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ayooooo123/peartube/bridge"
	"github.com/ayooooo123/peartube/engine"
	"github.com/ayooooo123/peartube/script/luahost"
)

func main() {
	var (
		script      = flag.String("script", "", "Lua script to run against the player")
		play        = flag.String("play", "", "Media file or URL to play")
		width       = flag.Int("w", 640, "Frame width in pixels")
		height      = flag.Int("h", 360, "Frame height in pixels")
		frames      = flag.Int("frames", 1, "Number of frames to capture")
		out         = flag.String("out", "frames.rgba", "Output file for raw RGBA frames")
		timeout     = flag.Duration("timeout", 30*time.Second, "Give up waiting for frames after this long")
		interactive = flag.Bool("i", false, "Interactive playback monitor (TUI)")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *script == "" && *play == "" {
		fmt.Fprintln(os.Stderr, "Usage: mpvrun -script <file.lua>")
		fmt.Fprintln(os.Stderr, "       mpvrun -play <media> [-w N] [-h N] [-frames N] [-out file]")
		fmt.Fprintln(os.Stderr, "       mpvrun -play <media> -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	engine.SetLogger(log)

	b := bridge.New(engine.NewProvider(), bridge.WithLogger(log))
	defer b.Close()

	var err error
	switch {
	case *script != "":
		err = runScript(b, *script)
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			err = fmt.Errorf("interactive mode needs a terminal")
			break
		}
		err = runInteractive(b, *play)
	default:
		err = runHeadless(b, *play, *width, *height, *frames, *out, *timeout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScript(b *bridge.Bridge, path string) error {
	L := lua.NewState()
	defer L.Close()
	luahost.Register(L, b)
	return L.DoFile(path)
}

// runHeadless plays a file offscreen and appends raw RGBA frames to out.
func runHeadless(b *bridge.Bridge, media string, width, height, frames int, out string, timeout time.Duration) error {
	h, err := b.Create()
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	defer b.Destroy(h)

	if st := b.Initialize(h); st.Failed() {
		return fmt.Errorf("initialize: %s", engine.StatusName(st))
	}
	if st := b.Command(h, []string{"loadfile", media}); st.Failed() {
		return fmt.Errorf("loadfile: %s", engine.StatusName(st))
	}

	rh, err := b.RenderCreate(h, width, height)
	if err != nil {
		return fmt.Errorf("render context: %w", err)
	}
	defer b.RenderFree(rh)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	deadline := time.Now().Add(timeout)
	captured := 0
	for captured < frames {
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out after %d of %d frames", captured, frames)
		}
		if !b.RenderUpdate(rh) {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		frame := b.RenderFrame(rh)
		if frame == nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if _, err := f.Write(frame); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		captured++
	}

	fmt.Printf("Captured %d frames (%dx%d RGBA) to %s\n", captured, width, height, out)
	return nil
}
