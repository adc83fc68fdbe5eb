package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"chip8go/chip8"
	"chip8go/frontend"
)

const title = "CHIP-8 Emulator"

type config struct {
	scale   int
	ticks   int
	cps     float64
	fps     int
	layout  string
	verbose bool
	rom     string
}

func parseConfig(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("chip8", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: chip8 [flags] [ROM file]")
		fs.PrintDefaults()
	}
	fs.IntVar(&cfg.scale, "scale", frontend.DefaultScale, "pixels per display cell")
	fs.IntVar(&cfg.ticks, "ticks", frontend.DefaultTicksPerFrame, "instructions executed per frame")
	fs.Float64Var(&cfg.cps, "cps", 0, "pace by instructions per second instead of -ticks (0 disables)")
	fs.IntVar(&cfg.fps, "fps", 60, "frames per second")
	fs.StringVar(&cfg.layout, "layout", "qwerty", "keypad layout: "+strings.Join(layoutNames(), ", "))
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch {
	case cfg.scale <= 0:
		return cfg, errors.Errorf("invalid -scale %d", cfg.scale)
	case cfg.ticks <= 0:
		return cfg, errors.Errorf("invalid -ticks %d", cfg.ticks)
	case cfg.cps < 0:
		return cfg, errors.Errorf("invalid -cps %g", cfg.cps)
	case cfg.fps <= 0:
		return cfg, errors.Errorf("invalid -fps %d", cfg.fps)
	}
	if _, ok := layouts[cfg.layout]; !ok {
		return cfg, errors.Errorf("unknown -layout %q", cfg.layout)
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return cfg, errors.New("at most one ROM file")
	}
	cfg.rom = fs.Arg(0)
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run() {
	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "chip8: %v\n", err)
		os.Exit(2)
	}
	log := newLogger(cfg.verbose)
	slog.SetDefault(log)

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, float64(frontend.DisplayWidth*cfg.scale), float64(frontend.DisplayHeight*cfg.scale)),
		VSync:  true,
	})
	if err != nil {
		log.Error("creating window", "err", err)
		os.Exit(1)
	}

	keys, err := frontend.NewLayout(layouts[cfg.layout])
	if err != nil {
		log.Error("keypad layout", "err", err)
		os.Exit(1)
	}

	engine := chip8.NewChip8()
	surface := newCanvas(frontend.DisplayHeight * cfg.scale)
	loop := frontend.NewLoop()

	driver := frontend.NewDriver(engine, surface, loop, frontend.DriverConfig{
		TicksPerFrame:   cfg.ticks,
		Scale:           cfg.scale,
		CyclesPerSecond: cfg.cps,
	}, log)
	ctrl := frontend.NewController(driver, time.Now)
	input := frontend.NewTranslator(engine, keys)

	shown := ""
	notify := frontend.NotifierFunc(func(err error) {
		win.SetTitle(fmt.Sprintf("%s - %v", title, err))
		shown = ""
	})
	loader := frontend.NewLoader(frontend.LoaderConfig{
		Engine:     engine,
		Controller: ctrl,
		Poster:     loop,
		Notifier:   notify,
		Surface:    surface,
		Log:        log,
	})

	if cfg.rom != "" {
		loader.Load(frontend.OSFile(cfg.rom))
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "enter a ROM path to load it, an empty line cancels")
		go func() {
			if err := frontend.ScanSelections(os.Stdin, loop, loader.Load); err != nil {
				log.Warn("ROM prompt closed", "err", err)
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.fps))
	defer ticker.Stop()

	buttons := input.Keys()
	for !win.Closed() {
		for _, b := range buttons {
			if win.JustPressed(b) {
				input.OnKey(b, true)
			}
			if win.JustReleased(b) {
				input.OnKey(b, false)
			}
		}

		ctrlDown := win.Pressed(pixelgl.KeyLeftControl) || win.Pressed(pixelgl.KeyRightControl)
		switch {
		case ctrlDown && win.JustPressed(pixelgl.KeyV):
			loader.Load(frontend.Selection(win.ClipboardText()))
		case win.JustPressed(pixelgl.KeyF5):
			loader.Reload()
		case win.JustPressed(pixelgl.KeyEscape):
			ctrl.Stop()
		}

		if err := loop.RunFrame(time.Now()); err != nil {
			log.Error("session ended", "err", err)
			win.SetTitle(fmt.Sprintf("%s - %v", title, err))
			shown = ""
		} else if name := loader.Current(); name != shown && ctrl.Running() {
			win.SetTitle(fmt.Sprintf("%s - %s", title, name))
			shown = name
		}

		surface.Draw(win)
		win.Update()

		<-ticker.C
	}

	ctrl.Stop()
	loader.Wait()
}

func main() {
	pixelgl.Run(run)
}
