package frontend_test

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"chip8go/frontend"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return t0 }

func frameAt(n int) time.Time {
	return t0.Add(time.Duration(n) * 16 * time.Millisecond)
}

// fakeEngine records every capability call, and surface calls, in order.
type fakeEngine struct {
	calls   []string
	loaded  [][]byte
	keys    map[frontend.Key]bool
	loadErr error

	// faultAt makes the nth StepCycle call (1-based) fail.
	faultAt int
	cycles  int
	onCycle func()
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{keys: make(map[frontend.Key]bool)}
}

func (e *fakeEngine) Reset() {
	e.calls = append(e.calls, "reset")
}

func (e *fakeEngine) LoadProgram(program []byte) error {
	e.calls = append(e.calls, fmt.Sprintf("load:%d", len(program)))
	if e.loadErr != nil {
		return e.loadErr
	}
	e.loaded = append(e.loaded, append([]byte(nil), program...))
	return nil
}

func (e *fakeEngine) StepCycle() error {
	e.calls = append(e.calls, "cycle")
	e.cycles++
	if e.onCycle != nil {
		e.onCycle()
	}
	if e.faultAt > 0 && e.cycles == e.faultAt {
		return errors.New("bad opcode")
	}
	return nil
}

func (e *fakeEngine) StepTimer() {
	e.calls = append(e.calls, "timer")
}

func (e *fakeEngine) SetKey(key frontend.Key, pressed bool) {
	e.calls = append(e.calls, fmt.Sprintf("key:%X:%t", key, pressed))
	e.keys[key] = pressed
}

func (e *fakeEngine) Render(s frontend.Surface, scale int) {
	e.calls = append(e.calls, fmt.Sprintf("render:%d", scale))
	s.FillRect(0, 0, scale, scale)
}

func (e *fakeEngine) count(call string) int {
	n := 0
	for _, c := range e.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (e *fakeEngine) surface() *fakeSurface {
	return &fakeSurface{engine: e}
}

// fakeSurface logs into the engine's call list so ordering across both is
// visible.
type fakeSurface struct {
	engine *fakeEngine
	rects  int
}

func (s *fakeSurface) Clear() {
	s.engine.calls = append(s.engine.calls, "clear")
	s.rects = 0
}

func (s *fakeSurface) FillRect(x, y, w, h int) {
	s.rects++
}

func frameCalls(ticks, scale int) []string {
	calls := make([]string, 0, ticks+3)
	for i := 0; i < ticks; i++ {
		calls = append(calls, "cycle")
	}
	return append(calls, "timer", "clear", fmt.Sprintf("render:%d", scale))
}

func memFile(name string, data []byte) *frontend.File {
	return &frontend.File{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

type notices struct {
	errs []error
}

func (n *notices) Notify(err error) {
	n.errs = append(n.errs, err)
}

type rig struct {
	loop    *frontend.Loop
	engine  *fakeEngine
	surface *fakeSurface
	driver  *frontend.Driver
	ctrl    *frontend.Controller
}

func newRig(cfg frontend.DriverConfig) *rig {
	r := &rig{loop: frontend.NewLoop(), engine: newFakeEngine()}
	r.surface = r.engine.surface()
	r.driver = frontend.NewDriver(r.engine, r.surface, r.loop, cfg, nil)
	r.ctrl = frontend.NewController(r.driver, fixedClock)
	return r
}
