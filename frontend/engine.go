// Package frontend drives a CHIP-8 engine from a host: it paces frames,
// translates keyboard input, loads programs and keeps at most one frame
// session alive at a time.
package frontend

// Logical display size of the engine framebuffer, in cells.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// KeyCount is the number of keys on the CHIP-8 hexadecimal keypad.
const KeyCount = 16

// Key is one of the sixteen keypad symbols, 0x0 to 0xF.
type Key uint8

// Surface is the host-visible render target. Coordinates are in pixels,
// already scaled by the engine.
type Surface interface {
	Clear()
	FillRect(x, y, w, h int)
}

// Engine is the capability the frontend drives. Implementations are not
// reentrant and are only ever called from the loop thread.
type Engine interface {
	// Reset clears registers, memory, timers, display and key state.
	Reset()
	LoadProgram(program []byte) error
	// StepCycle executes a single instruction. A non-nil error is a fault.
	StepCycle() error
	StepTimer()
	SetKey(key Key, pressed bool)
	Render(s Surface, scale int)
}
