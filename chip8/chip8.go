// Package chip8 is a CHIP-8 interpreter exposing the engine capability
// driven by package frontend.
package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"chip8go/frontend"
)

// Memory layout.
const (
	MemorySize   = 4096
	FontStart    = 0x050
	ProgramStart = 0x200
	StackDepth   = 16

	Width  = frontend.DisplayWidth
	Height = frontend.DisplayHeight
)

// Fault is returned by StepCycle when the program can not continue.
type Fault struct {
	PC     uint16
	Opcode uint16
	Reason string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s (pc=%03X opcode=%04X)", f.Reason, f.PC, f.Opcode)
}

type Chip8 struct {
	// VF doubles as the carry/borrow/collision flag
	V [16]byte

	Memory [MemorySize]byte

	I  uint16
	PC uint16

	Display [Width * Height]bool

	DelayTimer byte
	SoundTimer byte

	Stack [StackDepth]uint16
	SP    byte

	Keys [frontend.KeyCount]bool

	rng *rand.Rand
}

// NewChip8 returns a machine in its reset state.
func NewChip8() *Chip8 {
	c := &Chip8{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.Reset()
	return c
}

// ████ (0xF0)
// █  █ (0x90)
// █  █ (0x90)
// █  █ (0x90)
// ████ (0xF0)
var fontset = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Reset clears registers, memory, timers, stack, display and keys, then
// reloads the font.
func (c *Chip8) Reset() {
	rng := c.rng
	*c = Chip8{rng: rng}
	c.PC = ProgramStart
	copy(c.Memory[FontStart:], fontset[:])
}

// LoadProgram copies program into memory at 0x200.
func (c *Chip8) LoadProgram(program []byte) error {
	if len(program) > MemorySize-ProgramStart {
		return fmt.Errorf("program too large: %d bytes (max: %d)", len(program), MemorySize-ProgramStart)
	}
	copy(c.Memory[ProgramStart:], program)
	return nil
}

// SetKey records the state of keypad key k.
func (c *Chip8) SetKey(k frontend.Key, pressed bool) {
	if int(k) < len(c.Keys) {
		c.Keys[k] = pressed
	}
}

// StepTimer decrements the delay and sound timers once. The host calls it at
// the frame rate, independently of the number of cycles executed.
func (c *Chip8) StepTimer() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// Sound reports whether the buzzer should be sounding.
func (c *Chip8) Sound() bool {
	return c.SoundTimer > 0
}

// Render fills one scale-sized square per lit cell.
func (c *Chip8) Render(s frontend.Surface, scale int) {
	for i, on := range c.Display {
		if !on {
			continue
		}
		x, y := i%Width, i/Width
		s.FillRect(x*scale, y*scale, scale, scale)
	}
}

// StepCycle fetches, decodes and executes one instruction.
func (c *Chip8) StepCycle() error {
	if int(c.PC)+1 >= MemorySize {
		return &Fault{PC: c.PC, Reason: "program counter out of memory"}
	}
	opcode := uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[c.PC+1])
	pc := c.PC
	c.PC += 2

	if reason := c.execute(opcode); reason != "" {
		return &Fault{PC: pc, Opcode: opcode, Reason: reason}
	}
	return nil
}

// execute runs a decoded opcode and returns a non-empty reason on fault.
func (c *Chip8) execute(opcode uint16) string {
	x := (opcode & 0x0F00) >> 8
	y := (opcode & 0x00F0) >> 4
	n := opcode & 0x000F
	nn := byte(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0: // CLS
			c.Display = [Width * Height]bool{}
		case 0x00EE: // RET
			if c.SP == 0 {
				return "stack underflow"
			}
			c.SP--
			c.PC = c.Stack[c.SP]
		default:
			// 0NNN calls a machine routine; ignored by modern interpreters
		}

	case 0x1: // JP nnn
		c.PC = nnn

	case 0x2: // CALL nnn
		if int(c.SP) >= len(c.Stack) {
			return "stack overflow"
		}
		c.Stack[c.SP] = c.PC
		c.SP++
		c.PC = nnn

	case 0x3:
		c.skipIf(c.V[x] == nn)

	case 0x4:
		c.skipIf(c.V[x] != nn)

	case 0x5:
		if n != 0 {
			return "unknown opcode"
		}
		c.skipIf(c.V[x] == c.V[y])

	case 0x6:
		c.V[x] = nn

	case 0x7:
		c.V[x] += nn

	case 0x8:
		return c.alu(x, y, n)

	case 0x9:
		if n != 0 {
			return "unknown opcode"
		}
		c.skipIf(c.V[x] != c.V[y])

	case 0xA:
		c.I = nnn

	case 0xB:
		c.PC = nnn + uint16(c.V[0])

	case 0xC:
		c.V[x] = byte(c.rng.Intn(256)) & nn

	case 0xD:
		if int(c.I)+int(n) > MemorySize {
			return "sprite read out of memory"
		}
		c.drawSprite(c.V[x], c.V[y], n)

	case 0xE:
		switch nn {
		case 0x9E: // SKP Vx
			c.skipIf(c.Keys[c.V[x]&0xF])
		case 0xA1: // SKNP Vx
			c.skipIf(!c.Keys[c.V[x]&0xF])
		default:
			return "unknown opcode"
		}

	case 0xF:
		return c.misc(x, nn)
	}
	return ""
}

func (c *Chip8) alu(x, y, n uint16) string {
	switch n {
	case 0x0:
		c.V[x] = c.V[y]
	case 0x1:
		c.V[x] |= c.V[y]
	case 0x2:
		c.V[x] &= c.V[y]
	case 0x3:
		c.V[x] ^= c.V[y]
	case 0x4:
		sum := uint16(c.V[x]) + uint16(c.V[y])
		c.V[x] = byte(sum)
		c.V[0xF] = flag(sum > 0xFF)
	case 0x5:
		borrow := c.V[x] >= c.V[y]
		c.V[x] -= c.V[y]
		c.V[0xF] = flag(borrow)
	case 0x6:
		lsb := c.V[x] & 0x1
		c.V[x] >>= 1
		c.V[0xF] = lsb
	case 0x7:
		borrow := c.V[y] >= c.V[x]
		c.V[x] = c.V[y] - c.V[x]
		c.V[0xF] = flag(borrow)
	case 0xE:
		msb := c.V[x] >> 7
		c.V[x] <<= 1
		c.V[0xF] = msb
	default:
		return "unknown opcode"
	}
	return ""
}

func (c *Chip8) misc(x uint16, nn byte) string {
	switch nn {
	case 0x07:
		c.V[x] = c.DelayTimer
	case 0x0A: // LD Vx, K blocks by re-executing until a key is down
		for i, down := range c.Keys {
			if down {
				c.V[x] = byte(i)
				return ""
			}
		}
		c.PC -= 2
	case 0x15:
		c.DelayTimer = c.V[x]
	case 0x18:
		c.SoundTimer = c.V[x]
	case 0x1E:
		c.I += uint16(c.V[x])
	case 0x29:
		c.I = FontStart + uint16(c.V[x]&0xF)*5
	case 0x33:
		if int(c.I)+3 > MemorySize {
			return "BCD store out of memory"
		}
		c.Memory[c.I] = c.V[x] / 100
		c.Memory[c.I+1] = (c.V[x] / 10) % 10
		c.Memory[c.I+2] = c.V[x] % 10
	case 0x55:
		if int(c.I)+int(x) >= MemorySize {
			return "register store out of memory"
		}
		for i := uint16(0); i <= x; i++ {
			c.Memory[c.I+i] = c.V[i]
		}
	case 0x65:
		if int(c.I)+int(x) >= MemorySize {
			return "register load out of memory"
		}
		for i := uint16(0); i <= x; i++ {
			c.V[i] = c.Memory[c.I+i]
		}
	default:
		return "unknown opcode"
	}
	return ""
}

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.PC += 2
	}
}

// drawSprite XORs an 8xN sprite read from I onto the display at (x, y),
// wrapping around the edges. VF is set when a lit pixel is switched off.
func (c *Chip8) drawSprite(x, y byte, height uint16) {
	c.V[0xF] = 0

	for row := uint16(0); row < height; row++ {
		line := c.Memory[c.I+row]
		for col := uint16(0); col < 8; col++ {
			if line&(0x80>>col) == 0 {
				continue
			}
			px := (uint16(x) + col) % Width
			py := (uint16(y) + row) % Height
			pos := py*Width + px

			if c.Display[pos] {
				c.V[0xF] = 1
			}
			c.Display[pos] = !c.Display[pos]
		}
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
