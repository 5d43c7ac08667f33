// Package cpu implements the CHIP-8 processor: memory, registers, call stack,
// timers and the fetch, decode and execute cycle.
package cpu

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/peripheral"
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: interpreter area, holds the font glyphs
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address that programs are loaded to and start executing at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into the program space.
	MaxProgramSize = MemorySize - ProgramStart

	addressMask = MemorySize - 1
)

// CPU contains the state of the processor. The exported fields can be
// inspected and modified between steps.
type CPU struct {
	Memory [MemorySize]byte
	V      [16]uint8 // general purpose registers, VF is the flag register
	I      uint16    // address register
	PC     uint16
	SP     int // index of the top of the stack, -1 if empty
	Stack  [16]uint16

	DelayTimer uint8
	SoundTimer uint8

	periph *peripheral.State
	random *rand.Rand
	logger *log.Logger
	trace  bool
}

// Option configures a CPU.
type Option func(*CPU)

// WithLogger sets the logger that traced instructions are written to.
func WithLogger(logger *log.Logger) Option {
	return func(c *CPU) {
		c.logger = logger
	}
}

// WithRandom sets the random source used by the RND instruction.
func WithRandom(random *rand.Rand) Option {
	return func(c *CPU) {
		c.random = random
	}
}

// WithSeed seeds the random source used by the RND instruction,
// making the random sequence reproducible.
func WithSeed(seed uint64) Option {
	return WithRandom(rand.New(rand.NewPCG(seed, seed)))
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(c *CPU) {
		c.trace = trace
	}
}

// New returns a new CPU in its power-on state that draws to and reads keys
// from the passed peripheral state.
func New(periph *peripheral.State, opts ...Option) *CPU {
	c := &CPU{
		PC:     ProgramStart,
		SP:     -1,
		periph: periph,
	}
	copy(c.Memory[FontAddress:], font[:])

	for _, opt := range opts {
		opt(c)
	}
	if c.random == nil {
		c.random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Peripheral returns the peripheral state that the CPU is connected to.
func (c *CPU) Peripheral() *peripheral.State {
	return c.periph
}

// Load copies the program into memory at the program start address,
// overwriting any previously loaded program.
func (c *CPU) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed %d bytes", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	clear(c.Memory[ProgramStart:])
	copy(c.Memory[ProgramStart:], program)
	return nil
}

// Fetch returns the big endian instruction word at the program counter.
func (c *CPU) Fetch() uint16 {
	return uint16(c.read(c.PC))<<8 | uint16(c.read(c.PC+1))
}

// Step executes a single instruction. The returned errors wrap
// ErrUnknownInstruction, ErrStackUnderflow or ErrStackOverflow.
func (c *CPU) Step() error {
	pc := c.PC
	word := c.Fetch()

	ins, err := Lookup(word)
	if err != nil {
		return fmt.Errorf("decoding opcode %04x at address %04x: %w", word, pc, err)
	}

	if c.trace && c.logger != nil {
		c.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.String("instruction", disasm.Disassemble(word)))
	}

	if err := ins.Execute(c, ins.Decode(word)); err != nil {
		return fmt.Errorf("executing '%s' at address %04x: %w", ins.Name, pc, err)
	}
	return nil
}

// TickTimers decrements the delay and sound timers, neither goes below zero.
func (c *CPU) TickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

func (c *CPU) read(address uint16) byte {
	return c.Memory[address&addressMask]
}

func (c *CPU) write(address uint16, value byte) {
	c.Memory[address&addressMask] = value
}
