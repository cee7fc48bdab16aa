// cpu.go - the three-phase fetch/decode/execute engine.
package cpu

import (
	"context"
	"log/slog"

	"github.com/bastisawesome/bz80/register"
)

// Cycle costs named per the distilled instruction table.
const (
	FetchCycles        = 4
	DecodeCycles       = 0
	MemoryAccessCycles = 3
	IncDecRegCycles    = 1
	TestRegCycles      = 3
)

// Bus is the subset of bus.Bus the CPU needs. Declared locally (rather than
// imported) so the cpu package has no dependency on the bus package's
// concrete type, matching cpu_z80.go's Z80Bus interface.
type Bus interface {
	Read8(addr uint16, iorq bool) byte
	Write8(addr uint16, value byte, iorq bool)
	Read16(addr uint16) uint16
	Write16(addr uint16, value uint16)
}

// Phase is the CPU's tri-state cycle: Fetch, Decode, Execute.
type Phase int

const (
	Fetch Phase = iota
	Decode
	Execute
)

func (p Phase) String() string {
	switch p {
	case Fetch:
		return "Fetch"
	case Decode:
		return "Decode"
	case Execute:
		return "Execute"
	default:
		return "unknown"
	}
}

// DecodedInstruction holds the octal decomposition of the current opcode.
type DecodedInstruction struct {
	X, Y, Z, P, Q byte
}

func decomposeOpcode(op byte) DecodedInstruction {
	x := op >> 6
	y := (op >> 3) & 0b111
	z := op & 0b111
	return DecodedInstruction{
		X: x,
		Y: y,
		Z: z,
		P: y >> 1,
		Q: y & 1,
	}
}

// CPU is the fetch/decode/execute engine for the implemented Z80 subset.
type CPU struct {
	A byte
	F Flags
	BC, DE, HL register.Pair

	A2 byte
	F2 Flags
	BC2, DE2, HL2 register.Pair

	PC, SP, IX, IY uint16
	I, R           byte
	Halted         bool

	state           Phase
	currentOpcode   byte
	decoded         DecodedInstruction

	bus    Bus
	logger *slog.Logger
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithLogger attaches a structured logger. A nil logger passed to New is
// replaced with a discard logger, so callers never need a nil check.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CPU) {
		c.logger = logger
	}
}

// New constructs a CPU bound to bus, starting in the Fetch phase with all
// registers zeroed.
func New(bus Bus, opts ...Option) *CPU {
	c := &CPU{
		bus:    bus,
		state:  Fetch,
		logger: slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(discardHandler{})
	}
	return c
}

// State reports the CPU's current phase.
func (c *CPU) State() Phase {
	return c.state
}

// Tick advances the CPU by exactly one phase and returns that phase's cycle
// cost. On an UnimplementedInstruction error, the CPU is left in the phase
// that failed (Decode for a prefix byte, Execute for an opcode outside the
// dispatch table) rather than silently advancing, so a caller that retries
// without resetting observes the same failure instead of resynchronizing by
// accident.
func (c *CPU) Tick() (uint8, error) {
	switch c.state {
	case Fetch:
		return c.fetch(), nil
	case Decode:
		return c.decode()
	case Execute:
		return c.execute()
	default:
		return 0, UnimplementedInstruction{Mnemonic: "unknown CPU phase"}
	}
}

func (c *CPU) fetch() uint8 {
	opcode := c.bus.Read8(c.PC, false)
	c.PC++
	c.currentOpcode = opcode
	c.state = Decode

	c.logger.Debug("fetch", "pc", c.PC-1, "opcode", opcode)
	return FetchCycles
}

func (c *CPU) decode() (uint8, error) {
	switch c.currentOpcode {
	case 0xCB, 0xDD, 0xED, 0xFD:
		err := UnimplementedInstruction{Opcode: c.currentOpcode, Mnemonic: "prefixed opcode"}
		c.logger.Warn("decode: unimplemented", "opcode", c.currentOpcode, "err", err)
		return DecodeCycles, err
	}

	c.decoded = decomposeOpcode(c.currentOpcode)
	c.state = Execute
	c.logger.Debug("decode", "opcode", c.currentOpcode)
	return DecodeCycles, nil
}

func (c *CPU) execute() (uint8, error) {
	cycles, err := c.dispatch()
	if err != nil {
		if c.logger.Enabled(context.Background(), slog.LevelWarn) {
			c.logger.Warn("execute: unimplemented", "opcode", c.currentOpcode, "err", err)
		}
		return cycles, err
	}

	c.state = Fetch
	c.logger.Debug("execute", "opcode", c.currentOpcode, "cycles", cycles)
	return cycles, nil
}

// Snapshot is a point-in-time, by-value copy of the CPU's visible state, used
// by tests and debugging tools. It intentionally omits the bus and logger.
type Snapshot struct {
	A  byte
	F  Flags
	BC, DE, HL uint16

	PC, SP, IX, IY uint16
	I, R           byte
	Halted         bool

	Phase   Phase
	Opcode  byte
	Decoded DecodedInstruction
}

// Snapshot captures the CPU's current register file and phase.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A:       c.A,
		F:       c.F,
		BC:      c.BC.Combined(),
		DE:      c.DE.Combined(),
		HL:      c.HL.Combined(),
		PC:      c.PC,
		SP:      c.SP,
		IX:      c.IX,
		IY:      c.IY,
		I:       c.I,
		R:       c.R,
		Halted:  c.Halted,
		Phase:   c.state,
		Opcode:  c.currentOpcode,
		Decoded: c.decoded,
	}
}

// discardHandler is a slog.Handler that drops every record. Used as the
// zero-value logger so a nil *slog.Logger is never dereferenced on the hot
// path of a disabled log call.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool   { return false }
func (discardHandler) Handle(context.Context, slog.Record) error  { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler       { return d }
func (d discardHandler) WithGroup(string) slog.Handler            { return d }
