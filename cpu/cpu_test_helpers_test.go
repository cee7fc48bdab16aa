package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/bastisawesome/bz80/bus"
	"github.com/bastisawesome/bz80/device"
)

// cpuTestRig wires a CPU to a single flat 64K RAM region, mirroring the
// teacher's z80TestBus/cpuZ80TestRig pattern in cpu_z80_test_helpers_test.go.
type cpuTestRig struct {
	bus *bus.Bus
	cpu *CPU
}

func newCPUTestRig() *cpuTestRig {
	b := bus.New()
	b.AddMMIODevice(0, device.NewRAM(0x10000))
	return &cpuTestRig{bus: b, cpu: New(b)}
}

// resetAndLoad installs program at start and points PC at start.
func (r *cpuTestRig) resetAndLoad(start uint16, program []byte) {
	b := bus.New()
	b.AddMMIODevice(0, device.NewRAM(0x10000))
	r.bus = b
	r.cpu = New(b)
	for i, value := range program {
		r.bus.Write8(start+uint16(i), value, false)
	}
	r.cpu.PC = start
}

// runOpcode seeds currentOpcode and drives Decode then Execute, mirroring the
// original source's two-tick test pattern (currentOpcode + state = DECODE,
// then tick() twice).
func (r *cpuTestRig) runOpcode(opcode byte) (executeCycles uint8, err error) {
	r.cpu.currentOpcode = opcode
	r.cpu.state = Decode

	if _, err := r.cpu.Tick(); err != nil {
		return 0, err
	}
	return r.cpu.Tick()
}

func requireEqualU8(t *testing.T, name string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", name, got, want)
	}
}

func requireEqualU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%04X, want 0x%04X", name, got, want)
	}
}

func requireFlag(t *testing.T, name string, f Flags, mask Flags, want bool) {
	t.Helper()
	if f.Has(mask) != want {
		t.Fatalf("flag %s = %v, want %v (F=0x%02X)", name, f.Has(mask), want, f)
	}
}

// dumpSnapshot renders a full register dump for a failing test, in the
// teacher pack's go-spew-assisted diagnostic style (see jmchacon-6502's test
// fixtures) rather than a single terse field comparison.
func dumpSnapshot(t *testing.T, c *CPU) {
	t.Helper()
	t.Logf("CPU snapshot:\n%s", spew.Sdump(c.Snapshot()))
}
