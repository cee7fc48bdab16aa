// build.go - turns a Config into a wired (*bus.Bus, *cpu.CPU) pair.
package machine

import (
	"fmt"

	"github.com/bastisawesome/bz80/bus"
	"github.com/bastisawesome/bz80/cpu"
	"github.com/bastisawesome/bz80/device"
)

// Build validates cfg, constructs a Bus with every region installed, and
// returns a CPU bound to it. No device is constructed if validation fails.
func Build(cfg Config, opts ...cpu.Option) (*bus.Bus, *cpu.CPU, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	b := bus.New()
	for _, r := range cfg.MMIO {
		dev := newDevice(r)
		// Size() is the authoritative capacity of the constructed device; a
		// Fill longer or shorter than the declared region would otherwise
		// silently install a device bigger or smaller than the caller's own
		// memory map says it is. Checked here rather than in validate, since
		// validate never constructs a device.
		if dev.Size() != int(r.Size) {
			return nil, nil, ConfigError{Reason: fmt.Sprintf(
				"MMIO region at base 0x%04X declares size %d but its fill produced a device of size %d",
				r.Base, r.Size, dev.Size())}
		}
		b.AddMMIODevice(r.Base, dev)
	}
	for _, p := range cfg.Ports {
		dev := newDevice(MMIORegion{Size: 1, Kind: p.Kind})
		// AddPortDevice can only fail on a duplicate port, which validate
		// already ruled out.
		if err := b.AddPortDevice(p.Port, dev); err != nil {
			return nil, nil, err
		}
	}

	c := cpu.New(b, opts...)
	return b, c, nil
}

func newDevice(r MMIORegion) device.Device {
	switch r.Kind {
	case KindROM:
		if len(r.Fill) > 0 {
			return device.NewROMFromBytes(r.Fill)
		}
		return device.NewROM(int(r.Size))
	default:
		return device.NewRAM(int(r.Size))
	}
}
