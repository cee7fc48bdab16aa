// bus.go - routes 16-bit memory addresses and 8-bit port addresses to devices.
package bus

import (
	"sort"
	"sync"

	"github.com/bastisawesome/bz80/device"
)

const portCount = 256

// Bus dispatches memory-mapped and port-mapped reads/writes to installed
// devices. Following the teacher's memory_bus.go, device maps are guarded by
// a mutex so a Bus may be shared read-mostly across goroutines even though
// the CPU driving it is single-threaded.
type Bus struct {
	mu   sync.RWMutex
	mmio map[uint16]device.Device
	keys []uint16 // kept sorted ascending, mirrors mmio's key set
	ports [portCount]device.Device
}

// New returns an empty Bus with no devices installed.
func New() *Bus {
	return &Bus{mmio: make(map[uint16]device.Device)}
}

// AddMMIODevice installs dev at base, silently replacing any device already
// there. Overlapping regions are the caller's responsibility to avoid; the
// bus does not validate alignment or extent.
func (b *Bus) AddMMIODevice(base uint16, dev device.Device) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.mmio[base]; !exists {
		b.keys = append(b.keys, base)
		sort.Slice(b.keys, func(i, j int) bool { return b.keys[i] < b.keys[j] })
	}
	b.mmio[base] = dev
}

// AddPortDevice installs dev at the given port. It fails with PortOccupied if
// a device is already installed there.
func (b *Bus) AddPortDevice(port uint8, dev device.Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ports[port] != nil {
		return PortOccupied{Port: port}
	}
	b.ports[port] = dev
	return nil
}

// nearestMMIO finds the device whose base is the largest key <= addr, per the
// nearest-base routing rule: locate the first key >= addr; if it equals addr
// use it; otherwise step back one key. A query before the smallest key, or an
// empty device table, resolves to no device.
func (b *Bus) nearestMMIO(addr uint16) (uint16, device.Device, bool) {
	if len(b.keys) == 0 {
		return 0, nil, false
	}

	idx := sort.Search(len(b.keys), func(i int) bool { return b.keys[i] >= addr })

	if idx == len(b.keys) {
		base := b.keys[len(b.keys)-1]
		return base, b.mmio[base], true
	}
	if b.keys[idx] == addr {
		return addr, b.mmio[addr], true
	}
	if idx == 0 {
		return 0, nil, false
	}
	base := b.keys[idx-1]
	return base, b.mmio[base], true
}

// Read8 reads a byte from addr. When iorq is true, addr's low 8 bits select a
// port device instead of routing through MMIO. Missing devices read as 0.
func (b *Bus) Read8(addr uint16, iorq bool) byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if iorq {
		dev := b.ports[byte(addr)]
		if dev == nil {
			return 0
		}
		return dev.Read8(0)
	}

	base, dev, ok := b.nearestMMIO(addr)
	if !ok {
		return 0
	}
	return dev.Read8(addr &^ base)
}

// Write8 writes value to addr, symmetric with Read8.
func (b *Bus) Write8(addr uint16, value byte, iorq bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if iorq {
		dev := b.ports[byte(addr)]
		if dev == nil {
			return
		}
		dev.Write8(0, value)
		return
	}

	base, dev, ok := b.nearestMMIO(addr)
	if !ok {
		return
	}
	dev.Write8(addr&^base, value)
}

// Read16 performs a little-endian 16-bit read via two independent MMIO
// accesses: low byte from addr, high byte from addr+1. The two accesses may
// land in different devices if addr straddles a region boundary; this is
// preserved deliberately, not special-cased.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(lo) | uint16(hi)<<8
}

// Write16 performs a little-endian 16-bit write: low byte to addr, high byte
// to addr+1, as two independent MMIO accesses.
func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write8(addr, byte(value), false)
	b.Write8(addr+1, byte(value>>8), false)
}
