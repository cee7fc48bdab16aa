package bus

import (
	"errors"
	"testing"

	"github.com/bastisawesome/bz80/device"
)

func TestNearestBaseExactAndFallback(t *testing.T) {
	b := New()
	b.AddMMIODevice(0, device.NewRAM(16))
	b.AddMMIODevice(0x8000, device.NewRAM(16))

	b.Write8(0, 42, false)
	b.Write8(1, 69, false)
	b.Write8(0x8000, 0xBE, false)

	if got := b.Read8(0, false); got != 42 {
		t.Fatalf("Read8(0) = 0x%02X, want 0x2A", got)
	}
	if got := b.Read8(1, false); got != 69 {
		t.Fatalf("Read8(1) = 0x%02X, want 0x45", got)
	}
	if got := b.Read8(0x8000, false); got != 0xBE {
		t.Fatalf("Read8(0x8000) = 0x%02X, want 0xBE", got)
	}
}

func TestNearestBaseBeforeSmallestKeyIsEmpty(t *testing.T) {
	b := New()
	b.AddMMIODevice(0x8000, device.NewRAM(16))

	if got := b.Read8(0x100, false); got != 0 {
		t.Fatalf("Read8(0x100) = 0x%02X, want 0 (query before smallest base)", got)
	}
}

func TestNearestBaseEmptyTable(t *testing.T) {
	b := New()
	if got := b.Read8(0, false); got != 0 {
		t.Fatalf("Read8 on empty bus = 0x%02X, want 0", got)
	}
	b.Write8(0, 1, false) // must not panic
}

func TestReadWrite16CanStraddleDevices(t *testing.T) {
	b := New()
	b.AddMMIODevice(0, device.NewRAM(1))
	b.AddMMIODevice(1, device.NewRAM(1))

	b.Write16(0, 0xBEEF)

	if got := b.Read8(0, false); got != 0xEF {
		t.Fatalf("low device byte = 0x%02X, want 0xEF", got)
	}
	if got := b.Read8(1, false); got != 0xBE {
		t.Fatalf("high device byte = 0x%02X, want 0xBE", got)
	}
	if got := b.Read16(0); got != 0xBEEF {
		t.Fatalf("Read16(0) = 0x%04X, want 0xBEEF", got)
	}
}

func TestPortReadWriteAndMissingPort(t *testing.T) {
	b := New()
	if got := b.Read8(0x10, true); got != 0 {
		t.Fatalf("Read8 on unoccupied port = 0x%02X, want 0", got)
	}

	ram := device.NewRAM(1)
	if err := b.AddPortDevice(0x10, ram); err != nil {
		t.Fatalf("AddPortDevice: unexpected error %v", err)
	}
	b.Write8(0x10, 0x7A, true)
	if got := b.Read8(0x10, true); got != 0x7A {
		t.Fatalf("Read8(port 0x10) = 0x%02X, want 0x7A", got)
	}
}

func TestAddPortDeviceCollision(t *testing.T) {
	b := New()
	if err := b.AddPortDevice(5, device.NewRAM(1)); err != nil {
		t.Fatalf("first AddPortDevice: unexpected error %v", err)
	}

	err := b.AddPortDevice(5, device.NewRAM(1))
	if err == nil {
		t.Fatalf("second AddPortDevice(5, ...) succeeded, want PortOccupied")
	}
	var occupied PortOccupied
	if !errors.As(err, &occupied) {
		t.Fatalf("err = %v (%T), want PortOccupied", err, err)
	}
	if occupied.Port != 5 {
		t.Fatalf("PortOccupied.Port = %d, want 5", occupied.Port)
	}
}

func TestAddMMIODeviceOverwritesSilently(t *testing.T) {
	b := New()
	first := device.NewRAM(4)
	first.Write8(0, 1)
	b.AddMMIODevice(0, first)

	second := device.NewRAM(4)
	second.Write8(0, 2)
	b.AddMMIODevice(0, second)

	if got := b.Read8(0, false); got != 2 {
		t.Fatalf("Read8(0) = %d, want 2 (second device should win)", got)
	}
}
