// pair.go - a 16-bit register pair addressable as two independent 8-bit halves.
package register

// Pair holds a combined 16-bit value alongside its two 8-bit halves. The
// three views are kept consistent by recomputing the other two on every
// mutation; no half ever carries into the other on overflow.
type Pair struct {
	upper    byte
	lower    byte
	combined uint16
}

// Upper returns the high 8 bits (e.g. B of BC).
func (p Pair) Upper() byte { return p.upper }

// Lower returns the low 8 bits (e.g. C of BC).
func (p Pair) Lower() byte { return p.lower }

// Combined returns the 16-bit value (upper<<8)|lower.
func (p Pair) Combined() uint16 { return p.combined }

// SetUpper replaces the upper half and recomputes Combined. The lower half is
// untouched.
func (p *Pair) SetUpper(v byte) {
	p.upper = v
	p.recombine()
}

// SetLower replaces the lower half and recomputes Combined. The upper half is
// untouched.
func (p *Pair) SetLower(v byte) {
	p.lower = v
	p.recombine()
}

// Set16 replaces the combined value and re-derives both halves from it.
func (p *Pair) Set16(v uint16) {
	p.combined = v
	p.split()
}

// AddUpper adds a signed 8-bit delta to the upper half, wrapping modulo 256.
// It never propagates a carry into the lower half.
func (p *Pair) AddUpper(delta int8) {
	p.upper = byte(int16(p.upper) + int16(delta))
	p.recombine()
}

// AddLower adds a signed 8-bit delta to the lower half, wrapping modulo 256.
// It never propagates a carry into the upper half.
func (p *Pair) AddLower(delta int8) {
	p.lower = byte(int16(p.lower) + int16(delta))
	p.recombine()
}

// Add16 adds a signed 16-bit delta to the combined value, wrapping modulo
// 65536, and re-derives both halves.
func (p *Pair) Add16(delta int16) {
	p.combined = uint16(int32(p.combined) + int32(delta))
	p.split()
}

func (p *Pair) recombine() {
	p.combined = uint16(p.lower) | uint16(p.upper)<<8
}

func (p *Pair) split() {
	p.lower = byte(p.combined)
	p.upper = byte(p.combined >> 8)
}
