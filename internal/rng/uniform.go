package rng

import "math"

const two32 = 4294967296.0

// oneBelow is the largest float64 strictly less than 1.
var oneBelow = math.Nextafter(1, 0)

// Uniform draws float64 values in [0,1) from a 32-bit source.
//
// Every draw consumes two words w0, w1 and returns (w0 + w1*2^32) / 2^64,
// with a result that rounds up to 1 pulled back to the largest double below 1.
type Uniform struct {
	src   Source32
	draws uint64
}

// NewUniform returns a sampler reading from src. The sampler does not own src:
// other samplers over the same source continue the same sequence.
func NewUniform(src Source32) *Uniform {
	return &Uniform{src: src}
}

// Float64 returns the next draw.
func (u *Uniform) Float64() float64 {
	u.draws++
	lo := float64(u.src.Uint32())
	hi := float64(u.src.Uint32())
	v := (lo + hi*two32) / (two32 * two32)
	if v >= 1 {
		return oneBelow
	}
	return v
}

// Draws reports how many values this sampler has produced.
func (u *Uniform) Draws() uint64 {
	return u.draws
}
