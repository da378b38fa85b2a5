// Package rng provides the deterministic random engine used by the estimators.
//
// MT19937 produces the same 32-bit sequence as C++ std::mt19937 for the same seed,
// and Uniform turns that sequence into doubles the way libstdc++'s
// uniform_real_distribution<double> does, so runs can be compared against the
// reference numbers produced by a C++ build.
package rng

const (
	mtN       = 624
	mtM       = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff

	temperingB = 0x9d2c5680
	temperingC = 0xefc60000

	// DefaultSeed is std::mt19937::default_seed.
	DefaultSeed uint32 = 5489
)

// Source32 is a generator of uniformly distributed 32-bit words.
type Source32 interface {
	Uint32() uint32
}

// MT19937 is a 32-bit Mersenne Twister. The zero value is not usable; use NewMT19937.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

// NewMT19937 returns an engine seeded with seed.
func NewMT19937(seed uint32) *MT19937 {
	mt := &MT19937{}
	mt.Seed(seed)
	return mt
}

// Seed resets the engine to the start of the sequence for seed.
func (mt *MT19937) Seed(seed uint32) {
	mt.mt[0] = seed
	for i := 1; i < mtN; i++ {
		mt.mt[i] = 1812433253*(mt.mt[i-1]^(mt.mt[i-1]>>30)) + uint32(i)
	}
	mt.mti = mtN
}

// Uint32 returns the next word of the sequence.
func (mt *MT19937) Uint32() uint32 {
	if mt.mti >= mtN {
		mt.twist()
	}

	y := mt.mt[mt.mti]
	mt.mti++

	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18
	return y
}

// discard advances the engine by n words.
func (mt *MT19937) discard(n uint64) {
	for ; n > 0; n-- {
		mt.Uint32()
	}
}

func (mt *MT19937) twist() {
	mag01 := [2]uint32{0, matrixA}

	var kk int
	for kk = 0; kk < mtN-mtM; kk++ {
		y := (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
		mt.mt[kk] = mt.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < mtN-1; kk++ {
		y := (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
		mt.mt[kk] = mt.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
	}
	y := (mt.mt[mtN-1] & upperMask) | (mt.mt[0] & lowerMask)
	mt.mt[mtN-1] = mt.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
	mt.mti = 0
}
