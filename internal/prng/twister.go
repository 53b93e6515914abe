// Package prng implements a string-seedable MT19937 generator whose
// seeding, integer draws and shuffles match CPython's random module, so a
// reading seeded from a query and timestamp replays identically in
// PyTarot.
package prng

import (
	"crypto/sha512"
	"math/bits"
)

const (
	stateSize = 624
	shift     = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Twister is a 32-bit Mersenne Twister. The zero value is not seeded;
// use New, NewFromString or NewFromUint64.
type Twister struct {
	mt  [stateSize]uint32
	mti int
}

// New returns a generator seeded from key with init_by_array
func New(key []uint32) *Twister {
	t := &Twister{}
	t.SeedArray(key)
	return t
}

// NewFromString seeds the way a string seed is hashed into an integer:
// the UTF-8 bytes followed by their SHA-512 digest, read big-endian.
func NewFromString(seed string) *Twister {
	return New(StringKey(seed))
}

// NewFromUint64 seeds from a non-negative integer
func NewFromUint64(seed uint64) *Twister {
	lo, hi := uint32(seed), uint32(seed>>32)
	if hi == 0 {
		return New([]uint32{lo})
	}
	return New([]uint32{lo, hi})
}

// StringKey converts a string seed to the init_by_array key
func StringKey(seed string) []uint32 {
	b := []byte(seed)
	sum := sha512.Sum512(b)
	b = append(b, sum[:]...)
	return bigEndianKey(b)
}

// bigEndianKey splits a big-endian integer into 32-bit words, least
// significant word first, dropping leading zero words.
func bigEndianKey(b []byte) []uint32 {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) == 0 {
		return []uint32{0}
	}

	words := make([]uint32, 0, (len(b)+3)/4)
	for end := len(b); end > 0; end -= 4 {
		start := max(end-4, 0)
		var w uint32
		for _, c := range b[start:end] {
			w = w<<8 | uint32(c)
		}
		words = append(words, w)
	}
	return words
}

func (t *Twister) seedScalar(s uint32) {
	t.mt[0] = s
	for i := 1; i < stateSize; i++ {
		t.mt[i] = 1812433253*(t.mt[i-1]^(t.mt[i-1]>>30)) + uint32(i)
	}
	t.mti = stateSize
}

// SeedArray resets the state from key (init_by_array)
func (t *Twister) SeedArray(key []uint32) {
	if len(key) == 0 {
		key = []uint32{0}
	}
	t.seedScalar(19650218)

	i, j := 1, 0
	for k := max(stateSize, len(key)); k > 0; k-- {
		t.mt[i] = (t.mt[i] ^ ((t.mt[i-1] ^ (t.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= stateSize {
			t.mt[0] = t.mt[stateSize-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k := stateSize - 1; k > 0; k-- {
		t.mt[i] = (t.mt[i] ^ ((t.mt[i-1] ^ (t.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= stateSize {
			t.mt[0] = t.mt[stateSize-1]
			i = 1
		}
	}
	t.mt[0] = 0x80000000
}

func (t *Twister) generate() {
	mag01 := [2]uint32{0, matrixA}

	kk := 0
	for ; kk < stateSize-shift; kk++ {
		y := (t.mt[kk] & upperMask) | (t.mt[kk+1] & lowerMask)
		t.mt[kk] = t.mt[kk+shift] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < stateSize-1; kk++ {
		y := (t.mt[kk] & upperMask) | (t.mt[kk+1] & lowerMask)
		t.mt[kk] = t.mt[kk+shift-stateSize] ^ (y >> 1) ^ mag01[y&1]
	}
	y := (t.mt[stateSize-1] & upperMask) | (t.mt[0] & lowerMask)
	t.mt[stateSize-1] = t.mt[shift-1] ^ (y >> 1) ^ mag01[y&1]

	t.mti = 0
}

// Uint32 returns the next tempered 32-bit output
func (t *Twister) Uint32() uint32 {
	if t.mti >= stateSize {
		t.generate()
	}
	y := t.mt[t.mti]
	t.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a 53-bit float in [0, 1)
func (t *Twister) Float64() float64 {
	a := t.Uint32() >> 5
	b := t.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Bits returns k random bits, 0 <= k <= 64. Words are consumed least
// significant first and the last word is truncated from the top.
func (t *Twister) Bits(k int) uint64 {
	if k <= 0 {
		return 0
	}
	if k <= 32 {
		return uint64(t.Uint32() >> (32 - k))
	}
	lo := uint64(t.Uint32())
	hi := uint64(t.Uint32() >> (64 - k))
	return hi<<32 | lo
}

// Below returns a uniform integer in [0, n) by rejection sampling on
// bitlen(n) bits. Below(0) is 0.
func (t *Twister) Below(n int) int {
	if n <= 0 {
		return 0
	}
	k := bits.Len(uint(n))
	r := t.Bits(k)
	for r >= uint64(n) {
		r = t.Bits(k)
	}
	return int(r)
}

// IntRange returns a uniform integer in [lo, hi], both inclusive
func (t *Twister) IntRange(lo, hi int) int {
	return lo + t.Below(hi-lo+1)
}

// Shuffle walks i from n-1 down to 1, swapping i with a uniform j in [0, i]
func (t *Twister) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := t.Below(i + 1)
		swap(i, j)
	}
}
