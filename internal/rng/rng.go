// Package rng provides the deterministic pseudo-random stream that drives
// every generated value.
//
// The same seed always yields the same sequence. Nothing in this package
// reads from a non-deterministic source.
package rng

import (
	"strconv"
	"strings"
)

// Algorithm names the stream. Seeds reproduce the same data only between
// builds that report the same Algorithm.
const Algorithm = "lcg31/1103515245/12345"

// LCG parameters. The modulus is 2^31.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Hash returns a stable 32-bit hash of s computed as hash = hash*31 + c
// over the runes of s, with 32-bit wraparound.
func Hash(s string) uint32 {
	var h uint32
	for _, c := range s {
		h = h*31 + uint32(c)
	}
	return h
}

// HashParts hashes the parts joined with ":".
func HashParts(parts ...string) uint32 {
	return Hash(strings.Join(parts, ":"))
}

// Mix derives a child seed from a parent seed and a label, so siblings
// (object properties, map keys) do not share a stream.
func Mix(seed uint32, label string) uint32 {
	return Hash(strconv.FormatUint(uint64(seed), 10) + ":" + label)
}

// Rand is a linear congruential generator. It is not safe for concurrent
// use; create one per generation call.
type Rand struct {
	state uint64
}

// New returns a generator seeded with seed.
func New(seed uint32) *Rand {
	return &Rand{state: uint64(seed) % lcgModulus}
}

// FromSeed returns a generator seeded with Hash(seed).
func FromSeed(seed string) *Rand {
	return New(Hash(seed))
}

// Float64 advances the generator and returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.state) / lcgModulus
}

// Uint32 returns a pseudo-random 32-bit value.
func (r *Rand) Uint32() uint32 {
	return uint32(r.Float64() * (1 << 32))
}

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// IntRange returns a value in [lo, hi], swapping the bounds if needed.
func (r *Rand) IntRange(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + r.IntN(hi-lo+1)
}

// FloatRange returns a value in [lo, hi).
func (r *Rand) FloatRange(lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Bool returns true with probability p.
func (r *Rand) Bool(p float64) bool {
	return r.Float64() < p
}

// Byte returns a pseudo-random byte.
func (r *Rand) Byte() byte {
	return byte(r.IntN(256))
}

// Bytes returns n pseudo-random bytes.
func (r *Rand) Bytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = r.Byte()
	}
	return b
}

// Chars returns n characters drawn uniformly from charset.
func (r *Rand) Chars(charset string, n int) string {
	if n <= 0 || charset == "" {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[r.IntN(len(charset))]
	}
	return string(b)
}

// Digits returns n decimal digits.
func (r *Rand) Digits(n int) string {
	return r.Chars("0123456789", n)
}

// Hex returns n lowercase hex characters.
func (r *Rand) Hex(n int) string {
	return r.Chars("0123456789abcdef", n)
}

// Pick returns a pseudo-randomly chosen element of items, or the zero
// value when items is empty.
func Pick[T any](r *Rand, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.IntN(len(items))]
}

// WeightedPick chooses an element with probability proportional to its
// weight. Missing or non-positive weights count as zero; if every weight
// is zero it falls back to a uniform pick.
func WeightedPick[T any](r *Rand, items []T, weights []float64) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	var total float64
	for i := range items {
		if i < len(weights) && weights[i] > 0 {
			total += weights[i]
		}
	}
	if total == 0 {
		return Pick(r, items)
	}
	target := r.Float64() * total
	for i := range items {
		if i >= len(weights) || weights[i] <= 0 {
			continue
		}
		target -= weights[i]
		if target < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}
