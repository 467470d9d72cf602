package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_Stable(t *testing.T) {
	assert.Equal(t, Hash("users:42"), Hash("users:42"))
	assert.NotEqual(t, Hash("users:42"), Hash("users:43"))
	assert.Equal(t, uint32(0), Hash(""))
}

func TestHash_KnownValue(t *testing.T) {
	// "ab" = 'a'*31 + 'b' = 97*31 + 98
	assert.Equal(t, uint32(97*31+98), Hash("ab"))
}

func TestHash_Wraparound(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "zzzzzzzzzz"
	}
	// Must not panic and must stay stable.
	assert.Equal(t, Hash(long), Hash(long))
}

func TestRand_Recurrence(t *testing.T) {
	r := New(1)
	want := uint64((1*1103515245 + 12345) % (1 << 31))
	got := r.Float64()
	assert.InDelta(t, float64(want)/(1<<31), got, 1e-12)
}

func TestRand_Reproducible(t *testing.T) {
	a, b := FromSeed("seed"), FromSeed("seed")
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRand_Float64Range(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, want [0,1)", v)
		}
	}
}

func TestRand_IntRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
	}{
		{"positive", 1, 10},
		{"single", 5, 5},
		{"negative", -10, -1},
		{"swapped", 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(99)
			lo, hi := tt.lo, tt.hi
			if lo > hi {
				lo, hi = hi, lo
			}
			for i := 0; i < 500; i++ {
				v := r.IntRange(tt.lo, tt.hi)
				if v < lo || v > hi {
					t.Fatalf("IntRange(%d,%d) = %d out of bounds", tt.lo, tt.hi, v)
				}
			}
		})
	}
}

func TestRand_IntNZero(t *testing.T) {
	r := New(3)
	assert.Equal(t, 0, r.IntN(0))
	assert.Equal(t, 0, r.IntN(-5))
}

func TestPick(t *testing.T) {
	r := New(11)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[Pick(r, items)] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, "", Pick(r, []string{}))
}

func TestWeightedPick(t *testing.T) {
	r := New(5)
	items := []string{"never", "always"}
	for i := 0; i < 200; i++ {
		assert.Equal(t, "always", WeightedPick(r, items, []float64{0, 1}))
	}
}

func TestWeightedPick_AllZeroFallsBackToUniform(t *testing.T) {
	r := New(5)
	items := []int{1, 2}
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[WeightedPick(r, items, nil)] = true
	}
	assert.Len(t, seen, 2)
}

func TestChars(t *testing.T) {
	r := New(8)
	s := r.Hex(32)
	assert.Len(t, s, 32)
	assert.Regexp(t, `^[0-9a-f]+$`, s)
	assert.Equal(t, "", r.Chars("", 4))
}

func TestMix_DistinctLabels(t *testing.T) {
	assert.NotEqual(t, Mix(1, "name"), Mix(1, "email"))
	assert.Equal(t, Mix(1, "name"), Mix(1, "name"))
}
