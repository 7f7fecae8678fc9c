package bitmat

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitEquations(t *testing.T) {
	assert := require.New(t)

	s := New(3)
	assert.True(s.AddEquation(0b001))
	assert.True(s.AddEquation(0b010))

	_, ok := s.Solve(0b11)
	assert.False(ok, "solve must fail below full rank")

	assert.True(s.AddEquation(0b100))
	assert.Equal(3, s.Rank())

	x, ok := s.Solve(0b101)
	assert.True(ok)
	assert.Equal(uint64(0b101), x)
}

func TestDependentEquationConsumesRHSBit(t *testing.T) {
	assert := require.New(t)

	s := New(2)
	assert.True(s.AddEquation(0b01))
	assert.False(s.AddEquation(0b01), "repeated equation is dependent")
	assert.True(s.AddEquation(0b10))
	assert.Equal(2, s.Rank())
	assert.Equal(3, s.Fed())

	// solution x = 0b11: equation bits are <x, e_k> for the three fed
	// equations 01, 01, 10
	x, ok := s.Solve(0b111)
	assert.True(ok)
	assert.Equal(uint64(0b11), x)
}

func TestSolveRandomSystems(t *testing.T) {
	assert := require.New(t)
	r := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		cols := uint(1 + r.Intn(24))
		want := r.Uint64() & (1<<cols - 1)

		s := New(cols)
		var rhs uint64
		for uint(s.Rank()) < cols {
			assert.Less(s.Fed(), 64)
			eqn := r.Uint64() & (1<<cols - 1)
			fedBit := uint(s.Fed())
			s.AddEquation(eqn)
			if bits.OnesCount64(eqn&want)&1 == 1 {
				rhs |= 1 << fedBit
			}
		}

		got, ok := s.Solve(rhs)
		assert.True(ok)
		assert.Equal(want, got, "cols=%d", cols)
	}
}

func TestFeed(t *testing.T) {
	assert := require.New(t)

	s := New(4)
	n := Feed(s, []uint32{0b0001, 0b0011, 0b0011, 0b0100, 0b1000})
	assert.Equal(4, n)
	assert.Equal(4, s.Rank())
	assert.Equal(5, s.Fed())
}
