// Package bitmat implements the small mod-2 linear systems the oracle
// builds from its evaluation points: equations are fed one by one until
// the system reaches full rank, after which sign patterns extracted from
// the order vector are solved back to subgroup-coset coordinates.
package bitmat

import (
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/exp/constraints"
)

// System is a Gauss-Jordan accumulator for linear equations over GF(2).
// At most 64 equations may be fed, since right-hand sides are packed
// into a uint64 bit per fed equation, dependent equations included.
type System struct {
	cols uint
	fed  uint
	rows []row
}

type row struct {
	eqn   *bitset.BitSet // reduced equation; a unit vector at full rank
	comb  uint64         // combination of fed equations yielding eqn
	pivot uint
}

// New returns an empty system over GF(2)^cols, cols <= 64.
func New(cols uint) *System {
	if cols == 0 || cols > 64 {
		panic("bitmat: column count out of range")
	}
	return &System{cols: cols}
}

// Cols returns the dimension of the solution space.
func (s *System) Cols() uint { return s.cols }

// Rank returns the number of independent equations accepted so far.
func (s *System) Rank() int { return len(s.rows) }

// Fed returns the number of equations fed, dependent ones included.
// Bit i of a Solve right-hand side corresponds to the i-th fed equation.
func (s *System) Fed() int { return int(s.fed) }

// AddEquation feeds one equation row and reports whether it increased
// the rank. Dependent equations are consumed (they still occupy a
// right-hand-side bit) but add no row.
func (s *System) AddEquation(eqn uint64) bool {
	if s.fed >= 64 {
		panic("bitmat: too many equations")
	}
	e := bitset.From([]uint64{eqn & (1<<s.cols - 1)})
	comb := uint64(1) << s.fed
	s.fed++

	for _, r := range s.rows {
		if e.Test(r.pivot) {
			e.InPlaceSymmetricDifference(r.eqn)
			comb ^= r.comb
		}
	}
	pivot, ok := e.NextSet(0)
	if !ok {
		return false
	}
	// eliminate the new pivot from the existing rows, keeping the
	// matrix fully reduced
	for i := range s.rows {
		if s.rows[i].eqn.Test(pivot) {
			s.rows[i].eqn.InPlaceSymmetricDifference(e)
			s.rows[i].comb ^= comb
		}
	}
	s.rows = append(s.rows, row{eqn: e, comb: comb, pivot: pivot})
	return true
}

// Solve maps a right-hand side (bit i set iff the i-th fed equation
// evaluates to 1) to the unique solution vector. ok is false while the
// system is below full rank.
func (s *System) Solve(rhs uint64) (x uint64, ok bool) {
	if uint(len(s.rows)) < s.cols {
		return 0, false
	}
	for _, r := range s.rows {
		if bits.OnesCount64(r.comb&rhs)&1 == 1 {
			x |= 1 << r.pivot
		}
	}
	return x, true
}

// Feed adds every equation of eqns and returns the number that
// increased the rank.
func Feed[T constraints.Unsigned](s *System, eqns []T) int {
	n := 0
	for _, e := range eqns {
		if s.AddEquation(uint64(e)) {
			n++
		}
	}
	return n
}
