package oracle

import (
	"fmt"

	"github.com/algebralab/monster/kernel"
	"github.com/algebralab/monster/word"
)

// Equal reports whether two words represent the same group element.
//
// A cheap deterministic comparison inside the subgroup N_0 is tried
// first; it decides whenever both words lie, or provably fail to lie, in
// N_0. Otherwise g1 * g2^-1 is applied to the order vector: the element
// is the identity iff the application fixes the vector. The "not equal"
// answer is certain; "equal" holds up to the representation's
// non-degeneracy margin, negligible in practice (a Las Vegas guarantee
// on the negative branch).
func (o *Oracle) Equal(g1, g2 *word.Word) (bool, error) {
	status, diff := o.k.WordsDifference(g1.Atoms(), g2.Atoms())
	if status != kernel.DiffUndecided {
		return status == kernel.DiffEqual, nil
	}
	if err := o.Build(); err != nil {
		return false, err
	}
	w := o.v.Clone()
	if err := o.k.ApplyWord(w, diff); err != nil {
		return false, err
	}
	o.k.ReduceVector(w)
	return w.Equal(o.v), nil
}

// Order returns the order of the element represented by g, up to and
// including maxOrder. The sentinel 0 means the order exceeds the bound;
// it is not an error.
//
// If g lies in N_0 the order is computed exactly in the small quotient
// arithmetic; otherwise g is applied repeatedly to the order vector
// until the vector recurs.
func (o *Oracle) Order(g *word.Word, maxOrder int) (int, error) {
	if err := g.Reduce(o.k); err != nil {
		return 0, err
	}
	status, n0 := o.k.CheckNWord(g.Atoms())
	switch status {
	case kernel.NWordIdentity:
		return 1, nil
	case kernel.NWordInside:
		n1 := n0
		for i := 2; i <= maxOrder; i++ {
			o.k.MulNTuple(&n1, n0)
			if !o.k.ReduceNTuple(&n1) {
				return i, nil
			}
		}
		return 0, nil
	}

	if err := o.Build(); err != nil {
		return 0, err
	}
	w := o.v.Clone()
	for i := 1; i <= maxOrder; i++ {
		if err := o.k.ApplyWord(w, g.Atoms()); err != nil {
			return 0, err
		}
		o.k.ReduceVector(w)
		if w.Equal(o.v) {
			return i, nil
		}
	}
	return 0, nil
}

// OrderVerify returns the order of g like Order and then re-derives it
// against the order vector: g^o must fix the vector and no smaller
// power may. A mismatch means the fast-path arithmetic and the
// representation disagree, which indicates a corrupted kernel build and
// is returned as an error. The 0 sentinel passes through unverified.
func (o *Oracle) OrderVerify(g *word.Word, maxOrder int) (int, error) {
	ord, err := o.Order(g, maxOrder)
	if err != nil || ord == 0 {
		return ord, err
	}
	if err := o.Build(); err != nil {
		return 0, err
	}
	w := o.v.Clone()
	for i := 1; i <= ord; i++ {
		if err := o.k.ApplyWord(w, g.Atoms()); err != nil {
			return 0, err
		}
		o.k.ReduceVector(w)
		if w.Equal(o.v) != (i == ord) {
			return 0, fmt.Errorf("oracle: order %d failed verification at power %d", ord, i)
		}
	}
	return ord, nil
}
