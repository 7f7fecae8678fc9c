package monster

import (
	"fmt"
	"strings"

	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/kernel"
	"github.com/algebralab/monster/word"
)

// Element is a group element given as a word in the generators. The
// word is exclusively owned; operations on distinct Elements never
// share state.
type Element struct {
	g *Group
	w *word.Word
}

// Copy returns an independent copy of e.
func (e *Element) Copy() *Element {
	return &Element{g: e.g, w: e.w.Clone()}
}

// Atoms returns the packed atoms of e's word. The caller owns the
// returned slice.
func (e *Element) Atoms() []uint32 {
	out := make([]uint32, len(e.w.Atoms()))
	copy(out, e.w.Atoms())
	return out
}

// Len returns the current word length of e.
func (e *Element) Len() int { return e.w.Len() }

// String formats e as "M<...>", the syntax Parse accepts.
func (e *Element) String() string {
	return "M<" + atom.FormatWord(e.w.Atoms()) + ">"
}

// TShape returns a fingerprint of the word's tag pattern: one character
// per atom, 'T' for the triality generators and '.' for everything
// else. Reduction quality shows up as a shrinking TShape.
func (e *Element) TShape() string {
	var b strings.Builder
	b.WriteByte('<')
	for _, u := range e.w.Atoms() {
		if atom.Atom(u).Tag() == atom.TagT {
			b.WriteByte('T')
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteByte('>')
	return b.String()
}

// MulEq replaces e by e*h, locally reducing the product.
func (e *Element) MulEq(h *Element) error {
	return e.w.ConcatReduce(e.g.k, h.w)
}

// Mul returns e*h.
func (e *Element) Mul(h *Element) (*Element, error) {
	out := e.Copy()
	if err := out.MulEq(h); err != nil {
		return nil, err
	}
	return out, nil
}

// Inverse returns e^-1.
func (e *Element) Inverse() (*Element, error) {
	out := e.Copy()
	out.w.Invert()
	if err := out.w.Reduce(e.g.k); err != nil {
		return nil, err
	}
	return out, nil
}

// Pow returns e^n by binary exponentiation on words. Negative exponents
// go through the inverse.
func (e *Element) Pow(n int) (*Element, error) {
	base := e.Copy()
	if n < 0 {
		inv, err := e.Inverse()
		if err != nil {
			return nil, err
		}
		base, n = inv, -n
	}
	out := e.g.Identity()
	for n > 0 {
		if n&1 == 1 {
			if err := out.MulEq(base); err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			if err := base.MulEq(base); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Conjugate returns h^-1 * e * h.
func (e *Element) Conjugate(h *Element) (*Element, error) {
	out, err := h.Inverse()
	if err != nil {
		return nil, err
	}
	if err := out.MulEq(e); err != nil {
		return nil, err
	}
	if err := out.MulEq(h); err != nil {
		return nil, err
	}
	return out, nil
}

// Equal reports whether e and h are the same group element.
func (e *Element) Equal(h *Element) (bool, error) {
	if err := e.w.Reduce(e.g.k); err != nil {
		return false, err
	}
	if err := h.w.Reduce(e.g.k); err != nil {
		return false, err
	}
	return e.g.o.Equal(e.w, h.w)
}

// IsIdentity reports whether e is the neutral element.
func (e *Element) IsIdentity() (bool, error) {
	return e.Equal(e.g.Identity())
}

// Order returns the order of e if it is at most maxOrder, else 0. Every
// element of the monster has order at most 119, so Order(119) always
// resolves.
func (e *Element) Order(maxOrder int) (int, error) {
	if maxOrder < 1 {
		return 0, fmt.Errorf("monster: order bound %d below 1", maxOrder)
	}
	return e.g.o.Order(e.w, maxOrder)
}

// HalfOrder returns the order o of e together with e^(o/2) when o is
// even, nil when o is odd. The order 0 sentinel with a nil element
// means the order exceeds maxOrder.
func (e *Element) HalfOrder(maxOrder int) (int, *Element, error) {
	o, err := e.Order(maxOrder)
	if err != nil || o == 0 || o%2 == 1 {
		return o, nil, err
	}
	h, err := e.Pow(o / 2)
	if err != nil {
		return 0, nil, err
	}
	return o, h, nil
}

// InGx0 reports whether e lies in the subgroup G_x0. On membership e's
// word is rewritten to the canonical form over the G_x0 generators.
func (e *Element) InGx0() (bool, error) {
	return e.g.o.ReduceGx0(e.w)
}

// InNx0 reports whether e lies in the subgroup N_x0 = N_0 ∩ G_x0.
func (e *Element) InNx0() (bool, error) {
	in, tu, err := e.inN0()
	if err != nil || !in {
		return false, err
	}
	return tu[0] == 0, nil
}

// InN0 reports whether e lies in the subgroup N_0.
func (e *Element) InN0() (bool, error) {
	in, _, err := e.inN0()
	return in, err
}

// inN0 decides N_0 membership and, on membership, returns the image of
// e in the quotient arithmetic. Words that still carry tag-l atoms
// after local reduction are routed through the G_x0 pipeline: N_0 is
// the union of the three triality cosets of N_x0, so e lies in N_0
// exactly when some triality shift t^-k * e has an l-free canonical
// G_x0 form.
func (e *Element) inN0() (bool, kernel.NTuple, error) {
	if err := e.w.Reduce(e.g.k); err != nil {
		return false, kernel.NTuple{}, err
	}
	status, tu := e.g.k.CheckNWord(e.w.Atoms())
	if status != kernel.NWordOutside {
		return true, tu, nil
	}
	for k := uint32(0); k < 3; k++ {
		c := word.New()
		if k > 0 {
			c.Append([]uint32{uint32(atom.MustNew(atom.TagT, k).Inverse())})
		}
		c.Append(e.w.Atoms())
		in, cw, err := e.g.o.MemberGx0(c)
		if err != nil {
			return false, kernel.NTuple{}, err
		}
		if !in {
			continue
		}
		var full []uint32
		if k > 0 {
			full = append(full, uint32(atom.MustNew(atom.TagT, k)))
		}
		full = append(full, cw.Atoms()...)
		if status, tu = e.g.k.CheckNWord(full); status != kernel.NWordOutside {
			return true, tu, nil
		}
		// e lies in G_x0 but its canonical form keeps l atoms, so it
		// is outside N_0; the other cosets cannot match
		return false, kernel.NTuple{}, nil
	}
	return false, kernel.NTuple{}, nil
}

// In reports whether e lies in the named subgroup.
func (e *Element) In(s atom.Subgroup) (bool, error) {
	switch s {
	case atom.SubgroupM:
		return true, nil
	case atom.SubgroupGx0:
		return e.InGx0()
	case atom.SubgroupN0:
		return e.InN0()
	case atom.SubgroupNx0:
		return e.InNx0()
	}
	return false, fmt.Errorf("monster: unknown subgroup")
}
