package oracle

import (
	"fmt"

	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/debug"
	"github.com/algebralab/monster/word"
)

// MemberGx0 checks whether g lies in the large subgroup G_x0, peeling
// off generator-by-generator corrections until the image of the order
// vector returns to the vector itself.
//
// The pipeline applies g to the order vector, lifts the mod-3 kernel
// vector to a type-4 Leech-mod-2 vector, reduces that vector to the
// standard frame, then corrects in turn the coordinate permutation (via
// the watermark), the y coordinate (first linear system), the x and d
// coordinates (second linear system, with the Parker loop cocycle
// twist), and the frame sign. A failure at any step means g is not a
// member; that is an ordinary negative answer, not an error.
//
// On success the returned word is the canonical form of g over the
// generators of G_x0.
func (o *Oracle) MemberGx0(g *word.Word) (bool, *word.Word, error) {
	if err := o.Build(); err != nil {
		return false, nil, err
	}
	if err := g.Reduce(o.k); err != nil {
		return false, nil, err
	}

	w := o.v.Clone()
	if err := o.k.ApplyWord(w, g.Atoms()); err != nil {
		return false, nil, err
	}

	w3 := o.k.KernelVector(w, o.set.DiagVA)
	if w3 == 0 {
		return false, nil, nil
	}
	vt4 := o.k.Leech3To2Type4(w3)
	if vt4 == 0 {
		return false, nil, nil
	}
	corr, err := o.k.ReduceType4(vt4)
	if err != nil {
		return false, nil, fmt.Errorf("oracle: type-4 reduction: %w", err)
	}

	// preview the cheap corrections on a copy of the A part before
	// committing them to the full vector
	wA := w.APart().Clone()
	if err := o.k.ApplyWordTagA(wA, corr); err != nil {
		return false, nil, err
	}

	permNum := o.k.WatermarkPermNum(o.mark, wA)
	if permNum < 0 {
		return false, nil, nil
	}
	if permNum > 0 {
		pa, err := atom.New(atom.TagP, uint32(permNum))
		debug.Assert(err == nil, "kernel watermark produced permutation number %d", permNum)
		c := []uint32{uint32(pa.Inverse())}
		if err := o.k.ApplyWordTagA(wA, c); err != nil {
			return false, nil, err
		}
		corr = append(corr, c...)
	}

	vy := o.k.ExtractSparseSigns(wA, o.set.TagsY)
	if vy < 0 {
		return false, nil, nil
	}
	y, ok := o.solveY.Solve(uint64(vy))
	debug.Assert(ok, "y system lost full rank")
	if y > 0 {
		c := []uint32{uint32(atom.MustNew(atom.TagY, uint32(y)).Inverse())}
		if err := o.k.ApplyWordTagA(wA, c); err != nil {
			return false, nil, err
		}
		corr = append(corr, c...)
	}

	o.k.ReduceVector(wA)
	if !wA.Equal(o.v.APart()) {
		return false, nil, nil
	}

	// the A part checks out; commit the corrections so far
	if err := o.k.ApplyWord(w, corr); err != nil {
		return false, nil, err
	}

	vx := o.k.ExtractSparseSigns(w, o.set.TagsX)
	if vx < 0 {
		return false, nil, nil
	}
	sol, ok := o.solveX.Solve(uint64(vx))
	debug.Assert(ok, "x system lost full rank")
	x := uint32(sol)
	d := (x>>12 ^ o.k.PloopTheta(x)) & 0xfff
	x &= 0xfff

	var tail []uint32
	if x > 0 {
		tail = append(tail, uint32(atom.MustNew(atom.TagX, x).Inverse()))
	}
	if d > 0 {
		tail = append(tail, uint32(atom.MustNew(atom.TagD, d).Inverse()))
	}
	if len(tail) > 0 {
		if err := o.k.ApplyWord(w, tail); err != nil {
			return false, nil, err
		}
		corr = append(corr, tail...)
	}

	sign := o.k.ExtractSparseSigns(w, o.set.TagSign)
	if sign < 0 {
		return false, nil, nil
	}
	if sign != 0 {
		o.k.ApplyOmega(w, uint32(sign)<<12)
		corr = append(corr, uint32(atom.MustNew(atom.TagX, 0x1000).Inverse()))
	}

	o.k.ReduceVector(w)
	if !w.Equal(o.v) {
		return false, nil, nil
	}

	// v * g * corr == v, so g is the inverse of the correction product
	canon := make([]uint32, len(corr))
	for i, u := range corr {
		canon[len(corr)-1-i] = uint32(atom.Atom(u).Inverse())
	}
	cw, err := word.FromData(canon)
	if err != nil {
		return false, nil, err
	}
	if err := cw.Reduce(o.k); err != nil {
		return false, nil, err
	}
	return true, cw, nil
}

// ReduceGx0 rewrites a word of G_x0 into its canonical form over the
// subgroup's own generators. ok is false when g is not in G_x0; g is
// left untouched in that case.
func (o *Oracle) ReduceGx0(g *word.Word) (ok bool, err error) {
	ok, cw, err := o.MemberGx0(g)
	if err != nil || !ok {
		return ok, err
	}
	g.SetData(cw.Atoms())
	return true, g.Reduce(o.k)
}
