// Package toykernel implements the kernel contract over a drastically
// simplified stand-in for the monster: every generator family acts as an
// independent cyclic factor, and a representation vector secretly carries
// the exponent state of the element applied to it. The kernel honors the
// behavioral contract the engine relies on (local reduction collapses
// N_0 runs, the order-vector construction converges, the membership
// corrections peel family by family), so every engine path can be tested
// without the bit-level algebra kernels.
//
// Two deliberate toy restrictions: the y sign channel covers 11 bits, so
// membership resolves y exponents below 0x800 only, and the permutation
// family composes additively. Test fixtures respect both.
package toykernel

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/kernel"
	"github.com/algebralab/monster/seeds"
)

const (
	modT = 3
	modY = 0x2000
	modX = 0x2000
	modD = 0x1000
	modP = atom.Mat24Order
	modL = 3
)

// vector layout: exponents of the element applied so far, plus a marker
// distinguishing seed-derived vectors from zero. The t, y and p factors
// live in the A part; x, d and l are outside it.
const (
	vecWords  = 64
	idxT      = 0
	idxY      = 1
	idxP      = 2
	idxMarker = 3
	idxX      = kernel.APartWords
	idxD      = kernel.APartWords + 1
	idxL      = kernel.APartWords + 2
)

// Kernel is the toy algebra kernel. The zero value is ready to use.
type Kernel struct{}

var _ kernel.Kernel = Kernel{}

var errBadWord = errors.New("toykernel: malformed word")

// tuple index order matches kernel.NTuple: (t, y, x, d, p).
var tupleMods = [5]uint32{modT, modY, modX, modD, modP}

func addExp(mod, a, b uint32) uint32 { return (a + b) % mod }

// exponent returns the signed exponent of the atom reduced into its
// family's range.
func exponent(a atom.Atom) (atom.Tag, uint32) {
	t := a.Tag()
	v := a.Value()
	var mod uint32
	switch t {
	case atom.TagT, atom.TagL:
		mod = 3
	case atom.TagD:
		mod = modD
	case atom.TagX, atom.TagY:
		mod = modX
	case atom.TagP:
		mod = modP
	}
	v %= mod
	if a.Inverted() && v != 0 {
		v = mod - v
	}
	return t, v
}

// reduceAtoms rewrites a word into the toy local normal form: every
// maximal run of N_0 atoms collapses into at most five atoms in the
// order t, y, x, d, p, and l exponents fold modulo 3.
func reduceAtoms(in []uint32) ([]uint32, error) {
	var out []uint32
	var run kernel.NTuple
	runLive := false
	var lExp uint32

	flushRun := func() {
		order := []struct {
			tag atom.Tag
			idx int
		}{{atom.TagT, 0}, {atom.TagY, 1}, {atom.TagX, 2}, {atom.TagD, 3}, {atom.TagP, 4}}
		for _, o := range order {
			if run[o.idx] != 0 {
				out = append(out, uint32(atom.MustNew(o.tag, run[o.idx])))
			}
		}
		run = kernel.NTuple{}
		runLive = false
	}

	for _, u := range in {
		a := atom.Atom(u)
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadWord, err)
		}
		tag, v := exponent(a)
		if tag == atom.TagL {
			if runLive {
				flushRun()
			}
			lExp = (lExp + v) % 3
			continue
		}
		if lExp != 0 {
			out = append(out, uint32(atom.MustNew(atom.TagL, lExp)))
			lExp = 0
		}
		runLive = true
		switch tag {
		case atom.TagT:
			run[0] = addExp(modT, run[0], v)
		case atom.TagY:
			run[1] = addExp(modY, run[1], v)
		case atom.TagX:
			run[2] = addExp(modX, run[2], v)
		case atom.TagD:
			run[3] = addExp(modD, run[3], v)
		case atom.TagP:
			run[4] = addExp(modP, run[4], v)
		}
	}
	if runLive {
		flushRun()
	}
	if lExp != 0 {
		out = append(out, uint32(atom.MustNew(atom.TagL, lExp)))
	}
	return out, nil
}

// reduceFull runs reduceAtoms to a fixpoint. Folding an l run to the
// identity can bring previously separated runs next to each other, so a
// single pass is not enough; passes never lengthen a word, hence the
// loop terminates.
func reduceFull(in []uint32) ([]uint32, error) {
	for {
		out, err := reduceAtoms(in)
		if err != nil {
			return nil, err
		}
		if len(out) == len(in) {
			return out, nil
		}
		in = out
	}
}

// MulNWords implements kernel.NKernel.
func (Kernel) MulNWords(dst []uint32, nDst int, src []uint32) (int, error) {
	in := make([]uint32, 0, nDst+len(src))
	in = append(in, dst[:nDst]...)
	in = append(in, src...)
	out, err := reduceFull(in)
	if err != nil {
		return 0, err
	}
	if len(out) > nDst+len(src) {
		return 0, fmt.Errorf("toykernel: reduction grew a word")
	}
	copy(dst, out)
	return len(out), nil
}

// CheckNWord implements kernel.NKernel.
func (Kernel) CheckNWord(word []uint32) (int, kernel.NTuple) {
	out, err := reduceFull(word)
	if err != nil {
		return kernel.NWordOutside, kernel.NTuple{}
	}
	var t kernel.NTuple
	trivial := true
	for _, u := range out {
		a := atom.Atom(u)
		if a.Tag() == atom.TagL {
			return kernel.NWordOutside, kernel.NTuple{}
		}
		tag, v := exponent(a)
		switch tag {
		case atom.TagT:
			t[0] = v
		case atom.TagY:
			t[1] = v
		case atom.TagX:
			t[2] = v
		case atom.TagD:
			t[3] = v
		case atom.TagP:
			t[4] = v
		}
		if v != 0 {
			trivial = false
		}
	}
	if trivial {
		return kernel.NWordIdentity, t
	}
	return kernel.NWordInside, t
}

// MulNTuple implements kernel.NKernel.
func (Kernel) MulNTuple(dst *kernel.NTuple, src kernel.NTuple) {
	for i := range dst {
		dst[i] = addExp(tupleMods[i], dst[i], src[i])
	}
}

// ReduceNTuple implements kernel.NKernel.
func (Kernel) ReduceNTuple(t *kernel.NTuple) bool {
	nontrivial := false
	for i := range t {
		t[i] %= tupleMods[i]
		if t[i] != 0 {
			nontrivial = true
		}
	}
	return nontrivial
}

func hasL(word []uint32) bool {
	for _, u := range word {
		if atom.Atom(u).Tag() == atom.TagL {
			return true
		}
	}
	return false
}

// WordsDifference implements kernel.NKernel.
func (k Kernel) WordsDifference(g1, g2 []uint32) (int, []uint32) {
	r1, err1 := reduceFull(g1)
	r2, err2 := reduceFull(g2)
	if err1 == nil && err2 == nil && !hasL(r1) && !hasL(r2) {
		s1, t1 := k.CheckNWord(r1)
		s2, t2 := k.CheckNWord(r2)
		if s1 != kernel.NWordOutside && s2 != kernel.NWordOutside {
			if t1 == t2 {
				return kernel.DiffEqual, nil
			}
			return kernel.DiffUnequal, nil
		}
	}
	diff := make([]uint32, 0, len(g1)+len(g2))
	diff = append(diff, g1...)
	for i := len(g2) - 1; i >= 0; i-- {
		diff = append(diff, uint32(atom.Atom(g2[i]).Inverse()))
	}
	return kernel.DiffUndecided, diff
}

// NewVector implements kernel.RepKernel.
func (Kernel) NewVector() kernel.Vector {
	return make(kernel.Vector, vecWords)
}

// VectorFromSparse implements kernel.RepKernel.
func (Kernel) VectorFromSparse(entries []uint32) (kernel.Vector, error) {
	if len(entries) == 0 {
		return nil, errors.New("toykernel: empty sparse vector")
	}
	v := make(kernel.Vector, vecWords)
	m := uint64(0x9e3779b9)
	for _, e := range entries {
		m = m*31 ^ uint64(e)
	}
	v[idxMarker] = m | 1
	return v, nil
}

func applyAtom(v kernel.Vector, a atom.Atom, aOnly bool) {
	tag, val := exponent(a)
	e := uint64(val)
	switch tag {
	case atom.TagT:
		v[idxT] = (v[idxT] + e) % modT
	case atom.TagY:
		v[idxY] = (v[idxY] + e) % modY
	case atom.TagP:
		v[idxP] = (v[idxP] + e) % modP
	case atom.TagX:
		if !aOnly {
			v[idxX] = (v[idxX] + e) % modX
		}
	case atom.TagD:
		if !aOnly {
			v[idxD] = (v[idxD] + e) % modD
		}
	case atom.TagL:
		if !aOnly {
			v[idxL] = (v[idxL] + e) % modL
		}
	}
}

// ApplyWord implements kernel.RepKernel.
func (Kernel) ApplyWord(v kernel.Vector, word []uint32) error {
	if err := atom.ValidateWord(word); err != nil {
		return err
	}
	for _, u := range word {
		applyAtom(v, atom.Atom(u), false)
	}
	return nil
}

// ApplyWordTagA implements kernel.RepKernel. The x, d and l families act
// trivially on the A part.
func (Kernel) ApplyWordTagA(aPart kernel.Vector, word []uint32) error {
	if err := atom.ValidateWord(word); err != nil {
		return err
	}
	for _, u := range word {
		applyAtom(aPart, atom.Atom(u), true)
	}
	return nil
}

// ApplyOmega implements kernel.RepKernel.
func (Kernel) ApplyOmega(v kernel.Vector, d uint32) {
	v[idxX] = (v[idxX] + uint64(d%modX)) % modX
}

// ScaleVector implements kernel.RepKernel.
func (Kernel) ScaleVector(v kernel.Vector, factor int) {
	f := uint64(factor)
	v[idxT] = v[idxT] * f % modT
	v[idxY] = v[idxY] * f % modY
	v[idxP] = v[idxP] * f % modP
	v[idxX] = v[idxX] * f % modX
	v[idxD] = v[idxD] * f % modD
	v[idxL] = v[idxL] * f % modL
}

// AddVector implements kernel.RepKernel.
func (Kernel) AddVector(dst, src kernel.Vector) {
	dst[idxT] = (dst[idxT] + src[idxT]) % modT
	dst[idxY] = (dst[idxY] + src[idxY]) % modY
	dst[idxP] = (dst[idxP] + src[idxP]) % modP
	dst[idxX] = (dst[idxX] + src[idxX]) % modX
	dst[idxD] = (dst[idxD] + src[idxD]) % modD
	dst[idxL] = (dst[idxL] + src[idxL]) % modL
	dst[idxMarker] |= src[idxMarker]
}

// SubVector implements kernel.RepKernel.
func (Kernel) SubVector(dst, src kernel.Vector) {
	sub := func(mod, a, b uint64) uint64 { return (a + mod - b%mod) % mod }
	dst[idxT] = sub(modT, dst[idxT], src[idxT])
	dst[idxY] = sub(modY, dst[idxY], src[idxY])
	dst[idxP] = sub(modP, dst[idxP], src[idxP])
	dst[idxX] = sub(modX, dst[idxX], src[idxX])
	dst[idxD] = sub(modD, dst[idxD], src[idxD])
	dst[idxL] = sub(modL, dst[idxL], src[idxL])
	dst[idxMarker] |= src[idxMarker]
}

// ReduceVector implements kernel.RepKernel. Toy exponents are kept
// reduced at all times, so this is a no-op.
func (Kernel) ReduceVector(v kernel.Vector) {}

// BPartZero implements kernel.RepKernel.
func (Kernel) BPartZero(v kernel.Vector) bool {
	return v[idxMarker] == 0
}

// ExtractSparseSigns implements kernel.RepKernel. The toy keys the sign
// channel on the entry count: 11 entries read the y exponent, 24 read
// the x and d exponents, one reads the frame sign bit of x.
func (Kernel) ExtractSparseSigns(v kernel.Vector, entries []uint32) int {
	switch len(entries) {
	case 11:
		return int(v[idxY] & 0x7ff)
	case 24:
		if len(v) <= idxD {
			return -1
		}
		return int(v[idxD]&0xfff)<<12 | int(v[idxX]&0xfff)
	case 1:
		return int(v[idxX] >> 12 & 1)
	}
	return -1
}

// KernelVector implements kernel.GeomKernel. Elements with a nonzero t
// exponent have no usable kernel vector.
func (Kernel) KernelVector(v kernel.Vector, diag int) uint64 {
	if v[idxT]%modT != 0 {
		return 0
	}
	return 1 + v[idxL]%modL
}

// Leech3To2Type4 implements kernel.GeomKernel. The standard frame
// 0x800000 carries the l exponent in its low bits.
func (Kernel) Leech3To2Type4(v3 uint64) uint32 {
	if v3 == 0 {
		return 0
	}
	return 0x800000 | uint32((v3-1)%modL)
}

// ReduceType4 implements kernel.GeomKernel.
func (Kernel) ReduceType4(vt4 uint32) ([]uint32, error) {
	if vt4&0x800000 == 0 {
		return nil, fmt.Errorf("toykernel: 0x%x is not a type-4 frame", vt4)
	}
	l := vt4 & 3
	if l == 0 {
		return nil, nil
	}
	return []uint32{uint32(atom.MustNew(atom.TagL, 3-l))}, nil
}

// Watermark implements kernel.GeomKernel.
func (Kernel) Watermark(v kernel.Vector) ([24]uint32, bool) {
	var mark [24]uint32
	if v[idxMarker] == 0 {
		return mark, false
	}
	for i := range mark {
		mark[i] = uint32(i)*2654435761 ^ uint32(v[idxMarker])
	}
	return mark, true
}

// WatermarkPermNum implements kernel.GeomKernel.
func (Kernel) WatermarkPermNum(mark [24]uint32, aPart kernel.Vector) int {
	return int(aPart[idxP] % modP)
}

// SparseToLeech2 implements kernel.GeomKernel.
func (Kernel) SparseToLeech2(x uint32) uint32 {
	return 1 << (x % 24)
}

// VectToCocode implements kernel.GeomKernel.
func (Kernel) VectToCocode(vect uint32) uint32 {
	return (vect &^ 1) >> 1
}

// PloopTheta implements kernel.GeomKernel. The toy Parker loop has a
// trivial cocycle.
func (Kernel) PloopTheta(d uint32) uint32 { return 0 }

// RandWordGx0 implements kernel.RandKernel. The y exponent stays below
// 0x800 so the toy membership pipeline resolves it exactly.
func (Kernel) RandWordGx0(r *rand.Rand) []uint32 {
	return []uint32{
		uint32(atom.MustNew(atom.TagY, uint32(r.Intn(0x800)))),
		uint32(atom.MustNew(atom.TagX, uint32(r.Intn(modX)))),
		uint32(atom.MustNew(atom.TagD, uint32(r.Intn(modD)))),
		uint32(atom.MustNew(atom.TagP, uint32(r.Intn(modP)))),
		uint32(atom.MustNew(atom.TagL, uint32(1+r.Intn(2)))),
	}
}

// RandWordN0 implements kernel.RandKernel. With even set the sample is
// drawn from N_x0: no triality component and an even cocode part.
func (Kernel) RandWordN0(r *rand.Rand, even bool) []uint32 {
	d := uint32(r.Intn(modD))
	var out []uint32
	if even {
		d &^= 1
	} else {
		out = append(out, uint32(atom.MustNew(atom.TagT, uint32(1+r.Intn(2)))))
	}
	return append(out,
		uint32(atom.MustNew(atom.TagY, uint32(r.Intn(0x800)))),
		uint32(atom.MustNew(atom.TagX, uint32(r.Intn(modX)))),
		uint32(atom.MustNew(atom.TagD, d)),
		uint32(atom.MustNew(atom.TagP, uint32(r.Intn(modP)))),
	)
}

// RandSeed implements kernel.RandKernel.
func (Kernel) RandSeed() uint64 { return 0x5ee2cafe71b3 }

// Seeds returns the seed set consistent with the toy kernel: the seed
// words act trivially in the toy model and the evaluation points feed
// unit equations into both linear systems.
func Seeds() *seeds.Set {
	tagsY := make([]uint32, 11)
	for k := range tagsY {
		tagsY[k] = uint32(k+1) << 14
	}
	tagsX := make([]uint32, 24)
	for k := range tagsX {
		tagsX[k] = uint32(k)
	}
	return &seeds.Set{
		Version: "1.0.2",
		G71:     "d_800h*d_800h",
		V71:     []uint32{0x10203, 0x405},
		GA:      "y_1000h*y_1000h",
		G94:     "x_1000h*x_1000h",
		V94:     []uint32{0x60708},
		DiagVA:  0,
		TagsY:   tagsY,
		TagsX:   tagsX,
		TagSign: []uint32{0x8000000},
	}
}
