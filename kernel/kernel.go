// Package kernel declares the contract of the external algebra kernel
// consumed by the word-reduction engine.
//
// The kernel owns the bit-level arithmetic of the combinatorial structures
// behind the monster group: the Golay code and its cocode, the Parker
// loop, the Leech lattice modulo 2 and modulo 3, and the 196884-dimensional
// representation modulo 15. None of that arithmetic is implemented in this
// module; the engine drives it through the narrow surface below.
//
// All word arguments are packed generator atoms as defined by package
// atom. A kernel returning results outside its documented ranges is a
// fatal invariant violation for the engine, not a recoverable error.
package kernel

import (
	"math/rand"
)

// APartWords is the number of leading words of a vector holding its
// A part, the symmetric 24x24 matrix component of the representation.
// Several membership corrections operate on the A part alone.
const APartWords = 2 * 24

// Vector is a vector of the representation modulo 15 in the kernel's
// packed layout. Vectors are plain memory to the engine: it copies,
// slices the A part, and compares them, and delegates every arithmetic
// operation to the kernel.
type Vector []uint64

// APart returns the leading A-part view of the vector.
func (v Vector) APart() Vector { return v[:APartWords] }

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	w := make(Vector, len(v))
	copy(w, v)
	return w
}

// Equal reports bit-exact equality of two vectors in canonical form.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}

// NTuple is the canonical form of an element of the subgroup N_0: the
// exponents (t, y, x, d, p) of its unique short decomposition
// tau^t y_f x_e x_delta x_pi.
type NTuple [5]uint32

// Word equality fast-path statuses reported by WordsDifference.
const (
	DiffEqual     = 0 // words decided equal inside N_0
	DiffUnequal   = 1 // words decided unequal inside N_0
	DiffUndecided = 2 // not decidable in N_0; the difference word is valid
)

// N word statuses reported by CheckNWord.
const (
	NWordIdentity = 0 // the word reduces to the identity
	NWordInside   = 1 // the word lies in N_0; the tuple image is valid
	NWordOutside  = 2 // the word contains generators outside N_0
)

// NKernel is the exact multiplication service for the subgroup N_0.
type NKernel interface {
	// MulNWords multiplies the locally reduced word dst[:nDst] by the
	// word src, stores the locally reduced product in dst and returns
	// its length. Local reduction collapses every maximal run of N_0
	// atoms into the canonical tuple form while applying only the mod-3
	// relation to atoms outside N_0, so the product never grows beyond
	// nDst+len(src) atoms. dst must have capacity for that worst case.
	MulNWords(dst []uint32, nDst int, src []uint32) (int, error)

	// CheckNWord classifies a word with respect to N_0 and, when the
	// word lies inside, returns its canonical tuple image.
	CheckNWord(word []uint32) (status int, t NTuple)

	// MulNTuple multiplies dst by src in N_0, in place.
	MulNTuple(dst *NTuple, src NTuple)

	// ReduceNTuple brings the tuple into canonical range and reports
	// whether the reduced element is nontrivial.
	ReduceNTuple(t *NTuple) bool

	// WordsDifference compares two words, deciding inside N_0 whenever
	// possible. On DiffUndecided it returns the concatenated difference
	// word g1 * g2^-1 for the caller to test against the order vector.
	WordsDifference(g1, g2 []uint32) (status int, diff []uint32)
}

// RepKernel operates on vectors of the representation modulo 15.
type RepKernel interface {
	// NewVector returns the zero vector.
	NewVector() Vector

	// VectorFromSparse builds a vector from the sparse seed encoding
	// (packed tag, index and value entries).
	VectorFromSparse(entries []uint32) (Vector, error)

	// ApplyWord multiplies v in place by the group element of the word.
	// Like ScaleVector, AddVector and SubVector it need not leave v in
	// the canonical packed form; callers run ReduceVector on both sides
	// before bit comparison.
	ApplyWord(v Vector, word []uint32) error

	// ApplyWordTagA applies the word to the A part only. Valid for
	// words whose atoms act on the A part (the membership correction
	// words do).
	ApplyWordTagA(aPart Vector, word []uint32) error

	// ApplyOmega multiplies v by x_d for the Parker loop element d of
	// the standard frame family.
	ApplyOmega(v Vector, d uint32)

	// ScaleVector multiplies every entry by factor modulo 15.
	ScaleVector(v Vector, factor int)

	// AddVector adds src to dst entrywise modulo 15.
	AddVector(dst, src Vector)

	// SubVector subtracts src from dst entrywise modulo 15.
	SubVector(dst, src Vector)

	// ReduceVector brings v into the canonical packed form, so that
	// equal vectors are bit-identical. Idempotent; also accepts a bare
	// A-part slice.
	ReduceVector(v Vector)

	// BPartZero reports whether the B part of the vector vanishes; a
	// stabilizer sum with zero B part is degenerate (zero or a multiple
	// of the 1 element) and must be rejected. Crude necessary check,
	// not a sufficient one.
	BPartZero(v Vector) bool

	// ExtractSparseSigns reads the signs of the vector entries named by
	// the sparse indices and packs them into the low bits of the
	// result, or returns a negative value if an addressed entry
	// vanishes.
	ExtractSparseSigns(v Vector, entries []uint32) int
}

// GeomKernel exposes the Leech lattice and Golay code geometry used by
// the oracle's membership pipeline.
type GeomKernel interface {
	// KernelVector extracts the mod-3 kernel vector of the A part of v,
	// after shifting the diagonal by diag. Zero means no usable kernel
	// vector.
	KernelVector(v Vector, diag int) uint64

	// Leech3To2Type4 maps a Leech-mod-3 vector to the corresponding
	// Leech-mod-2 vector if that vector is of type 4, else returns 0.
	Leech3To2Type4(v3 uint64) uint32

	// ReduceType4 returns a word of at most 6 generator atoms mapping
	// the standard frame to the given type-4 vector.
	ReduceType4(vt4 uint32) ([]uint32, error)

	// Watermark computes the permutation watermark of the A part of a
	// vector, a fingerprint recognizing the M_24 coordinate relabeling.
	// ok is false for degenerate vectors.
	Watermark(v Vector) (mark [24]uint32, ok bool)

	// WatermarkPermNum recovers the permutation number relating the
	// watermarked coordinate system to the A part, or a negative value
	// if the A part does not fit the watermark.
	WatermarkPermNum(mark [24]uint32, aPart Vector) int

	// SparseToLeech2 converts a sparse representation index to its
	// Leech-mod-2 vector.
	SparseToLeech2(x uint32) uint32

	// VectToCocode maps a 24-bit coordinate vector to its Golay cocode
	// element.
	VectToCocode(vect uint32) uint32

	// PloopTheta is the cocycle theta of the Parker loop.
	PloopTheta(d uint32) uint32
}

// RandKernel produces uniform random subgroup words for the shortener
// and the test harness.
type RandKernel interface {
	// RandWordGx0 returns a uniform random word over the generators of
	// G_x0.
	RandWordGx0(r *rand.Rand) []uint32

	// RandWordN0 returns a uniform random word over the generators of
	// N_0. With even set the word is restricted to the subgroup N_x0,
	// dropping the triality component and odd cocode elements.
	RandWordN0(r *rand.Rand, even bool) []uint32

	// RandSeed returns the kernel's process seed for the engine's
	// random source.
	RandSeed() uint64
}

// Kernel is the full external algebra surface consumed by the engine.
type Kernel interface {
	NKernel
	RepKernel
	GeomKernel
	RandKernel
}
