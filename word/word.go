// Package word implements the growable generator-word buffer and the
// driver of the local normal-form reduction.
//
// A word owns its backing storage exclusively and carries a watermark:
// atoms before the watermark are already in the local normal form of the
// subgroup N_0 and are never rewritten again. Concatenation appends and
// then folds only the unreduced suffix onto the reduced prefix, using the
// kernel's exact N_0 multiplier. Local reduction changes the encoding of
// a word, never the group element it represents.
package word

import (
	"fmt"

	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/debug"
	"github.com/algebralab/monster/kernel"
)

// minCap is the minimum capacity of a word's backing storage.
const minCap = 16

// Word is an ordered sequence of packed generator atoms representing a
// product in the group, read left to right.
type Word struct {
	data    []uint32
	n       int
	reduced int // atoms before this index are in local normal form
}

// New returns the empty word.
func New() *Word {
	return &Word{data: make([]uint32, minCap)}
}

// FromData returns a word holding a copy of the packed atoms. Every atom
// is validated; a malformed encoding is an input-validation error.
func FromData(data []uint32) (*Word, error) {
	if err := atom.ValidateWord(data); err != nil {
		return nil, fmt.Errorf("word: %w", err)
	}
	w := &Word{data: make([]uint32, max(minCap, len(data)))}
	copy(w.data, data)
	w.n = len(data)
	return w, nil
}

// FromAtoms returns a word of the given atoms.
func FromAtoms(atoms ...atom.Atom) *Word {
	w := &Word{data: make([]uint32, max(minCap, len(atoms)))}
	for i, a := range atoms {
		w.data[i] = uint32(a)
	}
	w.n = len(atoms)
	return w
}

// Len returns the number of atoms in the word.
func (w *Word) Len() int { return w.n }

// Atoms returns a view of the live atoms. The slice aliases the word's
// storage and is invalidated by any mutating operation.
func (w *Word) Atoms() []uint32 { return w.data[:w.n] }

// IsReduced reports whether the whole word is in local normal form.
func (w *Word) IsReduced() bool { return w.reduced == w.n }

// Clone returns an independent copy of the word.
func (w *Word) Clone() *Word {
	c := &Word{data: make([]uint32, len(w.data)), n: w.n, reduced: w.reduced}
	copy(c.data, w.data)
	return c
}

// Reset empties the word, keeping its storage.
func (w *Word) Reset() {
	w.n = 0
	w.reduced = 0
}

// SetData replaces the word's content with a copy of data, clearing the
// watermark.
func (w *Word) SetData(data []uint32) {
	w.extend(len(data))
	copy(w.data, data)
	w.n = len(data)
	w.reduced = 0
}

// CountTag returns the number of atoms of the given family.
func (w *Word) CountTag(t atom.Tag) int {
	n := 0
	for _, u := range w.Atoms() {
		if atom.Atom(u).Tag() == t {
			n++
		}
	}
	return n
}

// In reports whether every atom is drawn from the subgroup's generators.
func (w *Word) In(s atom.Subgroup) bool {
	return s.ContainsWord(w.Atoms())
}

// extend grows the backing storage to hold at least length atoms,
// over-allocating by half the current capacity.
func (w *Word) extend(length int) {
	if length <= len(w.data) {
		return
	}
	length = max(length, 3*len(w.data)/2)
	data := make([]uint32, length)
	copy(data, w.data[:w.n])
	w.data = data
}

// Append appends packed atoms without reducing. The watermark is
// unchanged: nothing already reduced is invalidated.
func (w *Word) Append(src []uint32) {
	w.extend(w.n + len(src))
	copy(w.data[w.n:], src)
	w.n += len(src)
}

// Invert replaces the word by its inverse: atoms reversed, each atom
// replaced by its inverse. The watermark is cleared.
func (w *Word) Invert() {
	for i, j := 0, w.n-1; i < j; i, j = i+1, j-1 {
		w.data[i], w.data[j] = w.data[j], w.data[i]
	}
	for i := 0; i < w.n; i++ {
		w.data[i] = uint32(atom.Atom(w.data[i]).Inverse())
	}
	w.reduced = 0
}

// Reduce folds the unreduced suffix onto the reduced prefix through the
// kernel's N_0 multiplier and advances the watermark to the full length.
// Reducing an already-reduced word is a no-op. The represented group
// element is unchanged.
func (w *Word) Reduce(k kernel.NKernel) error {
	if w.reduced == w.n {
		return nil
	}
	l1 := w.n
	tail := l1 - w.reduced
	w.extend(l1 + tail + 1)
	copy(w.data[l1:l1+tail], w.data[w.reduced:l1])
	n, err := k.MulNWords(w.data, w.reduced, w.data[l1:l1+tail])
	if err != nil {
		return fmt.Errorf("word: local reduction: %w", err)
	}
	debug.Assert(n >= 0 && n <= l1, "kernel returned reduced length %d for word of length %d", n, l1)
	w.n = n
	w.reduced = n
	return nil
}

// ConcatReduce appends other and reduces the new suffix. The resulting
// length never exceeds the sum of the input lengths.
func (w *Word) ConcatReduce(k kernel.NKernel, other *Word) error {
	w.Append(other.Atoms())
	return w.Reduce(k)
}
