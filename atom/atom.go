// Package atom implements the packed encoding of a single generator
// reference of the monster group.
//
// An atom packs a generator family tag, a family-specific value and an
// inversion flag into one uint32:
//
//	bit  31     inversion flag
//	bits 28..30 family tag
//	bits 0..27  value, pre-reduced into the family's canonical range
//
// A word of the group is an ordered sequence of such atoms, read left to
// right as a product. The encoding is stable and bit-exact; it round-trips
// through decode and encode.
package atom

import (
	"errors"
	"fmt"
)

// Mat24Order is the order of the Mathieu group M_24, the index range of
// permutation atoms.
const Mat24Order = 244823040

// Tag identifies the generator family an atom belongs to.
type Tag uint8

// Generator families. TagD, TagP, TagX and TagY generate the subgroup
// N_x0; adding TagT gives N_0, the subgroup whose internal multiplication
// is rewritten deterministically. TagT and TagL are the two distinguished
// order-3 generators.
const (
	TagD Tag = 1 // diagonal automorphism x_delta, delta a cocode element
	TagP Tag = 2 // automorphism x_pi of the Parker loop, pi in M_24
	TagX Tag = 3 // element x_e, e in the Parker loop
	TagY Tag = 4 // element y_e, e in the Parker loop
	TagT Tag = 5 // order-3 element tau^e
	TagL Tag = 6 // order-3 element xi^e
)

const (
	tagShift   = 28
	tagMask    = 0x7
	valueMask  = 0x0FFFFFFF
	invertFlag = 0x80000000
)

var tagLetters = [8]byte{0, 'd', 'p', 'x', 'y', 't', 'l', 0}

// String returns the one-letter name of the tag.
func (t Tag) String() string {
	if t < 1 || t > TagL {
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
	return string(tagLetters[t])
}

// Valid reports whether t is one of the closed set of generator tags.
func (t Tag) Valid() bool {
	return t >= TagD && t <= TagL
}

// maxValue returns the exclusive upper bound of the tag's value range.
func (t Tag) maxValue() uint32 {
	switch t {
	case TagD:
		return 0x1000
	case TagP:
		return Mat24Order
	case TagX, TagY:
		return 0x2000
	case TagT, TagL:
		return 3
	}
	return 0
}

// ErrInvalidAtom is returned when a packed value does not decode to an
// atom of the closed generator set.
var ErrInvalidAtom = errors.New("atom: invalid packed generator atom")

// Atom is one packed generator reference.
type Atom uint32

// New returns the atom with the given tag and value. Values of periodic
// families are reduced into the canonical range (d modulo 0x1000, x and y
// modulo 0x2000, t and l modulo 3); a permutation value out of range is an
// input-validation error.
func New(t Tag, value uint32) (Atom, error) {
	switch t {
	case TagD:
		value &= 0xfff
	case TagX, TagY:
		value &= 0x1fff
	case TagT, TagL:
		value %= 3
	case TagP:
		if value >= Mat24Order {
			return 0, fmt.Errorf("%w: permutation index %d out of range", ErrInvalidAtom, value)
		}
	default:
		return 0, fmt.Errorf("%w: unknown tag %d", ErrInvalidAtom, uint8(t))
	}
	return Atom(uint32(t)<<tagShift | value), nil
}

// MustNew is New, panicking on invalid input. For constants and tests.
func MustNew(t Tag, value uint32) Atom {
	a, err := New(t, value)
	if err != nil {
		panic(err)
	}
	return a
}

// Tag returns the generator family of the atom.
func (a Atom) Tag() Tag {
	return Tag(uint32(a) >> tagShift & tagMask)
}

// Value returns the family-specific value of the atom.
func (a Atom) Value() uint32 {
	return uint32(a) & valueMask
}

// Inverted reports whether the inversion flag is set.
func (a Atom) Inverted() bool {
	return uint32(a)&invertFlag != 0
}

// Inverse returns the atom representing the inverse generator. For the
// order-3 families the exponent is complemented modulo 3 so the result
// stays sign-free; for all other families the inversion flag is flipped.
func (a Atom) Inverse() Atom {
	switch a.Tag() {
	case TagT, TagL:
		v := a.Value() % 3
		if v != 0 {
			v = 3 - v
		}
		return a&^valueMask&^invertFlag | Atom(v)
	}
	return a ^ invertFlag
}

// Validate checks that the atom decodes to a member of the closed
// generator set with a value in canonical range.
func (a Atom) Validate() error {
	t := a.Tag()
	if !t.Valid() {
		return fmt.Errorf("%w: 0x%08x has unknown tag", ErrInvalidAtom, uint32(a))
	}
	if a.Value() >= t.maxValue() {
		return fmt.Errorf("%w: 0x%08x value out of range for tag %s", ErrInvalidAtom, uint32(a), t)
	}
	return nil
}

// ValidateWord validates every atom of a packed word.
func ValidateWord(data []uint32) error {
	for _, u := range data {
		if err := Atom(u).Validate(); err != nil {
			return err
		}
	}
	return nil
}
