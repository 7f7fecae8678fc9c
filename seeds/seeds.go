// Package seeds defines the fixed seed data the order-vector oracle is
// built from: two seed words with their stabilized vectors, an alignment
// word, and the evaluation points feeding the oracle's two mod-2 linear
// systems.
//
// A seed set and the oracle construction are only correct together, so a
// set carries a semantic version and is rejected when its major version
// does not match the engine's. Sets are persisted as deterministic CBOR.
package seeds

import (
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/algebralab/monster/atom"
)

// Major is the seed-set major version this engine builds from.
const Major = 1

// ErrSeedData reports an unusable seed set: wrong shape, unparsable
// words, or a version mismatch. Oracle construction treats it as a fatal
// configuration error.
var ErrSeedData = errors.New("seeds: invalid seed data")

// Set is one versioned collection of order-vector seed constants.
type Set struct {
	// Version is the semantic version of the set. Construction is only
	// correct for a set whose major version matches Major.
	Version string `cbor:"version"`

	// G71 is the seed word of order 71 and V71 its seed vector in the
	// sparse representation encoding.
	G71 string   `cbor:"g71"`
	V71 []uint32 `cbor:"v71"`

	// GA aligns the first stabilizer vector by an extra conjugation.
	GA string `cbor:"ga"`

	// G94 is the seed word of order 94 and V94 its seed vector.
	G94 string   `cbor:"g94"`
	V94 []uint32 `cbor:"v94"`

	// DiagVA is the diagonal shift used when extracting the mod-3
	// kernel vector of the combined stabilizer vector.
	DiagVA int `cbor:"diag_va"`

	// TagsY and TagsX are the sparse evaluation points feeding the
	// 11- and 24-equation mod-2 systems; TagSign is the single final
	// sign evaluation point.
	TagsY   []uint32 `cbor:"tags_y"`
	TagsX   []uint32 `cbor:"tags_x"`
	TagSign []uint32 `cbor:"tag_sign"`
}

// Words parses the three seed words. Returned slices are packed atoms.
func (s *Set) Words() (g71, ga, g94 []uint32, err error) {
	if g71, err = atom.ParseWord(s.G71); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: g71: %v", ErrSeedData, err)
	}
	if ga, err = atom.ParseWord(s.GA); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: ga: %v", ErrSeedData, err)
	}
	if g94, err = atom.ParseWord(s.G94); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: g94: %v", ErrSeedData, err)
	}
	return g71, ga, g94, nil
}

// Validate checks the shape and version of the set.
func (s *Set) Validate() error {
	v, err := semver.Parse(s.Version)
	if err != nil {
		return fmt.Errorf("%w: version %q: %v", ErrSeedData, s.Version, err)
	}
	if v.Major != Major {
		return fmt.Errorf("%w: version %s not supported by engine major %d", ErrSeedData, s.Version, Major)
	}
	if _, _, _, err := s.Words(); err != nil {
		return err
	}
	if len(s.V71) == 0 || len(s.V94) == 0 {
		return fmt.Errorf("%w: empty seed vector", ErrSeedData)
	}
	if len(s.TagsY) != 11 {
		return fmt.Errorf("%w: want 11 tags_y entries, have %d", ErrSeedData, len(s.TagsY))
	}
	if len(s.TagsX) != 24 {
		return fmt.Errorf("%w: want 24 tags_x entries, have %d", ErrSeedData, len(s.TagsX))
	}
	if len(s.TagSign) != 1 {
		return fmt.Errorf("%w: want 1 tag_sign entry, have %d", ErrSeedData, len(s.TagSign))
	}
	return nil
}

var encMode, decMode = func() (cbor.EncMode, cbor.DecMode) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
	return enc, dec
}()

// Encode serializes the set as deterministic CBOR.
func (s *Set) Encode() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return encMode.Marshal(s)
}

// Decode deserializes and validates a seed set.
func Decode(data []byte) (*Set, error) {
	var s Set
	if err := decMode.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeedData, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
