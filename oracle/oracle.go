// Package oracle implements the order-vector oracle: a process-wide,
// lazily built immutable vector in the representation modulo 15 whose
// stabilizer distinguishes the identity from every non-identity element
// with overwhelming probability. The oracle answers equality, order and
// large-subgroup membership queries for words the local reducer cannot
// decide.
//
// Construction follows the method of Linton, Parker, Walsh and Wilson:
// stabilizer sums over the two seed words are combined, sanity-checked
// against the standard frame of the Leech lattice modulo 2, and reduced
// to the canonical order vector; two mod-2 linear systems and a
// permutation watermark are derived from it for the membership
// corrections. The construction is deterministic in the seed set and
// fails only on corrupted seed data.
package oracle

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/algebralab/monster/internal/bitmat"
	"github.com/algebralab/monster/kernel"
	"github.com/algebralab/monster/logger"
	"github.com/algebralab/monster/seeds"
)

// Oracle holds the order vector and its auxiliary tables. It is built
// exactly once, on the first query that needs it; afterwards every field
// is read-only and all reads are lock-free.
type Oracle struct {
	k   kernel.Kernel
	set *seeds.Set
	log zerolog.Logger

	once     sync.Once
	buildErr error

	v      kernel.Vector // the order vector, canonical form
	mark   [24]uint32    // permutation watermark fingerprint
	solveY *bitmat.System
	solveX *bitmat.System
}

// New returns an unbuilt oracle over the given kernel and seed set.
// Construction happens on the first query.
func New(k kernel.Kernel, set *seeds.Set) *Oracle {
	return &Oracle{
		k:   k,
		set: set,
		log: logger.Logger().With().Str("component", "oracle").Logger(),
	}
}

// Build forces construction. It is idempotent and safe for concurrent
// use; every query triggers it implicitly.
func (o *Oracle) Build() error {
	o.once.Do(func() { o.buildErr = o.build() })
	return o.buildErr
}

// stabilizerVector returns sum(v * g^i, i=0..n-1), the vector stabilized
// by the order-n element g, or nil if the sum fails the crude
// degeneracy check (zero or a multiple of the 1 element).
func (o *Oracle) stabilizerVector(v kernel.Vector, g []uint32, n int) (kernel.Vector, error) {
	vg := v.Clone()
	w := v.Clone()
	for i := 1; i < n; i++ {
		if err := o.k.ApplyWord(vg, g); err != nil {
			return nil, err
		}
		o.k.AddVector(w, vg)
	}
	if err := o.k.ApplyWord(vg, g); err != nil {
		return nil, err
	}
	// canonicalize both sides; apply and scale need not preserve the
	// packed form
	o.k.ReduceVector(vg)
	ref := v.Clone()
	o.k.ReduceVector(ref)
	if !vg.Equal(ref) {
		return nil, fmt.Errorf("%w: seed word is not of order %d", seeds.ErrSeedData, n)
	}
	if o.k.BPartZero(w) {
		return nil, nil
	}
	return w, nil
}

func (o *Oracle) build() error {
	if o.set == nil {
		return fmt.Errorf("%w: no seed set configured", seeds.ErrSeedData)
	}
	if err := o.set.Validate(); err != nil {
		return err
	}
	g71, ga, g94, err := o.set.Words()
	if err != nil {
		return err
	}
	o.log.Debug().Str("version", o.set.Version).Msg("building order vector")

	// the two stabilizer sums are independent
	var w71, w94 kernel.Vector
	var eg errgroup.Group
	eg.Go(func() error {
		v71, err := o.k.VectorFromSparse(o.set.V71)
		if err != nil {
			return fmt.Errorf("%w: v71: %v", seeds.ErrSeedData, err)
		}
		o.k.ScaleVector(v71, 10)
		w, err := o.stabilizerVector(v71, g71, 71)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: degenerate 71-cycle stabilizer sum", seeds.ErrSeedData)
		}
		if err := o.k.ApplyWord(w, ga); err != nil {
			return err
		}
		w71 = w
		return nil
	})
	eg.Go(func() error {
		v94, err := o.k.VectorFromSparse(o.set.V94)
		if err != nil {
			return fmt.Errorf("%w: v94: %v", seeds.ErrSeedData, err)
		}
		o.k.ScaleVector(v94, 6)
		vg := v94.Clone()
		if err := o.k.ApplyWord(vg, g94); err != nil {
			return err
		}
		o.k.SubVector(v94, vg)
		g94sq := make([]uint32, 0, 2*len(g94))
		g94sq = append(append(g94sq, g94...), g94...)
		w, err := o.stabilizerVector(v94, g94sq, 47)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: degenerate 47-cycle stabilizer sum", seeds.ErrSeedData)
		}
		w94 = w
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	w := w71
	o.k.AddVector(w, w94)

	// the combined vector must sit over the standard frame
	v3 := o.k.KernelVector(w, o.set.DiagVA)
	if v3 == 0 {
		return fmt.Errorf("%w: combined vector has no mod-3 kernel vector", seeds.ErrSeedData)
	}
	if vt4 := o.k.Leech3To2Type4(v3); vt4 != 0x800000 {
		return fmt.Errorf("%w: kernel vector lifts to 0x%x, want the standard frame", seeds.ErrSeedData, vt4)
	}
	o.k.ReduceVector(w)
	o.v = w

	mark, ok := o.k.Watermark(o.v)
	if !ok {
		return fmt.Errorf("%w: order vector has no watermark", seeds.ErrSeedData)
	}
	o.mark = mark

	if o.solveY, err = o.buildSolveY(); err != nil {
		return err
	}
	if o.solveX, err = o.buildSolveX(); err != nil {
		return err
	}
	o.log.Debug().Msg("order vector ready")
	return nil
}

// buildSolveY feeds the 11 cocode equations of the y evaluation points.
func (o *Oracle) buildSolveY() (*bitmat.System, error) {
	s := bitmat.New(11)
	eqns := make([]uint32, len(o.set.TagsY))
	for n, y := range o.set.TagsY {
		i, j := y>>14&0x1f, y>>8&0x1f
		vect := uint32(1)<<i + uint32(1)<<j
		eqns[n] = o.k.VectToCocode(vect) & 0x7ff
	}
	if rank := bitmat.Feed(s, eqns); rank != 11 {
		return nil, fmt.Errorf("%w: y equations have rank %d, want 11", seeds.ErrSeedData, rank)
	}
	if signs := o.k.ExtractSparseSigns(o.v, o.set.TagsY); signs != 0 {
		return nil, fmt.Errorf("%w: order vector has nonzero y signs 0x%x", seeds.ErrSeedData, signs)
	}
	return s, nil
}

// buildSolveX feeds the 24 Leech-mod-2 equations of the x evaluation
// points.
func (o *Oracle) buildSolveX() (*bitmat.System, error) {
	s := bitmat.New(24)
	eqns := make([]uint32, len(o.set.TagsX))
	for n, x := range o.set.TagsX {
		eqns[n] = o.k.SparseToLeech2(x)
	}
	if rank := bitmat.Feed(s, eqns); rank != 24 {
		return nil, fmt.Errorf("%w: x equations have rank %d, want 24", seeds.ErrSeedData, rank)
	}
	if signs := o.k.ExtractSparseSigns(o.v, o.set.TagsX); signs != 0 {
		return nil, fmt.Errorf("%w: order vector has nonzero x signs 0x%x", seeds.ErrSeedData, signs)
	}
	return s, nil
}
