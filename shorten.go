package monster

import (
	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/word"
)

const (
	// simplifyThreshold is the triality weight below which a word
	// counts as short and Simplify leaves it alone.
	simplifyThreshold = 9

	// simplifyTrials bounds the random search per Simplify call.
	simplifyTrials = 40
)

// Simplify tries to shorten e's word by random left translation with
// G_x0 elements, keeping only replacements that strictly lower the
// number of triality atoms and that re-verify as equal to e. The search
// is randomized and may fail to shorten; it then logs a warning and
// keeps the current word. Simplify never lengthens a word and never
// returns a different group element.
func (e *Element) Simplify() error {
	if err := e.w.Reduce(e.g.k); err != nil {
		return err
	}
	weight := e.w.CountTag(atom.TagT)
	if weight <= simplifyThreshold {
		return nil
	}

	// a member of G_x0 has a triality-free canonical form; try the
	// deterministic rewrite before spending any random trials
	in, err := e.g.o.ReduceGx0(e.w)
	if err != nil {
		return err
	}
	if in {
		return nil
	}

	for trial := 0; trial < simplifyTrials && weight > simplifyThreshold; trial++ {
		h := e.g.randWordGx0()

		// Candidate h * reduce(h^-1 * e); the translation can push
		// triality atoms into the cancelling range of the local
		// reducer. The prefix h carries no triality atoms.
		cand, err := word.FromData(h)
		if err != nil {
			return err
		}
		cand.Invert()
		if err := cand.ConcatReduce(e.g.k, e.w); err != nil {
			return err
		}
		if cand.CountTag(atom.TagT) >= weight {
			continue
		}
		full := word.New()
		full.Append(h)
		full.Append(cand.Atoms())
		if err := full.Reduce(e.g.k); err != nil {
			return err
		}
		if w := full.CountTag(atom.TagT); w < weight {
			eq, err := e.g.o.Equal(full, e.w)
			if err != nil {
				return err
			}
			if !eq {
				continue
			}
			e.w.SetData(full.Atoms())
			if err := e.w.Reduce(e.g.k); err != nil {
				return err
			}
			weight = w
		}
	}
	if weight > simplifyThreshold {
		e.g.log.Warn().
			Int("weight", weight).
			Int("trials", simplifyTrials).
			Msg("word shortening did not reach the target weight")
	}
	return nil
}
