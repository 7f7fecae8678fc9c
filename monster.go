package monster

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"

	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/kernel"
	"github.com/algebralab/monster/logger"
	"github.com/algebralab/monster/oracle"
	"github.com/algebralab/monster/seeds"
	"github.com/algebralab/monster/word"
)

// Group is the entry point for monster-group arithmetic. It owns the
// computational kernel, the lazily built order-vector oracle and a
// source of randomness for element generation and word shortening.
//
// A Group is safe for concurrent use. Elements are not: each Element
// exclusively owns its word, and callers who share one across
// goroutines must synchronize or Copy it.
type Group struct {
	k   kernel.Kernel
	o   *oracle.Oracle
	log zerolog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Group created with NewGroup.
type Option func(*groupConfig) error

type groupConfig struct {
	set *seeds.Set
	log zerolog.Logger
	rnd *rand.Rand
}

// WithSeeds sets the seed data the oracle is built from. Without it,
// operations that need the order vector fail with seeds.ErrSeedData;
// purely local arithmetic still works.
func WithSeeds(set *seeds.Set) Option {
	return func(cfg *groupConfig) error {
		if set == nil {
			return fmt.Errorf("monster: nil seed set")
		}
		cfg.set = set
		return nil
	}
}

// WithLogger overrides the package-level logger for this Group.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *groupConfig) error {
		cfg.log = l
		return nil
	}
}

// WithRand overrides the randomness source used by Random, RandomWord
// and Simplify. The Group serializes access to it.
func WithRand(r *rand.Rand) Option {
	return func(cfg *groupConfig) error {
		if r == nil {
			return fmt.Errorf("monster: nil rand source")
		}
		cfg.rnd = r
		return nil
	}
}

// NewGroup returns a Group backed by the given kernel. The oracle is
// not built here; the first query that needs it pays the construction
// cost.
func NewGroup(k kernel.Kernel, opts ...Option) (*Group, error) {
	if k == nil {
		return nil, fmt.Errorf("monster: nil kernel")
	}
	cfg := groupConfig{
		log: logger.Logger(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("monster: apply option: %w", err)
		}
	}
	if cfg.rnd == nil {
		cfg.rnd = rand.New(rand.NewSource(int64(k.RandSeed())))
	}
	return &Group{
		k:   k,
		o:   oracle.New(k, cfg.set),
		log: cfg.log.With().Str("component", "monster").Logger(),
		rnd: cfg.rnd,
	}, nil
}

// Identity returns the neutral element, the empty word.
func (g *Group) Identity() *Element {
	return &Element{g: g, w: word.New()}
}

// Atom returns the element consisting of the single generator tag^value.
func (g *Group) Atom(t atom.Tag, value uint32) (*Element, error) {
	a, err := atom.New(t, value)
	if err != nil {
		return nil, err
	}
	return &Element{g: g, w: word.FromAtoms(a)}, nil
}

// Word returns the element represented by the given atoms, locally
// reduced.
func (g *Group) Word(atoms ...atom.Atom) (*Element, error) {
	e := &Element{g: g, w: word.FromAtoms(atoms...)}
	if err := e.w.Reduce(g.k); err != nil {
		return nil, err
	}
	return e, nil
}

// FromAtoms returns the element represented by packed atoms, after
// validating every atom. The slice is copied.
func (g *Group) FromAtoms(data []uint32) (*Element, error) {
	w, err := word.FromData(data)
	if err != nil {
		return nil, err
	}
	if err := w.Reduce(g.k); err != nil {
		return nil, err
	}
	return &Element{g: g, w: w}, nil
}

// Parse returns the element described by s, in the same syntax String
// produces: "*"-separated atoms like "y_0afh*t_1*x_0e9h", optionally
// wrapped in "M<...>". "1" denotes the identity.
func (g *Group) Parse(s string) (*Element, error) {
	data, err := atom.ParseWord(s)
	if err != nil {
		return nil, err
	}
	return g.FromAtoms(data)
}

// Random returns a uniformly distributed element of the given subgroup.
// For the full group the distribution is over words of a fixed
// generator shape, not uniform over M.
func (g *Group) Random(s atom.Subgroup) (*Element, error) {
	g.mu.Lock()
	var data []uint32
	switch s {
	case atom.SubgroupGx0:
		data = g.k.RandWordGx0(g.rnd)
	case atom.SubgroupN0:
		data = g.k.RandWordN0(g.rnd, false)
	case atom.SubgroupNx0:
		data = g.k.RandWordN0(g.rnd, true)
	case atom.SubgroupM:
		g.mu.Unlock()
		return g.RandomWord(2)
	default:
		g.mu.Unlock()
		return nil, fmt.Errorf("monster: no random generator for %s", s)
	}
	g.mu.Unlock()
	return g.FromAtoms(data)
}

// RandomWord returns a random element given as a word of shape
// g_0 t g_1 t ... t g_n with n = complexity and each g_i drawn from
// G_x0. Larger complexities leave the reach of the cheap subgroup
// arithmetic faster.
func (g *Group) RandomWord(complexity int) (*Element, error) {
	if complexity < 0 {
		return nil, fmt.Errorf("monster: negative complexity %d", complexity)
	}
	g.mu.Lock()
	data := g.k.RandWordGx0(g.rnd)
	for i := 0; i < complexity; i++ {
		t := atom.MustNew(atom.TagT, uint32(1+g.rnd.Intn(2)))
		data = append(data, uint32(t))
		data = append(data, g.k.RandWordGx0(g.rnd)...)
	}
	g.mu.Unlock()
	return g.FromAtoms(data)
}

// randWordGx0 draws a random G_x0 word under the group's rand lock.
func (g *Group) randWordGx0() []uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.k.RandWordGx0(g.rnd)
}
