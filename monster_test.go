package monster

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/internal/toykernel"
)

func testGroup(t *testing.T) *Group {
	t.Helper()
	g, err := NewGroup(toykernel.Kernel{}, WithSeeds(toykernel.Seeds()))
	require.NoError(t, err)
	return g
}

func TestNewGroup(t *testing.T) {
	assert := require.New(t)

	_, err := NewGroup(nil)
	assert.Error(err)

	_, err = NewGroup(toykernel.Kernel{}, WithSeeds(nil))
	assert.Error(err)

	g, err := NewGroup(toykernel.Kernel{},
		WithSeeds(toykernel.Seeds()),
		WithRand(rand.New(rand.NewSource(42))))
	assert.NoError(err)
	assert.NotNil(g)
}

func TestParseStringRoundTrip(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Parse("M<y_5h*l_1*x_3h>")
	assert.NoError(err)
	assert.Equal("M<y_5h*l_1*x_3h>", e.String())

	// decimal values parse too, but the printed form is always hex
	// except for the t and l exponents
	e2, err := g.Parse("y_5*l_1*x_3")
	assert.NoError(err)
	assert.Equal("M<y_5h*l_1*x_3h>", e2.String())

	id := g.Identity()
	assert.Equal("M<1>", id.String())

	back, err := g.Parse(e.String())
	assert.NoError(err)
	eq, err := e.Equal(back)
	assert.NoError(err)
	assert.True(eq)

	_, err = g.Parse("M<q_1>")
	assert.ErrorIs(err, atom.ErrInvalidAtom)
}

func TestMulInverseIdentity(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Parse("y_5*t_1*x_3*l_2")
	assert.NoError(err)
	inv, err := e.Inverse()
	assert.NoError(err)
	p, err := e.Mul(inv)
	assert.NoError(err)
	idp, err := p.IsIdentity()
	assert.NoError(err)
	assert.True(idp)
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Parse("y_2*l_1*d_3h")
	assert.NoError(err)

	cube, err := e.Pow(3)
	assert.NoError(err)
	byMul := g.Identity()
	for i := 0; i < 3; i++ {
		assert.NoError(byMul.MulEq(e))
	}
	eq, err := cube.Equal(byMul)
	assert.NoError(err)
	assert.True(eq)

	// e^-2 * e^2 is the identity
	n2, err := e.Pow(-2)
	assert.NoError(err)
	p2, err := e.Pow(2)
	assert.NoError(err)
	prod, err := n2.Mul(p2)
	assert.NoError(err)
	idp, err := prod.IsIdentity()
	assert.NoError(err)
	assert.True(idp)

	zero, err := e.Pow(0)
	assert.NoError(err)
	idp, err = zero.IsIdentity()
	assert.NoError(err)
	assert.True(idp)
}

func TestOrderAndHalfOrder(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Atom(atom.TagT, 1)
	assert.NoError(err)
	ord, err := e.Order(119)
	assert.NoError(err)
	assert.Equal(3, ord)

	// odd order has no half point
	ord, half, err := e.HalfOrder(119)
	assert.NoError(err)
	assert.Equal(3, ord)
	assert.Nil(half)

	e, err = g.Parse("d_800h*l_1")
	assert.NoError(err)
	ord, half, err = e.HalfOrder(119)
	assert.NoError(err)
	assert.Equal(6, ord)
	assert.NotNil(half)
	cube, err := e.Pow(3)
	assert.NoError(err)
	eq, err := half.Equal(cube)
	assert.NoError(err)
	assert.True(eq)

	// order beyond the bound reports the sentinel, not an error
	e, err = g.Atom(atom.TagY, 1)
	assert.NoError(err)
	ord, err = e.Order(100)
	assert.NoError(err)
	assert.Equal(0, ord)
}

func TestTrialityProductOrderDividesThree(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	t1, err := g.Atom(atom.TagT, 1)
	assert.NoError(err)
	t2, err := g.Atom(atom.TagT, 2)
	assert.NoError(err)
	p, err := t1.Mul(t2)
	assert.NoError(err)
	ord, err := p.Order(119)
	assert.NoError(err)
	assert.Equal(1, ord)

	cube, err := t1.Pow(3)
	assert.NoError(err)
	idp, err := cube.IsIdentity()
	assert.NoError(err)
	assert.True(idp)
}

func TestMembership(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Parse("y_5*x_3*l_1")
	assert.NoError(err)
	in, err := e.InGx0()
	assert.NoError(err)
	assert.True(in)
	// membership rewrote the word into G_x0 generators
	assert.True(atom.SubgroupGx0.ContainsWord(e.Atoms()))

	e, err = g.Parse("t_1*y_1")
	assert.NoError(err)
	in, err = e.InGx0()
	assert.NoError(err)
	assert.False(in)

	in, err = e.InN0()
	assert.NoError(err)
	assert.True(in)
	in, err = e.InNx0()
	assert.NoError(err)
	assert.False(in)

	// the l atoms cancel only through the membership pipeline
	e, err = g.Parse("y_1*l_1*y_1*l_2")
	assert.NoError(err)
	in, err = e.InNx0()
	assert.NoError(err)
	assert.True(in)

	in, err = e.In(atom.SubgroupM)
	assert.NoError(err)
	assert.True(in)
}

func TestInN0SeesThroughSpelling(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	// the same element of N_0 spelled with and without l atoms
	ref, err := g.Parse("t_1*y_2")
	assert.NoError(err)
	e, err := g.Parse("t_1*y_1*l_1*y_1*l_2")
	assert.NoError(err)
	eq, err := e.Equal(ref)
	assert.NoError(err)
	assert.True(eq)

	in, err := ref.InN0()
	assert.NoError(err)
	assert.True(in)
	in, err = e.InN0()
	assert.NoError(err)
	assert.True(in)

	// nonzero triality part keeps it out of N_x0
	in, err = e.InNx0()
	assert.NoError(err)
	assert.False(in)

	// a genuine G_x0 \ N_0 element stays out
	e, err = g.Parse("y_1*l_1")
	assert.NoError(err)
	in, err = e.InN0()
	assert.NoError(err)
	assert.False(in)
}

func TestMembershipRoundTrip(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Random(atom.SubgroupGx0)
	assert.NoError(err)
	before := e.Copy()
	in, err := e.InGx0()
	assert.NoError(err)
	assert.True(in)
	eq, err := e.Equal(before)
	assert.NoError(err)
	assert.True(eq)
}

func TestRandomWordShape(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.RandomWord(2)
	assert.NoError(err)
	assert.Equal(2, e.w.CountTag(atom.TagT))

	e, err = g.Random(atom.SubgroupN0)
	assert.NoError(err)
	assert.True(e.w.In(atom.SubgroupN0))

	e, err = g.Random(atom.SubgroupNx0)
	assert.NoError(err)
	in, err := e.InNx0()
	assert.NoError(err)
	assert.True(in)
}

func TestOrderMatchesBruteForce(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	g1, err := g.Parse("t_1*d_800h")
	assert.NoError(err)
	g2, err := g.Parse("t_2*d_400h")
	assert.NoError(err)
	p, err := g1.Mul(g2)
	assert.NoError(err)

	ord, err := p.Order(14)
	assert.NoError(err)

	brute := 0
	acc := g.Identity()
	for i := 1; i <= 14; i++ {
		assert.NoError(acc.MulEq(p))
		idp, err := acc.IsIdentity()
		assert.NoError(err)
		if idp {
			brute = i
			break
		}
	}
	assert.Equal(brute, ord)
	assert.Equal(4, ord)
}

func TestConjugate(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Parse("t_1*y_800h")
	assert.NoError(err)
	h, err := g.Parse("y_5*l_1")
	assert.NoError(err)
	c, err := e.Conjugate(h)
	assert.NoError(err)

	// conjugation preserves order
	oe, err := e.Order(119)
	assert.NoError(err)
	assert.Equal(12, oe)
	oc, err := c.Order(119)
	assert.NoError(err)
	assert.Equal(oe, oc)
}

func TestSimplifyKeepsShortWords(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Parse("t_1*y_2*t_2")
	assert.NoError(err)
	before := e.Atoms()
	assert.NoError(e.Simplify())
	assert.Equal(before, e.Atoms())
}

func TestSimplifyNeverCorrupts(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	// ten triality atoms kept apart by l barriers
	s := ""
	for i := 0; i < 10; i++ {
		if i > 0 {
			s += "*"
		}
		s += "t_1*l_1"
	}
	e, err := g.Parse(s)
	assert.NoError(err)
	before := e.Copy()
	lenBefore := e.Len()

	assert.NoError(e.Simplify())
	assert.LessOrEqual(e.Len(), lenBefore)
	eq, err := e.Equal(before)
	assert.NoError(err)
	assert.True(eq)
}

func TestSimplifyRewritesGx0Spelling(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	// twelve t_1*l_1 pairs: triality weight 12, yet the element lies
	// in G_x0 (here it is even the identity), so the deterministic
	// rewrite must beat the random search
	s := ""
	for i := 0; i < 12; i++ {
		if i > 0 {
			s += "*"
		}
		s += "t_1*l_1"
	}
	e, err := g.Parse(s)
	assert.NoError(err)
	before := e.Copy()
	assert.Equal(12, e.w.CountTag(atom.TagT))

	assert.NoError(e.Simplify())
	assert.Equal(0, e.w.CountTag(atom.TagT))
	assert.Equal(0, e.Len())
	eq, err := e.Equal(before)
	assert.NoError(err)
	assert.True(eq)
}

func TestTShape(t *testing.T) {
	assert := require.New(t)
	g := testGroup(t)

	e, err := g.Parse("t_1*l_1*t_2*y_5")
	assert.NoError(err)
	assert.Equal("<T.T.>", e.TShape())
	assert.Equal("<>", g.Identity().TShape())
}

func TestGroupProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)
	g := testGroup(t)

	properties.Property("g * g^-1 is the identity", prop.ForAll(
		func(complexity int) bool {
			e, err := g.RandomWord(complexity)
			if err != nil {
				return false
			}
			inv, err := e.Inverse()
			if err != nil {
				return false
			}
			p, err := e.Mul(inv)
			if err != nil {
				return false
			}
			idp, err := p.IsIdentity()
			return err == nil && idp
		},
		gen.IntRange(0, 3),
	))

	properties.Property("order and power are consistent", prop.ForAll(
		func(ti, yk, dk int) bool {
			e, err := g.Parse(fmt.Sprintf("t_%d*y_%xh*d_%xh", ti, yk<<10, dk<<10))
			if err != nil {
				return false
			}
			ord, err := e.Order(119)
			if err != nil || ord == 0 {
				return false
			}
			p, err := e.Pow(ord)
			if err != nil {
				return false
			}
			idp, err := p.IsIdentity()
			if err != nil || !idp {
				return false
			}
			if ord == 1 {
				return true
			}
			// no smaller power is trivial
			p, err = e.Pow(ord - 1)
			if err != nil {
				return false
			}
			idp, err = p.IsIdentity()
			return err == nil && !idp
		},
		gen.IntRange(0, 2),
		gen.IntRange(0, 7),
		gen.IntRange(0, 3),
	))

	properties.Property("equality is symmetric and transitive", prop.ForAll(
		func(complexity, yv int) bool {
			// a, b and c are three spellings of the same element; a
			// carries l atoms, so these compares run through the
			// order vector
			a, err := g.RandomWord(complexity)
			if err != nil {
				return false
			}
			r, err := g.Random(atom.SubgroupGx0)
			if err != nil {
				return false
			}
			rinv, err := r.Inverse()
			if err != nil {
				return false
			}
			b, err := a.Mul(r)
			if err != nil || b.MulEq(rinv) != nil {
				return false
			}
			c, err := r.Mul(rinv)
			if err != nil || c.MulEq(a) != nil {
				return false
			}
			for _, pair := range [][2]*Element{{a, b}, {b, a}, {b, c}, {c, b}, {a, c}} {
				eq, err := pair[0].Equal(pair[1])
				if err != nil || !eq {
					return false
				}
			}
			t1, err := g.Atom(atom.TagT, 1)
			if err != nil {
				return false
			}
			d, err := a.Mul(t1)
			if err != nil {
				return false
			}
			eq, err := a.Equal(d)
			if err != nil || eq {
				return false
			}
			eq, err = d.Equal(a)
			if err != nil || eq {
				return false
			}

			// two l-free spellings take the N_0 fast path
			n1, err := g.Parse(fmt.Sprintf("y_%d", yv))
			if err != nil {
				return false
			}
			n2, err := g.Parse(fmt.Sprintf("y_%d*y_1", yv-1))
			if err != nil {
				return false
			}
			eq, err = n1.Equal(n2)
			if err != nil || !eq {
				return false
			}
			eq, err = n2.Equal(n1)
			return err == nil && eq
		},
		gen.IntRange(0, 3),
		gen.IntRange(1, 0x7ff),
	))

	properties.TestingRun(t)
}
