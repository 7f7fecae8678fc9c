// Package monster implements arithmetic in the monster group M, the
// largest sporadic finite simple group, through words in the standard
// generators and a fast word-reduction engine.
//
// Elements are created from a Group service and combined with the usual
// group operations:
//
//	g, _ := monster.NewGroup(k, monster.WithSeeds(set))
//	a, _ := g.Parse("M<y_0afh*t_1*x_0e9h>")
//	inv, _ := a.Inverse()
//	b, _ := a.Mul(inv)
//	eq, _ := b.Equal(g.Identity()) // true
//
// Multiplication concatenates words and immediately rewrites runs of
// atoms from the subgroup N_0 into a local normal form, so products stay
// short. Questions the local form cannot answer, equality, order and
// membership in the large subgroup G_x0, are decided against a
// precomputed order vector in the representation modulo 15 (see the
// oracle package).
//
// The heavy mod-15, Leech-lattice and Mathieu-group arithmetic is not
// implemented here; it enters through the kernel.Kernel interface, so
// any conforming computational kernel can back a Group.
package monster

import (
	"github.com/blang/semver/v4"
)

// Version of the module.
var Version = semver.MustParse("0.1.0")
