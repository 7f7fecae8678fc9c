package word

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/algebralab/monster/atom"
	"github.com/algebralab/monster/internal/toykernel"
)

func atoms(t *testing.T, s string) []uint32 {
	t.Helper()
	data, err := atom.ParseWord(s)
	require.NoError(t, err)
	return data
}

func TestFromDataValidates(t *testing.T) {
	assert := require.New(t)

	w, err := FromData(atoms(t, "y_1*t_2*d_5h"))
	assert.NoError(err)
	assert.Equal(3, w.Len())
	assert.False(w.IsReduced())

	_, err = FromData([]uint32{0x70000000})
	assert.ErrorIs(err, atom.ErrInvalidAtom)
}

func TestReduceCollapsesRuns(t *testing.T) {
	assert := require.New(t)
	k := toykernel.Kernel{}

	w, err := FromData(atoms(t, "d_1h*d_2h*y_3*y_5*t_1*t_2"))
	assert.NoError(err)
	assert.NoError(w.Reduce(k))
	assert.True(w.IsReduced())
	if diff := cmp.Diff(atoms(t, "y_8*d_3h"), w.Atoms()); diff != "" {
		t.Fatalf("reduced word mismatch (-want +got):\n%s", diff)
	}

	// reducing again is a no-op
	before := w.Atoms()
	assert.NoError(w.Reduce(k))
	assert.Equal(before, w.Atoms())
}

func TestReduceKeepsBarriers(t *testing.T) {
	assert := require.New(t)
	k := toykernel.Kernel{}

	w, err := FromData(atoms(t, "y_1*l_1*y_1"))
	assert.NoError(err)
	assert.NoError(w.Reduce(k))
	assert.Equal(atoms(t, "y_1*l_1*y_1"), w.Atoms())

	// an l run folding to the identity merges the neighbours
	w, err = FromData(atoms(t, "y_1*l_1*l_2*y_1"))
	assert.NoError(err)
	assert.NoError(w.Reduce(k))
	assert.Equal(atoms(t, "y_2"), w.Atoms())
}

func TestConcatReduceNeverGrowsPastSum(t *testing.T) {
	assert := require.New(t)
	k := toykernel.Kernel{}

	w, err := FromData(atoms(t, "t_1*y_2"))
	assert.NoError(err)
	assert.NoError(w.Reduce(k))
	other, err := FromData(atoms(t, "t_2*y_3*p_1"))
	assert.NoError(err)

	sum := w.Len() + other.Len()
	assert.NoError(w.ConcatReduce(k, other))
	assert.LessOrEqual(w.Len(), sum)
	assert.Equal(atoms(t, "y_5*p_1"), w.Atoms())
}

func TestInvertReversesAndFlips(t *testing.T) {
	assert := require.New(t)
	k := toykernel.Kernel{}

	w, err := FromData(atoms(t, "y_1*l_1*x_3"))
	assert.NoError(err)
	assert.NoError(w.Reduce(k))
	inv := w.Clone()
	inv.Invert()
	assert.False(inv.IsReduced())
	assert.Equal(atoms(t, "x_3^-1*l_1^-1*y_1^-1"), inv.Atoms())

	// w * w^-1 reduces to the empty word
	assert.NoError(w.ConcatReduce(k, inv))
	assert.Equal(0, w.Len())
}

func TestSelfConcat(t *testing.T) {
	assert := require.New(t)
	k := toykernel.Kernel{}

	w, err := FromData(atoms(t, "y_1*t_1"))
	assert.NoError(err)
	assert.NoError(w.Reduce(k))
	assert.Equal(atoms(t, "t_1*y_1"), w.Atoms())
	assert.NoError(w.ConcatReduce(k, w))
	assert.Equal(atoms(t, "t_2*y_2"), w.Atoms())
}

func TestCountTagAndIn(t *testing.T) {
	assert := require.New(t)

	w, err := FromData(atoms(t, "t_1*y_2*t_2*l_1"))
	assert.NoError(err)
	assert.Equal(2, w.CountTag(atom.TagT))
	assert.Equal(1, w.CountTag(atom.TagL))
	assert.False(w.In(atom.SubgroupN0))
	assert.True(w.In(atom.SubgroupM))

	w, err = FromData(atoms(t, "y_2*x_1*d_4h*p_9"))
	assert.NoError(err)
	assert.True(w.In(atom.SubgroupNx0))
}

func TestSetDataClearsWatermark(t *testing.T) {
	assert := require.New(t)
	k := toykernel.Kernel{}

	w := New()
	w.SetData(atoms(t, "y_1*y_2"))
	assert.False(w.IsReduced())
	assert.NoError(w.Reduce(k))
	assert.Equal(atoms(t, "y_3"), w.Atoms())
}

func TestFromAtomsAndReset(t *testing.T) {
	assert := require.New(t)

	w := FromAtoms(atom.MustNew(atom.TagY, 5), atom.MustNew(atom.TagT, 1))
	assert.Equal(2, w.Len())
	w.Reset()
	assert.Equal(0, w.Len())
	assert.True(w.IsReduced())
}
