package atom

// Subgroup is a named set of allowed generator tags, used to validate
// that a word truly lies in a claimed subgroup of the monster.
type Subgroup uint8

const (
	// SubgroupNx0 is N_x0 = N_0 ∩ G_x0, generated by the d, p, x and y
	// families.
	SubgroupNx0 Subgroup = 1<<TagD | 1<<TagP | 1<<TagX | 1<<TagY

	// SubgroupN0 is N_0, the subgroup with known finite structure whose
	// runs of atoms are rewritten into local normal form.
	SubgroupN0 Subgroup = SubgroupNx0 | 1<<TagT

	// SubgroupGx0 is G_x0, the large subgroup reachable through the
	// lattice-mod-2 geometry.
	SubgroupGx0 Subgroup = SubgroupNx0 | 1<<TagL

	// SubgroupM is the whole group.
	SubgroupM Subgroup = SubgroupN0 | SubgroupGx0
)

// Contains reports whether the tag belongs to the subgroup's generator
// set.
func (s Subgroup) Contains(t Tag) bool {
	return t.Valid() && s&(1<<t) != 0
}

// ContainsWord reports whether every atom of the packed word is drawn
// from the subgroup's generator set.
func (s Subgroup) ContainsWord(data []uint32) bool {
	for _, u := range data {
		if !s.Contains(Atom(u).Tag()) {
			return false
		}
	}
	return true
}

// String returns the conventional name of the subgroup.
func (s Subgroup) String() string {
	switch s {
	case SubgroupNx0:
		return "N_x0"
	case SubgroupN0:
		return "N_0"
	case SubgroupGx0:
		return "G_x0"
	case SubgroupM:
		return "M"
	}
	return "subgroup(?)"
}
