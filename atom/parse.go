package atom

import (
	"fmt"
	"strconv"
	"strings"
)

// ihex renders a value the way words are conventionally printed: lowercase
// hexadecimal with an 'h' suffix, prefixed by '0' when the leading digit
// is a letter.
func ihex(v uint32) string {
	s := strconv.FormatUint(uint64(v), 16)
	if s[0] > '9' {
		s = "0" + s
	}
	return s + "h"
}

// String renders the atom in text form, e.g. "d_5aeh" or "t_2". An
// inverted atom carries the suffix "^-1".
func (a Atom) String() string {
	t := a.Tag()
	if !t.Valid() {
		return fmt.Sprintf("atom(0x%08x)", uint32(a))
	}
	var v string
	switch t {
	case TagT, TagL:
		v = strconv.FormatUint(uint64(a.Value()), 10)
	default:
		v = ihex(a.Value())
	}
	s := t.String() + "_" + v
	if a.Inverted() {
		s += "^-1"
	}
	return s
}

// FormatWord renders a packed word as '*'-joined atoms. The empty word
// renders as "1".
func FormatWord(data []uint32) string {
	if len(data) == 0 {
		return "1"
	}
	parts := make([]string, len(data))
	for i, u := range data {
		parts[i] = Atom(u).String()
	}
	return strings.Join(parts, "*")
}

var tagByLetter = map[byte]Tag{
	'd': TagD, 'p': TagP, 'x': TagX, 'y': TagY, 't': TagT, 'l': TagL,
}

// ParseAtom parses the text form produced by Atom.String.
func ParseAtom(s string) (Atom, error) {
	orig := s
	inverted := false
	if strings.HasSuffix(s, "^-1") {
		inverted = true
		s = s[:len(s)-3]
	}
	if len(s) < 3 || s[1] != '_' {
		return 0, fmt.Errorf("%w: malformed atom %q", ErrInvalidAtom, orig)
	}
	t, ok := tagByLetter[s[0]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown tag in %q", ErrInvalidAtom, orig)
	}
	vs := s[2:]
	base := 10
	if strings.HasSuffix(vs, "h") {
		base = 16
		vs = vs[:len(vs)-1]
	}
	v, err := strconv.ParseUint(vs, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad value in %q", ErrInvalidAtom, orig)
	}
	a, err := New(t, uint32(v))
	if err != nil {
		return 0, err
	}
	if inverted {
		a = a.Inverse()
	}
	return a, nil
}

// ParseWord parses the text form produced by FormatWord. A surrounding
// "M<...>" or "<...>" wrapper is accepted and stripped, so printed group
// elements can be reread.
func ParseWord(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '<'); i >= 0 && strings.HasSuffix(s, ">") {
		s = s[i+1 : len(s)-1]
	}
	if s == "" || s == "1" {
		return nil, nil
	}
	parts := strings.Split(s, "*")
	data := make([]uint32, 0, len(parts))
	for _, p := range parts {
		a, err := ParseAtom(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		data = append(data, uint32(a))
	}
	return data, nil
}
