package source

import (
	"slices"
)

// StringID is a handle to an interned identifier.
type StringID uint32

// NoStringID is the handle of the empty string.
const NoStringID StringID = 0

// Interner deduplicates identifier text so AST nodes and the execution
// context can compare names by handle.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the handle of s, adding it on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// копия, чтобы не держать исходный буфер файла
	cpy := string([]byte(s))
	id := StringID(len(i.byID)) //nolint:gosec // bounded by number of identifiers
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the handle of s without interning it.
func (i *Interner) Find(s string) (StringID, bool) {
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the text for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len counts interned strings including NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings indexed by handle.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
