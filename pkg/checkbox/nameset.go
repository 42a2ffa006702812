package checkbox

// NameSet is a membership set of checkbox group names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names. Duplicates collapse.
func NewNameSet(names []string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Add inserts name into the set.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is a member.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len reports the number of distinct names.
func (s NameSet) Len() int {
	return len(s)
}
