package gacha

import "sort"

// CategorySet is the set of categories currently active for filtering
type CategorySet map[string]struct{}

func NewCategorySet(categories ...string) CategorySet {
	set := make(CategorySet, len(categories))
	for _, category := range categories {
		set[category] = struct{}{}
	}
	return set
}

func (s CategorySet) Contains(category string) bool {
	_, ok := s[category]
	return ok
}

// Equal reports whether both sets hold the same categories
func (s CategorySet) Equal(other CategorySet) bool {
	if len(s) != len(other) {
		return false
	}
	for category := range s {
		if !other.Contains(category) {
			return false
		}
	}
	return true
}

// Sorted lists the set following order; categories missing from order are
// appended alphabetically.
func (s CategorySet) Sorted(order []string) []string {
	seen := make(map[string]bool, len(s))
	list := make([]string, 0, len(s))
	for _, category := range order {
		if s.Contains(category) && !seen[category] {
			list = append(list, category)
			seen[category] = true
		}
	}

	var rest []string
	for category := range s {
		if !seen[category] {
			rest = append(rest, category)
		}
	}
	sort.Strings(rest)
	return append(list, rest...)
}

// Toggle returns a new set with category removed if it was active, added
// otherwise. state is left untouched; persisting the result is up to the caller.
func Toggle(state CategorySet, category string) CategorySet {
	next := make(CategorySet, len(state)+1)
	for c := range state {
		next[c] = struct{}{}
	}
	if next.Contains(category) {
		delete(next, category)
	} else {
		next[category] = struct{}{}
	}
	return next
}
