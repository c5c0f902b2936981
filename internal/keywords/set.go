package keywords

// OrderedSet is a case-insensitive keyword set that remembers discovery order.
// The first spelling added for a key is the one returned by Items.
type OrderedSet struct {
	index map[string]int
	items []string
}

// NewOrderedSet builds a set from the given keyword lists, in order
func NewOrderedSet(lists ...[]string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]int)}
	for _, list := range lists {
		s.AddAll(list)
	}
	return s
}

// Add inserts a keyword and reports whether it was new
func (s *OrderedSet) Add(keyword string) bool {
	key := Key(keyword)
	if key == "" {
		return false
	}
	if _, exists := s.index[key]; exists {
		return false
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, keyword)
	return true
}

// AddAll inserts every keyword in the list
func (s *OrderedSet) AddAll(keywords []string) {
	for _, kw := range keywords {
		s.Add(kw)
	}
}

// Contains reports whether an equivalent keyword is in the set
func (s *OrderedSet) Contains(keyword string) bool {
	_, ok := s.index[Key(keyword)]
	return ok
}

// Len returns the number of distinct keywords
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Items returns the keywords in discovery order
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Intersect returns the keywords of s that also appear in other, in s's order
func (s *OrderedSet) Intersect(other *OrderedSet) []string {
	out := make([]string, 0)
	for _, kw := range s.items {
		if other.Contains(kw) {
			out = append(out, kw)
		}
	}
	return out
}

// Difference returns the keywords of s missing from other, in s's order
func (s *OrderedSet) Difference(other *OrderedSet) []string {
	out := make([]string, 0)
	for _, kw := range s.items {
		if !other.Contains(kw) {
			out = append(out, kw)
		}
	}
	return out
}
