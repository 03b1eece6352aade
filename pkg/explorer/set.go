package explorer

// OrderedSet keeps insertion order while deduplicating. The action
// classifier relies on "added at most once, consumed exactly once"
// being explicit operations rather than a side effect of map iteration.
type OrderedSet[T comparable] struct {
	order []T
	seen  map[T]struct{}
}

func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{seen: make(map[T]struct{})}
}

// Add inserts v unless it is already present.
func (s *OrderedSet[T]) Add(v T) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.seen[v]
	return ok
}

// Remove consumes v, preserving the order of the rest.
func (s *OrderedSet[T]) Remove(v T) {
	if _, ok := s.seen[v]; !ok {
		return
	}
	delete(s.seen, v)
	for i, existing := range s.order {
		if existing == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Values returns the members in insertion order.
func (s *OrderedSet[T]) Values() []T {
	values := make([]T, len(s.order))
	copy(values, s.order)
	return values
}

func (s *OrderedSet[T]) Len() int {
	return len(s.order)
}
