package solver

type set[T comparable] map[T]struct{}

func newSet[T comparable](items []T) set[T] {
	s := make(set[T], len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

func (s set[T]) has(v T) bool {
	_, ok := s[v]
	return ok
}

func filter[T any](items []T, keep func(T) bool) (out []T) {
	for _, v := range items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return
}

// Intersect returns the elements of b that also appear in a, in b's order.
func Intersect[T comparable](a, b []T) []T {
	return filter(b, newSet(a).has)
}

// Complement returns the elements of b missing from a, in b's order.
func Complement[T comparable](a, b []T) []T {
	in := newSet(a)
	return filter(b, func(v T) bool { return !in.has(v) })
}
