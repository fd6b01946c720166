package domain

// Intner is the source of randomness the domain pickers draw from.
type Intner interface {
	IntN(n int) int
}

// Weight pairs a value with its relative weight.
type Weight[T any] struct {
	Value  T
	Weight int
}

// Weighted picks values in proportion to their weights.
type Weighted[T any] struct {
	items []Weight[T]
	total int
}

// NewWeighted builds a picker. Non-positive weights are ignored.
func NewWeighted[T any](items ...Weight[T]) Weighted[T] {
	w := Weighted[T]{}
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		w.items = append(w.items, it)
		w.total += it.Weight
	}
	return w
}

// Pick returns a value drawn in proportion to its weight.
func (w Weighted[T]) Pick(r Intner) T {
	n := r.IntN(w.total)
	for _, it := range w.items {
		if n < it.Weight {
			return it.Value
		}
		n -= it.Weight
	}
	return w.items[len(w.items)-1].Value
}

// Total returns the sum of the weights.
func (w Weighted[T]) Total() int {
	return w.total
}
