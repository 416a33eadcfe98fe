package collections

// Apply applies the applicator function to each item in the input slice.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

// Filter returns the items for which keep returns true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// Find returns the first item matching the predicate.
func Find[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}

	var zero T
	return zero, false
}

// Any reports whether at least one item matches the predicate.
func Any[T any](items []T, match func(T) bool) bool {
	_, ok := Find(items, match)
	return ok
}
