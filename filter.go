// Package filter provides a generic, order-preserving slice filter.
package filter

// Filter returns a new slice containing only the elements of input for which
// predicate returns true, in their original order.
//
// The predicate is called exactly once per element, in index order, and every
// element is visited regardless of earlier results. input is never written to,
// including any capacity beyond its length. The result is never nil and never
// shares a backing array with input.
func Filter[S ~[]T, T any](predicate func(T) bool, input S) S {
	result := make(S, 0, len(input))
	for _, item := range input {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}
