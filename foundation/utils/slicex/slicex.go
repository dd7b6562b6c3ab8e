// File: slicex.go
// Title: Core Slice Utilities
// Description: Implements generic filter, map, search and partition helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive slice utilities
// - 2026-10-19 v0.2.0: Reduced to the search and partition helpers in use

package slicex

// Filter returns a new slice containing only elements that match the predicate
func Filter[T any](slice []T, predicate func(T) bool) []T {
	if slice == nil || predicate == nil {
		return nil
	}

	result := make([]T, 0, len(slice))
	for _, item := range slice {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// Map transforms each element in the slice using the provided function
func Map[T, R any](slice []T, mapper func(T) R) []R {
	if slice == nil || mapper == nil {
		return nil
	}

	result := make([]R, len(slice))
	for i, item := range slice {
		result[i] = mapper(item)
	}
	return result
}

// Find returns the first element matching the predicate
func Find[T any](slice []T, predicate func(T) bool) (T, bool) {
	var zero T
	if predicate == nil {
		return zero, false
	}

	for _, item := range slice {
		if predicate(item) {
			return item, true
		}
	}
	return zero, false
}

// Some checks if at least one element matches the predicate
func Some[T any](slice []T, predicate func(T) bool) bool {
	_, ok := Find(slice, predicate)
	return ok
}

// Count returns the number of elements matching the predicate
func Count[T any](slice []T, predicate func(T) bool) int {
	if predicate == nil {
		return 0
	}

	n := 0
	for _, item := range slice {
		if predicate(item) {
			n++
		}
	}
	return n
}

// Partition splits the slice into matching and non-matching elements,
// each keeping the original relative order.
func Partition[T any](slice []T, predicate func(T) bool) ([]T, []T) {
	if slice == nil || predicate == nil {
		return nil, nil
	}

	var matched, rest []T
	for _, item := range slice {
		if predicate(item) {
			matched = append(matched, item)
		} else {
			rest = append(rest, item)
		}
	}
	return matched, rest
}

// Take returns at most the first n elements
func Take[T any](slice []T, n int) []T {
	if n <= 0 || slice == nil {
		return nil
	}
	if n >= len(slice) {
		return slice
	}
	return slice[:n]
}
