// Package slicex provides generic helpers for filtering, searching and
// splitting slices.
//
// Package: slicex
// Title: Slice Utilities
// Description: A small set of functional helpers used by the tokenizer's
//              query functions and the history store. All functions treat a
//              nil slice or nil predicate as empty and never modify their input.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive slice utilities
// - 2026-10-19 v0.2.0: Reduced to the search and partition helpers in use
//
// Usage:
//   flags, positionals := slicex.Partition(args, func(a Argument) bool {
//     return a.IsFlag()
//   })
package slicex
