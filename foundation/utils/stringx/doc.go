// Package stringx provides Unicode-aware string helpers.
//
// Package: stringx
// Title: String Utilities
// Description: Blank checks, optional case-insensitive comparison, rune-safe
//              truncation and quoting helpers shared by the tokenizer, the
//              renderers and the command line tools.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-19 v0.2.0: Reduced to comparison, truncation and quoting helpers
//
// Usage:
//   if stringx.Equal(arg, "verbose", true) { ... }
//   cell := stringx.Truncate(value, 40, "…")
package stringx
