// Package error provides structured error handling for the cmdline toolkit.
//
// Package: error
// Title: Structured Error Handling
// Description: This package implements a structured error type with codes,
//              severities, details and stack traces. The tokenizer itself never
//              returns errors; the error type is used for contract violations in
//              the scan cursor and by the configuration, storage and server
//              layers built on top of it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Reduced code set to the tokenizer, config, storage and server domains
//
// Usage:
//   import mdwerror "github.com/msto63/cmdline/foundation/core/error"
//
//   err := mdwerror.New("history entry not found").
//     WithCode(mdwerror.CodeNotFound).
//     WithDetail("id", id)
//
//   wrapped := mdwerror.Wrap(err, "failed to load history").
//     WithOperation("history.Get")
//
//   if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
//     // handle missing entries
//   }
package error
