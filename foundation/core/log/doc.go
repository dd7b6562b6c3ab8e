// Package log provides structured logging for the cmdline toolkit.
//
// Package: log
// Title: Structured Logging Framework
// Description: This package implements a structured logger with contextual
//              fields, log levels, several output formats and integration with
//              the foundation error type. Loggers are immutable: every With*
//              call returns a configured copy.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Removed async buffering and user context, sorted field output
// - 2026-10-19 v0.2.1: Default logger writes text to stderr, dropped global helpers
//
// Usage:
//   import mdwlog "github.com/msto63/cmdline/foundation/core/log"
//
//   logger := mdwlog.NewWithConfig(mdwlog.Config{Format: mdwlog.FormatText, Output: os.Stderr}).
//     WithLevel(mdwlog.LevelInfo).
//     WithField("component", "tokenizer")
//   mdwlog.SetDefault(logger)
//
//   logger.Info("command line parsed", mdwlog.Fields{
//     "arguments": 3,
//     "flags":     1,
//   })
//
//   timer := logger.StartTimer("parse")
//   // ... tokenize
//   timer.Stop()
package log
