// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     inspector
// Description: Message types for async operations in the inspector
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package inspector

import (
	"github.com/msto63/cmdline/internal/history/store"
)

// recordedMsg is sent when the current line was written to history
type recordedMsg struct {
	entry *store.Entry
	err   error
}
