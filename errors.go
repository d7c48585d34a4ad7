// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import "fmt"

// panicf panics with a formatted diagnostic; callers put the
// "framedefer:" prefix in format themselves. It is
// used exclusively for the fatal programming errors enumerated in §7
// (unbalanced save/restore, unbalanced save-layer pairs) — never for
// quick-reject, which is expected and silent.
func panicf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
