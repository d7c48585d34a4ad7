// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

// defaultArenaChunkSize is the default allocation granularity for an
// Arena's backing chunks.
const defaultArenaChunkSize = 1 << 14 // 16 KiB

// Arena is a scoped bump allocator. It owns every value created through
// it for the lifetime of one FrameBuilder build: there is no individual
// free, only whole-arena release when the build finishes and the Arena
// is dropped. This mirrors hwui's LinearAllocator, which backs a single
// FrameBuilder invocation and is discarded frame over frame.
//
// Arena is not safe for concurrent use; a single build is
// single-threaded (§5).
type Arena struct {
	chunkSize int
	objects   []any
}

// NewArena creates an Arena that allocates in chunkSize-sized batches.
// chunkSize is advisory bookkeeping only — Go's own allocator does the
// real work — but it is retained as a tunable so FrameBuilder can be
// configured the way the original's LinearAllocator was.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = defaultArenaChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// Create allocates a zero-valued T owned by the arena and returns a
// pointer to it. There is no Arena.Free: everything the arena owns is
// released together when the FrameBuilder that owns the arena is
// dropped.
func Create[T any](a *Arena) *T {
	v := new(T)
	a.objects = append(a.objects, v)
	return v
}

// Count returns the number of values allocated through the arena. It
// exists for tests that want to assert on allocation pressure without
// reaching into FrameBuilder internals.
func (a *Arena) Count() int {
	return len(a.objects)
}
