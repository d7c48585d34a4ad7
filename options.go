// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import "log/slog"

// Option configures a FrameBuilder during construction.
//
// Example:
//
//	fb := framedefer.NewFrameBuilder(queue, clip, w, h, roots, light,
//	    framedefer.WithArenaChunkSize(1<<16))
type Option func(*frameBuilderOptions)

// frameBuilderOptions holds optional configuration for FrameBuilder
// construction.
type frameBuilderOptions struct {
	arenaChunkSize int
	logger         *slog.Logger
}

func defaultOptions() frameBuilderOptions {
	return frameBuilderOptions{
		arenaChunkSize: defaultArenaChunkSize,
	}
}

// WithArenaChunkSize sets the chunk size recorded by the FrameBuilder's
// Arena. The Arena keeps it for bookkeeping only; it does not change how
// or how often the Arena allocates.
func WithArenaChunkSize(n int) Option {
	return func(o *frameBuilderOptions) {
		if n > 0 {
			o.arenaChunkSize = n
		}
	}
}

// WithLogger overrides the package-level logger for this FrameBuilder
// only, without affecting framedefer.Logger() globally.
func WithLogger(l *slog.Logger) Option {
	return func(o *frameBuilderOptions) {
		o.logger = l
	}
}
