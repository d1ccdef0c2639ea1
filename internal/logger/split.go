// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"context"
	"errors"
	"log/slog"
)

// splitHandler fans records out to a file handler and a stderr handler that
// may use different levels and formats.
type splitHandler struct {
	file   slog.Handler
	stderr slog.Handler
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.file.Enabled(ctx, level) || h.stderr.Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	if h.file.Enabled(ctx, r.Level) {
		errs = append(errs, h.file.Handle(ctx, r.Clone()))
	}
	if h.stderr.Enabled(ctx, r.Level) {
		errs = append(errs, h.stderr.Handle(ctx, r.Clone()))
	}
	return errors.Join(errs...)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{file: h.file.WithAttrs(attrs), stderr: h.stderr.WithAttrs(attrs)}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{file: h.file.WithGroup(name), stderr: h.stderr.WithGroup(name)}
}
