package logging

import (
	"context"
	"log/slog"
)

// ContextProvider supplies attributes evaluated at handle time. The
// engine wires one that stamps records with the current tick count.
type ContextProvider func() []slog.Attr

// ContextHandler decorates a handler with per-record provider attributes.
type ContextHandler struct {
	wrapped  slog.Handler
	provider ContextProvider
}

func NewContextHandler(wrapped slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{wrapped: wrapped, provider: provider}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.wrapped.Enabled(ctx, level)
}

// Handle appends the provider's attributes before delegating.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.wrapped.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{wrapped: h.wrapped.WithAttrs(attrs), provider: h.provider}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{wrapped: h.wrapped.WithGroup(name), provider: h.provider}
}
