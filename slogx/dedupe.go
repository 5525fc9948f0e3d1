package slogx

import (
	"context"
	"log/slog"
)

var _ slog.Handler = (*DedupeHandler)(nil)

// DedupeHandler replaces attributes with the same key instead of repeating them.
// A test logger already carries "test" and "location", so a test calling With("test", ...) again replaces the value rather than logging it twice.
//
// Keys are tracked with their group prefix, so "a" and "group.a" are different keys.
type DedupeHandler struct {
	group string
	keys  map[string]int // keys maps a prefixed key to its index in attrs.
	attrs []slog.Attr
	impl  slog.Handler
}

// NewDedupeHandler wraps impl in a [DedupeHandler].
// Passing a nil handler will panic.
func NewDedupeHandler(impl slog.Handler) *DedupeHandler {
	if impl == nil {
		panic("nil implementing handler")
	}
	return &DedupeHandler{
		keys: map[string]int{},
		impl: impl,
	}
}

func (h *DedupeHandler) prefix() string {
	if len(h.group) == 0 {
		return ""
	}
	return h.group + "."
}

func (h *DedupeHandler) clone() *DedupeHandler {
	keys := make(map[string]int, len(h.keys))
	for k, v := range h.keys {
		keys[k] = v
	}
	attrs := make([]slog.Attr, len(h.attrs))
	copy(attrs, h.attrs)
	return &DedupeHandler{
		group: h.group,
		keys:  keys,
		attrs: attrs,
		impl:  h.impl,
	}
}

func (h *DedupeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.impl.Enabled(ctx, level)
}

// Handle merges the record's attributes into the handler's, so record attributes win over earlier ones with the same key.
func (h *DedupeHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.NumAttrs() > 0 {
		attrs := make([]slog.Attr, 0, record.NumAttrs())
		record.Attrs(func(attr slog.Attr) bool {
			attrs = append(attrs, attr)
			return true
		})
		record = slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		h = h.WithAttrs(attrs).(*DedupeHandler)
	}
	return h.impl.WithAttrs(h.attrs).Handle(ctx, record)
}

func (h *DedupeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	cp := h.clone()
	prefix := cp.prefix()
	for _, attr := range attrs {
		attr.Key = prefix + attr.Key
		if i, ok := cp.keys[attr.Key]; ok {
			cp.attrs[i] = attr
			continue
		}
		cp.keys[attr.Key] = len(cp.attrs)
		cp.attrs = append(cp.attrs, attr)
	}
	return cp
}

func (h *DedupeHandler) WithGroup(name string) slog.Handler {
	if len(name) == 0 {
		return h
	}
	cp := h.clone()
	cp.group = cp.prefix() + name
	return cp
}

// Dedupe wraps a logger's handler in a [DedupeHandler], unless it's already wrapped.
func Dedupe(log *slog.Logger) *slog.Logger {
	if _, ok := log.Handler().(*DedupeHandler); ok {
		return log
	}
	return slog.New(NewDedupeHandler(log.Handler()))
}
