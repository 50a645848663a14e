package testutils

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// Record is a captured log line.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// RecordingHandler is a slog.Handler that keeps every record in memory.
type RecordingHandler struct {
	mu      *sync.Mutex
	records *[]Record
	attrs   []slog.Attr
	group   string
}

// NewRecordingLogger returns a logger writing to a fresh RecordingHandler.
func NewRecordingLogger(t *testing.T) (*slog.Logger, *RecordingHandler) {
	t.Helper()
	h := &RecordingHandler{mu: &sync.Mutex{}, records: &[]Record{}}
	return slog.New(h), h
}

func (h *RecordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *RecordingHandler) Handle(_ context.Context, r slog.Record) error {
	rec := Record{Level: r.Level, Message: r.Message, Attrs: make(map[string]any)}
	for _, a := range h.attrs {
		rec.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[h.group+a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, rec)
	return nil
}

func (h *RecordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.group + a.Key, Value: a.Value})
	}
	return &next
}

// WithGroup qualifies later attribute keys as "group.key".
func (h *RecordingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.group + name + "."
	return &next
}

// Records returns a copy of everything logged so far.
func (h *RecordingHandler) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Record(nil), *h.records...)
}

// Count returns how many records were logged at level.
func (h *RecordingHandler) Count(level slog.Level) int {
	n := 0
	for _, r := range h.Records() {
		if r.Level == level {
			n++
		}
	}
	return n
}
