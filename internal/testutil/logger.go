// Package testutil provides logging helpers for tests.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a debug logger that writes to t.Log, so output only
// shows for failing tests or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	logger, _ := NewRecordingLogger(t)
	return logger
}

// NewRecordingLogger is NewTestLogger that also keeps every record for
// assertions.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *Recorder) {
	t.Helper()
	rec := &Recorder{t: t}
	return slog.New(recordingHandler{rec: rec}), rec
}

// Recorder collects log records. Safe for concurrent use.
type Recorder struct {
	t       testing.TB
	mu      sync.Mutex
	records []slog.Record
}

// Messages returns the messages logged at level or above, in order.
func (r *Recorder) Messages(level slog.Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var msgs []string
	for _, rec := range r.records {
		if rec.Level >= level {
			msgs = append(msgs, rec.Message)
		}
	}
	return msgs
}

// Count returns how many records carry msg.
func (r *Recorder) Count(msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Message == msg {
			n++
		}
	}
	return n
}

// Attr returns the value of key on the first record carrying msg.
func (r *Recorder) Attr(msg, key string) (slog.Value, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Message != msg {
			continue
		}
		var (
			val   slog.Value
			found bool
		)
		rec.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				val, found = a.Value, true
				return false
			}
			return true
		})
		return val, found
	}
	return slog.Value{}, false
}

type recordingHandler struct {
	rec   *Recorder
	attrs []slog.Attr
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(h.attrs...)

	h.rec.mu.Lock()
	h.rec.records = append(h.rec.records, r)
	h.rec.mu.Unlock()

	var buf bytes.Buffer
	if err := slog.NewTextHandler(&buf, nil).Handle(ctx, r); err != nil {
		return err
	}
	h.rec.t.Log(buf.String())
	return nil
}

func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return recordingHandler{rec: h.rec, attrs: merged}
}

// Groups are flattened; tests only match on messages and top-level keys.
func (h recordingHandler) WithGroup(string) slog.Handler { return h }
