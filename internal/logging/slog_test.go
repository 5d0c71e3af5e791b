package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		level string
		log   func(l *SlogLogger)
	}{
		{"DEBUG", func(l *SlogLogger) { l.Debug(ctx, "msg") }},
		{"INFO", func(l *SlogLogger) { l.Info(ctx, "msg") }},
		{"WARN", func(l *SlogLogger) { l.Warn(ctx, "msg") }},
		{"ERROR", func(l *SlogLogger) { l.Error(ctx, "msg") }},
	} {
		l, buf := newBufLogger(t)
		tc.log(l)
		rec := lastRecord(t, buf)
		require.Equal(t, tc.level, rec["level"])
		require.Equal(t, "msg", rec["msg"])
	}
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	l, buf := newBufLogger(t)

	child := l.With("component", "transfer")
	child.Info(context.Background(), "upload finished", "size", 42)

	rec := lastRecord(t, buf)
	require.Equal(t, "transfer", rec["component"])
	require.Equal(t, float64(42), rec["size"])
}
