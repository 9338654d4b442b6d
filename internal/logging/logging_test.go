package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLineHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLineHandler(&buf, slog.LevelInfo))

	logger.Info("request complete")

	if got := buf.String(); got != "INFO: request complete\n" {
		t.Errorf("unexpected log line: %q", got)
	}
}

func TestLineHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLineHandler(&buf, slog.LevelInfo))

	logger.Error("fetch failed", "status", 503)

	want := "ERROR: fetch failed status=503\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLineHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLineHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden at info level")
	if buf.Len() != 0 {
		t.Errorf("debug record should be suppressed, got %q", buf.String())
	}

	verbose := slog.New(NewLineHandler(&buf, slog.LevelDebug))
	verbose.Debug("visible in verbose mode")

	if !strings.HasPrefix(buf.String(), "DEBUG: visible in verbose mode") {
		t.Errorf("unexpected debug line: %q", buf.String())
	}
}

func TestLineHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewLineHandler(&buf, slog.LevelInfo).WithAttrs([]slog.Attr{slog.String("run", "abc")})

	if err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "hello", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := buf.String(); got != "INFO: hello run=abc\n" {
		t.Errorf("unexpected log line: %q", got)
	}
}
