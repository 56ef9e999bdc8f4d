package buffer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogger installs a debug-level text logger writing to the returned
// buffer and restores the previous logger when the test ends.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("size", 4)}).(nopHandler); !ok {
		t.Error("WithAttrs should return a nopHandler")
	}
	if _, ok := h.WithGroup("buffer").(nopHandler); !ok {
		t.Error("WithGroup should return a nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLogger(t)
	custom := Logger()

	r := NewRecordBuffer(MustLayout(F("p", Float32Vec2)), WithCapacity(1))
	r.Push()
	r.Push()
	if Logger() != custom {
		t.Error("Logger() did not return the logger set via SetLogger")
	}
	if !strings.Contains(buf.String(), "buffer: reallocate") {
		t.Errorf("record growth should reach the custom logger, got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	buf := captureLogger(t)
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
	NewByteBuffer(0).PushFloat64(1)
	if buf.Len() != 0 {
		t.Errorf("reallocation logged after SetLogger(nil): %s", buf.String())
	}
}

func TestReallocationLogsDebug(t *testing.T) {
	buf := captureLogger(t)

	b := NewByteBuffer(2)
	b.PushFloat32(1)

	out := buf.String()
	if !strings.Contains(out, "buffer: reallocate") || !strings.Contains(out, "from=2") || !strings.Contains(out, "to=4") {
		t.Errorf("expected reallocation record, got: %s", out)
	}

	buf.Reset()
	b.PushUint8(1)
	NewFaceBuffer(0).Push(0, 1, 2)
	if got := strings.Count(buf.String(), "reallocate"); got != 2 {
		t.Errorf("logged %d reallocations, want 2: %s", got, buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	// Concurrent readers.
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			// Exercise the logger; must not panic.
			l.Debug("concurrent read")
		}()
	}

	// Concurrent writers.
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}

	wg.Wait()
}

func BenchmarkLoggerLoad(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		l := Logger()
		_ = l
	}
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("buffer: reallocate", "from", 16, "to", 32)
	}
}
