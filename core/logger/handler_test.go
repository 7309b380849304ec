package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(t *testing.T, format logFormat) (*slog.Logger, *safeBuffer, func()) {
	t.Helper()
	buf := &safeBuffer{}
	writer := newAsyncWriter([]io.Writer{buf}, 64*1024)
	handler := newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: writer,
		format: format,
	})
	cleanup := func() {
		_ = writer.Flush()
		_ = writer.Close()
	}
	return slog.New(handler), buf, cleanup
}

func TestHandlerKVOrdering(t *testing.T) {
	logg, buf, cleanup := newTestLogger(t, formatKV)
	defer cleanup()

	logg.LogAttrs(context.Background(), slog.LevelInfo, "",
		slog.String("event", "record_saved"),
		slog.String("component", "svc.categories"),
		slog.String("collection", "category"),
		slog.String("status", "ok"),
	)
	cleanup()

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line")
	}
	idxLevel := strings.Index(line, "level=")
	idxComponent := strings.Index(line, "component=")
	idxEvent := strings.Index(line, "event=")
	idxStatus := strings.Index(line, "status=")
	idxCollection := strings.Index(line, "collection=")
	if idxLevel < 0 || idxComponent < 0 || idxEvent < 0 || idxStatus < 0 || idxCollection < 0 {
		t.Fatalf("missing keys in line: %s", line)
	}
	if !(idxLevel < idxComponent && idxComponent < idxEvent && idxEvent < idxStatus && idxStatus < idxCollection) {
		t.Fatalf("unexpected key order: %s", line)
	}
}

func TestHandlerJSONFields(t *testing.T) {
	logg, buf, cleanup := newTestLogger(t, formatJSON)
	defer cleanup()

	ctx := WithRID(context.Background(), BuildRID(1001, 55, 42))
	ctx = WithUserID(ctx, 42)
	logg.LogAttrs(ctx, slog.LevelInfo, "",
		slog.String("event", "update_handled"),
		slog.Duration("duration", 1500*time.Microsecond),
	)
	cleanup()

	var fields map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &fields); err != nil {
		t.Fatalf("invalid json line: %v", err)
	}
	if fields["event"] != "update_handled" {
		t.Fatalf("event = %v", fields["event"])
	}
	if fields["rid"] != "rt.1j.16" {
		t.Fatalf("rid = %v, want base36 compaction", fields["rid"])
	}
	if fields["rid_full"] != "1001:55:42" {
		t.Fatalf("rid_full = %v", fields["rid_full"])
	}
	if fields["user_id"] != float64(42) {
		t.Fatalf("user_id = %v", fields["user_id"])
	}
	if fields["duration_ms"] != float64(2) {
		t.Fatalf("duration_ms = %v, want rounded 2", fields["duration_ms"])
	}
	if fields["component"] != "app" {
		t.Fatalf("component = %v, want default app", fields["component"])
	}
}

func TestHandlerDropsInvalidOutcome(t *testing.T) {
	logg, buf, cleanup := newTestLogger(t, formatKV)
	defer cleanup()

	logg.LogAttrs(context.Background(), slog.LevelWarn, "",
		slog.String("event", "dispatch"),
		slog.String("outcome", "banana"),
	)
	cleanup()

	if strings.Contains(buf.String(), "outcome=") {
		t.Fatalf("invalid outcome should be dropped: %s", buf.String())
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 4)
	allowed := 0
	for i := 0; i < 400; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 100 {
		t.Fatalf("allowed = %d, want 100", allowed)
	}

	s.Set(0, 0)
	if s.Allow() {
		t.Fatal("zero ratio must reject")
	}
}

func TestParseRatioSpec(t *testing.T) {
	cases := []struct {
		spec string
		num  int
		den  int
	}{
		{"", 1, 50},
		{"off", 0, 0},
		{"all", 1, 1},
		{"1/10", 1, 10},
		{"3:7", 3, 7},
		{"garbage", 1, 50},
	}
	for _, tc := range cases {
		num, den := parseRatioSpec(tc.spec)
		if num != tc.num || den != tc.den {
			t.Errorf("parseRatioSpec(%q) = %d/%d, want %d/%d", tc.spec, num, den, tc.num, tc.den)
		}
	}
}
