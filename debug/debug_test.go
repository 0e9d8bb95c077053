package debug

import (
	"log/slog"
	"runtime"
	"runtime/metrics"
	"testing"
)

func TestGoroutineAttrs(t *testing.T) {
	attrs := goroutineAttrs([]metrics.Sample{{Name: "/sched/goroutines:goroutines"}})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attrs, got %d", len(attrs))
	}
	a, ok := attrs[0].(slog.Attr)
	if !ok || a.Key != "goroutines" || a.Value.Uint64() == 0 {
		t.Fatalf("unexpected goroutine attr %#v", attrs[0])
	}
}

func TestMaxRSS(t *testing.T) {
	rss, err := maxRSS()
	if err != nil {
		t.Skipf("rss unavailable on %s: %v", runtime.GOOS, err)
	}
	if rss == 0 {
		t.Fatalf("expected non-zero rss")
	}
}
