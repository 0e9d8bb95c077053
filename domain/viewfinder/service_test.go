package viewfinder

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeGrabber struct {
	mu      sync.Mutex
	regions []*image.Rectangle
	err     error
}

func (f *fakeGrabber) grab(region *image.Rectangle) (*image.RGBA, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regions = append(f.regions, region)
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (f *fakeGrabber) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.regions)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", what)
}

func TestService_ProducesFramesWhileRunning(t *testing.T) {
	g := &fakeGrabber{}
	s := NewService(discardLogger, g.grab, time.Millisecond)
	if s.Running() {
		t.Fatalf("new service should be stopped")
	}
	s.Start()
	s.Start()
	waitFor(t, "three frames", func() bool { return s.LatestFrame().Sequence >= 3 })
	s.Stop()
	if s.Running() {
		t.Fatalf("service still running after Stop")
	}
	n := g.calls()
	time.Sleep(10 * time.Millisecond)
	if g.calls() != n {
		t.Fatalf("grabber called after Stop")
	}
	snap := s.LatestFrame()
	if snap.Image == nil || snap.CapturedAt.IsZero() {
		t.Fatalf("last frame not retained: %+v", snap)
	}
	st := s.Stats()
	if st.Captures < 3 || st.Sequence != snap.Sequence {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestService_UsesRegionProvider(t *testing.T) {
	g := &fakeGrabber{}
	s := NewService(discardLogger, g.grab, time.Millisecond)
	want := image.Rect(10, 10, 50, 50)
	s.SetRegionProvider(func() *image.Rectangle { return &want })
	s.Start()
	waitFor(t, "first grab", func() bool { return g.calls() > 0 })
	s.Stop()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.regions[0] == nil || *g.regions[0] != want {
		t.Fatalf("grab region = %v, want %v", g.regions[0], want)
	}
}

func TestService_CountsFailuresAsSkipped(t *testing.T) {
	g := &fakeGrabber{err: errors.New("no display")}
	s := NewService(discardLogger, g.grab, time.Millisecond)
	s.Start()
	waitFor(t, "skipped frames", func() bool { return s.Stats().Skipped >= 2 })
	s.Stop()
	if s.LatestFrame().Image != nil {
		t.Fatalf("expected no frame on failing grabber")
	}
}

func TestService_RestartAfterStop(t *testing.T) {
	g := &fakeGrabber{}
	s := NewService(nil, g.grab, time.Millisecond)
	s.Start()
	waitFor(t, "frame", func() bool { return s.LatestFrame().Sequence >= 1 })
	s.Stop()
	seq := s.LatestFrame().Sequence
	s.Start()
	defer s.Stop()
	waitFor(t, "new frame", func() bool { return s.LatestFrame().Sequence > seq })
}
