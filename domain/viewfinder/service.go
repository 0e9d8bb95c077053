package viewfinder

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/facelog-go/capture"
)

const (
	statsLogInterval  = 5 * time.Second
	defaultInterval   = 100 * time.Millisecond
	errorBackoffLimit = 2 * time.Second
)

// Service grabs frames at a fixed interval while running and keeps only the
// freshest one. Use NewService to construct an instance.
type Service struct {
	grab     capture.Grabber
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	regionFn func() *image.Rectangle
	stop     chan struct{}
	wg       sync.WaitGroup

	running      atomic.Bool
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewService builds a stopped viewfinder. A nil grab uses the screen grabber;
// a non-positive interval uses 100ms.
func NewService(logger *slog.Logger, grab capture.Grabber, interval time.Duration) *Service {
	if grab == nil {
		grab = capture.ScreenGrabber
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{grab: grab, interval: interval, logger: logger}
}

// SetRegionProvider installs a function returning the area to grab. Nil or an
// empty rectangle means the full screen.
func (s *Service) SetRegionProvider(fn func() *image.Rectangle) {
	s.mu.Lock()
	s.regionFn = fn
	s.mu.Unlock()
}

func (s *Service) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *Service) Running() bool { return s.running.Load() }

func (s *Service) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return Stats{
		Captures:       captures,
		Skipped:        s.skipped.Load(),
		AvgCapture:     avg,
		LastCapture:    snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
	}
}

// Start launches the grab loop. Calling Start on a running service is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return
	}
	s.running.Store(true)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.stop)
}

// Stop ends the grab loop and waits for it to exit. The last frame is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running.Load() {
		s.mu.Unlock()
		return
	}
	s.running.Store(false)
	close(s.stop)
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Service) region() *image.Rectangle {
	s.mu.Lock()
	fn := s.regionFn
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn()
}

func (s *Service) loop(stop <-chan struct{}) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.running.Store(false)
			if s.logger != nil {
				s.logger.Error("viewfinder panic", "error", r)
			}
		}
	}()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	lastStats := time.Now()
	failures := 0
	for {
		start := time.Now()
		img, err := s.grab(s.region())
		if err != nil || img == nil {
			s.skipped.Add(1)
			failures++
			if err != nil && s.logger != nil && failures == 1 {
				s.logger.Warn("viewfinder grab", "error", err)
			}
		} else {
			failures = 0
			s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
			s.captures.Add(1)
			seq := s.sequence.Add(1)
			s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
		}

		if time.Since(lastStats) >= statsLogInterval {
			lastStats = time.Now()
			s.logStats()
		}

		wait := ticker.C
		if failures > 1 {
			backoff := s.interval * time.Duration(failures)
			if backoff > errorBackoffLimit {
				backoff = errorBackoffLimit
			}
			select {
			case <-stop:
				return
			case <-time.After(backoff):
			}
			continue
		}
		select {
		case <-stop:
			return
		case <-wait:
		}
	}
}

func (s *Service) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("viewfinder.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}

var _ ServiceContract = (*Service)(nil)
