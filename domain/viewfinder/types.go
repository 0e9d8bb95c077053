package viewfinder

import (
	"image"
	"time"
)

// FrameSnapshot carries the latest viewfinder frame and metadata.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Stats summarises viewfinder loop behaviour for instrumentation.
type Stats struct {
	Captures       uint64
	Skipped        uint64
	AvgCapture     time.Duration
	LastCapture    time.Time
	LatestFrameAge time.Duration
	Sequence       uint64
}

// FrameSource provides read-only access to viewfinder frames.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Running() bool
}

// ServiceContract exposes lifecycle control for the viewfinder.
type ServiceContract interface {
	FrameSource
	Start()
	Stop()
	SetRegionProvider(func() *image.Rectangle)
	Stats() Stats
}
