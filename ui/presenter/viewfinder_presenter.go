package presenter

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/soocke/facelog-go/domain/camera"
	"github.com/soocke/facelog-go/domain/screen"
	"github.com/soocke/facelog-go/domain/viewfinder"
	"github.com/soocke/facelog-go/ui/images"
)

// ViewfinderView shows live frames.
type ViewfinderView interface {
	UpdateViewfinder(png []byte)
	ResetViewfinder()
}

// GuideMarkers supplies the overlay to draw on live frames.
type GuideMarkers interface {
	Markers() ([]images.Marker, bool)
}

// ViewfinderPresenter runs the live preview only while the screen is
// capturing and pushes new frames to the view.
type ViewfinderPresenter struct {
	service   viewfinder.ServiceContract
	view      ViewfinderView
	guides    GuideMarkers
	regionFor func(camera.CameraType) *image.Rectangle
	maxW      int
	maxH      int

	cameraType atomic.Int32

	mu      sync.Mutex
	want    bool
	pending bool

	enabled bool
	lastSeq uint64
}

func NewViewfinderPresenter(service viewfinder.ServiceContract, view ViewfinderView, guides GuideMarkers, regionFor func(camera.CameraType) *image.Rectangle, maxW, maxH int) *ViewfinderPresenter {
	p := &ViewfinderPresenter{service: service, view: view, guides: guides, regionFor: regionFor, maxW: maxW, maxH: maxH}
	if service != nil && regionFor != nil {
		service.SetRegionProvider(func() *image.Rectangle {
			return p.regionFor(camera.CameraType(p.cameraType.Load()))
		})
	}
	return p
}

// OnState records whether frames are wanted. Safe from any goroutine.
func (p *ViewfinderPresenter) OnState(_, next screen.State) {
	if p == nil {
		return
	}
	p.cameraType.Store(int32(next.CameraSettings.Type))
	p.mu.Lock()
	p.want = next.UI == screen.StateCapturePhoto
	p.pending = true
	p.mu.Unlock()
}

// Enable starts the service. Idempotent.
func (p *ViewfinderPresenter) Enable() {
	if p == nil || p.service == nil || p.enabled {
		return
	}
	p.service.Start()
	p.enabled = true
}

// Disable stops the service and resets the view. Idempotent.
func (p *ViewfinderPresenter) Disable() {
	if p == nil || p.service == nil || !p.enabled {
		return
	}
	p.service.Stop()
	p.enabled = false
	if p.view != nil {
		p.view.ResetViewfinder()
	}
}

// Tick applies the wanted running state and pushes the newest frame.
func (p *ViewfinderPresenter) Tick() {
	if p == nil || p.service == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	want, pending := p.want, p.pending
	p.pending = false
	p.mu.Unlock()
	if pending {
		if want {
			p.Enable()
		} else {
			p.Disable()
		}
	}
	if !p.enabled {
		return
	}
	snap := p.service.LatestFrame()
	if snap.Image == nil || snap.Sequence == p.lastSeq {
		return
	}
	p.lastSeq = snap.Sequence
	p.view.UpdateViewfinder(images.EncodePNG(p.render(snap.Image)))
}

func (p *ViewfinderPresenter) render(frame image.Image) image.Image {
	scaled := images.ScaleToFit(frame, p.maxW, p.maxH)
	if p.guides == nil {
		return scaled
	}
	markers, visible := p.guides.Markers()
	if !visible {
		return scaled
	}
	out := images.DrawGuides(scaled, 6, markers...)
	for _, m := range markers[1:] {
		images.HorizontalLine(out, m.Pct.Y, m.Color)
	}
	return out
}
