package presenter

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/facelog-go/domain/screen"
)

// ScreenView renders the control bar and the reviewed photo.
type ScreenView interface {
	SetControls(Controls)
	ShowReview(png []byte, caption string)
	ClearReview()
}

// PreviewLoader turns a photo URI into display-sized PNG bytes.
type PreviewLoader interface {
	Load(path string, w, h int) ([]byte, error)
}

// ScreenPresenter receives controller state changes on any goroutine and
// flushes the latest one to the view on Tick.
type ScreenPresenter struct {
	view   ScreenView
	loader PreviewLoader
	logger *slog.Logger
	stat   func(string) (os.FileInfo, error)

	previewW, previewH int

	mu       sync.Mutex
	pending  *screen.State
	rendered bool
	latest   screen.State
	shownURI string
}

func NewScreenPresenter(view ScreenView, loader PreviewLoader, logger *slog.Logger, previewW, previewH int) *ScreenPresenter {
	return &ScreenPresenter{view: view, loader: loader, logger: logger, stat: os.Stat, previewW: previewW, previewH: previewH}
}

// OnState queues a transitioned state from the controller listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *ScreenPresenter) OnState(_, next screen.State) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = &next
	p.mu.Unlock()
}

// Tick renders the most recent queued state, if it differs from the last one.
func (p *ScreenPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	st := p.pending
	p.pending = nil
	p.mu.Unlock()
	if st == nil {
		return
	}
	if p.rendered && sameRender(p.latest, *st) {
		return
	}
	p.rendered = true
	p.latest = *st
	p.view.SetControls(ControlsFor(*st))

	if st.UI != screen.StateReviewPhoto || st.Preview == nil {
		if p.shownURI != "" {
			p.shownURI = ""
			p.view.ClearReview()
		}
		return
	}
	if st.Preview.URI == p.shownURI {
		return
	}
	p.shownURI = st.Preview.URI
	p.showReview(st.Preview.URI, now)
}

func (p *ScreenPresenter) showReview(uri string, now time.Time) {
	var png []byte
	if p.loader != nil {
		b, err := p.loader.Load(uri, p.previewW, p.previewH)
		if err != nil && p.logger != nil {
			p.logger.Warn("preview load failed", "uri", uri, "error", err)
		}
		png = b
	}
	p.view.ShowReview(png, p.caption(uri, now))
}

// caption formats "<size>, taken <age>" for a photo file.
func (p *ScreenPresenter) caption(uri string, now time.Time) string {
	if p.stat == nil {
		return ""
	}
	fi, err := p.stat(uri)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s, taken %s", humanize.Bytes(uint64(fi.Size())), humanize.RelTime(fi.ModTime(), now, "ago", "from now"))
}

func sameRender(a, b screen.State) bool {
	if a.UI != b.UI || a.CapturingPhoto != b.CapturingPhoto || a.SavingPhoto != b.SavingPhoto || a.CameraSettings != b.CameraSettings {
		return false
	}
	if (a.Preview == nil) != (b.Preview == nil) {
		return false
	}
	return a.Preview == nil || a.Preview.URI == b.Preview.URI
}
