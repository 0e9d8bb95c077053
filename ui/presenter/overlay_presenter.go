package presenter

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync"

	"github.com/soocke/facelog-go/domain/project"
	"github.com/soocke/facelog-go/domain/screen"
	"github.com/soocke/facelog-go/ui/images"
	"github.com/soocke/facelog-go/ui/model"
)

// OverlaySource exposes the overlay props published by the controller.
type OverlaySource interface{ Overlay() screen.OverlayProps }

// GuidesView is the editable guides panel.
type GuidesView interface {
	SetGuidesEditable(bool)
	SetGuideValues(center, eyes, mouth string)
}

var errBadPoint = errors.New("expected x,y")

// OverlayPresenter owns the guide geometry the controller does not keep. It
// seeds the model from the project's stored guides and forwards every edit to
// the controller's change sink.
type OverlayPresenter struct {
	src   OverlaySource
	sink  screen.OverlaySink
	model *model.GuideModel
	view  GuidesView

	mu         sync.Mutex
	lastSource project.AlignmentGuidePositions
	haveSource bool
	visible    bool
	movable    bool
}

func NewOverlayPresenter(src OverlaySource, sink screen.OverlaySink, m *model.GuideModel, view GuidesView) *OverlayPresenter {
	if m == nil {
		m = &model.GuideModel{}
	}
	return &OverlayPresenter{src: src, sink: sink, model: m, view: view}
}

// Tick reseeds the model when the stored guides change and toggles the panel.
func (p *OverlayPresenter) Tick() {
	if p == nil || p.src == nil {
		return
	}
	props := p.src.Overlay()
	p.mu.Lock()
	reseed := !p.haveSource || props.Positions != p.lastSource
	if reseed {
		p.lastSource = props.Positions
		p.haveSource = true
	}
	changedVis := props.Visible != p.visible
	p.visible = props.Visible
	p.movable = props.Movable
	p.mu.Unlock()

	if reseed {
		p.model.Reset(props.Positions)
		p.refresh()
	}
	if changedVis && p.view != nil {
		p.view.SetGuidesEditable(props.Visible && props.Movable)
	}
}

// Markers returns the guides to draw and whether the overlay is visible.
func (p *OverlayPresenter) Markers() ([]images.Marker, bool) {
	if p == nil {
		return nil, false
	}
	p.mu.Lock()
	visible := p.visible
	p.mu.Unlock()
	pos := p.model.Positions()
	return []images.Marker{
		{Pct: pos.Center, Color: images.CenterColor},
		{Pct: pos.Eyes, Color: images.EyesColor},
		{Pct: pos.Mouth, Color: images.MouthColor},
	}, visible
}

// Apply parses "x,y" values for the three guides and forwards the result.
func (p *OverlayPresenter) Apply(center, eyes, mouth string) error {
	if p == nil {
		return nil
	}
	if !p.editable() {
		return nil
	}
	var pts [3]image.Point
	for i, s := range []string{center, eyes, mouth} {
		pt, err := ParsePoint(s)
		if err != nil {
			return fmt.Errorf("%s: %w", model.Guide(i), err)
		}
		pts[i] = pt
	}
	changed := false
	for i, pt := range pts {
		if p.model.Set(model.Guide(i), pt) {
			changed = true
		}
	}
	p.refresh()
	if changed {
		p.forward()
	}
	return nil
}

// Nudge moves one guide by (dx, dy) percent and forwards the result.
func (p *OverlayPresenter) Nudge(g model.Guide, dx, dy int) {
	if p == nil || !p.editable() {
		return
	}
	if p.model.Move(g, dx, dy) {
		p.refresh()
		p.forward()
	}
}

func (p *OverlayPresenter) editable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible && p.movable
}

func (p *OverlayPresenter) forward() {
	if p.sink != nil {
		p.sink.AlignmentGuidesChanged(p.model.Positions())
	}
}

func (p *OverlayPresenter) refresh() {
	if p.view == nil {
		return
	}
	pos := p.model.Positions()
	p.view.SetGuideValues(FormatPoint(pos.Center), FormatPoint(pos.Eyes), FormatPoint(pos.Mouth))
}

// FormatPoint renders a point as "x,y".
func FormatPoint(pt image.Point) string { return fmt.Sprintf("%d,%d", pt.X, pt.Y) }

// ParsePoint parses "x,y" with optional surrounding spaces.
func ParsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return image.Point{}, errBadPoint
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, errBadPoint
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, errBadPoint
	}
	return image.Pt(x, y), nil
}
