package model

import (
	"image"
	"sync"

	"github.com/soocke/facelog-go/domain/project"
)

// Guide names one of the three alignment markers.
type Guide int

const (
	GuideCenter Guide = iota
	GuideEyes
	GuideMouth
)

func (g Guide) String() string {
	switch g {
	case GuideCenter:
		return "center"
	case GuideEyes:
		return "eyes"
	case GuideMouth:
		return "mouth"
	default:
		return "unknown"
	}
}

// GuideModel holds the alignment guide positions being edited, in percent of
// the frame. Values are clamped to 0..100. Methods are nil-safe.
type GuideModel struct {
	mu     sync.Mutex
	pos    project.AlignmentGuidePositions
	seeded bool
}

func NewGuideModel(p project.AlignmentGuidePositions) *GuideModel {
	m := &GuideModel{}
	m.Reset(p)
	return m
}

// Seeded reports whether positions have been loaded.
func (m *GuideModel) Seeded() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seeded
}

// Reset replaces all positions.
func (m *GuideModel) Reset(p project.AlignmentGuidePositions) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.pos = project.AlignmentGuidePositions{Center: clampPct(p.Center), Eyes: clampPct(p.Eyes), Mouth: clampPct(p.Mouth)}
	m.seeded = true
	m.mu.Unlock()
}

// Set moves one guide to an absolute position and reports whether it changed.
func (m *GuideModel) Set(g Guide, pt image.Point) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dst := m.slot(g)
	if dst == nil {
		return false
	}
	pt = clampPct(pt)
	if *dst == pt {
		return false
	}
	*dst = pt
	return true
}

// Move shifts one guide by (dx, dy) and reports whether it changed.
func (m *GuideModel) Move(g Guide, dx, dy int) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	dst := m.slot(g)
	if dst == nil {
		m.mu.Unlock()
		return false
	}
	next := dst.Add(image.Pt(dx, dy))
	m.mu.Unlock()
	return m.Set(g, next)
}

func (m *GuideModel) Positions() project.AlignmentGuidePositions {
	if m == nil {
		return project.DefaultGuides()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

func (m *GuideModel) slot(g Guide) *image.Point {
	switch g {
	case GuideCenter:
		return &m.pos.Center
	case GuideEyes:
		return &m.pos.Eyes
	case GuideMouth:
		return &m.pos.Mouth
	}
	return nil
}

func clampPct(p image.Point) image.Point {
	c := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 100 {
			return 100
		}
		return v
	}
	return image.Pt(c(p.X), c(p.Y))
}
