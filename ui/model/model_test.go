package model

import (
	"image"
	"testing"
	"time"

	"github.com/soocke/facelog-go/domain/project"
)

func TestGuideModel_SetMoveClamp(t *testing.T) {
	m := NewGuideModel(project.DefaultGuides())
	if !m.Seeded() {
		t.Fatalf("expected seeded model")
	}
	if !m.Move(GuideEyes, 5, -10) {
		t.Fatalf("move should report a change")
	}
	if got := m.Positions().Eyes; got != image.Pt(55, 30) {
		t.Fatalf("eyes = %v", got)
	}
	if !m.Set(GuideMouth, image.Pt(150, -4)) {
		t.Fatalf("set should report a change")
	}
	if got := m.Positions().Mouth; got != image.Pt(100, 0) {
		t.Fatalf("mouth not clamped: %v", got)
	}
	if m.Move(GuideMouth, 10, -10) {
		t.Fatalf("clamped move should report no change")
	}
	if m.Set(Guide(9), image.Pt(1, 1)) {
		t.Fatalf("unknown guide should be ignored")
	}
	if got := m.Positions().Center; got != image.Pt(50, 50) {
		t.Fatalf("center changed unexpectedly: %v", got)
	}
}

func TestGuideModel_NilSafe(t *testing.T) {
	var m *GuideModel
	if m.Seeded() || m.Move(GuideCenter, 1, 1) || m.Set(GuideCenter, image.Pt(1, 1)) {
		t.Fatalf("nil model should be inert")
	}
	m.Reset(project.DefaultGuides())
	if m.Positions() != project.DefaultGuides() {
		t.Fatalf("nil model should report defaults")
	}
}

func TestNoticeModel_Expires(t *testing.T) {
	m := NewNoticeModel()
	base := time.Unix(0, 0)
	if m.Current(base) != "" {
		t.Fatalf("new model should be empty")
	}
	m.Show("Saved", base, 2*time.Second)
	if got := m.Current(base.Add(time.Second)); got != "Saved" {
		t.Fatalf("notice = %q", got)
	}
	m.Show("Save failed", base.Add(time.Second), 2*time.Second)
	if got := m.Current(base.Add(2500 * time.Millisecond)); got != "Save failed" {
		t.Fatalf("replacement notice = %q", got)
	}
	if got := m.Current(base.Add(3 * time.Second)); got != "" {
		t.Fatalf("expected expiry, got %q", got)
	}
}
