package view

import (
	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the transient notice and the reviewed photo caption.
type StatusBar interface {
	SetNotice(text string)
	SetCaption(text string)
}

type statusBar struct {
	noticeLbl  *LabelWidget
	captionLbl *LabelWidget
}

// NewStatusBar creates the notice label at (row, 0) and the caption label at
// (row, cols-1). If parent is nil, labels are positioned relative to the App root.
func NewStatusBar(parent *FrameWidget, row, cols int) StatusBar {
	s := &statusBar{noticeLbl: Label(Width(36), Anchor("w")), captionLbl: Label(Width(30), Anchor("e"))}
	last := cols - 1
	if last < 1 {
		last = 1
	}
	if parent != nil {
		Grid(s.noticeLbl, In(parent), Row(row), Column(0), Columnspan(last), Sticky("w"), Padx("0.2m"))
		Grid(s.captionLbl, In(parent), Row(row), Column(last), Sticky("e"), Padx("0.2m"))
	} else {
		Grid(s.noticeLbl, Row(row), Column(0), Columnspan(last), Sticky("w"), Padx("0.2m"))
		Grid(s.captionLbl, Row(row), Column(last), Sticky("e"), Padx("0.2m"))
	}
	return s
}

func (s *statusBar) SetNotice(text string) {
	if s == nil || s.noticeLbl == nil {
		return
	}
	s.noticeLbl.Configure(Txt(text))
}

func (s *statusBar) SetCaption(text string) {
	if s == nil || s.captionLbl == nil {
		return
	}
	s.captionLbl.Configure(Txt(text))
}
