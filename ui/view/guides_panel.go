package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/facelog-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// GuidesPanel is the alignment guide editor: one "x,y" field per guide, in
// percent of the frame, with nudge buttons and an Apply button.
type GuidesPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	SetValues(center, eyes, mouth string)
	SetHint(text string)
}

// GuidesHandlers receive panel actions.
type GuidesHandlers struct {
	Apply func(center, eyes, mouth string) error
	Nudge func(g model.Guide, dx, dy int)
}

type guidesPanel struct {
	logger   *slog.Logger
	handlers GuidesHandlers
	title    *LabelWidget
	applyBtn *ButtonWidget
	buttons  []*ButtonWidget
	widgets  map[model.Guide]*TextWidget
	editable bool
}

func NewGuidesPanel(h GuidesHandlers, logger *slog.Logger) GuidesPanel {
	return &guidesPanel{handlers: h, logger: logger, widgets: make(map[model.Guide]*TextWidget)}
}

func (v *guidesPanel) Build(startRow int) (row int) {
	row = startRow
	v.title = Label(Txt("Alignment guides (x,y %)"), Anchor("w"))
	Grid(v.title, Row(row), Column(0), Columnspan(4), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	row++
	makeRow := func(g model.Guide, label string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(10))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.widgets[g] = w
		up := Button(Txt("up"), Command(func() { v.nudge(g, 0, -1) }))
		Grid(up, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
		down := Button(Txt("down"), Command(func() { v.nudge(g, 0, 1) }))
		Grid(down, Row(row), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
		v.buttons = append(v.buttons, up, down)
		row++
	}
	makeRow(model.GuideCenter, "Center")
	makeRow(model.GuideEyes, "Eyes")
	makeRow(model.GuideMouth, "Mouth")
	v.applyBtn = Button(Txt("Apply Guides"), Command(func() { v.apply() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.SetEditable(false)
	return row
}

func (v *guidesPanel) SetEditable(enabled bool) {
	v.editable = enabled
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	for _, b := range v.buttons {
		b.Configure(State(state))
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

// SetValues replaces the field contents. Disabled text widgets ignore edits,
// so they are briefly enabled.
func (v *guidesPanel) SetValues(center, eyes, mouth string) {
	for g, val := range map[model.Guide]string{model.GuideCenter: center, model.GuideEyes: eyes, model.GuideMouth: mouth} {
		w := v.widgets[g]
		if w == nil {
			continue
		}
		w.Configure(State("normal"))
		w.Delete("1.0", END)
		w.Insert("1.0", val)
		if !v.editable {
			w.Configure(State("disabled"))
		}
	}
}

func (v *guidesPanel) SetHint(text string) {
	if v.title != nil {
		v.title.Configure(Txt(text))
	}
}

func (v *guidesPanel) text(g model.Guide) string {
	w := v.widgets[g]
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func (v *guidesPanel) apply() {
	if v.handlers.Apply == nil {
		return
	}
	err := v.handlers.Apply(v.text(model.GuideCenter), v.text(model.GuideEyes), v.text(model.GuideMouth))
	if err != nil && v.logger != nil {
		v.logger.Warn("guides not applied", "error", err)
	}
}

func (v *guidesPanel) nudge(g model.Guide, dx, dy int) {
	if v.handlers.Nudge != nil {
		v.handlers.Nudge(g, dx, dy)
	}
}
