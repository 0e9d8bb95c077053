package view

import (
	"log/slog"

	"github.com/soocke/facelog-go/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const controlColumns = 7

// Handlers are the user actions wired by the app.
type Handlers struct {
	Close   func()
	Flash   func()
	Facing  func()
	Capture func()
	Grid    func()
	Undo    func()
	Accept  func()
	Guides  GuidesHandlers
}

// RootView composes the top-level camera screen layout. It implements the
// presenter view contracts and forwards to its subviews.
type RootView struct {
	logger *slog.Logger

	// Subviews
	Status  StatusBar
	Preview Preview
	Guides  GuidesPanel
	Dialog  *PermissionDialog

	// Widgets
	message *LabelWidget
	buttons map[string]*ButtonWidget
}

// UI abstracts the view operations needed by presenters.
type UI interface {
	presenter.ScreenView
	presenter.ViewfinderView
	presenter.NoticeView
	presenter.GuidesView
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger, buttons: make(map[string]*ButtonWidget), Dialog: NewPermissionDialog(logger)}
}

// Build constructs the layout: status row, preview, message, control bar and
// guides panel.
func (rv *RootView) Build(h Handlers, previewW, previewH int) {
	if rv == nil {
		return
	}
	rv.Status = NewStatusBar(nil, 0, controlColumns)
	rv.Preview = NewPreview(1, controlColumns, previewW, previewH)
	rv.message = Label(Txt(""), Anchor("center"))
	Grid(rv.message, Row(2), Column(0), Columnspan(controlColumns), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	bar := Frame()
	Grid(bar, Row(3), Column(0), Columnspan(controlColumns), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	for i, b := range []struct {
		id string
		fn func()
	}{
		{"close", h.Close},
		{"flash", h.Flash},
		{"facing", h.Facing},
		{"capture", h.Capture},
		{"grid", h.Grid},
		{"undo", h.Undo},
		{"accept", h.Accept},
	} {
		fn := b.fn
		if fn == nil {
			fn = func() {}
		}
		btn := Button(Txt(" "), Width(12), Command(fn))
		Grid(btn, In(bar), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		btn.Configure(State("disabled"))
		rv.buttons[b.id] = btn
	}

	rv.Guides = NewGuidesPanel(h.Guides, rv.logger)
	rv.Guides.Build(4)
}

// SetControls renders the control bar view model.
func (rv *RootView) SetControls(c presenter.Controls) {
	if rv == nil || rv.message == nil {
		return
	}
	rv.message.Configure(Txt(c.Message))
	rv.setButton("close", c.Close)
	rv.setButton("flash", c.Flash)
	rv.setButton("facing", c.Facing)
	rv.setButton("capture", c.Capture)
	rv.setButton("grid", c.Grid)
	rv.setButton("undo", c.Undo)
	rv.setButton("accept", c.Accept)
	if rv.Guides != nil {
		if c.Guides {
			rv.Guides.SetHint("Alignment guides (x,y %)")
		} else {
			rv.Guides.SetHint("Alignment guides hidden")
		}
	}
}

func (rv *RootView) setButton(id string, s presenter.ButtonState) {
	btn := rv.buttons[id]
	if btn == nil {
		return
	}
	label := s.Label
	if label == "" {
		label = " "
	}
	state := "disabled"
	if s.Enabled {
		state = "normal"
	}
	btn.Configure(Txt(label), State(state))
}

// ShowReview displays the reviewed photo and its caption.
func (rv *RootView) ShowReview(png []byte, caption string) {
	if rv == nil {
		return
	}
	if rv.Preview != nil {
		rv.Preview.Show(png)
	}
	if rv.Status != nil {
		rv.Status.SetCaption(caption)
	}
}

func (rv *RootView) ClearReview() {
	if rv == nil {
		return
	}
	if rv.Preview != nil {
		rv.Preview.Reset()
	}
	if rv.Status != nil {
		rv.Status.SetCaption("")
	}
}

// UpdateViewfinder proxies to the preview.
func (rv *RootView) UpdateViewfinder(png []byte) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Show(png)
	}
}

func (rv *RootView) ResetViewfinder() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}

func (rv *RootView) SetNotice(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetNotice(text)
	}
}

func (rv *RootView) SetGuidesEditable(b bool) {
	if rv != nil && rv.Guides != nil {
		rv.Guides.SetEditable(b)
	}
}

func (rv *RootView) SetGuideValues(center, eyes, mouth string) {
	if rv != nil && rv.Guides != nil {
		rv.Guides.SetValues(center, eyes, mouth)
	}
}

var _ UI = (*RootView)(nil)
