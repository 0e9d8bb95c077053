package app

import (
	"context"
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/facelog-go/ui/presenter"
	"github.com/soocke/facelog-go/ui/view"
)

const (
	tick = 100 * time.Millisecond
)

type app struct {
	c       *AppContainer
	afterID string
	closed  bool
}

// NewApp configures the Tk root window for the container.
func NewApp(title string, c *AppContainer) *app {
	a := &app{c: c}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", c.Config.WindowWidth, c.Config.WindowHeight))
	return a
}

// Start builds the layout, mounts the screen and runs the Tk event loop until
// the window closes or the screen navigates back.
func (a *app) Start(ctx context.Context) {
	c := a.c
	previewW, previewH := PreviewSize(c.Config)
	c.RootView.Build(view.Handlers{
		Close:   c.Nav.GoBack,
		Flash:   c.Screen.CycleFlashMode,
		Facing:  c.Screen.ToggleCameraType,
		Capture: c.Screen.TakePhoto,
		Grid:    c.Screen.ToggleGrid,
		Undo:    c.Screen.RedoPhoto,
		Accept:  c.Screen.SavePhoto,
		Guides: view.GuidesHandlers{
			Apply: c.OverlayPresenter.Apply,
			Nudge: c.OverlayPresenter.Nudge,
		},
	}, previewW, previewH)
	c.Loop = presenter.NewLoop(c.ScreenPresenter, c.OverlayPresenter, c.ViewfinderPresenter, c.NoticePresenter, a.scheduleUpdate)

	c.Screen.Mount(ctx)
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) update() {
	defer func() {
		if r := recover(); r != nil && a.c.Logger != nil {
			a.c.Logger.Error("ui tick panic", "error", r)
			a.scheduleUpdate()
		}
	}()
	a.c.RootView.Dialog.Pump()
	if a.c.Nav.Left() {
		a.exitHandler()
		return
	}
	a.c.Loop.Tick()
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.Close()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}
