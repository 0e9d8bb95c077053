package view

import (
	"context"
	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

type promptRequest struct{ reply chan bool }

// PermissionDialog asks the user for camera access in a modal-style window.
// Ask may be called from any goroutine; the window itself is opened by Pump
// on the Tk thread.
type PermissionDialog struct {
	logger   *slog.Logger
	requests chan promptRequest
	win      *ToplevelWidget
	current  *promptRequest
}

func NewPermissionDialog(logger *slog.Logger) *PermissionDialog {
	return &PermissionDialog{logger: logger, requests: make(chan promptRequest, 1)}
}

// Ask blocks until the user answers or ctx is done.
func (d *PermissionDialog) Ask(ctx context.Context) (bool, error) {
	req := promptRequest{reply: make(chan bool, 1)}
	select {
	case d.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-req.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Pump opens the dialog for a pending request. Call from the Tk thread.
func (d *PermissionDialog) Pump() {
	if d == nil || d.win != nil {
		return
	}
	select {
	case req := <-d.requests:
		d.open(req)
	default:
	}
}

func (d *PermissionDialog) open(req promptRequest) {
	d.current = &req
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Camera access")
	d.win = win
	msg := win.Label(Txt("Allow facelog to use the camera?"), Padx("2m"), Pady("2m"))
	Grid(msg, Row(0), Column(0), Columnspan(2), Sticky("we"))
	allow := win.Button(Txt("Allow [Enter]"), Command(func() { d.answer(true) }))
	Grid(allow, Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	deny := win.Button(Txt("Deny [Esc]"), Command(func() { d.answer(false) }))
	Grid(deny, Row(1), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(func() { d.answer(true) }))
	Bind(win, "<Escape>", Command(func() { d.answer(false) }))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", func() { d.answer(false) })
}

func (d *PermissionDialog) answer(ok bool) {
	if d.current != nil {
		d.current.reply <- ok
		d.current = nil
	}
	if d.logger != nil {
		d.logger.Debug("permission dialog answered", "allowed", ok)
	}
	if d.win != nil {
		Destroy(d.win)
		d.win = nil
	}
}
