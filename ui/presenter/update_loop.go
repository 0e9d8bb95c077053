package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Screen     *ScreenPresenter
	Overlay    *OverlayPresenter
	Viewfinder *ViewfinderPresenter
	Notice     *NoticePresenter
	Schedule   func()
}

func NewLoop(screen *ScreenPresenter, overlay *OverlayPresenter, vf *ViewfinderPresenter, notice *NoticePresenter, schedule func()) *Loop {
	return &Loop{Screen: screen, Overlay: overlay, Viewfinder: vf, Notice: notice, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Overlay before viewfinder so frames carry the current guides; viewfinder
	// before screen so a stopping viewfinder cannot clear a fresh review image.
	l.Overlay.Tick()
	l.Viewfinder.Tick()
	l.Screen.Tick(now)
	l.Notice.Tick(now)
	if l.Schedule != nil {
		l.Schedule()
	}
}
