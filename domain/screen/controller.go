package screen

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/facelog-go/domain/camera"
	"github.com/soocke/facelog-go/domain/project"
)

// Options tune the asynchronous calls issued by the controller. Zero values
// disable the timeouts.
type Options struct {
	CaptureTimeout time.Duration
	PersistTimeout time.Duration
}

type snapshot struct {
	state   State
	overlay OverlayProps
}

// Controller is the camera screen state machine. All state lives on a single
// event-loop goroutine; public methods only enqueue events.
type Controller struct {
	logger *slog.Logger
	nav    Navigator
	perms  camera.PermissionRequester
	store  project.Store
	opts   Options

	// owned by the loop goroutine
	state            State
	device           camera.Device
	project          *project.Project
	mounted          bool
	ctx              context.Context
	seq              [fieldCount]uint64
	lanes            [2]writeLane
	listeners        []StateListener
	outcomeListeners []OutcomeListener

	snap      atomic.Pointer[snapshot]
	events    chan interface{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewController constructs the controller and starts its event loop. The
// screen stays in StateAskingForPermission until Mount is called.
func NewController(logger *slog.Logger, nav Navigator, perms camera.PermissionRequester, store project.Store, opts Options) *Controller {
	c := &Controller{
		logger: logger,
		nav:    nav,
		perms:  perms,
		store:  store,
		opts:   opts,
		state:  State{UI: StateAskingForPermission, CameraSettings: camera.DefaultSettings()},
		ctx:    context.Background(),
		events: make(chan interface{}, 64),
		done:   make(chan struct{}),
	}
	c.publish()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger != nil {
					logger.Error("screen controller panic", "error", r, "stack", string(debug.Stack()))
				}
			}
		}()
		c.loop()
	}()
	return c
}

// events
type (
	evtMount              struct{ ctx context.Context }
	evtAttachDevice       struct{ d camera.Device }
	evtDetachDevice       struct{}
	evtTakePhoto          struct{}
	evtRedoPhoto          struct{}
	evtSavePhoto          struct{}
	evtSaveDone           struct{ err error }
	evtMutateSettings     struct{ field SettingsField }
	evtGuidesChanged      struct{ pos project.AlignmentGuidePositions }
	evtAddListener        struct{ l StateListener }
	evtAddOutcomeListener struct{ l OutcomeListener }
	evtPermission struct {
		status camera.PermissionStatus
		err    error
	}
	evtCaptureDone struct {
		photo camera.Photo
		err   error
	}
	evtPersisted struct {
		field SettingsField
		seq   uint64
		err   error
	}
)

func (c *Controller) loop() {
	for {
		select {
		case ev := <-c.events:
			c.handle(ev)
		case <-c.done:
			return
		}
	}
}

func (c *Controller) handle(ev interface{}) {
	switch e := ev.(type) {
	case evtAddListener:
		c.listeners = append(c.listeners, e.l)
	case evtAddOutcomeListener:
		c.outcomeListeners = append(c.outcomeListeners, e.l)
	case evtAttachDevice:
		c.device = e.d
	case evtDetachDevice:
		c.device = nil
	case evtMount:
		c.handleMount(e.ctx)
	case evtPermission:
		c.handlePermission(e.status, e.err)
	case evtTakePhoto:
		c.handleTakePhoto()
	case evtCaptureDone:
		c.handleCaptureDone(e.photo, e.err)
	case evtRedoPhoto:
		c.redo()
	case evtSavePhoto:
		c.handleSavePhoto()
	case evtSaveDone:
		c.handleSaveDone(e.err)
	case evtMutateSettings:
		c.handleMutateSettings(e.field)
	case evtGuidesChanged:
		c.handleGuidesChanged(e.pos)
	case evtPersisted:
		c.handlePersisted(e.field, e.seq, e.err)
	}
}

func (c *Controller) handleMount(ctx context.Context) {
	if c.mounted {
		return
	}
	c.mounted = true
	if ctx != nil {
		c.ctx = ctx
	}
	if c.perms == nil {
		c.handlePermission(camera.PermissionDenied, nil)
		return
	}
	perms, reqCtx := c.perms, c.ctx
	go func() {
		status, err := camera.PermissionUndetermined, errPanicked
		defer func() { c.post(evtPermission{status: status, err: err}) }()
		defer recoverLog(c.logger, "permission request panic")
		status, err = perms.RequestCameraPermission(reqCtx)
	}()
}

func (c *Controller) handlePermission(status camera.PermissionStatus, err error) {
	if c.state.UI != StateAskingForPermission {
		return
	}
	if err != nil || status != camera.PermissionGranted {
		next := c.state
		next.UI = StateNoPermission
		c.setState(next)
		c.emit(Outcome{Kind: OutcomePermissionDenied, Err: err})
		return
	}
	next := c.state
	next.UI = StateCapturePhoto
	c.setState(next)
	c.hydrate()
}

// hydrate applies the project's stored settings and skips ahead to review
// when the date already has a photo.
func (c *Controller) hydrate() {
	var params Params
	if c.nav != nil {
		params = c.nav.Params()
	}
	if params.Project == nil {
		return
	}
	c.project = params.Project
	next := c.state
	next.CameraSettings = params.Project.CameraSettings
	if ph, ok := params.Project.PhotoFor(params.DateString); ok {
		next.Preview = &ph
		next.UI = StateReviewPhoto
	}
	c.setState(next)
}

func (c *Controller) handleTakePhoto() {
	if c.state.UI != StateCapturePhoto || c.state.CapturingPhoto {
		return
	}
	dev := c.device
	if dev == nil {
		if c.logger != nil {
			c.logger.Debug("capture skipped", "error", ErrNoDevice)
		}
		return
	}
	next := c.state
	next.CapturingPhoto = true
	c.setState(next)

	settings := c.state.CameraSettings
	ctx, cancel := c.opCtx(c.opts.CaptureTimeout)
	go func() {
		var photo camera.Photo
		err := errPanicked
		defer func() {
			cancel()
			if r := recover(); r != nil && c.logger != nil {
				c.logger.Error("capture panic", "error", r)
			}
			c.post(evtCaptureDone{photo: photo, err: err})
		}()
		photo, err = dev.TakePicture(ctx, settings)
	}()
}

func (c *Controller) handleCaptureDone(photo camera.Photo, err error) {
	next := c.state
	next.CapturingPhoto = false
	if err == nil && next.UI == StateCapturePhoto {
		next.Preview = &photo
		next.UI = StateReviewPhoto
	}
	c.setState(next)
	if err != nil {
		c.emit(Outcome{Kind: OutcomeCaptureFailed, Err: err})
	}
}

// redo is ignored while a save is in flight; the save's result decides
// whether the screen returns to capture.
func (c *Controller) redo() {
	if c.state.UI != StateCapturePhoto && c.state.UI != StateReviewPhoto {
		return
	}
	if c.state.SavingPhoto {
		return
	}
	next := c.state
	next.Preview = nil
	next.UI = StateCapturePhoto
	c.setState(next)
}

func (c *Controller) handleSavePhoto() {
	if c.state.UI != StateCapturePhoto && c.state.UI != StateReviewPhoto {
		return
	}
	if c.state.SavingPhoto {
		return
	}
	if c.state.Preview == nil || c.store == nil {
		c.redo()
		return
	}
	var params Params
	if c.nav != nil {
		params = c.nav.Params()
	}
	name := params.ProjectName
	if name == "" && params.Project != nil {
		name = params.Project.Name
	}
	req := project.SavePhotoRequest{ProjectName: name, DateKey: params.DateString, PhotoURI: c.state.Preview.URI}

	next := c.state
	next.SavingPhoto = true
	c.setState(next)

	store := c.store
	ctx, cancel := c.opCtx(c.opts.PersistTimeout)
	go func() {
		err := errPanicked
		defer func() {
			cancel()
			if r := recover(); r != nil && c.logger != nil {
				c.logger.Error("photo save panic", "error", r)
			}
			c.post(evtSaveDone{err: err})
		}()
		err = store.SavePhoto(ctx, req)
	}()
}

func (c *Controller) handleSaveDone(err error) {
	if err != nil {
		next := c.state
		next.SavingPhoto = false
		if next.UI == StateReviewPhoto {
			next.Preview = nil
			next.UI = StateCapturePhoto
		}
		c.setState(next)
		c.emit(Outcome{Kind: OutcomeSaveFailed, Err: err})
		return
	}
	// SavingPhoto stays set: the screen is leaving and must not save twice.
	c.emit(Outcome{Kind: OutcomePhotoSaved})
	if c.nav != nil {
		c.nav.GoBack()
	}
}

func (c *Controller) handleMutateSettings(field SettingsField) {
	if c.state.UI != StateCapturePhoto {
		return
	}
	next := c.state
	switch field {
	case FieldFlashMode:
		next.CameraSettings.FlashMode = next.CameraSettings.FlashMode.Next()
	case FieldCameraType:
		next.CameraSettings.Type = next.CameraSettings.Type.Toggled()
	case FieldShowGrid:
		next.CameraSettings.ShowGrid = !next.CameraSettings.ShowGrid
	default:
		return
	}
	c.setState(next)

	if c.project == nil || c.store == nil {
		if c.logger != nil {
			c.logger.Debug("settings not persisted: no project", "field", field.String())
		}
		return
	}
	req := project.SaveSettingsRequest{Project: c.project, CameraSettings: next.CameraSettings}
	store := c.store
	c.dispatch(field, func(ctx context.Context) error { return store.SaveCameraSettings(ctx, req) })
}

func (c *Controller) handleGuidesChanged(pos project.AlignmentGuidePositions) {
	if c.state.UI != StateCapturePhoto || !c.state.CameraSettings.ShowGrid {
		return
	}
	if c.project == nil || c.store == nil {
		return
	}
	req := project.SaveGuidesRequest{Project: c.project, AlignmentGuidePositions: pos}
	store := c.store
	c.dispatch(FieldGuides, func(ctx context.Context) error { return store.SaveAlignmentGuidePositions(ctx, req) })
}

// writeLane runs persistence calls in dispatch order. Settings writes all
// carry the full CameraSettings, so flash, type and grid share a lane.
type writeLane struct {
	mu     sync.Mutex
	cond   *sync.Cond
	issued uint64
	next   uint64
}

// ticket reserves the next slot. Called on the loop goroutine.
func (l *writeLane) ticket() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cond == nil {
		l.cond = sync.NewCond(&l.mu)
	}
	t := l.issued
	l.issued++
	return t
}

func (l *writeLane) wait(t uint64) {
	l.mu.Lock()
	for l.next != t {
		l.cond.Wait()
	}
	l.mu.Unlock()
}

func (l *writeLane) release() {
	l.mu.Lock()
	l.next++
	l.cond.Broadcast()
	l.mu.Unlock()
}

func laneFor(field SettingsField) int {
	if field == FieldGuides {
		return 1
	}
	return 0
}

// dispatch fires a persistence call without waiting for it. Calls on a lane
// reach the store one at a time in dispatch order, so the last value stored
// is the last one dispatched. The per-field sequence number lets
// handlePersisted ignore results of superseded writes.
func (c *Controller) dispatch(field SettingsField, call func(context.Context) error) {
	c.seq[field]++
	seq := c.seq[field]
	lane := &c.lanes[laneFor(field)]
	t := lane.ticket()
	ctx, cancel := c.opCtx(c.opts.PersistTimeout)
	go func() {
		err := errPanicked
		defer func() {
			cancel()
			c.post(evtPersisted{field: field, seq: seq, err: err})
		}()
		lane.wait(t)
		defer lane.release()
		defer recoverLog(c.logger, "persist panic")
		err = call(ctx)
	}()
}

func (c *Controller) handlePersisted(field SettingsField, seq uint64, err error) {
	if err == nil {
		return
	}
	if seq != c.seq[field] {
		if c.logger != nil {
			c.logger.Debug("stale persist failure ignored", "field", field.String(), "seq", seq)
		}
		return
	}
	c.emit(Outcome{Kind: OutcomePersistFailed, Field: field, Err: err})
}

// opCtx derives a context for an async call. Unmounting does not cancel it.
func (c *Controller) opCtx(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(c.ctx)
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}

func (c *Controller) setState(next State) {
	prev := c.state
	c.state = next
	c.publish()
	if prev.equal(next) {
		return
	}
	if c.logger != nil && prev.UI != next.UI {
		c.logger.Debug("screen state transition", "from", prev.UI.String(), "to", next.UI.String())
	}
	p, n := prev.clone(), next.clone()
	for _, l := range c.listeners {
		l(p, n)
	}
}

func (c *Controller) publish() {
	overlay := OverlayProps{Positions: project.DefaultGuides(), Movable: true}
	if c.project != nil {
		overlay.Positions = c.project.AlignmentGuides
	}
	overlay.Visible = c.state.UI == StateCapturePhoto && c.state.CameraSettings.ShowGrid
	c.snap.Store(&snapshot{state: c.state.clone(), overlay: overlay})
}

func (c *Controller) emit(o Outcome) {
	if c.logger != nil {
		if o.Failed() {
			c.logger.Warn("screen outcome", "kind", o.Kind.String(), "field", o.Field.String(), "error", o.Err)
		} else {
			c.logger.Info("screen outcome", "kind", o.Kind.String())
		}
	}
	for _, l := range c.outcomeListeners {
		l(o)
	}
}

// post enqueues an event unless the screen has been closed.
func (c *Controller) post(ev interface{}) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

// Public API implements contracts
func (c *Controller) Mount(ctx context.Context)            { c.post(evtMount{ctx: ctx}) }
func (c *Controller) AttachDevice(d camera.Device)         { c.post(evtAttachDevice{d: d}) }
func (c *Controller) DetachDevice()                        { c.post(evtDetachDevice{}) }
func (c *Controller) TakePhoto()                           { c.post(evtTakePhoto{}) }
func (c *Controller) RedoPhoto()                           { c.post(evtRedoPhoto{}) }
func (c *Controller) SavePhoto()                           { c.post(evtSavePhoto{}) }
func (c *Controller) CycleFlashMode()                      { c.post(evtMutateSettings{field: FieldFlashMode}) }
func (c *Controller) ToggleCameraType()                    { c.post(evtMutateSettings{field: FieldCameraType}) }
func (c *Controller) ToggleGrid()                          { c.post(evtMutateSettings{field: FieldShowGrid}) }
func (c *Controller) AddListener(l StateListener)          { c.post(evtAddListener{l: l}) }
func (c *Controller) AddOutcomeListener(l OutcomeListener) { c.post(evtAddOutcomeListener{l: l}) }
func (c *Controller) AlignmentGuidesChanged(pos project.AlignmentGuidePositions) {
	c.post(evtGuidesChanged{pos: pos})
}

// Current returns the latest published state.
func (c *Controller) Current() State { return c.snap.Load().state.clone() }

// Overlay returns the latest published overlay props.
func (c *Controller) Overlay() OverlayProps { return c.snap.Load().overlay }

// Close unmounts the screen. Late completions of in-flight calls are dropped.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// recoverLog must be deferred directly; recover is a no-op otherwise.
func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}

// Ensure contract satisfaction
var _ ControllerContract = (*Controller)(nil)
