package screen

import (
	"context"
	"errors"

	"github.com/soocke/facelog-go/domain/camera"
	"github.com/soocke/facelog-go/domain/project"
)

// UiState enumerates the top-level modes of the camera screen.
type UiState int

const (
	StateAskingForPermission UiState = iota
	StateNoPermission
	StateCapturePhoto
	StateReviewPhoto
)

func (s UiState) String() string {
	switch s {
	case StateAskingForPermission:
		return "asking-for-permission"
	case StateNoPermission:
		return "no-permission"
	case StateCapturePhoto:
		return "capture-photo"
	case StateReviewPhoto:
		return "review-photo"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the screen. Preview is non-nil whenever UI
// is StateReviewPhoto.
type State struct {
	UI             UiState
	Preview        *camera.Photo
	CapturingPhoto bool
	SavingPhoto    bool
	CameraSettings camera.Settings
}

func (s State) clone() State {
	if s.Preview != nil {
		p := *s.Preview
		s.Preview = &p
	}
	return s
}

func (s State) equal(o State) bool {
	if s.UI != o.UI || s.CapturingPhoto != o.CapturingPhoto || s.SavingPhoto != o.SavingPhoto || s.CameraSettings != o.CameraSettings {
		return false
	}
	if (s.Preview == nil) != (o.Preview == nil) {
		return false
	}
	return s.Preview == nil || *s.Preview == *o.Preview
}

// Params are the navigation-provided inputs of the screen.
type Params struct {
	Project     *project.Project
	DateString  string
	ProjectName string
}

// Navigator is the routing collaborator. GoBack leaves the screen.
type Navigator interface {
	Params() Params
	GoBack()
}

// OverlayProps is what the alignment overlay needs to render.
type OverlayProps struct {
	Positions project.AlignmentGuidePositions
	Movable   bool
	Visible   bool
}

// SettingsField identifies an independently persisted piece of settings state.
type SettingsField int

const (
	FieldFlashMode SettingsField = iota
	FieldCameraType
	FieldShowGrid
	FieldGuides
	fieldCount
)

func (f SettingsField) String() string {
	switch f {
	case FieldFlashMode:
		return "flash_mode"
	case FieldCameraType:
		return "camera_type"
	case FieldShowGrid:
		return "show_grid"
	case FieldGuides:
		return "alignment_guides"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies results the screen absorbs instead of failing.
type OutcomeKind int

const (
	OutcomePermissionDenied OutcomeKind = iota + 1
	OutcomeCaptureFailed
	OutcomeSaveFailed
	OutcomePersistFailed
	OutcomePhotoSaved
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePermissionDenied:
		return "permission-denied"
	case OutcomeCaptureFailed:
		return "capture-failed"
	case OutcomeSaveFailed:
		return "save-failed"
	case OutcomePersistFailed:
		return "persist-failed"
	case OutcomePhotoSaved:
		return "photo-saved"
	default:
		return "unknown"
	}
}

// Outcome reports the result of an asynchronous operation. Field is only
// meaningful for OutcomePersistFailed.
type Outcome struct {
	Kind  OutcomeKind
	Field SettingsField
	Err   error
}

// Failed reports whether the outcome represents an error.
func (o Outcome) Failed() bool { return o.Kind != OutcomePhotoSaved }

var (
	// ErrNoDevice is logged when a capture is requested with no device attached.
	ErrNoDevice = errors.New("screen: no capture device attached")
	errPanicked = errors.New("screen: collaborator panicked")
)

// StateListener is called on the controller goroutine after each state change.
type StateListener func(prev, next State)

// OutcomeListener is called on the controller goroutine for each outcome.
type OutcomeListener func(Outcome)

// Interface slices for consumers (presenters, views).
type StateSource interface {
	Current() State
	Overlay() OverlayProps
}
type CaptureControl interface{ TakePhoto() }
type ReviewControl interface {
	RedoPhoto()
	SavePhoto()
}
type SettingsControl interface {
	CycleFlashMode()
	ToggleCameraType()
	ToggleGrid()
}
type OverlaySink interface {
	AlignmentGuidesChanged(project.AlignmentGuidePositions)
}
type DeviceSlot interface {
	AttachDevice(camera.Device)
	DetachDevice()
}
type Lifecycle interface {
	Mount(ctx context.Context)
	Close()
}

// ControllerContract aggregate for DI.
type ControllerContract interface {
	StateSource
	CaptureControl
	ReviewControl
	SettingsControl
	OverlaySink
	DeviceSlot
	Lifecycle
	AddListener(StateListener)
	AddOutcomeListener(OutcomeListener)
}
