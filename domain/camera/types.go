package camera

import "context"

// CameraType selects which camera faces the subject.
type CameraType int

const (
	TypeBack CameraType = iota
	TypeFront
)

func (t CameraType) String() string {
	switch t {
	case TypeBack:
		return "back"
	case TypeFront:
		return "front"
	default:
		return "unknown"
	}
}

// Toggled flips back <-> front.
func (t CameraType) Toggled() CameraType {
	if t == TypeBack {
		return TypeFront
	}
	return TypeBack
}

// FlashMode enumerates the flash settings in cycling order.
type FlashMode int

const (
	FlashOff FlashMode = iota
	FlashOn
	FlashAuto
	FlashTorch
)

func (m FlashMode) String() string {
	switch m {
	case FlashOff:
		return "off"
	case FlashOn:
		return "on"
	case FlashAuto:
		return "auto"
	case FlashTorch:
		return "torch"
	default:
		return "unknown"
	}
}

// Next returns the following mode in the ring off -> on -> auto -> torch -> off.
// Unknown values restart the ring at off.
func (m FlashMode) Next() FlashMode {
	switch m {
	case FlashOff:
		return FlashOn
	case FlashOn:
		return FlashAuto
	case FlashAuto:
		return FlashTorch
	default:
		return FlashOff
	}
}

// Icon returns the icon name the control bar shows for the mode.
func (m FlashMode) Icon() string {
	switch m {
	case FlashOn:
		return "flash"
	case FlashAuto:
		return "flash-auto"
	case FlashTorch:
		return "flashlight"
	default:
		return "flash-off"
	}
}

// ParseFlashMode maps a stored name back to a FlashMode.
func ParseFlashMode(s string) (FlashMode, bool) {
	for _, m := range []FlashMode{FlashOff, FlashOn, FlashAuto, FlashTorch} {
		if m.String() == s {
			return m, true
		}
	}
	return FlashOff, false
}

// ParseCameraType maps a stored name back to a CameraType.
func ParseCameraType(s string) (CameraType, bool) {
	switch s {
	case "back":
		return TypeBack, true
	case "front":
		return TypeFront, true
	}
	return TypeBack, false
}

// Settings are the per-project camera settings.
type Settings struct {
	Type      CameraType
	FlashMode FlashMode
	ShowGrid  bool
}

// DefaultSettings is the state a freshly mounted screen starts with.
func DefaultSettings() Settings {
	return Settings{Type: TypeBack, FlashMode: FlashOff, ShowGrid: true}
}

// Photo references a stored or freshly captured still image.
type Photo struct {
	URI string
}

// PermissionStatus is the answer to a camera access request.
type PermissionStatus int

const (
	PermissionUndetermined PermissionStatus = iota
	PermissionGranted
	PermissionDenied
)

func (s PermissionStatus) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// PermissionRequester asks the platform for camera access. It may block on a
// user dialog.
type PermissionRequester interface {
	RequestCameraPermission(ctx context.Context) (PermissionStatus, error)
}

// Device captures still photos. Implementations honour the settings they can.
type Device interface {
	TakePicture(ctx context.Context, settings Settings) (Photo, error)
}
