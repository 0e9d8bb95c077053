package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ErrEmptyRegion is returned when a capture rectangle has no area after
// clipping to the screen.
var ErrEmptyRegion = errors.New("capture: empty region")

// Grabber returns one frame. A nil region means the full screen.
type Grabber func(region *image.Rectangle) (*image.RGBA, error)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// GrabRect captures r clipped to the screen bounds.
func GrabRect(r image.Rectangle) (*image.RGBA, error) {
	screen, err := ScreenRect()
	if err != nil {
		return nil, err
	}
	clipped := r.Intersect(screen)
	if clipped.Empty() {
		return nil, ErrEmptyRegion
	}
	img, err := screenshot.CaptureRect(clipped)
	if err != nil {
		return nil, fmt.Errorf("capture rect %v: %w", clipped, err)
	}
	return img, nil
}

// ScreenRect reports the bounds of the active monitor.
func ScreenRect() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("screen rect: %w", err)
	}
	return r, nil
}

// ScreenGrabber is the default Grabber backed by the screenshot library.
func ScreenGrabber(region *image.Rectangle) (*image.RGBA, error) {
	if region == nil || region.Empty() {
		return Grab()
	}
	return GrabRect(*region)
}
