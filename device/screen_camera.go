package device

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/soocke/facelog-go/capture"
	"github.com/soocke/facelog-go/domain/camera"
)

// ScreenCamera implements camera.Device by grabbing the screen. The back
// camera is the whole screen; the front camera is FrontRegion.
type ScreenCamera struct {
	logger      *slog.Logger
	grab        capture.Grabber
	photoDir    string
	frontRegion image.Rectangle
}

// NewScreenCamera returns a camera that writes stills into photoDir. A nil
// grab uses capture.ScreenGrabber.
func NewScreenCamera(logger *slog.Logger, grab capture.Grabber, photoDir string, frontRegion image.Rectangle) *ScreenCamera {
	if grab == nil {
		grab = capture.ScreenGrabber
	}
	return &ScreenCamera{logger: logger, grab: grab, photoDir: photoDir, frontRegion: frontRegion}
}

// Region returns the capture area for a camera type; nil means full screen.
func (c *ScreenCamera) Region(t camera.CameraType) *image.Rectangle {
	if t != camera.TypeFront || c.frontRegion.Empty() {
		return nil
	}
	r := c.frontRegion
	return &r
}

// TakePicture grabs one frame and saves it as PNG under the photo directory.
func (c *ScreenCamera) TakePicture(ctx context.Context, s camera.Settings) (camera.Photo, error) {
	if err := ctx.Err(); err != nil {
		return camera.Photo{}, err
	}
	img, err := c.grab(c.Region(s.Type))
	if err != nil {
		return camera.Photo{}, fmt.Errorf("take picture: %w", err)
	}
	if img == nil {
		return camera.Photo{}, fmt.Errorf("take picture: %w", capture.ErrEmptyRegion)
	}
	if err := os.MkdirAll(c.photoDir, 0o755); err != nil {
		return camera.Photo{}, fmt.Errorf("create photo dir: %w", err)
	}
	path := filepath.Join(c.photoDir, uuid.NewString()+".png")
	if err := imaging.Save(img, path); err != nil {
		return camera.Photo{}, fmt.Errorf("write photo: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(path)
		return camera.Photo{}, err
	}
	if c.logger != nil {
		c.logger.Info("photo captured",
			"path", path,
			"camera", s.Type.String(),
			"flash", s.FlashMode.String(),
			"size", img.Bounds().Size(),
		)
	}
	return camera.Photo{URI: path}, nil
}

var _ camera.Device = (*ScreenCamera)(nil)
