package project

import (
	"context"
	"image"

	"github.com/soocke/facelog-go/domain/camera"
)

// AlignmentGuidePositions are the overlay reference marks used to frame a
// consistent face photo across days.
type AlignmentGuidePositions struct {
	Center image.Point
	Eyes   image.Point
	Mouth  image.Point
}

// Project is a photo journal: one photo per date key.
type Project struct {
	Name            string
	CameraSettings  camera.Settings
	AlignmentGuides AlignmentGuidePositions
	Photos          map[string]camera.Photo
}

// PhotoFor returns the stored photo for dateKey, if any.
func (p *Project) PhotoFor(dateKey string) (camera.Photo, bool) {
	if p == nil || p.Photos == nil {
		return camera.Photo{}, false
	}
	ph, ok := p.Photos[dateKey]
	if !ok || ph.URI == "" {
		return camera.Photo{}, false
	}
	return ph, true
}

// DefaultGuides places the marks for a 100x100 normalised frame.
func DefaultGuides() AlignmentGuidePositions {
	return AlignmentGuidePositions{
		Center: image.Pt(50, 50),
		Eyes:   image.Pt(50, 40),
		Mouth:  image.Pt(50, 70),
	}
}

// SavePhotoRequest is the payload for persisting an accepted photo.
type SavePhotoRequest struct {
	ProjectName string
	DateKey     string
	PhotoURI    string
}

// SaveGuidesRequest is the payload for persisting overlay positions.
type SaveGuidesRequest struct {
	Project                 *Project
	AlignmentGuidePositions AlignmentGuidePositions
}

// SaveSettingsRequest is the payload for persisting camera settings.
type SaveSettingsRequest struct {
	Project        *Project
	CameraSettings camera.Settings
}

// Store is the persistence port used by the camera screen.
type Store interface {
	SavePhoto(ctx context.Context, req SavePhotoRequest) error
	SaveAlignmentGuidePositions(ctx context.Context, req SaveGuidesRequest) error
	SaveCameraSettings(ctx context.Context, req SaveSettingsRequest) error
}

// Loader reads a project by name.
type Loader interface {
	LoadProject(ctx context.Context, name string) (*Project, error)
}
