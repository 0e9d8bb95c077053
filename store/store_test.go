package store

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/soocke/facelog-go/domain/camera"
	"github.com/soocke/facelog-go/domain/project"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, discardLogger, DriverSQLite, filepath.Join(t.TempDir(), "facelog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.CreateSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := s.CreateSchema(ctx); err != nil {
		t.Fatalf("schema twice: %v", err)
	}
	return s
}

func TestStore_EnsureAndLoadDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.EnsureProject(ctx, "me"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := s.EnsureProject(ctx, "me"); err != nil {
		t.Fatalf("ensure twice: %v", err)
	}
	p, err := s.LoadProject(ctx, "me")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "me" || p.CameraSettings != camera.DefaultSettings() {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if p.AlignmentGuides != project.DefaultGuides() {
		t.Fatalf("unexpected guides %+v", p.AlignmentGuides)
	}
	if len(p.Photos) != 0 {
		t.Fatalf("expected no photos, got %v", p.Photos)
	}
}

func TestStore_LoadUnknownProject(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LoadProject(context.Background(), "ghost"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestStore_SaveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.EnsureProject(ctx, "me"); err != nil {
		t.Fatal(err)
	}
	ref := &project.Project{Name: "me"}
	settings := camera.Settings{Type: camera.TypeFront, FlashMode: camera.FlashTorch, ShowGrid: false}
	if err := s.SaveCameraSettings(ctx, project.SaveSettingsRequest{Project: ref, CameraSettings: settings}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	guides := project.AlignmentGuidePositions{Center: image.Pt(11, 12), Eyes: image.Pt(13, 14), Mouth: image.Pt(15, 16)}
	if err := s.SaveAlignmentGuidePositions(ctx, project.SaveGuidesRequest{Project: ref, AlignmentGuidePositions: guides}); err != nil {
		t.Fatalf("save guides: %v", err)
	}
	if err := s.SavePhoto(ctx, project.SavePhotoRequest{ProjectName: "me", DateKey: "2024-01-01", PhotoURI: "/a.png"}); err != nil {
		t.Fatalf("save photo: %v", err)
	}
	if err := s.SavePhoto(ctx, project.SavePhotoRequest{ProjectName: "me", DateKey: "2024-01-01", PhotoURI: "/b.png"}); err != nil {
		t.Fatalf("replace photo: %v", err)
	}
	if err := s.SavePhoto(ctx, project.SavePhotoRequest{ProjectName: "me", DateKey: "2024-01-02", PhotoURI: "/c.png"}); err != nil {
		t.Fatalf("second photo: %v", err)
	}

	p, err := s.LoadProject(ctx, "me")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.CameraSettings != settings {
		t.Fatalf("settings = %+v, want %+v", p.CameraSettings, settings)
	}
	if p.AlignmentGuides != guides {
		t.Fatalf("guides = %+v, want %+v", p.AlignmentGuides, guides)
	}
	if len(p.Photos) != 2 || p.Photos["2024-01-01"].URI != "/b.png" || p.Photos["2024-01-02"].URI != "/c.png" {
		t.Fatalf("unexpected photos %+v", p.Photos)
	}
}

func TestStore_SavesForUnknownProject(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ghost := &project.Project{Name: "ghost"}
	if err := s.SavePhoto(ctx, project.SavePhotoRequest{ProjectName: "ghost", DateKey: "d", PhotoURI: "/x.png"}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("photo: expected ErrProjectNotFound, got %v", err)
	}
	if err := s.SaveCameraSettings(ctx, project.SaveSettingsRequest{Project: ghost}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("settings: expected ErrProjectNotFound, got %v", err)
	}
	if err := s.SaveAlignmentGuidePositions(ctx, project.SaveGuidesRequest{Project: ghost}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("guides: expected ErrProjectNotFound, got %v", err)
	}
	if err := s.SaveCameraSettings(ctx, project.SaveSettingsRequest{}); err == nil {
		t.Fatalf("expected error for nil project")
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(context.Background(), nil, "mysql", ""); !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Fatalf("postgres rebind = %q", got)
	}
	lite := &Store{driver: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("sqlite rebind = %q", got)
	}
}
