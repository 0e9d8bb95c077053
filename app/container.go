package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/facelog-go/capture"
	"github.com/soocke/facelog-go/config"
	"github.com/soocke/facelog-go/device"
	"github.com/soocke/facelog-go/domain/project"
	"github.com/soocke/facelog-go/domain/screen"
	"github.com/soocke/facelog-go/domain/viewfinder"
	"github.com/soocke/facelog-go/store"
	"github.com/soocke/facelog-go/ui/images"
	"github.com/soocke/facelog-go/ui/model"
	"github.com/soocke/facelog-go/ui/presenter"
	"github.com/soocke/facelog-go/ui/view"
)

const captureTimeout = 15 * time.Second

// Params select the project and day the screen works on.
type Params struct {
	ProjectName string
	DateKey     string
}

// AppContainer assembles stores, devices, the controller, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *store.Store
	Project  *project.Project
	Camera   *device.ScreenCamera
	Perms    *device.Permission
	Nav      *Navigator
	Screen   *screen.Controller
	Finder   *viewfinder.Service
	Previews *images.PreviewCache
	Guides   *model.GuideModel
	Notices  *model.NoticeModel
	RootView *view.RootView
	UI       view.UI

	// Presenters
	ScreenPresenter     *presenter.ScreenPresenter
	OverlayPresenter    *presenter.OverlayPresenter
	ViewfinderPresenter *presenter.ViewfinderPresenter
	NoticePresenter     *presenter.NoticePresenter
	Loop                *presenter.Loop
}

// BuildContainer constructs all components. Side effects are limited to
// opening the database and creating the project row when missing; the Tk
// layout is built later by the app.
func BuildContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, p Params) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger}

	st, err := store.Open(ctx, logger, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	c.Store = st
	if err := st.CreateSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}
	if err := st.EnsureProject(ctx, p.ProjectName); err != nil {
		st.Close()
		return nil, err
	}
	if c.Project, err = st.LoadProject(ctx, p.ProjectName); err != nil {
		st.Close()
		return nil, err
	}

	c.RootView = view.NewRootView(logger)
	c.UI = c.RootView

	mode, err := device.ParsePermissionMode(cfg.PermissionMode)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("permission mode: %w", err)
	}
	c.Camera = device.NewScreenCamera(logger, capture.ScreenGrabber, cfg.PhotoDir, cfg.FrontRegion())
	c.Perms = device.NewPermission(logger, mode, cfg.DevicePath, c.RootView.Dialog)

	c.Nav = NewNavigator(screen.Params{Project: c.Project, DateString: p.DateKey, ProjectName: p.ProjectName})
	c.Screen = screen.NewController(logger, c.Nav, c.Perms, st, screen.Options{
		CaptureTimeout: captureTimeout,
		PersistTimeout: time.Duration(cfg.PersistTimeoutSeconds) * time.Second,
	})
	c.Screen.AttachDevice(c.Camera)

	c.Finder = viewfinder.NewService(logger, capture.ScreenGrabber, time.Duration(cfg.ViewfinderIntervalMs)*time.Millisecond)
	if c.Previews, err = images.NewPreviewCache(cfg.PreviewCacheSize); err != nil {
		st.Close()
		return nil, err
	}
	c.Guides = model.NewGuideModel(c.Project.AlignmentGuides)
	c.Notices = model.NewNoticeModel()

	previewW, previewH := PreviewSize(cfg)
	c.ScreenPresenter = presenter.NewScreenPresenter(c.UI, c.Previews, logger, previewW, previewH)
	c.OverlayPresenter = presenter.NewOverlayPresenter(c.Screen, c.Screen, c.Guides, c.UI)
	c.ViewfinderPresenter = presenter.NewViewfinderPresenter(c.Finder, c.UI, c.OverlayPresenter, c.Camera.Region, previewW, previewH)
	c.NoticePresenter = presenter.NewNoticePresenter(c.Notices, c.UI)

	c.Screen.AddListener(c.ScreenPresenter.OnState)
	c.Screen.AddListener(c.ViewfinderPresenter.OnState)
	c.Screen.AddListener(func(prev, next screen.State) {
		if prev.UI != next.UI {
			logger.Info("screen", "state", next.UI.String())
		}
	})
	c.Screen.AddOutcomeListener(c.NoticePresenter.OnOutcome)
	return c, nil
}

// PreviewSize derives the preview area from the window size, leaving room
// for the status row, control bar and guides panel.
func PreviewSize(cfg *config.Config) (int, int) {
	w, h := cfg.WindowWidth-40, cfg.WindowHeight-260
	return max(w, 160), max(h, 120)
}

// Close releases the container's resources.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	if c.Finder != nil {
		c.Finder.Stop()
	}
	if c.Screen != nil {
		c.Screen.Close()
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil && c.Logger != nil {
			c.Logger.Error("store close", "error", err)
		}
	}
}
