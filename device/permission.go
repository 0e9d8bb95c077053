package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/soocke/facelog-go/domain/camera"
)

// PermissionMode selects how camera access is decided.
type PermissionMode string

const (
	ModePrompt  PermissionMode = "prompt"
	ModeDevice  PermissionMode = "device"
	ModeGranted PermissionMode = "granted"
	ModeDenied  PermissionMode = "denied"
)

// ErrUnknownMode is returned by ParsePermissionMode for unsupported values.
var ErrUnknownMode = errors.New("device: unknown permission mode")

func ParsePermissionMode(s string) (PermissionMode, error) {
	switch m := PermissionMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModePrompt, ModeDevice, ModeGranted, ModeDenied:
		return m, nil
	case "":
		return ModePrompt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Prompter asks the user whether the camera may be used. It blocks until the
// user answers or ctx is done.
type Prompter interface {
	Ask(ctx context.Context) (bool, error)
}

// Permission implements camera.PermissionRequester for a PermissionMode.
type Permission struct {
	mode       PermissionMode
	devicePath string
	prompter   Prompter
	logger     *slog.Logger
}

func NewPermission(logger *slog.Logger, mode PermissionMode, devicePath string, prompter Prompter) *Permission {
	return &Permission{mode: mode, devicePath: devicePath, prompter: prompter, logger: logger}
}

func (p *Permission) RequestCameraPermission(ctx context.Context) (camera.PermissionStatus, error) {
	status, err := p.request(ctx)
	if p.logger != nil {
		p.logger.Info("camera permission", "mode", string(p.mode), "status", status.String(), "error", err)
	}
	return status, err
}

func (p *Permission) request(ctx context.Context) (camera.PermissionStatus, error) {
	switch p.mode {
	case ModeGranted:
		return camera.PermissionGranted, nil
	case ModeDenied:
		return camera.PermissionDenied, nil
	case ModeDevice:
		if p.devicePath == "" {
			return camera.PermissionDenied, errors.New("device: no device path configured")
		}
		if err := checkDeviceAccess(p.devicePath); err != nil {
			return camera.PermissionDenied, fmt.Errorf("device %s: %w", p.devicePath, err)
		}
		return camera.PermissionGranted, nil
	case ModePrompt, "":
		if p.prompter == nil {
			return camera.PermissionUndetermined, errors.New("device: no prompter available")
		}
		ok, err := p.prompter.Ask(ctx)
		if err != nil {
			return camera.PermissionUndetermined, fmt.Errorf("permission prompt: %w", err)
		}
		if ok {
			return camera.PermissionGranted, nil
		}
		return camera.PermissionDenied, nil
	default:
		return camera.PermissionDenied, fmt.Errorf("%w: %q", ErrUnknownMode, string(p.mode))
	}
}

var _ camera.PermissionRequester = (*Permission)(nil)
