package config

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := DefaultConfig()
	if cfg.DatabaseDriver != d.DatabaseDriver || cfg.PermissionMode != d.PermissionMode || cfg.PreviewCacheSize != d.PreviewCacheSize {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.PermissionMode = "granted"
	cfg.FrontX, cfg.FrontY, cfg.FrontW, cfg.FrontH = 10, 20, 300, 200
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Debug || got.PermissionMode != "granted" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if r := got.FrontRegion(); r != image.Rect(10, 20, 310, 220) {
		t.Fatalf("front region = %v", r)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.DatabaseDriver != "sqlite" {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestValidate_ClampsAndRejects(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/fl", ViewfinderIntervalMs: 1, PreviewCacheSize: -3, FrontW: -5, WindowWidth: 10, PermissionMode: " Granted "}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != filepath.Join("/tmp/fl", "facelog.db") {
		t.Fatalf("unexpected db defaults %q %q", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
	if cfg.PhotoDir != filepath.Join("/tmp/fl", "photos") {
		t.Fatalf("unexpected photo dir %q", cfg.PhotoDir)
	}
	if cfg.PermissionMode != "granted" || cfg.ViewfinderIntervalMs != 100 || cfg.PreviewCacheSize != 16 || cfg.FrontW != 0 || cfg.WindowWidth != 900 {
		t.Fatalf("unexpected clamped config %+v", cfg)
	}

	if err := (&Config{DatabaseDriver: "mysql"}).Validate(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	if err := (&Config{DatabaseDriver: "postgres"}).Validate(); err == nil {
		t.Fatalf("expected error for postgres without url")
	}
	if err := (&Config{PermissionMode: "sometimes"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown permission mode")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"FACELOG_DEBUG":                  "true",
		"FACELOG_DATABASE_DRIVER":        "postgres",
		"FACELOG_DATABASE_URL":           "postgres://localhost/facelog",
		"FACELOG_PERMISSION_MODE":        "device",
		"FACELOG_VIEWFINDER_INTERVAL_MS": "250",
		"FACELOG_PREVIEW_CACHE_SIZE":     "lots",
	}
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) string { return env[k] })
	if err == nil {
		t.Fatalf("expected error for non-numeric cache size")
	}
	if !cfg.Debug || cfg.DatabaseDriver != "postgres" || cfg.DatabaseURL != "postgres://localhost/facelog" || cfg.PermissionMode != "device" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.ViewfinderIntervalMs != 250 || cfg.PreviewCacheSize != 16 {
		t.Fatalf("unexpected numeric fields %d %d", cfg.ViewfinderIntervalMs, cfg.PreviewCacheSize)
	}
}

func captureFlagOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := flagOutput
	flagOutput = &buf
	t.Cleanup(func() { flagOutput = prev })
	return &buf
}

func TestParseFlags(t *testing.T) {
	captureFlagOutput(t)
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	f, err := ParseFlags(nil, now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Project != "default" || f.Date != "2024-03-09" || f.Debug {
		t.Fatalf("unexpected defaults %+v", f)
	}
	f, err = ParseFlags([]string{"-project", "trip", "-date", "2023-12-31", "-debug", "-config", "/x.json"}, now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Project != "trip" || f.Date != "2023-12-31" || !f.Debug || f.ConfigPath != "/x.json" {
		t.Fatalf("unexpected flags %+v", f)
	}
	if _, err := ParseFlags([]string{"-date", "31/12/2023"}, now); err == nil {
		t.Fatalf("expected error for malformed date")
	}
	if _, err := ParseFlags([]string{"-bogus"}, now); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestParseFlags_HelpPrintsUsage(t *testing.T) {
	out := captureFlagOutput(t)
	_, err := ParseFlags([]string{"-h"}, time.Now())
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	for _, name := range []string{"-config", "-project", "-date", "-debug"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("usage missing %s:\n%s", name, out.String())
		}
	}
}
