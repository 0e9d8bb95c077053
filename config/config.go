package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

const appDir = "facelog"

// Config holds runtime configuration for the capture screen and its stores.
// Fields may be loaded from a JSON file, then overridden by FACELOG_*
// environment variables and command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Storage
	DataDir        string `json:"data_dir"`
	PhotoDir       string `json:"photo_dir"`
	DatabaseDriver string `json:"database_driver"`
	DatabaseURL    string `json:"database_url"`
	LogFile        string `json:"log_file"`

	// Camera access: prompt | device | granted | denied
	PermissionMode string `json:"permission_mode"`
	DevicePath     string `json:"device_path"`

	// Screen area used as the front camera; zero means full screen.
	FrontX int `json:"front_x"`
	FrontY int `json:"front_y"`
	FrontW int `json:"front_w"`
	FrontH int `json:"front_h"`

	ViewfinderIntervalMs  int `json:"viewfinder_interval_ms"`
	PersistTimeoutSeconds int `json:"persist_timeout_seconds"`
	PreviewCacheSize      int `json:"preview_cache_size"`

	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	data := filepath.Join(xdg.DataHome, appDir)
	return &Config{
		Debug:                 false,
		DataDir:               data,
		PhotoDir:              filepath.Join(data, "photos"),
		DatabaseDriver:        "sqlite",
		DatabaseURL:           filepath.Join(data, "facelog.db"),
		PermissionMode:        "prompt",
		DevicePath:            "/dev/video0",
		ViewfinderIntervalMs:  100,
		PersistTimeoutSeconds: 10,
		PreviewCacheSize:      16,
		WindowWidth:           900,
		WindowHeight:          700,
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appDir, "config.json"))
}

// FrontRegion returns the front camera rectangle.
func (c *Config) FrontRegion() image.Rectangle {
	return image.Rect(c.FrontX, c.FrontY, c.FrontX+c.FrontW, c.FrontY+c.FrontH)
}

// Validate clamps/normalizes values to safe ranges. It errors only on values
// that cannot be repaired.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.PhotoDir == "" {
		c.PhotoDir = filepath.Join(c.DataDir, "photos")
	}
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	switch c.DatabaseDriver {
	case "":
		c.DatabaseDriver = "sqlite"
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		if c.DatabaseDriver == "postgres" {
			return fmt.Errorf("config: database_url required for postgres")
		}
		c.DatabaseURL = filepath.Join(c.DataDir, "facelog.db")
	}
	c.PermissionMode = strings.ToLower(strings.TrimSpace(c.PermissionMode))
	switch c.PermissionMode {
	case "":
		c.PermissionMode = "prompt"
	case "prompt", "device", "granted", "denied":
	default:
		return fmt.Errorf("config: unsupported permission mode %q", c.PermissionMode)
	}
	if c.FrontW < 0 || c.FrontH < 0 {
		c.FrontW, c.FrontH = 0, 0
	}
	if c.ViewfinderIntervalMs < 16 {
		c.ViewfinderIntervalMs = d.ViewfinderIntervalMs
	}
	if c.PersistTimeoutSeconds < 0 {
		c.PersistTimeoutSeconds = d.PersistTimeoutSeconds
	}
	if c.PreviewCacheSize <= 0 {
		c.PreviewCacheSize = d.PreviewCacheSize
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = d.WindowHeight
	}
	return nil
}

// ApplyEnv overrides fields from FACELOG_* variables. Unparseable numbers are
// reported and leave the field unchanged.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	var bad []string
	num := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				bad = append(bad, key)
				return
			}
			*dst = n
		}
	}
	if v := getenv("FACELOG_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			bad = append(bad, "FACELOG_DEBUG")
		} else {
			c.Debug = b
		}
	}
	str("FACELOG_DATA_DIR", &c.DataDir)
	str("FACELOG_PHOTO_DIR", &c.PhotoDir)
	str("FACELOG_DATABASE_DRIVER", &c.DatabaseDriver)
	str("FACELOG_DATABASE_URL", &c.DatabaseURL)
	str("FACELOG_LOG_FILE", &c.LogFile)
	str("FACELOG_PERMISSION_MODE", &c.PermissionMode)
	str("FACELOG_DEVICE_PATH", &c.DevicePath)
	num("FACELOG_VIEWFINDER_INTERVAL_MS", &c.ViewfinderIntervalMs)
	num("FACELOG_PERSIST_TIMEOUT_SECONDS", &c.PersistTimeoutSeconds)
	num("FACELOG_PREVIEW_CACHE_SIZE", &c.PreviewCacheSize)
	if len(bad) > 0 {
		return fmt.Errorf("config: invalid integer or bool in %s", strings.Join(bad, ", "))
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
