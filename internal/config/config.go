// Package config loads overlay settings from a JSON file with environment
// overrides. A missing file is not an error; the defaults match the
// reference behavior (12x12 main grid, 5x5 refinement, 200ms tap window,
// 150ms click delay).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/keyleap/keyleap/internal/grid"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "KEYLEAP_"

// ErrInvalidConfig wraps all validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every tunable of the overlay.
type Config struct {
	// Grid dimensions.
	MainCols int
	MainRows int
	SubCols  int
	SubRows  int

	// Gesture and click timing.
	TapThreshold time.Duration
	ClickDelay   time.Duration

	// Render loop cadence.
	VisibleRepaint time.Duration
	PendingRepaint time.Duration
	IdleRepaint    time.Duration

	// Logging.
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MainCols:       12,
		MainRows:       12,
		SubCols:        5,
		SubRows:        5,
		TapThreshold:   200 * time.Millisecond,
		ClickDelay:     150 * time.Millisecond,
		VisibleRepaint: 16 * time.Millisecond,
		PendingRepaint: 20 * time.Millisecond,
		IdleRepaint:    50 * time.Millisecond,
		LogLevel:       "info",
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keyleap.json"
	}
	return filepath.Join(dir, "keyleap", "config.json")
}

// Load reads path, applies environment overrides, and validates the result.
// A missing file yields defaults (plus overrides); a present but malformed
// file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults apply.
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if !gjson.ValidBytes(data) {
			return Config{}, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidConfig, path)
		}
		cfg.applyFile(data)
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFile overlays values present in the JSON document. Absent keys keep
// their current values.
func (c *Config) applyFile(data []byte) {
	setInt := func(path string, dst *int) {
		if v := gjson.GetBytes(data, path); v.Exists() {
			*dst = int(v.Int())
		}
	}
	setMs := func(path string, dst *time.Duration) {
		if v := gjson.GetBytes(data, path); v.Exists() {
			*dst = time.Duration(v.Int()) * time.Millisecond
		}
	}

	setInt("grid.main_cols", &c.MainCols)
	setInt("grid.main_rows", &c.MainRows)
	setInt("grid.sub_cols", &c.SubCols)
	setInt("grid.sub_rows", &c.SubRows)

	setMs("timing.tap_threshold_ms", &c.TapThreshold)
	setMs("timing.click_delay_ms", &c.ClickDelay)
	setMs("timing.visible_repaint_ms", &c.VisibleRepaint)
	setMs("timing.pending_repaint_ms", &c.PendingRepaint)
	setMs("timing.idle_repaint_ms", &c.IdleRepaint)

	if v := gjson.GetBytes(data, "log.level"); v.Exists() {
		c.LogLevel = v.String()
	}
}

// applyEnv overlays KEYLEAP_* variables. getenv is injectable for tests.
func (c *Config) applyEnv(getenv func(string) string) {
	setInt := func(name string, dst *int) {
		raw := getenv(EnvPrefix + name)
		if raw == "" {
			return
		}
		if n, err := strconv.Atoi(raw); err == nil {
			*dst = n
		}
	}
	setMs := func(name string, dst *time.Duration) {
		raw := getenv(EnvPrefix + name)
		if raw == "" {
			return
		}
		if n, err := strconv.Atoi(raw); err == nil {
			*dst = time.Duration(n) * time.Millisecond
		}
	}

	setInt("MAIN_COLS", &c.MainCols)
	setInt("MAIN_ROWS", &c.MainRows)
	setInt("SUB_COLS", &c.SubCols)
	setInt("SUB_ROWS", &c.SubRows)

	setMs("TAP_THRESHOLD_MS", &c.TapThreshold)
	setMs("CLICK_DELAY_MS", &c.ClickDelay)
	setMs("VISIBLE_REPAINT_MS", &c.VisibleRepaint)
	setMs("PENDING_REPAINT_MS", &c.PendingRepaint)
	setMs("IDLE_REPAINT_MS", &c.IdleRepaint)

	if raw := getenv(EnvPrefix + "LOG_LEVEL"); raw != "" {
		c.LogLevel = raw
	}
}

// Validate checks grid capacities and timing bounds.
func (c Config) Validate() error {
	if c.MainCols < 1 || c.MainRows < 1 || c.SubCols < 1 || c.SubRows < 1 {
		return fmt.Errorf("%w: grid dimensions must be positive", ErrInvalidConfig)
	}
	if c.MainRows > grid.MaxMainRows {
		return fmt.Errorf("%w: main_rows %d exceeds maximum %d", ErrInvalidConfig, c.MainRows, grid.MaxMainRows)
	}
	if c.MainCols > grid.MaxMainCols {
		return fmt.Errorf("%w: main_cols %d exceeds maximum %d", ErrInvalidConfig, c.MainCols, grid.MaxMainCols)
	}

	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"tap_threshold_ms", c.TapThreshold},
		{"click_delay_ms", c.ClickDelay},
		{"visible_repaint_ms", c.VisibleRepaint},
		{"pending_repaint_ms", c.PendingRepaint},
		{"idle_repaint_ms", c.IdleRepaint},
	} {
		if d.val <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, d.name)
		}
	}
	return nil
}

// Encode renders the configuration as a JSON document in the file layout
// Load reads.
func (c Config) Encode() ([]byte, error) {
	doc := "{}"
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("grid.main_cols", c.MainCols)
	set("grid.main_rows", c.MainRows)
	set("grid.sub_cols", c.SubCols)
	set("grid.sub_rows", c.SubRows)

	set("timing.tap_threshold_ms", c.TapThreshold.Milliseconds())
	set("timing.click_delay_ms", c.ClickDelay.Milliseconds())
	set("timing.visible_repaint_ms", c.VisibleRepaint.Milliseconds())
	set("timing.pending_repaint_ms", c.PendingRepaint.Milliseconds())
	set("timing.idle_repaint_ms", c.IdleRepaint.Milliseconds())

	set("log.level", c.LogLevel)

	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return []byte(gjson.Get(doc, "@pretty").String()), nil
}

// WriteDefault writes the built-in configuration to path, creating parent
// directories. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := Default().Encode()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
