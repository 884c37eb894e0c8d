package config

import (
	"fmt"
	"sort"
	"time"
)

// WindowRule maps a logical window name to a matching rule against live
// windows. Class matches WM_CLASS case-insensitively; TitleContains is a
// substring match on the window title. Both empty means the rule never
// matches.
type WindowRule struct {
	Name          string `yaml:"name"`
	Class         string `yaml:"class"`
	TitleContains string `yaml:"title_contains"`
}

// LayoutMode defines how a layout's target rectangles are produced.
type LayoutMode string

const (
	// LayoutModeGrid arranges the listed windows in an automatic grid.
	LayoutModeGrid LayoutMode = "grid"
	// LayoutModeExplicit places each named window at a percent-based slot.
	LayoutModeExplicit LayoutMode = "explicit"
)

// SlotSpec is a percent-based target rectangle within a monitor (0-100).
type SlotSpec struct {
	XPercent      int `yaml:"x_percent"`
	YPercent      int `yaml:"y_percent"`
	WidthPercent  int `yaml:"width_percent"`
	HeightPercent int `yaml:"height_percent"`
}

// Layout describes one named window arrangement.
type Layout struct {
	Mode LayoutMode `yaml:"mode"`
	// GapSize overrides the global gap for this layout when set.
	GapSize *int `yaml:"gap_size,omitempty"`
	// Windows is the grid assignment order (grid mode).
	Windows []string `yaml:"windows,omitempty"`
	// Slots maps window names to percent rectangles (explicit mode).
	Slots map[string]SlotSpec `yaml:"slots,omitempty"`
}

// Config is the complete glide configuration.
type Config struct {
	MoveDurationMs         int    `yaml:"move_duration_ms"`
	FadeDurationMs         int    `yaml:"fade_duration_ms"`
	FrameIntervalMs        int    `yaml:"frame_interval_ms"`
	GapSize                int    `yaml:"gap_size"`
	DefaultLayout          string `yaml:"default_layout"`
	ApplyHotkey            string `yaml:"apply_hotkey"`
	CycleLayoutHotkey      string `yaml:"cycle_layout_hotkey"`
	RefreshIntervalSeconds int    `yaml:"refresh_interval_seconds"`
	LogLevel               string `yaml:"log_level"`

	Windows []WindowRule      `yaml:"windows"`
	Layouts map[string]Layout `yaml:"layouts"`
}

// DefaultConfig returns the built-in configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		MoveDurationMs:         300,
		FadeDurationMs:         250,
		FrameIntervalMs:        8,
		GapSize:                10,
		DefaultLayout:          "grid",
		RefreshIntervalSeconds: 10,
		LogLevel:               "info",
		Layouts: map[string]Layout{
			"grid": {Mode: LayoutModeGrid},
		},
	}
}

// MoveDuration returns the configured movement duration.
func (c *Config) MoveDuration() time.Duration {
	return time.Duration(c.MoveDurationMs) * time.Millisecond
}

// FadeDuration returns the configured fade duration.
func (c *Config) FadeDuration() time.Duration {
	return time.Duration(c.FadeDurationMs) * time.Millisecond
}

// FrameInterval returns the delay between animation steps.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// RefreshInterval returns the registry refresh cadence.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// LayoutNames returns the configured layout names, sorted.
func (c *Config) LayoutNames() []string {
	names := make([]string, 0, len(c.Layouts))
	for name := range c.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.MoveDurationMs < 0 {
		return fmt.Errorf("move_duration_ms must not be negative: %d", c.MoveDurationMs)
	}
	if c.FadeDurationMs < 0 {
		return fmt.Errorf("fade_duration_ms must not be negative: %d", c.FadeDurationMs)
	}
	if c.FrameIntervalMs <= 0 {
		return fmt.Errorf("frame_interval_ms must be positive: %d", c.FrameIntervalMs)
	}
	if c.GapSize < 0 {
		return fmt.Errorf("gap_size must not be negative: %d", c.GapSize)
	}

	seen := make(map[string]bool, len(c.Windows))
	for i, rule := range c.Windows {
		if rule.Name == "" {
			return fmt.Errorf("windows[%d]: name is required", i)
		}
		if seen[rule.Name] {
			return fmt.Errorf("windows[%d]: duplicate name %q", i, rule.Name)
		}
		seen[rule.Name] = true
		if rule.Class == "" && rule.TitleContains == "" {
			return fmt.Errorf("windows[%d] (%s): class or title_contains is required", i, rule.Name)
		}
	}

	for name, layout := range c.Layouts {
		switch layout.Mode {
		case LayoutModeGrid:
			// Empty Windows means "all registered windows in rule order";
			// nothing to check here.
		case LayoutModeExplicit:
			if len(layout.Slots) == 0 {
				return fmt.Errorf("layout %q: explicit mode requires slots", name)
			}
			for win, slot := range layout.Slots {
				if slot.WidthPercent <= 0 || slot.HeightPercent <= 0 {
					return fmt.Errorf("layout %q slot %q: width_percent and height_percent must be positive", name, win)
				}
			}
		default:
			return fmt.Errorf("layout %q: unsupported mode %q", name, layout.Mode)
		}
		if layout.GapSize != nil && *layout.GapSize < 0 {
			return fmt.Errorf("layout %q: gap_size must not be negative", name)
		}
	}

	if c.DefaultLayout != "" {
		if _, ok := c.Layouts[c.DefaultLayout]; !ok {
			return fmt.Errorf("default_layout %q is not a configured layout", c.DefaultLayout)
		}
	}

	return nil
}
