// Package config provides configuration types and defaults for scribe.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/navigator"
)

// DefaultConfigPath is where a default config is written when none exists.
const DefaultConfigPath = ".scribe/config.yaml"

// Config holds all configuration options for scribe.
type Config struct {
	Editor     EditorConfig `mapstructure:"editor"`
	Format     format.State `mapstructure:"format"`
	Background string       `mapstructure:"background"` // hex color e.g. "#FFFFFF"
	Export     ExportConfig `mapstructure:"export"`
	UI         UIConfig     `mapstructure:"ui"`
}

// EditorConfig holds editing core options.
type EditorConfig struct {
	HistoryLimit  int           `mapstructure:"history_limit"`  // max undo snapshots (default 50)
	BlinkInterval time.Duration `mapstructure:"blink_interval"` // caret blink half-period (default 530ms)
	LineSpacing   float64       `mapstructure:"line_spacing"`   // added to font size for line height (default 8)
	Padding       float64       `mapstructure:"padding"`        // surface padding in pixels (default 20)
}

// ExportConfig holds PNG export options.
type ExportConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Path   string `mapstructure:"path"` // output file for ctrl+s in the TUI
}

// UIConfig holds terminal user interface options.
type UIConfig struct {
	ShowToolbar   bool `mapstructure:"show_toolbar"`
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			HistoryLimit:  50,
			BlinkInterval: 530 * time.Millisecond,
			LineSpacing:   8,
			Padding:       20,
		},
		Format:     format.Default(),
		Background: string(format.White),
		Export: ExportConfig{
			Width:  800,
			Height: 600,
			Path:   "document.png",
		},
		UI: UIConfig{
			ShowToolbar:   true,
			ShowStatusBar: true,
		},
	}
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateFormat(c.Format); err != nil {
		return err
	}
	if _, err := format.ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return ValidateExport(c.Export)
}

// Spacing returns the pixel layout spacing configured for the editor.
func (e EditorConfig) Spacing() navigator.Spacing {
	return navigator.Spacing{Padding: e.Padding, LineSpacing: e.LineSpacing}
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	if e.HistoryLimit < 1 {
		return fmt.Errorf("editor.history_limit must be at least 1, got %d", e.HistoryLimit)
	}
	if e.BlinkInterval <= 0 {
		return fmt.Errorf("editor.blink_interval must be positive, got %s", e.BlinkInterval)
	}
	if e.LineSpacing < 0 {
		return fmt.Errorf("editor.line_spacing must not be negative, got %v", e.LineSpacing)
	}
	if e.Padding < 0 {
		return fmt.Errorf("editor.padding must not be negative, got %v", e.Padding)
	}
	return nil
}

// ValidateFormat checks the default format for errors.
func ValidateFormat(f format.State) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("format.%w", err)
	}
	return nil
}

// ValidateExport checks export configuration for errors.
func ValidateExport(e ExportConfig) error {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("export.width and export.height must be positive, got %dx%d", e.Width, e.Height)
	}
	if strings.TrimSpace(e.Path) == "" {
		return fmt.Errorf("export.path is required")
	}
	if ext := strings.ToLower(filepath.Ext(e.Path)); ext != ".png" {
		return fmt.Errorf("export.path must end in .png, got %q", e.Path)
	}
	return nil
}

// Normalized returns c with colors in canonical "#rrggbb" form. Call it
// after Validate.
func (c Config) Normalized() Config {
	if col, err := format.ParseColor(string(c.Format.Color)); err == nil {
		c.Format.Color = col
	}
	if col, err := format.ParseColor(c.Background); err == nil {
		c.Background = string(col)
	}
	if a, err := format.ParseAlign(string(c.Format.Align)); err == nil {
		c.Format.Align = a
	}
	return c
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Scribe Configuration

# Editing core
editor:
  # Maximum number of undo snapshots kept in memory
  history_limit: 50
  # Caret blink half-period
  blink_interval: 530ms
  # Pixels added to the font size to get the line height
  line_spacing: 8
  # Gap between the surface edge and the text, in pixels
  padding: 20

# Formatting applied to the whole document.
# Changes made in the editor are undoable; save them with ctrl+w.
format:
  font_family: Arial
  font_size: 16
  bold: false
  italic: false
  underline: false
  color: "#000000"
  # left, center or right
  align: left

# Surface color (not part of undo history)
background: "#ffffff"

# PNG export (ctrl+s in the editor, or 'scribe export')
export:
  width: 800
  height: 600
  path: document.png

# Terminal UI
ui:
  show_toolbar: true
  show_status_bar: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// SetDefaults registers every default with v so that keys missing from the
// config file fall back to Defaults().
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.history_limit", d.Editor.HistoryLimit)
	v.SetDefault("editor.blink_interval", d.Editor.BlinkInterval)
	v.SetDefault("editor.line_spacing", d.Editor.LineSpacing)
	v.SetDefault("editor.padding", d.Editor.Padding)
	v.SetDefault("format.font_family", d.Format.FontFamily)
	v.SetDefault("format.font_size", d.Format.FontSize)
	v.SetDefault("format.bold", d.Format.Bold)
	v.SetDefault("format.italic", d.Format.Italic)
	v.SetDefault("format.underline", d.Format.Underline)
	v.SetDefault("format.color", string(d.Format.Color))
	v.SetDefault("format.align", string(d.Format.Align))
	v.SetDefault("background", d.Background)
	v.SetDefault("export.width", d.Export.Width)
	v.SetDefault("export.height", d.Export.Height)
	v.SetDefault("export.path", d.Export.Path)
	v.SetDefault("ui.show_toolbar", d.UI.ShowToolbar)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
}

// Load reads, validates and normalizes the config file at path.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg.Normalized(), nil
}
