// Package config provides configuration loading and management for dimviz.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dimviz/pkg/roles"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Display parameters handed to the canvas
	Display struct {
		// ColorMap names the lookup table used for images ("gray", "viridis", "hot")
		ColorMap string `yaml:"colorMap"`

		// Horizontal places the navigation image and the detail view side by side
		Horizontal bool `yaml:"horizontal"`

		// ScaleBar draws a scale bar instead of tick labels on images
		ScaleBar bool `yaml:"scaleBar"`

		// ContrastLow and ContrastHigh are the percentiles mapped to black and white
		ContrastLow  float64 `yaml:"contrastLow"`
		ContrastHigh float64 `yaml:"contrastHigh"`

		// PixelsPerCell is the display size of one navigation cell
		PixelsPerCell float64 `yaml:"pixelsPerCell"`
	} `yaml:"display"`

	// Navigation parameters
	Navigation struct {
		// Mode is the visualizer mode ("image", "image-stack", "spectral-image", "4d-image", "curve")
		Mode string `yaml:"mode"`

		// SelectorIndex pins non-displayed axes in image and curve modes
		SelectorIndex int `yaml:"selectorIndex"`

		// BinX and BinY are the initial bin sizes
		BinX int `yaml:"binX"`
		BinY int `yaml:"binY"`

		// Explicit 4D axis overrides; omitted means infer from the axis roles
		ScanX    *int `yaml:"scanX,omitempty"`
		ScanY    *int `yaml:"scanY,omitempty"`
		Image4DX *int `yaml:"image4dX,omitempty"`
		Image4DY *int `yaml:"image4dY,omitempty"`
	} `yaml:"navigation"`

	// Export parameters for the file canvas
	Export struct {
		// Dir is where rendered views are written
		Dir string `yaml:"dir"`

		// Format is one of "png", "jpeg" or "tiff"
		Format string `yaml:"format"`

		// JPEGQuality is used when Format is "jpeg"
		JPEGQuality int `yaml:"jpegQuality"`

		// DrawROI outlines the ROI rectangle on exported navigation images
		DrawROI bool `yaml:"drawROI"`
	} `yaml:"export"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Display.ColorMap = "viridis"
	cfg.Display.Horizontal = true
	cfg.Display.ScaleBar = false
	cfg.Display.ContrastLow = 1
	cfg.Display.ContrastHigh = 99
	cfg.Display.PixelsPerCell = 1

	cfg.Navigation.Mode = roles.ModeImage.String()
	cfg.Navigation.SelectorIndex = 0
	cfg.Navigation.BinX = 1
	cfg.Navigation.BinY = 1

	cfg.Export.Dir = "views"
	cfg.Export.Format = "png"
	cfg.Export.JPEGQuality = 90
	cfg.Export.DrawROI = true

	cfg.Output.Verbose = true

	return cfg
}

// Validate checks value ranges that YAML cannot express.
func (c *Config) Validate() error {
	if _, err := roles.ParseMode(c.Navigation.Mode); err != nil {
		return err
	}
	switch c.Export.Format {
	case "png", "jpeg", "jpg", "tiff", "tif":
	default:
		return fmt.Errorf("unsupported export format %q", c.Export.Format)
	}
	if c.Display.ContrastLow < 0 || c.Display.ContrastHigh > 100 || c.Display.ContrastLow >= c.Display.ContrastHigh {
		return fmt.Errorf("contrast percentiles must satisfy 0 <= low < high <= 100, got %g and %g",
			c.Display.ContrastLow, c.Display.ContrastHigh)
	}
	if c.Display.PixelsPerCell <= 0 {
		return fmt.Errorf("pixelsPerCell must be positive, got %g", c.Display.PixelsPerCell)
	}
	return nil
}

// ResolveOptions converts the navigation section into resolver options.
func (c *Config) ResolveOptions() roles.Options {
	return roles.Options{
		SelectorIndex: c.Navigation.SelectorIndex,
		ScanX:         c.Navigation.ScanX,
		ScanY:         c.Navigation.ScanY,
		Image4DX:      c.Navigation.Image4DX,
		Image4DY:      c.Navigation.Image4DY,
	}
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
