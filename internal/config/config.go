// Package config holds the runtime settings of the drawing app: command-line
// options and the pen style persisted in Fyne preferences.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"drawsignature/internal/apperrors"
	"drawsignature/internal/export"
)

type Config struct {
	// OutputDir is where Save writes. Empty means the app's private storage.
	OutputDir string
	Format    export.Format
	Quality   int
	Trim      bool
	Padding   int
	Width     float32
	Height    float32
	LogLevel  string
	LogJSON   bool
}

func Default() Config {
	return Config{
		Format:   export.FormatPNG,
		Quality:  export.DefaultQuality,
		Padding:  16,
		Width:    800,
		Height:   600,
		LogLevel: "info",
	}
}

// Validate checks the settings and normalises the format name.
func (c *Config) Validate() error {
	f, err := export.ParseFormat(string(c.Format))
	if err != nil {
		return err
	}
	c.Format = f
	if c.Quality < 1 || c.Quality > 100 {
		return apperrors.Validation(fmt.Sprintf("quality must be between 1 and 100, got %d", c.Quality))
	}
	if c.Padding < 0 {
		return apperrors.Validation("padding cannot be negative")
	}
	if c.Width < 100 || c.Height < 100 {
		return apperrors.Validation(fmt.Sprintf("window must be at least 100x100, got %gx%g", c.Width, c.Height))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return apperrors.Validation(fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	return nil
}

// ExportOptions derives the export settings.
func (c Config) ExportOptions() export.Options {
	return export.Options{
		Format:  c.Format,
		Quality: c.Quality,
		Trim:    c.Trim,
		Padding: c.Padding,
	}
}
