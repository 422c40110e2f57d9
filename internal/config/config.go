// Package config loads runtime settings. Everything has a built-in default;
// a config file only overrides the heuristic allow-lists and size tunables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/winpeek/winpeek/internal/capture"
	"github.com/winpeek/winpeek/internal/classify"
	"github.com/winpeek/winpeek/internal/icon"
	"github.com/winpeek/winpeek/internal/window"
)

// Settings holds all runtime tunables.
type Settings struct {
	// Thumbnail bounds capture output.
	Thumbnail SizeSetting `mapstructure:"thumbnail"`

	// IconSize is the icon edge length in pixels.
	IconSize int `mapstructure:"icon_size"`

	// MinWindow rejects windows smaller than this from the window list.
	MinWindow SizeSetting `mapstructure:"min_window"`

	// Rules are the application identity heuristics.
	Rules classify.Rules `mapstructure:"rules"`
}

// SizeSetting is a width/height pair.
type SizeSetting struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Thumbnail: SizeSetting{Width: capture.DefaultWidth, Height: capture.DefaultHeight},
		IconSize:  icon.DefaultSize,
		MinWindow: SizeSetting{Width: int(window.DefaultMinWidth), Height: int(window.DefaultMinHeight)},
		Rules:     classify.DefaultRules(),
	}
}

// Load reads settings from the given config file, or from the default
// locations when path is empty. A missing config file is not an error; the
// defaults apply.
func Load(path string) (Settings, error) {
	settings := Default()

	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("winpeek")
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			v.AddConfigPath(filepath.Join(localAppData, "winpeek"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && path == "" {
			return settings, nil
		}
		if os.IsNotExist(err) && path == "" {
			return settings, nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}

	if err := v.Unmarshal(&settings); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	settings.normalize()
	return settings, nil
}

// normalize backfills zero values with defaults so a sparse config file
// cannot produce degenerate sizes.
func (s *Settings) normalize() {
	def := Default()

	if s.Thumbnail.Width <= 0 {
		s.Thumbnail.Width = def.Thumbnail.Width
	}
	if s.Thumbnail.Height <= 0 {
		s.Thumbnail.Height = def.Thumbnail.Height
	}
	if s.IconSize <= 0 {
		s.IconSize = def.IconSize
	}
	if s.MinWindow.Width <= 0 {
		s.MinWindow.Width = def.MinWindow.Width
	}
	if s.MinWindow.Height <= 0 {
		s.MinWindow.Height = def.MinWindow.Height
	}
	if s.Rules.HostClass == "" {
		s.Rules.HostClass = def.Rules.HostClass
	}
	if len(s.Rules.ShellClasses) == 0 {
		s.Rules.ShellClasses = def.Rules.ShellClasses
	}
	if len(s.Rules.ShellExecutables) == 0 {
		s.Rules.ShellExecutables = def.Rules.ShellExecutables
	}
	if s.Rules.ShellFallbackTitle == "" {
		s.Rules.ShellFallbackTitle = def.Rules.ShellFallbackTitle
	}
}

// Filter builds the eligibility filter described by the settings.
func (s Settings) Filter() window.Filter {
	f := window.NewFilter(s.Rules)
	f.MinWidth = int32(s.MinWindow.Width)
	f.MinHeight = int32(s.MinWindow.Height)
	return f
}
