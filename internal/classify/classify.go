// Package classify identifies well-known application families from window
// class names, executable paths, and titles. The rules drive eligibility
// decisions for windows that do not follow the usual top-level conventions,
// such as UWP frame hosts and shell windows without a caption.
package classify

import (
	"strings"
)

// baseName extracts the last path segment regardless of host GOOS, since
// executable paths are Windows-style (`C:\...\app.exe`) even when the
// heuristics run in portable tests.
func baseName(path string) string {
	return path[strings.LastIndexAny(path, `\/`)+1:]
}

// AppMatch describes one named application matched by title substring or
// executable base name. All comparisons are case-insensitive.
type AppMatch struct {
	Name          string   `mapstructure:"name"`
	TitleContains []string `mapstructure:"title_contains"`
	Executables   []string `mapstructure:"executables"`
}

// Matches reports whether the given title or executable path belongs to
// this application.
func (m AppMatch) Matches(title, exePath string) bool {
	tl := strings.ToLower(title)
	for _, sub := range m.TitleContains {
		if sub != "" && strings.Contains(tl, strings.ToLower(sub)) {
			return true
		}
	}

	base := strings.ToLower(baseName(exePath))
	for _, exe := range m.Executables {
		if exe != "" && base == strings.ToLower(exe) {
			return true
		}
	}

	return false
}

// Rules holds the configurable application heuristics.
type Rules struct {
	// HostClass is the window class of UWP frame host windows.
	HostClass string `mapstructure:"host_class"`

	// HostExecutables are process names that host UWP content.
	HostExecutables []string `mapstructure:"host_executables"`

	// ShellClasses are window classes of shell file browser windows.
	ShellClasses []string `mapstructure:"shell_classes"`

	// ShellExecutables are shell process names.
	ShellExecutables []string `mapstructure:"shell_executables"`

	// ShellFallbackTitle is used for shell windows with no usable title.
	ShellFallbackTitle string `mapstructure:"shell_fallback_title"`

	// PinnedApps are applications allowed past the usual popup, owner, and
	// empty-title rejections. Kept deliberately narrow.
	PinnedApps []AppMatch `mapstructure:"pinned_apps"`

	// UtilityOverlays are launcher and palette style windows that must
	// never appear in the window list.
	UtilityOverlays []AppMatch `mapstructure:"utility_overlays"`
}

// DefaultRules returns the built-in heuristics.
func DefaultRules() Rules {
	return Rules{
		HostClass:          "ApplicationFrameWindow",
		HostExecutables:    []string{"applicationframehost.exe"},
		ShellClasses:       []string{"CabinetWClass"},
		ShellExecutables:   []string{"explorer.exe"},
		ShellFallbackTitle: "File Explorer",
		PinnedApps: []AppMatch{
			{
				Name:          "WhatsApp",
				TitleContains: []string{"whatsapp"},
				Executables:   []string{"whatsapp.exe"},
			},
		},
		UtilityOverlays: []AppMatch{
			{
				Name:          "Command Palette",
				TitleContains: []string{"command palette", "befehlspalette"},
				Executables:   []string{"microsoft.cmdpal.ui.exe"},
			},
		},
	}
}

// IsUtilityOverlay reports whether a window belongs to a launcher or
// palette utility that is excluded from the window list.
func (r Rules) IsUtilityOverlay(title, exePath string) bool {
	for _, m := range r.UtilityOverlays {
		if m.Matches(title, exePath) {
			return true
		}
	}
	return false
}

// IsHostClass reports whether className is the UWP frame host class.
func (r Rules) IsHostClass(className string) bool {
	return strings.EqualFold(className, r.HostClass)
}

// IsHostProcess reports whether exePath is a UWP frame host process.
func (r Rules) IsHostProcess(exePath string) bool {
	base := strings.ToLower(baseName(exePath))
	for _, exe := range r.HostExecutables {
		if base == strings.ToLower(exe) {
			return true
		}
	}
	return false
}

// IsShell reports whether the window is a shell file browser, matched by
// class name or by owning process.
func (r Rules) IsShell(className, exePath string) bool {
	for _, cls := range r.ShellClasses {
		if strings.EqualFold(className, cls) {
			return true
		}
	}

	base := strings.ToLower(baseName(exePath))
	for _, exe := range r.ShellExecutables {
		if base == strings.ToLower(exe) {
			return true
		}
	}

	return false
}

// PinnedApp returns the pinned application matching the window, if any.
func (r Rules) PinnedApp(title, exePath string) (AppMatch, bool) {
	for _, m := range r.PinnedApps {
		if m.Matches(title, exePath) {
			return m, true
		}
	}
	return AppMatch{}, false
}
