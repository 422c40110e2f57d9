//go:build windows

package icon

import (
	"github.com/winpeek/winpeek/internal/classify"
	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/winapi"
	"github.com/winpeek/winpeek/internal/window"
)

// systemResolver resolves icons from the live window. Packaged apps get
// their store logo through the shell; classic windows answer icon
// messages or fall back to the icon embedded in their executable.
type systemResolver struct {
	rules classify.Rules
}

// NewSystemResolver returns the production resolver. Rules identify the
// windows that need the packaged-app path.
func NewSystemResolver(rules classify.Rules) Resolver {
	return &systemResolver{rules: rules}
}

func (r *systemResolver) Resolve(h window.Handle, exePath string, size int) (string, error) {
	hwnd := uintptr(h)

	if r.packagedCandidate(hwnd, exePath) {
		if uri, err := r.packagedIcon(hwnd, size); err == nil {
			return uri, nil
		}
		// Fall through; frame hosts still carry a classic icon.
	}

	icon, release, err := winapi.WindowIcon(hwnd, exePath, size > DefaultSize)
	if err != nil {
		return "", err
	}
	defer release()

	img, err := winapi.RenderIcon(icon, size)
	if err != nil {
		return "", err
	}
	return imaging.Encode(img)
}

// packagedCandidate reports whether the window likely belongs to a
// packaged app, whose real logo lives in the apps folder rather than on
// the window.
func (r *systemResolver) packagedCandidate(hwnd uintptr, exePath string) bool {
	class := winapi.ClassName(hwnd)
	if r.rules.IsHostClass(class) || r.rules.IsHostProcess(exePath) {
		return true
	}
	_, pinned := r.rules.PinnedApp(winapi.WindowText(hwnd), exePath)
	return pinned
}

func (r *systemResolver) packagedIcon(hwnd uintptr, size int) (string, error) {
	id, err := winapi.AppUserModelID(hwnd)
	if err != nil {
		return "", err
	}
	img, err := winapi.AppIcon(id, size)
	if err != nil {
		return "", err
	}
	return imaging.Encode(img)
}
