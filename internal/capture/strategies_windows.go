//go:build windows

package capture

// DefaultStrategies returns the production capture chain in preference
// order: compositor redirection for minimized windows, compositor frame
// readback for live ones, then self-paint, then a raw desktop blit.
func DefaultStrategies() []Strategy {
	return []Strategy{
		NewDWMThumbnail(),
		NewFrameProbe(),
		NewPrintWindow(),
		NewScreenCopy(),
	}
}
