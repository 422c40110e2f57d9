package capture

import (
	"log/slog"

	"github.com/winpeek/winpeek/internal/icon"
	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/snapshot"
	"github.com/winpeek/winpeek/internal/window"
)

// Engine runs the strategy chain and manages the thumbnail cache.
//
// Thumbnail never fails: when every strategy comes up empty the result is
// the empty image, and minimized windows degrade to their last good cached
// image or an icon placeholder.
type Engine struct {
	strategies []Strategy
	cache      *snapshot.Cache
	icons      *icon.Cache
	log        logger.LoggerInterface
}

// NewEngine builds an engine over the given strategy chain. The icon cache
// may be nil, which disables placeholder synthesis.
func NewEngine(strategies []Strategy, cache *snapshot.Cache, icons *icon.Cache, log logger.LoggerInterface) *Engine {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if cache == nil {
		cache = snapshot.New()
	}

	return &Engine{
		strategies: strategies,
		cache:      cache,
		icons:      icons,
		log:        log,
	}
}

// Cache exposes the underlying thumbnail cache.
func (e *Engine) Cache() *snapshot.Cache { return e.cache }

// Thumbnail returns a thumbnail for the window, served from cache when the
// cached entry is fresh and matches the window's current geometry and the
// requested size.
func (e *Engine) Thumbnail(info window.Info, maxWidth, maxHeight int) string {
	if cached, ok := e.cache.Lookup(info.Handle, info.Bounds, maxWidth, maxHeight); ok {
		return cached
	}

	// A minimized window has no live surface worth recapturing; the last
	// image with real content represents it best.
	if info.IsMinimized {
		if last, ok := e.cache.LastAdequate(info.Handle); ok {
			return last
		}
	}

	return e.Refresh(info, maxWidth, maxHeight)
}

// Refresh captures a new thumbnail unconditionally and updates the cache.
// The quality gate still applies: a minimized capture without real content
// falls back to the last good cached image or an icon placeholder rather
// than poisoning the cache.
func (e *Engine) Refresh(info window.Info, maxWidth, maxHeight int) string {
	fresh := e.runChain(info, maxWidth, maxHeight)

	if info.IsMinimized && !imaging.Adequate(fresh) {
		if last, ok := e.cache.LastAdequate(info.Handle); ok {
			return last
		}

		if placeholder := e.placeholder(info, maxWidth, maxHeight); !imaging.IsEmpty(placeholder) {
			return placeholder
		}

		return fresh
	}

	e.cache.Store(info.Handle, snapshot.Entry{
		DataURI: fresh,
		Bounds:  info.Bounds,
		Width:   maxWidth,
		Height:  maxHeight,
	})

	return fresh
}

// Forget drops cached state for a closed window.
func (e *Engine) Forget(h window.Handle) {
	e.cache.Forget(h)
	if e.icons != nil {
		e.icons.Forget(h)
	}
}

func (e *Engine) runChain(info window.Info, maxWidth, maxHeight int) string {
	for _, s := range e.strategies {
		if !s.CanCapture(info) {
			continue
		}

		result, err := s.Capture(info, maxWidth, maxHeight)
		if err != nil {
			e.log.Trace("capture strategy failed",
				slog.String("strategy", s.Name()),
				slog.Uint64("hwnd", uint64(info.Handle)),
				slog.Any("error", err))
			continue
		}

		if imaging.IsEmpty(result) {
			continue
		}

		e.log.Trace("capture strategy succeeded",
			slog.String("strategy", s.Name()),
			slog.Uint64("hwnd", uint64(info.Handle)),
			slog.Int("bytes", len(result)))

		return result
	}

	return imaging.Empty
}

func (e *Engine) placeholder(info window.Info, maxWidth, maxHeight int) string {
	if e.icons == nil {
		return imaging.Empty
	}

	iconURI := e.icons.Get(info.Handle, info.ExecutablePath, icon.DefaultSize)

	img, err := imaging.Decode(iconURI)
	if err != nil {
		img = nil
	}

	placeholder, err := imaging.Placeholder(img, maxWidth, maxHeight)
	if err != nil {
		return imaging.Empty
	}

	return placeholder
}
