//go:build windows

package cmd

import (
	"log/slog"

	"github.com/winpeek/winpeek/internal/capture"
	"github.com/winpeek/winpeek/internal/config"
	"github.com/winpeek/winpeek/internal/desktop"
	"github.com/winpeek/winpeek/internal/enumerate"
	"github.com/winpeek/winpeek/internal/events"
	"github.com/winpeek/winpeek/internal/focus"
	"github.com/winpeek/winpeek/internal/icon"
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/service"
	"github.com/winpeek/winpeek/internal/snapshot"
)

// buildService wires the production collaborators. withEvents controls
// whether hook and poller producers are started; one-shot commands skip
// them.
func buildService(settings config.Settings, log logger.LoggerInterface, withEvents bool) (*service.Service, error) {
	var desktopFilter desktop.Filter
	if mgr, err := desktop.NewManager(); err == nil {
		desktopFilter = mgr
	} else {
		// No virtual desktop service; list everything rather than fail.
		log.Warn("virtual desktop manager unavailable", slog.Any("error", err))
		desktopFilter = desktop.AllowAll{}
	}

	enum := enumerate.New(settings.Filter(), desktopFilter, log)
	icons := icon.NewCache(icon.NewSystemResolver(settings.Rules))
	thumbnails := capture.NewEngine(capture.DefaultStrategies(), snapshot.New(), icons, log)

	var engine *events.Engine
	if withEvents {
		health := events.NewHealth()
		engine = events.NewEngine(health, log,
			events.NewHookSource(health, enum, log),
			events.NewPoller(events.ListerFunc(enum.Poll)))
	}

	return service.New(service.Deps{
		Enumerator: enum,
		Thumbnails: thumbnails,
		Icons:      icons,
		Focuser:    focus.New(log),
		Events:     engine,
	}, settings, log), nil
}
