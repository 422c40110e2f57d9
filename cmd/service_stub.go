//go:build !windows

package cmd

import (
	"errors"

	"github.com/winpeek/winpeek/internal/config"
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/service"
)

// buildService has no collaborators to wire on this platform.
func buildService(config.Settings, logger.LoggerInterface, bool) (*service.Service, error) {
	return nil, errors.New("winpeek only inspects windows on Windows hosts")
}
