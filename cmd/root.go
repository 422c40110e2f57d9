// Package cmd implements the command-line interface for winpeek.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/winpeek/winpeek/internal/config"
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/version"
)

// RootCmd is the root command for the winpeek CLI application.
var RootCmd = &cobra.Command{
	Use:          "winpeek",
	Short:        "winpeek - List, watch, focus, and snapshot desktop windows",
	Version:      version.GetVersion(),
	RunE:         runRoot,
	SilenceUsage: true, // Don't show usage on runtime errors
}

func init() {
	// Set custom version template to show full version info
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// Add flags
	RootCmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolP("logs", "l", false, "print the current log file to stdout and exit")
	RootCmd.PersistentFlags().StringP("config", "c", "", "path to the config file")
	RootCmd.PersistentFlags().BoolP("all-desktops", "a", false, "include windows from every virtual desktop")
}

// runRoot handles the bare invocation: --logs dumps the log file,
// anything else shows help.
func runRoot(cmd *cobra.Command, args []string) error {
	opts := NewOptionsFromFlags(cmd)
	if opts.ShowLogs {
		return handleLogsFlag(opts, os.Exit)
	}
	return cmd.Help()
}

// handleLogsFlag processes the --logs flag and exits if needed
func handleLogsFlag(opts *Options, exitFunc func(int)) error {
	if !opts.ShowLogs {
		return nil
	}

	if err := logger.PrintLogFile(nil, logger.LoggerOptions{}); err != nil {
		if os.IsNotExist(err) {
			logPath := logger.GetLogPath(logger.LoggerOptions{})
			fmt.Fprintf(os.Stderr, "Log file does not exist: %s\n", logPath)
			exitFunc(1)
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		exitFunc(1)
	}

	exitFunc(0)
	return nil // Won't actually reach here due to exitFunc
}

// initializeLogger creates a logger from the parsed options
func initializeLogger(opts *Options) (logger.LoggerInterface, error) {
	log, err := logger.NewLogger(logger.LoggerOptions{
		Verbose:  opts.Verbose,
		Compress: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// setup performs the shared subcommand preamble: options, logging, and
// configuration loading.
func setup(cmd *cobra.Command) (*Options, config.Settings, logger.LoggerInterface, error) {
	opts := NewOptionsFromFlags(cmd)

	if opts.ShowLogs {
		if err := handleLogsFlag(opts, os.Exit); err != nil {
			return nil, config.Settings{}, nil, err
		}
	}

	log, err := initializeLogger(opts)
	if err != nil {
		return nil, config.Settings{}, nil, err
	}

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Close()
		return nil, config.Settings{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	return opts, settings, log, nil
}
