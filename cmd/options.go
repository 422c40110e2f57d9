package cmd

import "github.com/spf13/cobra"

// Options holds the flag values shared by every subcommand.
type Options struct {
	Verbose     bool
	ShowLogs    bool
	ConfigPath  string
	AllDesktops bool
}

// NewOptionsFromFlags creates Options from parsed command flags
func NewOptionsFromFlags(cmd *cobra.Command) *Options {
	return &Options{
		Verbose:     getBoolFlag(cmd, "verbose"),
		ShowLogs:    getBoolFlag(cmd, "logs"),
		ConfigPath:  getStringFlag(cmd, "config"),
		AllDesktops: getBoolFlag(cmd, "all-desktops"),
	}
}

// getBoolFlag retrieves a boolean flag, checking both local and persistent flags
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		// Try persistent flags if not found in local flags
		val, _ = cmd.PersistentFlags().GetBool(name)
	}

	return val
}

func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		val, _ = cmd.PersistentFlags().GetString(name)
	}

	return val
}
