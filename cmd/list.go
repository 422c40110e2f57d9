package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the open windows with thumbnails and icons as JSON",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("no-images", false, "omit thumbnail and icon data")
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	opts, settings, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	svc, err := buildService(settings, log, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	windows, err := svc.ListWindows(opts.AllDesktops)
	if err != nil {
		log.Error("window list failed", slog.Any("error", err))
		return err
	}

	if getBoolFlag(cmd, "no-images") {
		for i := range windows {
			windows[i].Thumbnail = ""
			windows[i].Icon = ""
		}
	}

	out, err := json.MarshalIndent(windows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode window list: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
