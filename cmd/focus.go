package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/winpeek/winpeek/internal/window"
)

var focusCmd = &cobra.Command{
	Use:   "focus <window-id>",
	Short: "Restore a window and bring it to the foreground",
	Args:  cobra.ExactArgs(1),
	RunE:  runFocus,
}

func init() {
	RootCmd.AddCommand(focusCmd)
}

// parseHandle accepts decimal and 0x-prefixed hex window identifiers,
// matching the formats the list command emits.
func parseHandle(arg string) (window.Handle, error) {
	id, err := strconv.ParseUint(arg, 0, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid window identifier %q", arg)
	}
	return window.Handle(id), nil
}

func runFocus(cmd *cobra.Command, args []string) error {
	_, settings, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	id, err := parseHandle(args[0])
	if err != nil {
		return err
	}

	svc, err := buildService(settings, log, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	focused, err := svc.FocusWindow(id)
	if err != nil {
		return err
	}
	if !focused {
		return fmt.Errorf("window %s did not reach the foreground", args[0])
	}

	fmt.Printf("Focused window %s\n", args[0])
	return nil
}
