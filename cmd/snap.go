package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/winpeek/winpeek/internal/imaging"
)

var snapCmd = &cobra.Command{
	Use:   "snap <window-id>",
	Short: "Capture a fresh thumbnail of one window",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnap,
}

func init() {
	snapCmd.Flags().StringP("out", "o", "", "write the PNG to a file instead of printing the data URI")
	RootCmd.AddCommand(snapCmd)
}

func runSnap(cmd *cobra.Command, args []string) error {
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

	dataURI, err := svc.RefreshThumbnail(id)
	if err != nil {
		return err
	}
	if imaging.IsEmpty(dataURI) {
		return fmt.Errorf("no capture strategy produced an image for window %s", args[0])
	}

	outPath := getStringFlag(cmd, "out")
	if outPath == "" {
		fmt.Fprintln(os.Stdout, dataURI)
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, imaging.Prefix))
	if err != nil {
		return fmt.Errorf("decode thumbnail: %w", err)
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(raw))
	return nil
}
