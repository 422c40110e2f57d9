package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/winpeek/winpeek/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch [kind...]",
	Short: "Stream window lifecycle events as JSON lines",
	Long: `Stream window lifecycle events as JSON lines until interrupted.

Without arguments every event kind is streamed. Pass one or more kinds
(` + kindList() + `) to restrict the output.`,
	Args: validateWatchArgs,
	RunE: runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

func kindList() string {
	names := make([]string, 0, len(events.Kinds()))
	for _, k := range events.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func validateWatchArgs(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if _, ok := events.ParseKind(arg); !ok {
			return fmt.Errorf("unknown event kind %q (expected one of %s)", arg, kindList())
		}
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	_, settings, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	svc, err := buildService(settings, log, true)
	if err != nil {
		return err
	}
	defer svc.Close()

	enc := json.NewEncoder(os.Stdout)
	print := func(ev events.Event) {
		// Encoder errors on a closed stdout just mean we are shutting down.
		_ = enc.Encode(ev)
	}

	if len(args) == 0 {
		svc.SubscribeAll(print)
	} else {
		for _, arg := range args {
			kind, _ := events.ParseKind(arg)
			svc.Subscribe(kind, print)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Interrupted, stopping event delivery")
	svc.StopEvents()
	return nil
}
