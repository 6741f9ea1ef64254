package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/trexbot/trex/controller"
	"github.com/trexbot/trex/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the desktop drive panel",
	Long: `Open a window with mode buttons, servo sliders, and the controller's log. If no serial
port is set by flag or environment, a configuration window is shown first.`,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	driveUI := ui.NewDriveUI()

	driveUI.Run(ctx, cfg, func(cfg controller.Config) (io.Writer, error) {
		c, err := controller.New(cfg)
		if err != nil {
			return nil, err
		}

		r, w := io.Pipe()

		go func() {
			defer c.Close()
			defer r.Close()

			err := c.Run(ctx, r, io.MultiWriter(os.Stdout, driveUI))
			if err != nil {
				log.Printf("controller stopped: %v", err)
			}
			cancel()
		}()

		return w, nil
	})

	return nil
}
