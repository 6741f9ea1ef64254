package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trexbot/trex/controller"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Send commands typed on stdin",
	Long: `Read one command per line from stdin and send it to the controller. Output from the
controller is printed as it arrives. When stdin ends, replies are read until the controller is
quiet for the --drain duration.

` + controller.Usage,
	RunE: runDrive,
}

var drainTimeout time.Duration

func init() {
	driveCmd.Flags().DurationVar(&drainTimeout, "drain", controller.DefaultDrainTimeout, "How long to wait for replies after stdin ends")
	rootCmd.AddCommand(driveCmd)
}

func runDrive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := controller.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	c.DrainTimeout = drainTimeout

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Printf("T'REX Drive\n")
		fmt.Printf("Connection: %s\n", c.Name())
		fmt.Printf("Type a command and press Enter, or Ctrl+C to exit\n\n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.Run(ctx, os.Stdin, os.Stdout)
}
