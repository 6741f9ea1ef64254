package main

import (
	"github.com/spf13/cobra"

	"github.com/trexbot/trex/controller"
)

var (
	portName string
	baudRate int
)

var rootCmd = &cobra.Command{
	Use:   "trex",
	Short: "Drive a T'REX robot controller over serial",
	Long: `trex sends commands to the T'REX motor controller firmware and shows its output.

The serial port is chosen from, in order:
  --port /dev/ttyACM0
  TREX_SERIAL_PORT
  the first USB serial port

Use --port none to run without a controller.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device, or \"none\"")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", controller.DefaultBaudRate, "Baud rate")
}

// loadConfig reads the environment and lets flags override it
func loadConfig(cmd *cobra.Command) (controller.Config, error) {
	cfg, err := controller.ConfigFromEnv()
	if err != nil {
		return controller.Config{}, err
	}

	if cmd.Flags().Changed("port") {
		cfg.SerialPort = portName
	}
	if cmd.Flags().Changed("baud") {
		cfg.BaudRate = baudRate
	}

	return cfg, nil
}
