package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trexbot/trex/controller"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List USB serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := controller.GetSerialPorts()
		if errors.Is(err, controller.ErrNoUSBSerial) {
			fmt.Println("No USB serial ports found")
			return nil
		}
		if err != nil {
			return err
		}

		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
