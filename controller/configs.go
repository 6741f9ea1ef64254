package controller

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.bug.st/serial/enumerator"
)

const (
	// SerialPortNone runs without a serial port. Commands are echoed instead of sent
	SerialPortNone = "none"

	DefaultBaudRate = 115200

	serialPortEnv = "TREX_SERIAL_PORT"
	baudRateEnv   = "TREX_BAUD_RATE"
)

var ErrNoUSBSerial = errors.New("no USB serial ports found")

// Config selects the serial port connected to the controller. If SerialPort is empty, the first
// USB serial port is used
type Config struct {
	SerialPort string
	BaudRate   int
}

// ConfigFromEnv reads TREX_SERIAL_PORT and TREX_BAUD_RATE
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		SerialPort: os.Getenv(serialPortEnv),
		BaudRate:   DefaultBaudRate,
	}

	if baud := os.Getenv(baudRateEnv); baud != "" {
		var err error
		cfg.BaudRate, err = strconv.Atoi(baud)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", baudRateEnv, err)
		}
	}

	return cfg, nil
}

// GetSerialPorts returns the names of USB serial ports
func GetSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var result []string
	for _, p := range ports {
		if p.IsUSB {
			result = append(result, p.Name)
		}
	}

	if len(result) == 0 {
		return nil, ErrNoUSBSerial
	}

	return result, nil
}
