package controller

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"go.bug.st/serial"
)

// DefaultDrainTimeout is how long Run keeps reading replies after its input ends
const DefaultDrainTimeout = 500 * time.Millisecond

// Controller forwards commands to the T'REX firmware over serial and copies its output back
type Controller struct {
	port io.ReadWriteCloser
	name string

	// DrainTimeout is how long the port must be quiet after the input ends before Run returns
	DrainTimeout time.Duration

	closeOnce sync.Once
}

// New opens the serial port from the Config. If no port is set, the first USB serial port is used
func New(cfg Config) (*Controller, error) {
	if cfg.SerialPort == SerialPortNone {
		c := NewWithPort(newDryRunPort())
		c.name = SerialPortNone
		return c, nil
	}

	if cfg.SerialPort == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return nil, fmt.Errorf("no serial port configured: %w", err)
		}
		cfg.SerialPort = ports[0]
	}

	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(cfg.SerialPort, mode)
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %s: %w", cfg.SerialPort, err)
	}

	c := NewWithPort(port)
	c.name = fmt.Sprintf("%s @ %d baud", cfg.SerialPort, cfg.BaudRate)
	return c, nil
}

// NewWithPort uses an already open connection
func NewWithPort(port io.ReadWriteCloser) *Controller {
	return &Controller{
		port:         port,
		DrainTimeout: DefaultDrainTimeout,
	}
}

// Name describes the connection
func (c *Controller) Name() string {
	return c.name
}

// Run reads lines from in, converts them with ParseLine, and writes them to the port. Output from
// the firmware is copied to out. It returns when ctx is done, the port fails, or in is exhausted
// and the port has been quiet for DrainTimeout
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	errs := make(chan error, 2)
	received := make(chan struct{}, 1)

	go func() {
		buf := make([]byte, 128)
		for {
			n, err := c.port.Read(buf)
			if n > 0 {
				_, _ = out.Write(buf[:n])
				select {
				case received <- struct{}{}:
				default:
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					errs <- nil
					return
				}
				log.Printf("Read error: %v", err)
				errs <- fmt.Errorf("error reading serial port: %w", err)
				return
			}
		}
	}()

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			cmd, err := ParseLine(scanner.Text())
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			if cmd == nil {
				continue
			}

			_, err = c.port.Write(cmd)
			if err != nil {
				errs <- fmt.Errorf("error writing command: %w", err)
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- err
			return
		}

		c.drain(ctx, received)
		errs <- nil
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errs:
		return err
	}
}

// drain waits until nothing has been received for DrainTimeout so replies to the last commands
// are not lost
func (c *Controller) drain(ctx context.Context, received <-chan struct{}) {
	idle := time.NewTimer(c.DrainTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-received:
			idle.Reset(c.DrainTimeout)
		case <-idle.C:
			return
		}
	}
}

// Close closes the port. It is safe to call more than once
func (c *Controller) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.port.Close()
	})
	return err
}

// dryRunPort echoes written commands as its output so SerialPortNone can be used without hardware
type dryRunPort struct {
	mtx    sync.Mutex
	cond   *sync.Cond
	buf    bytes.Buffer
	closed bool
}

func newDryRunPort() *dryRunPort {
	p := &dryRunPort{}
	p.cond = sync.NewCond(&p.mtx)
	return p
}

// Read blocks until a command is written or the port is closed
func (p *dryRunPort) Read(b []byte) (int, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	for p.buf.Len() == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.buf.Len() == 0 {
		return 0, io.EOF
	}
	return p.buf.Read(b)
}

func (p *dryRunPort) Write(b []byte) (int, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return 0, io.ErrClosedPipe
	}
	fmt.Fprintf(&p.buf, "[%s] %s\n", SerialPortNone, b)
	p.cond.Broadcast()

	return len(b), nil
}

func (p *dryRunPort) Close() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.closed = true
	p.cond.Broadcast()
	return nil
}
