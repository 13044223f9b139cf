package chip

import (
	"fmt"
	"log"
	"sync"
	"time"

	"go.bug.st/serial"

	"chipcfg/pkg/register"
)

// DefaultBaudRate is the standard UART speed of the ESP32 bridge.
const DefaultBaudRate = 115200

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial drives the chip through a local serial port. One operation is
// in flight at a time; the mutex serializes callers sharing a device.
type Serial struct {
	port            string
	baudRate        int
	transferTimeout time.Duration
	resetTimeout    time.Duration

	conn      serial.Port
	mu        sync.Mutex
	connected bool
}

// New creates a device on the named port. Zero baud rate and timeouts
// select the defaults.
func New(port string, baudRate int, transferTimeout, resetTimeout time.Duration) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if transferTimeout == 0 {
		transferTimeout = DefaultTransferTimeout
	}
	if resetTimeout == 0 {
		resetTimeout = DefaultResetTimeout
	}

	return &Serial{
		port:            port,
		baudRate:        baudRate,
		transferTimeout: transferTimeout,
		resetTimeout:    resetTimeout,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	return nil
}

// Close closes the serial port.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	return nil
}

// Transfer sends one framed register to the chip and waits for its
// acknowledgement.
func (d *Serial) Transfer(data [register.Size]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	return Transfer(d.conn, data, d.transferTimeout)
}

// Reset commands the chip back to its default configuration.
func (d *Serial) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	return Reset(d.conn, d.resetTimeout)
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}
