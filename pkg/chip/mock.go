package chip

import (
	"fmt"
	"sync"
	"time"

	"chipcfg/pkg/config"
	"chipcfg/pkg/register"
)

// Mock simulates the configuration target for testing and development.
// It acknowledges every operation after an optional delay and remembers
// the last register it was handed.
type Mock struct {
	cfg *config.MockConfig

	mu        sync.Mutex
	connected bool

	lastRegister [register.Size]byte
	transfers    int
	resets       int
}

// NewMock creates a mock device from the given configuration. A nil
// configuration behaves as an always-succeeding device with no delay.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{}
	}
	return &Mock{cfg: cfg}
}

// Connect marks the mock as connected.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	m.connected = true
	return nil
}

// Close marks the mock as disconnected.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	return nil
}

// Transfer records the register and acknowledges like the firmware
// would, honoring the configured delay and failure mode.
func (m *Mock) Transfer(data [register.Size]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}
	if err := m.respond(); err != nil {
		return err
	}

	m.lastRegister = data
	m.transfers++
	return nil
}

// Reset clears the recorded register back to all zeros.
func (m *Mock) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}
	if err := m.respond(); err != nil {
		return err
	}

	m.lastRegister = [register.Size]byte{}
	m.resets++
	return nil
}

// IsConnected returns whether the mock is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// LastRegister returns the most recently transferred register bytes.
func (m *Mock) LastRegister() [register.Size]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRegister
}

// Transfers returns how many transfers completed successfully.
func (m *Mock) Transfers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transfers
}

// Resets returns how many resets completed successfully.
func (m *Mock) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

func (m *Mock) respond() error {
	if m.cfg.Delay > 0 {
		time.Sleep(m.cfg.Delay)
	}
	switch m.cfg.FailWith {
	case "":
		return nil
	case config.MockFailTimeout:
		return ErrTimeout
	default:
		return &ProtocolError{Message: m.cfg.FailWith}
	}
}
