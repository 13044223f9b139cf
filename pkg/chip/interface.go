package chip

import "chipcfg/pkg/register"

// Device defines the interface for the configuration target (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Transfer(data [register.Size]byte) error
	Reset() error
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
