package chip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"chipcfg/pkg/register"
)

// Wire protocol bytes and acknowledgement tokens. The ESP32 bridge
// firmware answers every operation with newline-terminated ASCII
// status lines; tokens are matched by substring so diagnostic text
// around them is tolerated.
const (
	FrameStart = '<'
	FrameEnd   = '>'
	ResetByte  = 'R'

	TransferToken = "TRANSFER_COMPLETE"
	ResetToken    = "RESET_COMPLETE"
	ErrorToken    = "ERROR"
)

const (
	// DefaultTransferTimeout bounds one register transfer round-trip.
	DefaultTransferTimeout = 5 * time.Second
	// DefaultResetTimeout bounds a reset round-trip, which is faster.
	DefaultResetTimeout = 3 * time.Second

	// pollInterval is how long a single read may block while awaiting
	// a response line. It bounds both the timeout overshoot and how
	// quickly a decisive line is noticed.
	pollInterval = 10 * time.Millisecond
)

// ErrTimeout is returned when the peer produces no decisive response
// line before the operation deadline.
var ErrTimeout = errors.New("timeout waiting for chip response")

// ProtocolError carries an explicit error line reported by the peer,
// verbatim.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "chip reported error: " + e.Message
}

// Stream is the byte-stream the protocol runs over. go.bug.st/serial
// ports satisfy it directly; tests substitute in-memory fakes.
// SetReadTimeout must make Read return (0, nil) once the given
// duration passes with no data available.
type Stream interface {
	io.ReadWriter
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
	ResetOutputBuffer() error
}

// Transfer writes one framed 16-byte register to the stream and waits
// for the peer's acknowledgement. It returns nil on success, a
// *ProtocolError if the peer reports one, and ErrTimeout if no decisive
// line arrives within timeout. The caller must not issue concurrent
// operations on the same stream; after a timeout the same stream can be
// reused for the next attempt.
func Transfer(stream Stream, data [register.Size]byte, timeout time.Duration) error {
	frame := make([]byte, 0, register.Size+2)
	frame = append(frame, FrameStart)
	frame = append(frame, data[:]...)
	frame = append(frame, FrameEnd)

	return roundTrip(stream, frame, TransferToken, timeout)
}

// Reset sends the single-byte reset command and waits for the peer to
// confirm it restored the default chip configuration.
func Reset(stream Stream, timeout time.Duration) error {
	return roundTrip(stream, []byte{ResetByte}, ResetToken, timeout)
}

func roundTrip(stream Stream, frame []byte, successToken string, timeout time.Duration) error {
	if err := stream.ResetInputBuffer(); err != nil {
		return fmt.Errorf("failed to flush input buffer: %w", err)
	}
	if err := stream.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("failed to flush output buffer: %w", err)
	}

	if _, err := stream.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return awaitToken(stream, successToken, timeout)
}

// awaitToken reads response lines until one contains the success token,
// one contains the error token, or the deadline passes. All reads
// happen on the calling goroutine in pollInterval slices, so nothing
// keeps reading the stream after the call returns and a timed-out
// operation leaves the stream free for the next attempt.
func awaitToken(stream Stream, successToken string, timeout time.Duration) error {
	if err := stream.SetReadTimeout(pollInterval); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}

	deadline := time.Now().Add(timeout)
	var pending []byte
	buf := make([]byte, 256)

	for time.Now().Before(deadline) {
		n, err := stream.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				line := strings.TrimSpace(string(pending[:idx]))
				pending = pending[idx+1:]
				if line == "" {
					continue
				}
				if strings.Contains(line, successToken) {
					return nil
				}
				if strings.Contains(line, ErrorToken) {
					return &ProtocolError{Message: line}
				}
				// Informational line, keep waiting.
			}
		}
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("stream closed before decisive response")
			}
			return fmt.Errorf("failed to read response: %w", err)
		}
	}

	return ErrTimeout
}
