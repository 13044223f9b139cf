// Package firmware defines the contracts for the upload path: embedding
// the register bytes into a sketch and driving an external build/upload
// toolchain. The implementations live outside this module; the core only
// hands over an immutable 16-byte register and the SPI clock frequency.
package firmware

import (
	"fmt"

	"chipcfg/pkg/register"
)

// Embedder produces or patches a firmware source artifact carrying the
// register bytes and clock frequency.
type Embedder interface {
	Embed(data [register.Size]byte, clockKHz int) error
}

// Uploader compiles and flashes a sketch to the bridge board on the
// given port.
type Uploader interface {
	Upload(sketch, port string) error
}

// Job is one embed-then-upload run.
type Job struct {
	Data     [register.Size]byte
	ClockKHz int
	Sketch   string
	Port     string
}

// Run embeds the register into the sketch and uploads it. The first
// failing step aborts the job.
func (j Job) Run(e Embedder, u Uploader) error {
	if err := e.Embed(j.Data, j.ClockKHz); err != nil {
		return fmt.Errorf("failed to embed register data: %w", err)
	}

	if err := u.Upload(j.Sketch, j.Port); err != nil {
		return fmt.Errorf("failed to upload sketch: %w", err)
	}

	return nil
}
