package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chipcfg/pkg/register"
)

func TestState_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip.state")

	values := register.Values{
		"_CSH_EN_8_":       1,
		"_PI_DELAY_CTRL2_": 99,
		"_TEST_ADD_":       5,
		"_TMUX_SEL_":       10,
	}
	require.NoError(t, SaveState(path, values))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, values, loaded)
}

func TestLoadState_MissingFileIsEmpty(t *testing.T) {
	values, err := LoadState(filepath.Join(t.TempDir(), "nope.state"))
	require.NoError(t, err)
	assert.Empty(t, values)

	// An empty snapshot assigns every field its default.
	assert.Equal(t, [register.Size]byte{}, register.Default.Assign(values))
}

func TestLoadState_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip.state")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a\n- mapping\n"), 0644))

	_, err := LoadState(path)
	assert.Error(t, err)
}

func TestState_RoundTripsThroughRegister(t *testing.T) {
	// Snapshot -> assign -> decode -> snapshot must be lossless for
	// in-range values.
	path := filepath.Join(t.TempDir(), "chip.state")

	values := register.Values{}
	for _, f := range register.Default {
		values[f.Name] = f.MaxValue() / 2
	}
	require.NoError(t, SaveState(path, values))

	loaded, err := LoadState(path)
	require.NoError(t, err)

	data, err := register.Default.AssignStrict(loaded)
	require.NoError(t, err)
	assert.Equal(t, values, register.Default.Decode(data))
}
