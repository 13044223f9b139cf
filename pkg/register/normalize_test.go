package register

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		want    Values
		wantErr bool
	}{
		{
			name: "checkbox booleans",
			raw:  map[string]any{"_CSH_EN_1_": true, "_CSH_EN_2_": false},
			want: Values{"_CSH_EN_1_": 1, "_CSH_EN_2_": 0},
		},
		{
			name: "dropdown strings",
			raw:  map[string]any{"_PI_DELAY_CTRL1_": "127", "_PI_DC_CTRL_": "7"},
			want: Values{"_PI_DELAY_CTRL1_": 127, "_PI_DC_CTRL_": 7},
		},
		{
			name: "string with surrounding whitespace",
			raw:  map[string]any{"_TEST_ADD_": " 12 "},
			want: Values{"_TEST_ADD_": 12},
		},
		{
			name: "plain integers",
			raw:  map[string]any{"_TMUX_SEL_": 9, "_PI_CAP_CTRL_": int64(20)},
			want: Values{"_TMUX_SEL_": 9, "_PI_CAP_CTRL_": 20},
		},
		{
			name: "unsigned integer",
			raw:  map[string]any{"_PI_CAP_CTRL_": uint(20)},
			want: Values{"_PI_CAP_CTRL_": 20},
		},
		{
			name: "empty input",
			raw:  map[string]any{},
			want: Values{},
		},
		{
			name:    "unparseable string",
			raw:     map[string]any{"_PI_DC_CTRL_": "seven"},
			wantErr: true,
		},
		{
			name:    "negative integer",
			raw:     map[string]any{"_PI_DC_CTRL_": -3},
			wantErr: true,
		},
		{
			name:    "unsigned integer beyond int range",
			raw:     map[string]any{"_PI_DC_CTRL_": uint(math.MaxUint)},
			wantErr: true,
		},
		{
			name:    "negative string",
			raw:     map[string]any{"_PI_DC_CTRL_": "-3"},
			wantErr: true,
		},
		{
			name:    "unsupported type",
			raw:     map[string]any{"_PI_DC_CTRL_": 3.5},
			wantErr: true,
		},
		{
			name:    "nil value",
			raw:     map[string]any{"_PI_DC_CTRL_": nil},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var malformed *MalformedInputError
				require.ErrorAs(t, err, &malformed)
				assert.Equal(t, "_PI_DC_CTRL_", malformed.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeLenient_ZeroesMalformed(t *testing.T) {
	got := NormalizeLenient(map[string]any{
		"_CSH_EN_1_":   true,
		"_PI_DC_CTRL_": "garbage",
		"_TEST_ADD_":   "15",
	})

	assert.Equal(t, Values{
		"_CSH_EN_1_":   1,
		"_PI_DC_CTRL_": 0,
		"_TEST_ADD_":   15,
	}, got)
}

func TestNormalize_FeedsAssign(t *testing.T) {
	// A raw GUI snapshot should flow through normalize and strict
	// assignment unchanged.
	raw := map[string]any{
		"_CSH_EN_8_": true,
		"_TEST_ADD_": "5",
		"_TMUX_SEL_": 10,
	}

	values, err := Normalize(raw)
	require.NoError(t, err)

	data, err := Default.AssignStrict(values)
	require.NoError(t, err)

	assert.Equal(t, byte(0x80), data[0])
	assert.Equal(t, byte(0x5A), data[15])
}
