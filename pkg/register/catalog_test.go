package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Validate(t *testing.T) {
	require.NoError(t, Default.Validate())
}

func TestDefaultCatalog_KnownPositions(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		width  int
	}{
		{name: "_CSH_EN_8_", offset: 127, width: 1},
		{name: "_CSH_EN_1_", offset: 120, width: 1},
		{name: "_PI_EN_8_", offset: 119, width: 1},
		{name: "_PI_DC_CTRL_", offset: 111, width: 3},
		{name: "_PI_CAP_CTRL_", offset: 108, width: 5},
		{name: "_PI_DELAY_CTRL1_", offset: 103, width: 7},
		{name: "_PI_DELAY_CTRL8_", offset: 54, width: 7},
		{name: "_PI_SUM_DELAY_CTRL_", offset: 47, width: 7},
		{name: "_BGR_OUT_CTRL_", offset: 33, width: 3},
		{name: "_TEST_ADD_", offset: 7, width: 4},
		{name: "_TMUX_SEL_", offset: 3, width: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Default.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.offset, f.Offset)
			assert.Equal(t, tt.width, f.Width)
		})
	}
}

func TestCatalog_Validate_Violations(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantMsg string
	}{
		{
			name: "overlap",
			catalog: Catalog{
				{Name: "A", Offset: 127, Width: 128},
				{Name: "B", Offset: 0, Width: 1},
			},
			wantMsg: "overlap at bit 0",
		},
		{
			name: "gap",
			catalog: Catalog{
				{Name: "A", Offset: 127, Width: 120},
			},
			wantMsg: "not covered",
		},
		{
			name: "duplicate name",
			catalog: Catalog{
				{Name: "A", Offset: 127, Width: 64},
				{Name: "A", Offset: 63, Width: 64},
			},
			wantMsg: "duplicate field A",
		},
		{
			name: "out of bounds low",
			catalog: Catalog{
				{Name: "A", Offset: 5, Width: 10},
			},
			wantMsg: "exceeds register bounds",
		},
		{
			name: "out of bounds high",
			catalog: Catalog{
				{Name: "A", Offset: 128, Width: 1},
			},
			wantMsg: "exceeds register bounds",
		},
		{
			name: "zero width",
			catalog: Catalog{
				{Name: "A", Offset: 127, Width: 0},
			},
			wantMsg: "non-positive width",
		},
		{
			name: "empty name",
			catalog: Catalog{
				{Name: "", Offset: 127, Width: 128},
			},
			wantMsg: "empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			require.Error(t, err)
			var inv *InvariantError
			require.ErrorAs(t, err, &inv)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCatalog_MissingFieldLeavesGap(t *testing.T) {
	// Dropping any single field must break coverage.
	trimmed := make(Catalog, 0, len(Default)-1)
	trimmed = append(trimmed, Default[1:]...)
	assert.Error(t, trimmed.Validate())
}

func TestFieldSpec_MaxValue(t *testing.T) {
	assert.Equal(t, 1, FieldSpec{Width: 1}.MaxValue())
	assert.Equal(t, 7, FieldSpec{Width: 3}.MaxValue())
	assert.Equal(t, 15, FieldSpec{Width: 4}.MaxValue())
	assert.Equal(t, 127, FieldSpec{Width: 7}.MaxValue())
}

func TestCatalog_Lookup(t *testing.T) {
	f, ok := Default.Lookup("_SPARE_")
	require.True(t, ok)
	assert.Equal(t, 8, f.Offset)

	_, ok = Default.Lookup("_NOT_A_FIELD_")
	assert.False(t, ok)
}
