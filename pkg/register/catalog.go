package register

import "fmt"

// Bits is the size of the configuration register.
const Bits = 128

// Size is the packed register size in bytes.
const Size = Bits / 8

// FieldSpec describes one named slice of the configuration register.
// Offset is the position of the field's most significant bit, counted
// with bit 0 as the register LSB and bit 127 as the register MSB.
type FieldSpec struct {
	Name    string
	Offset  int
	Width   int
	Default int
}

// MaxValue returns the largest value the field can hold.
func (f FieldSpec) MaxValue() int {
	return 1<<f.Width - 1
}

// Catalog is an ordered, read-only register layout.
type Catalog []FieldSpec

// Default is the layout of the 128-bit analog front-end configuration
// register. Field names match the keys the GUI layer produces.
var Default = Catalog{
	// CSH channel enables, bits 127..120
	{Name: "_CSH_EN_8_", Offset: 127, Width: 1},
	{Name: "_CSH_EN_7_", Offset: 126, Width: 1},
	{Name: "_CSH_EN_6_", Offset: 125, Width: 1},
	{Name: "_CSH_EN_5_", Offset: 124, Width: 1},
	{Name: "_CSH_EN_4_", Offset: 123, Width: 1},
	{Name: "_CSH_EN_3_", Offset: 122, Width: 1},
	{Name: "_CSH_EN_2_", Offset: 121, Width: 1},
	{Name: "_CSH_EN_1_", Offset: 120, Width: 1},

	// PI channel enables, bits 119..112
	{Name: "_PI_EN_8_", Offset: 119, Width: 1},
	{Name: "_PI_EN_7_", Offset: 118, Width: 1},
	{Name: "_PI_EN_6_", Offset: 117, Width: 1},
	{Name: "_PI_EN_5_", Offset: 116, Width: 1},
	{Name: "_PI_EN_4_", Offset: 115, Width: 1},
	{Name: "_PI_EN_3_", Offset: 114, Width: 1},
	{Name: "_PI_EN_2_", Offset: 113, Width: 1},
	{Name: "_PI_EN_1_", Offset: 112, Width: 1},

	// PI configuration
	{Name: "_PI_DC_CTRL_", Offset: 111, Width: 3},
	{Name: "_PI_CAP_CTRL_", Offset: 108, Width: 5},

	// Per-channel PI delay settings, 7 bits each
	{Name: "_PI_DELAY_CTRL1_", Offset: 103, Width: 7},
	{Name: "_PI_DELAY_CTRL2_", Offset: 96, Width: 7},
	{Name: "_PI_DELAY_CTRL3_", Offset: 89, Width: 7},
	{Name: "_PI_DELAY_CTRL4_", Offset: 82, Width: 7},
	{Name: "_PI_DELAY_CTRL5_", Offset: 75, Width: 7},
	{Name: "_PI_DELAY_CTRL6_", Offset: 68, Width: 7},
	{Name: "_PI_DELAY_CTRL7_", Offset: 61, Width: 7},
	{Name: "_PI_DELAY_CTRL8_", Offset: 54, Width: 7},

	{Name: "_PI_SUM_DELAY_CTRL_", Offset: 47, Width: 7},
	{Name: "_PI_TEST_DELAY_CTRL_", Offset: 40, Width: 3},

	// Filter enables
	{Name: "_BPF_SAMP_EN_", Offset: 37, Width: 1},
	{Name: "_BPF_EN_", Offset: 36, Width: 1},
	{Name: "_LPF_SAMP_EN_", Offset: 35, Width: 1},
	{Name: "_LPF_EN_", Offset: 34, Width: 1},

	// Current controls, 3 bits each
	{Name: "_BGR_OUT_CTRL_", Offset: 33, Width: 3},
	{Name: "_CSH_ICTRL_", Offset: 30, Width: 3},
	{Name: "_PI_ICTRL_", Offset: 27, Width: 3},
	{Name: "_DEMOD_ICTRL_", Offset: 24, Width: 3},
	{Name: "_BUFF_ICTRL_", Offset: 21, Width: 3},

	// System enables and resets
	{Name: "_SUM_PI_EN_", Offset: 18, Width: 1},
	{Name: "_DEMOD_ICH_EN_", Offset: 17, Width: 1},
	{Name: "_DEMOD_QCH_EN_", Offset: 16, Width: 1},
	{Name: "_LVDS_RES_CTRL_", Offset: 15, Width: 1},
	{Name: "_BUFF_EN_", Offset: 14, Width: 1},
	{Name: "_IQ_DIV_EN_", Offset: 13, Width: 1},
	{Name: "_IQ_DIV_RST_", Offset: 12, Width: 1},

	// Test network
	{Name: "_CSH_TEST_EN_", Offset: 11, Width: 1},
	{Name: "_CSH_VCM_EN_", Offset: 10, Width: 1},
	{Name: "_PI_TEST_EN_", Offset: 9, Width: 1},
	{Name: "_SPARE_", Offset: 8, Width: 1},
	{Name: "_TEST_ADD_", Offset: 7, Width: 4},
	{Name: "_TMUX_SEL_", Offset: 3, Width: 4},
}

// Validate checks that the catalog's bit ranges are disjoint and jointly
// cover all 128 register positions. Every bit position must belong to
// exactly one field; a violation invalidates every assignment the engine
// would produce, so callers should treat it as fatal at startup.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c))
	var owner [Bits]string

	for _, f := range c {
		if f.Name == "" {
			return &InvariantError{Detail: "field with empty name"}
		}
		if seen[f.Name] {
			return &InvariantError{Detail: "duplicate field " + f.Name}
		}
		seen[f.Name] = true

		if f.Width < 1 {
			return &InvariantError{Detail: "field " + f.Name + " has non-positive width"}
		}
		lo := f.Offset - f.Width + 1
		if lo < 0 || f.Offset >= Bits {
			return &InvariantError{Detail: "field " + f.Name + " exceeds register bounds"}
		}
		for pos := lo; pos <= f.Offset; pos++ {
			if owner[pos] != "" {
				return &InvariantError{Detail: fmt.Sprintf("fields %s and %s overlap at bit %d", owner[pos], f.Name, pos)}
			}
			owner[pos] = f.Name
		}
	}

	for pos, name := range owner {
		if name == "" {
			return &InvariantError{Detail: fmt.Sprintf("bit %d not covered by any field", pos)}
		}
	}

	return nil
}

// Lookup returns the spec for name, or false if the catalog has no such field.
func (c Catalog) Lookup(name string) (FieldSpec, bool) {
	for _, f := range c {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
