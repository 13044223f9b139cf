package register

// Values maps field names to non-negative integer settings. Keys not
// present in the catalog are ignored; catalog fields missing from the
// map take their declared default.
type Values map[string]int

// Assign packs values into the 128-bit register and returns it as 16
// bytes, byte 0 carrying bits 127..120 with the most significant bit
// first. Values wider than their field are silently truncated to the
// low Width bits, matching the behavior configuration snapshots from
// older tool versions rely on. New callers should prefer AssignStrict.
func (c Catalog) Assign(values Values) [Size]byte {
	var out [Size]byte
	for _, f := range c {
		v, ok := values[f.Name]
		if !ok {
			v = f.Default
		}
		v &= f.MaxValue()
		writeField(&out, f, v)
	}
	return out
}

// AssignStrict packs values like Assign but rejects any value that is
// negative or exceeds its field's maximum instead of truncating it.
// This is the recommended mode when the result is destined for hardware.
func (c Catalog) AssignStrict(values Values) ([Size]byte, error) {
	var out [Size]byte
	for _, f := range c {
		v, ok := values[f.Name]
		if !ok {
			v = f.Default
		}
		if v < 0 || v > f.MaxValue() {
			return [Size]byte{}, &OutOfRangeError{Field: f.Name, Value: v, Max: f.MaxValue()}
		}
		writeField(&out, f, v)
	}
	return out, nil
}

// Decode unpacks 16 register bytes back into per-field values. It is
// the exact inverse of Assign over normalized inputs and exists for
// round-trip checks and diagnostics.
func (c Catalog) Decode(data [Size]byte) Values {
	values := make(Values, len(c))
	for _, f := range c {
		v := 0
		lo := f.Offset - f.Width + 1
		for i := 0; i < f.Width; i++ {
			v |= bit(data, lo+i) << i
		}
		values[f.Name] = v
	}
	return values
}

// writeField stores the low Width bits of v at positions
// Offset..Offset-Width+1. Bit p of the register lives in byte 15-p/8
// at in-byte position p%8.
func writeField(out *[Size]byte, f FieldSpec, v int) {
	lo := f.Offset - f.Width + 1
	for i := 0; i < f.Width; i++ {
		if v>>i&1 == 1 {
			pos := lo + i
			out[Size-1-pos/8] |= 1 << (pos % 8)
		}
	}
}

func bit(data [Size]byte, pos int) int {
	return int(data[Size-1-pos/8] >> (pos % 8) & 1)
}
