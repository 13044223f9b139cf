package register

import (
	"log"
	"math"
	"strconv"
	"strings"
)

// Normalize converts raw UI values (checkbox booleans, dropdown strings,
// plain integers) into Values. It rejects anything that does not parse
// to a non-negative integer with a MalformedInputError.
func Normalize(raw map[string]any) (Values, error) {
	values := make(Values, len(raw))
	for name, rv := range raw {
		v, err := normalizeValue(rv)
		if err != nil {
			return nil, &MalformedInputError{Field: name, Value: rv}
		}
		values[name] = v
	}
	return values, nil
}

// NormalizeLenient converts raw UI values like Normalize, but replaces
// anything malformed with 0 after logging a warning. This preserves the
// behavior old configuration snapshots were written against.
func NormalizeLenient(raw map[string]any) Values {
	values := make(Values, len(raw))
	for name, rv := range raw {
		v, err := normalizeValue(rv)
		if err != nil {
			log.Printf("Warning: could not convert %s=%v, using 0: %v", name, rv, err)
			v = 0
		}
		values[name] = v
	}
	return values
}

func normalizeValue(rv any) (int, error) {
	switch v := rv.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case int:
		if v < 0 {
			return 0, strconv.ErrRange
		}
		return v, nil
	case uint:
		if v > math.MaxInt {
			return 0, strconv.ErrRange
		}
		return int(v), nil
	case int64:
		if v < 0 {
			return 0, strconv.ErrRange
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, strconv.ErrRange
		}
		return n, nil
	default:
		return 0, strconv.ErrSyntax
	}
}
