// Package particle parses the numeric value syntax used by the heart
// particle tuning in data/valentine.yaml.
//
// Supported formats:
//   - Fixed value: "1.5"          → Min=1.5, Max=1.5
//   - Range:       "[0.5 1.3]"    → Min=0.5, Max=1.3 (uniform random in between)
//   - Symmetric:   "±20" / "+-20" → Min=-20, Max=20
package particle

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is a closed interval [Min, Max] that particles sample from at spawn time.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a degenerate range that always samples v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Symmetric returns [-v, v].
func Symmetric(v float64) Range {
	if v < 0 {
		v = -v
	}
	return Range{Min: -v, Max: v}
}

// ParseRange parses a value string from the particle configuration.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range value")
	}

	// "±20" 或 "+-20"：对称区间（用于抖动）
	for _, prefix := range []string{"±", "+-"} {
		if strings.HasPrefix(s, prefix) {
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(s, prefix)), 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid symmetric range %q: %w", s, err)
			}
			return Symmetric(v), nil
		}
	}

	// "[min max]"
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
		if len(parts) != 2 {
			return Range{}, fmt.Errorf("range %q must have exactly two values", s)
		}
		min, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range min in %q: %w", s, err)
		}
		max, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range max in %q: %w", s, err)
		}
		if min > max {
			return Range{}, fmt.Errorf("range %q has min > max", s)
		}
		return Range{Min: min, Max: max}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// UnmarshalYAML accepts both plain numbers and range strings.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: range must be a scalar", value.Line)
	}
	parsed, err := ParseRange(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML writes the range back in the same syntax it was parsed from.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// String formats the range as "[min max]", or a plain number if fixed.
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(r.Min, 'g', -1, 64) + " " + strconv.FormatFloat(r.Max, 'g', -1, 64) + "]"
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Sample returns a uniform random value in [Min, Max] using rng.
func (r Range) Sample(rng *rand.Rand) float64 {
	return RandomInRange(rng, r.Min, r.Max)
}

// RandomInRange returns a random float64 in the range [min, max].
// A nil rng falls back to the global source.
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if rng == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + rng.Float64()*(max-min)
}
