package prioritize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/css-prioritize/pkg/tally"
)

// Weight policy names accepted by WeightByName.
const (
	WeightBinary    = "binary"
	WeightIdentity  = "identity"
	WeightThreshold = "threshold"
	WeightCapped    = "capped"
)

// ErrUnknownWeight is returned by WeightByName for an unrecognized policy.
var ErrUnknownWeight = errors.New("unknown weight policy")

// WeightOptions parameterizes the threshold and capped policies.
type WeightOptions struct {
	Min    int // threshold: counts above Min score Weight
	Weight int // threshold: score for counts above Min
	Max    int // capped: upper bound per unit
}

// Identity passes raw counts through unchanged.
func Identity(m tally.Map) tally.Map {
	return m
}

// Threshold scores weight for every count above min and 0 otherwise.
func Threshold(min, weight int) Transform {
	return func(m tally.Map) tally.Map {
		return m.MapValues(func(n int) int {
			if n > min {
				return weight
			}
			return 0
		})
	}
}

// Capped limits each unit's contribution per property to max.
func Capped(max int) Transform {
	return func(m tally.Map) tally.Map {
		return m.MapValues(func(n int) int {
			if n > max {
				return max
			}
			return n
		})
	}
}

// WeightNames lists the policies WeightByName understands.
func WeightNames() []string {
	return []string{WeightBinary, WeightIdentity, WeightThreshold, WeightCapped}
}

// WeightByName resolves a policy name to a Transform.
func WeightByName(name string, opts WeightOptions) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WeightBinary:
		return Binary, nil
	case WeightIdentity:
		return Identity, nil
	case WeightThreshold:
		if opts.Min < 0 || opts.Weight < 0 {
			return nil, fmt.Errorf("threshold needs non-negative min and weight, got min=%d weight=%d", opts.Min, opts.Weight)
		}
		return Threshold(opts.Min, opts.Weight), nil
	case WeightCapped:
		if opts.Max < 1 {
			return nil, fmt.Errorf("capped needs max >= 1, got %d", opts.Max)
		}
		return Capped(opts.Max), nil
	default:
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownWeight, name, strings.Join(WeightNames(), ", "))
	}
}
