// Package prioritize tallies property usage across units of analysis.
//
// Each unit (a style rule, an element) contributes a tally map of the
// properties it uses. A Transform turns that raw tally into a contribution
// weight, and the reducers sum the weights into a combined tally that a
// prioritization step can read.
package prioritize

import "github.com/dtnitsch/css-prioritize/pkg/tally"

// Transform converts one unit's tally into contribution weights. It must return
// the same key set with non-negative counts and must not modify its input.
type Transform func(tally.Map) tally.Map

// Binary maps every count to 1, so a unit contributes "was this property used"
// rather than "how many times".
func Binary(m tally.Map) tally.Map {
	return m.MapValues(func(int) int { return 1 })
}

// ReduceDataSingle adds the weighted contribution of source to acc and returns
// the new accumulator. Keys already in acc keep their position, new keys are
// appended in the order transform returns them. A nil transform means Binary.
// Neither source nor acc is modified.
func ReduceDataSingle(source, acc tally.Map, transform Transform) tally.Map {
	if transform == nil {
		transform = Binary
	}
	weighted := transform(source)
	if weighted.IsEmpty() {
		return acc
	}

	b := tally.NewBuilder(acc)
	weighted.Each(func(key string, weight int) {
		b.Add(key, weight)
	})
	return b.Map()
}

// ReduceDataBulk folds ReduceDataSingle over sources from left to right,
// starting at initial. The zero tally.Map is the empty accumulator and a nil
// transform means Binary.
func ReduceDataBulk(sources []tally.Map, initial tally.Map, transform Transform) tally.Map {
	acc := initial
	for _, source := range sources {
		acc = ReduceDataSingle(source, acc, transform)
	}
	return acc
}
