package mapreduce

import (
	"github.com/dtnitsch/css-prioritize/pkg/analytics"
	"github.com/dtnitsch/css-prioritize/pkg/tally"
)

// Map generates a property tally for a single unit's list of property names.
func Map(names []string, a *analytics.Analytics) tally.Map {
	return a.PropertyFrequency(names)
}

// Reduce adds together accumulators that were reduced independently, in order.
// Keys keep the position of their first appearance.
func Reduce(intermediate []tally.Map) tally.Map {
	b := tally.NewBuilder(tally.Map{})
	for _, counts := range intermediate {
		counts.Each(func(key string, n int) {
			b.Add(key, n)
		})
	}
	return b.Map()
}
