package mapreduce

import (
	"fmt"
	"io"
	"sort"

	"github.com/dtnitsch/css-prioritize/pkg/tally"
)

// Ranked returns the entries sorted by count (descending). Ties keep map order.
func Ranked(counts tally.Map) []tally.Pair {
	ss := counts.Pairs()
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Count > ss[j].Count
	})
	return ss
}

// TopProperties returns the top N properties as "name:count" strings
// (e.g., "float:12"). A negative n returns every property.
func TopProperties(counts tally.Map, n int) []string {
	ss := Ranked(counts)

	limit := n
	if n < 0 || len(ss) < n {
		limit = len(ss)
	}

	properties := make([]string, limit)
	for i := 0; i < limit; i++ {
		properties[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Count)
	}

	return properties
}

// PrintTopProperties writes the top N properties as a numbered list.
// A negative n prints every property.
func PrintTopProperties(w io.Writer, counts tally.Map, n int) error {
	ss := Ranked(counts)

	limit := n
	if n < 0 || len(ss) < n {
		limit = len(ss)
	}

	for i := 0; i < limit; i++ {
		if _, err := fmt.Fprintf(w, "%d. %s: %d\n", i+1, ss[i].Key, ss[i].Count); err != nil {
			return err
		}
	}
	return nil
}
