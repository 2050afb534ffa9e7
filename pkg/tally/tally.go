// Package tally provides an ordered, immutable mapping from property name to count.
package tally

import (
	"fmt"
	"strings"
)

// Pair is a single property name and its count.
type Pair struct {
	Key   string
	Count int
}

// Map is an ordered tally of property names to non-negative counts.
// The zero value is an empty map. A Map is never modified after construction;
// every operation that changes contents returns a new Map.
type Map struct {
	keys   []string
	counts map[string]int
}

// New builds a Map from pairs. A repeated key keeps its first position and
// takes the last count.
func New(pairs ...Pair) Map {
	if len(pairs) == 0 {
		return Map{}
	}
	m := Map{
		keys:   make([]string, 0, len(pairs)),
		counts: make(map[string]int, len(pairs)),
	}
	for _, p := range pairs {
		if _, ok := m.counts[p.Key]; !ok {
			m.keys = append(m.keys, p.Key)
		}
		m.counts[p.Key] = p.Count
	}
	return m
}

// Of builds a Map from alternating key/count arguments, e.g.
// Of("float", 3, "margin-left", 2). It panics on malformed arguments.
func Of(kv ...any) Map {
	if len(kv)%2 != 0 {
		panic("tally.Of: odd number of arguments")
	}
	pairs := make([]Pair, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("tally.Of: key at %d is %T, want string", i, kv[i]))
		}
		count, ok := kv[i+1].(int)
		if !ok {
			panic(fmt.Sprintf("tally.Of: count for %q is %T, want int", key, kv[i+1]))
		}
		pairs = append(pairs, Pair{Key: key, Count: count})
	}
	return New(pairs...)
}

// Len returns the number of keys.
func (m Map) Len() int {
	return len(m.keys)
}

// IsEmpty reports whether the map has no keys.
func (m Map) IsEmpty() bool {
	return len(m.keys) == 0
}

// Get returns the count for key and whether the key is present.
func (m Map) Get(key string) (int, bool) {
	n, ok := m.counts[key]
	return n, ok
}

// Count returns the count for key, or 0 if absent.
func (m Map) Count(key string) int {
	return m.counts[key]
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	_, ok := m.counts[key]
	return ok
}

// Keys returns the keys in order. The returned slice is a copy.
func (m Map) Keys() []string {
	if len(m.keys) == 0 {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Pairs returns the entries in order.
func (m Map) Pairs() []Pair {
	if len(m.keys) == 0 {
		return nil
	}
	pairs := make([]Pair, len(m.keys))
	for i, k := range m.keys {
		pairs[i] = Pair{Key: k, Count: m.counts[k]}
	}
	return pairs
}

// Each calls fn for every entry in order.
func (m Map) Each(fn func(key string, count int)) {
	for _, k := range m.keys {
		fn(k, m.counts[k])
	}
}

// Sum returns the total of all counts.
func (m Map) Sum() int {
	total := 0
	for _, n := range m.counts {
		total += n
	}
	return total
}

// With returns a copy of m with key set to count. An existing key keeps its
// position; a new key is appended.
func (m Map) With(key string, count int) Map {
	b := NewBuilder(m)
	b.Set(key, count)
	return b.Map()
}

// MapValues returns a map with the same keys in the same order, each count
// replaced by fn(count). An empty map is returned as is.
func (m Map) MapValues(fn func(count int) int) Map {
	if len(m.keys) == 0 {
		return m
	}
	out := Map{
		keys:   m.Keys(),
		counts: make(map[string]int, len(m.keys)),
	}
	for _, k := range m.keys {
		out.counts[k] = fn(m.counts[k])
	}
	return out
}

// Equal reports whether m and other hold the same entries in the same order.
func (m Map) Equal(other Map) bool {
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k || other.counts[k] != m.counts[k] {
			return false
		}
	}
	return true
}

// EqualCounts reports whether m and other hold the same entries, ignoring order.
func (m Map) EqualCounts(other Map) bool {
	if len(m.keys) != len(other.keys) {
		return false
	}
	for _, k := range m.keys {
		n, ok := other.counts[k]
		if !ok || n != m.counts[k] {
			return false
		}
	}
	return true
}

// String renders the map as {key:count, ...}.
func (m Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s:%d", k, m.counts[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Builder accumulates entries for a new Map. It is not safe for concurrent use,
// and must not be used after Map is called.
type Builder struct {
	keys   []string
	counts map[string]int
}

// NewBuilder returns a Builder seeded with a copy of base.
func NewBuilder(base Map) *Builder {
	b := &Builder{
		keys:   make([]string, len(base.keys), len(base.keys)+4),
		counts: make(map[string]int, len(base.keys)+4),
	}
	copy(b.keys, base.keys)
	for k, n := range base.counts {
		b.counts[k] = n
	}
	return b
}

// Set stores count under key.
func (b *Builder) Set(key string, count int) {
	if _, ok := b.counts[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.counts[key] = count
}

// Add increases key by delta, inserting it at the end when absent.
func (b *Builder) Add(key string, delta int) {
	n, ok := b.counts[key]
	if !ok {
		b.keys = append(b.keys, key)
	}
	b.counts[key] = n + delta
}

// Map returns the built Map.
func (b *Builder) Map() Map {
	if len(b.keys) == 0 {
		return Map{}
	}
	m := Map{keys: b.keys, counts: b.counts}
	b.keys, b.counts = nil, nil
	return m
}
