package analytics

import (
	"strings"

	"github.com/dtnitsch/css-prioritize/pkg/tally"
)

// Analytics turns raw lists of observed property names into tally maps.
type Analytics struct {
	// FoldVendorPrefixes counts -webkit-transition as transition, and so on.
	FoldVendorPrefixes bool
}

// vendorPrefixes are the browser-specific property prefixes folded away when
// FoldVendorPrefixes is set.
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

// StripVendorPrefix removes a leading vendor prefix from a property name.
func StripVendorPrefix(name string) string {
	for _, p := range vendorPrefixes {
		if strings.HasPrefix(name, p) {
			return strings.TrimPrefix(name, p)
		}
	}
	return name
}

// NormalizeProperty lowercases and trims a property name. Custom properties
// (--foo) are case sensitive and keep their case.
func (a *Analytics) NormalizeProperty(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ":")
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") {
		return name
	}
	name = strings.ToLower(name)
	if a.FoldVendorPrefixes {
		name = StripVendorPrefix(name)
	}
	return name
}

// NormalizeTally normalizes every key of m the way PropertyFrequency does.
// Keys that collapse to the same name are summed at the position of the first;
// keys that are empty after normalization are dropped.
func (a *Analytics) NormalizeTally(m tally.Map) tally.Map {
	b := tally.NewBuilder(tally.Map{})
	m.Each(func(key string, count int) {
		key = a.NormalizeProperty(key)
		if key == "" {
			return
		}
		b.Add(key, count)
	})
	return b.Map()
}

// PropertyFrequency counts each normalized name, in first-encounter order.
// Names that are empty after normalization are skipped.
func (a *Analytics) PropertyFrequency(names []string) tally.Map {
	b := tally.NewBuilder(tally.Map{})
	for _, name := range names {
		name = a.NormalizeProperty(name)
		if name == "" {
			continue
		}
		b.Add(name, 1)
	}
	return b.Map()
}
