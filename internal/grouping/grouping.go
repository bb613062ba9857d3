// Package grouping counts expectation keys by their parent path.
//
// A key's group is everything before its last "/". Keys without a slash, and
// keys whose only slash is the first character, fall into the "" group.
// Groups are reported by descending count; equal counts keep the order in
// which each group was first seen.
package grouping

import (
	"sort"
	"strings"
)

// Group is one parent path and the number of keys beneath it.
type Group struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Count int    `json:"count" yaml:"count" toml:"count"`
}

// GroupKey returns the part of key before its final "/".
func GroupKey(key string) string {
	i := strings.LastIndexByte(key, '/')
	if i < 0 {
		return ""
	}
	return key[:i]
}

// Tally accumulates group counts in first-seen order.
type Tally struct {
	counts map[string]int
	order  []string
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add records one key.
func (t *Tally) Add(key string) {
	g := GroupKey(key)
	if _, seen := t.counts[g]; !seen {
		t.order = append(t.order, g)
	}
	t.counts[g]++
}

// Groups returns the groups sorted by descending count.
// Ties keep first-seen order.
func (t *Tally) Groups() []Group {
	groups := make([]Group, len(t.order))
	for i, g := range t.order {
		groups[i] = Group{Key: g, Count: t.counts[g]}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	return groups
}

// Count groups keys and returns them sorted as Tally.Groups does.
func Count(keys []string) []Group {
	t := NewTally()
	for _, k := range keys {
		t.Add(k)
	}
	return t.Groups()
}
