package domain

import (
	"sort"
	"strings"
)

// Reference is an item mention extracted from gearswap script text.
type Reference struct {
	Name        string `json:"name"`
	AugmentText string `json:"augments,omitempty"`
}

// NameLower returns the comparison key for the reference name.
func (r Reference) NameLower() string {
	return strings.ToLower(r.Name)
}

// NormalizedAugments returns the reference's augment requirement as a set.
func (r Reference) NormalizedAugments() AugmentSet {
	return NormalizeAugments(r.AugmentText)
}

// HasAugments reports whether the reference specifies any augment text.
// A reference without augments covers every copy of the named item.
func (r Reference) HasAugments() bool {
	return r.AugmentText != ""
}

// referenceKey is the dedup identity: lowercased name plus raw augment text.
// Two references with the same name but different raw augment text are
// distinct, even if the text normalizes to the same set.
type referenceKey struct {
	name     string
	augments string
}

// ReferenceSet deduplicates references by identity, keeping the spelling of
// the first occurrence.
type ReferenceSet map[referenceKey]Reference

// NewReferenceSet returns an empty reference set.
func NewReferenceSet() ReferenceSet {
	return make(ReferenceSet)
}

// Add inserts a reference unless an identical one is already present.
func (s ReferenceSet) Add(r Reference) {
	key := referenceKey{name: r.NameLower(), augments: r.AugmentText}
	if _, ok := s[key]; !ok {
		s[key] = r
	}
}

// Merge unions other into s.
func (s ReferenceSet) Merge(other ReferenceSet) {
	for key, r := range other {
		if _, ok := s[key]; !ok {
			s[key] = r
		}
	}
}

// Len returns the number of distinct references.
func (s ReferenceSet) Len() int {
	return len(s)
}

// AugmentedCount returns how many references carry augment text.
func (s ReferenceSet) AugmentedCount() int {
	n := 0
	for _, r := range s {
		if r.HasAugments() {
			n++
		}
	}
	return n
}

// Values returns the references sorted by name then augment text.
func (s ReferenceSet) Values() []Reference {
	values := make([]Reference, 0, len(s))
	for _, r := range s {
		values = append(values, r)
	}
	sort.Slice(values, func(i, j int) bool {
		ni, nj := values[i].NameLower(), values[j].NameLower()
		if ni != nj {
			return ni < nj
		}
		return values[i].AugmentText < values[j].AugmentText
	})
	return values
}

// InventoryEntry is one stack of an item in a specific storage container.
type InventoryEntry struct {
	ItemID        int    `json:"item_id"`
	Name          string `json:"item_name"`
	LogName       string `json:"item_name_log,omitempty"`
	ContainerID   int    `json:"container_id"`
	ContainerName string `json:"container_name"`
	AugmentText   string `json:"augments,omitempty"`
	Count         int    `json:"count"`
}

// NameLower returns the comparison key for the primary name.
func (e InventoryEntry) NameLower() string {
	return strings.ToLower(e.Name)
}

// LogNameLower returns the comparison key for the alternate log name,
// or "" when no log name is recorded.
func (e InventoryEntry) LogNameLower() string {
	if e.LogName == "" {
		return ""
	}
	return strings.ToLower(e.LogName)
}

// NormalizedAugments returns the entry's augments as a set.
func (e InventoryEntry) NormalizedAugments() AugmentSet {
	return NormalizeAugments(e.AugmentText)
}

// displayAugmentLimit bounds the augment text shown in display names.
const displayAugmentLimit = 60

// DisplayName returns the item name, with augments appended in brackets and
// truncated when long.
func (e InventoryEntry) DisplayName() string {
	return displayName(e.Name, e.AugmentText)
}

func displayName(name, augments string) string {
	if augments == "" {
		return name
	}
	if runes := []rune(augments); len(runes) > displayAugmentLimit {
		augments = string(runes[:displayAugmentLimit]) + "..."
	}
	return name + " [" + augments + "]"
}

// ComparisonResult aggregates one orphan-detection run.
type ComparisonResult struct {
	// Orphans holds the unmatched entries in original inventory order.
	Orphans         []InventoryEntry
	TotalReferences int
	TotalEntries    int
}

// OrphanCount returns the number of orphaned entries.
func (r ComparisonResult) OrphanCount() int {
	return len(r.Orphans)
}
