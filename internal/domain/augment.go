package domain

import (
	"sort"
	"strings"
)

// systemAugmentPrefix marks derived/informational segments in augment text
// (e.g. "System: Augment Points: 350") that are not player-meaningful modifiers.
const systemAugmentPrefix = "System:"

// AugmentSet is an order-independent set of normalized augment descriptions.
type AugmentSet map[string]struct{}

// NormalizeAugments canonicalizes a raw augment list for comparison.
//
// It accepts both source conventions: the inventory export format
// (semicolon-separated) and the lua format (comma-separated inside braces,
// individual augments quoted). The two forms normalize to the same set.
func NormalizeAugments(raw string) AugmentSet {
	set := make(AugmentSet)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return set
	}

	// Strip one layer of outer braces (lua format).
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		raw = raw[1 : len(raw)-1]
	}

	var parts []string
	if strings.Contains(raw, ";") {
		parts = strings.Split(raw, ";")
	} else {
		parts = splitOutsideQuotes(raw)
	}

	for _, part := range parts {
		part = stripQuotes(strings.TrimSpace(part))
		// Collapse doubled double-quotes (CSV escaping).
		part = strings.ReplaceAll(part, `""`, `"`)
		if part == "" || strings.HasPrefix(part, systemAugmentPrefix) {
			continue
		}
		set[strings.ToLower(part)] = struct{}{}
	}

	return set
}

// splitOutsideQuotes splits on commas, except commas inside a single- or
// double-quoted run: an augment description may itself contain commas.
func splitOutsideQuotes(s string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	var quoteChar rune

	for _, ch := range s {
		switch {
		case (ch == '"' || ch == '\'') && !inQuotes:
			inQuotes = true
			quoteChar = ch
		case ch == quoteChar && inQuotes:
			inQuotes = false
			quoteChar = 0
		case ch == ',' && !inQuotes:
			if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
				parts = append(parts, trimmed)
			}
			current.Reset()
			continue
		}
		current.WriteRune(ch)
	}
	if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
		parts = append(parts, trimmed)
	}

	return parts
}

// stripQuotes removes one layer of matching surrounding quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first := s[0]
		if (first == '"' || first == '\'') && s[len(s)-1] == first {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Contains reports whether the set holds the given normalized augment.
func (a AugmentSet) Contains(augment string) bool {
	_, ok := a[augment]
	return ok
}

// SubsetOf reports whether every augment in a is present in other.
// The empty set is a subset of everything.
func (a AugmentSet) SubsetOf(other AugmentSet) bool {
	for augment := range a {
		if _, ok := other[augment]; !ok {
			return false
		}
	}
	return true
}

// Values returns the augments in sorted order.
func (a AugmentSet) Values() []string {
	values := make([]string, 0, len(a))
	for augment := range a {
		values = append(values, augment)
	}
	sort.Strings(values)
	return values
}

// Canonical re-serializes the set in the semicolon convention. Normalizing
// the result yields the same set back.
func (a AugmentSet) Canonical() string {
	return strings.Join(a.Values(), "; ")
}

// Equal reports whether two sets hold exactly the same augments.
func (a AugmentSet) Equal(other AugmentSet) bool {
	if len(a) != len(other) {
		return false
	}
	return a.SubsetOf(other)
}
