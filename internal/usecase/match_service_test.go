package usecase

import (
	"testing"

	"github.com/gearcheck/backend/internal/domain"
)

func refsOf(refs ...domain.Reference) domain.ReferenceSet {
	set := domain.NewReferenceSet()
	for _, r := range refs {
		set.Add(r)
	}
	return set
}

func TestCovered(t *testing.T) {
	matcher := NewMatchService(nil, MatchConfig{})

	t.Run("unaugmented reference covers any copy", func(t *testing.T) {
		refs := refsOf(domain.Reference{Name: "Aeneas"})
		entry := domain.InventoryEntry{Name: "Aeneas", AugmentText: "Path: A"}
		if !matcher.Covered(entry, refs) {
			t.Error("reference without augments should cover an augmented copy")
		}
	})

	t.Run("name match is case insensitive", func(t *testing.T) {
		refs := refsOf(domain.Reference{Name: "AENEAS"})
		entry := domain.InventoryEntry{Name: "aeneas"}
		if !matcher.Covered(entry, refs) {
			t.Error("names should compare case insensitively")
		}
	})

	t.Run("log name matches too", func(t *testing.T) {
		refs := refsOf(domain.Reference{Name: "Sacred Kindred's Crest"})
		entry := domain.InventoryEntry{
			Name:    "S. Kindred Crest",
			LogName: "sacred kindred's crest",
		}
		if !matcher.Covered(entry, refs) {
			t.Error("reference naming the log name should cover the entry")
		}
	})

	t.Run("augment subset covers", func(t *testing.T) {
		refs := refsOf(domain.Reference{
			Name:        "Herculean Helm",
			AugmentText: `"Accuracy+20"`,
		})
		entry := domain.InventoryEntry{
			Name:        "Herculean Helm",
			AugmentText: "Accuracy+20; DEX+10; System: Augment Points: 50",
		}
		if !matcher.Covered(entry, refs) {
			t.Error("reference augments are a subset of the entry's, should cover")
		}
	})

	t.Run("augment mismatch does not cover", func(t *testing.T) {
		refs := refsOf(domain.Reference{
			Name:        "Herculean Helm",
			AugmentText: `"Mag. Acc.+20"`,
		})
		entry := domain.InventoryEntry{
			Name:        "Herculean Helm",
			AugmentText: "Accuracy+20; DEX+10",
		}
		if matcher.Covered(entry, refs) {
			t.Error("entry lacking a required augment should not be covered")
		}
	})

	t.Run("augmented reference against unaugmented entry", func(t *testing.T) {
		refs := refsOf(domain.Reference{
			Name:        "Herculean Helm",
			AugmentText: `"Accuracy+20"`,
		})
		entry := domain.InventoryEntry{Name: "Herculean Helm"}
		if matcher.Covered(entry, refs) {
			t.Error("entry without augments cannot satisfy an augment requirement")
		}
	})

	t.Run("no name match", func(t *testing.T) {
		refs := refsOf(domain.Reference{Name: "Aeneas"})
		entry := domain.InventoryEntry{Name: "Carmine Mask"}
		if matcher.Covered(entry, refs) {
			t.Error("different item should not be covered")
		}
	})

	t.Run("empty reference set covers nothing", func(t *testing.T) {
		entry := domain.InventoryEntry{Name: "Aeneas"}
		if matcher.Covered(entry, domain.NewReferenceSet()) {
			t.Error("empty reference set should cover nothing")
		}
	})
}

func TestFindOrphans(t *testing.T) {
	matcher := NewMatchService(nil, MatchConfig{})

	refs := refsOf(
		domain.Reference{Name: "Aeneas"},
		domain.Reference{Name: "Genbu's Shield", AugmentText: `"Path: A"`},
	)
	entries := []domain.InventoryEntry{
		{Name: "Aeneas", ContainerName: "wardrobe"},
		{Name: "Genbu's Shield", ContainerName: "wardrobe", AugmentText: "Path: A; System: Augment Points: 0"},
		{Name: "Genbu's Shield", ContainerName: "wardrobe2", AugmentText: "Path: B"},
	}

	orphans := matcher.FindOrphans(entries, refs)
	if len(orphans) != 1 {
		t.Fatalf("FindOrphans() = %v, want exactly the Path: B shield", orphans)
	}
	if orphans[0].ContainerName != "wardrobe2" || orphans[0].AugmentText != "Path: B" {
		t.Errorf("orphan = %+v, want the Path: B shield", orphans[0])
	}
}

func TestFindOrphansPreservesOrder(t *testing.T) {
	matcher := NewMatchService(nil, MatchConfig{})

	entries := []domain.InventoryEntry{
		{Name: "Zulfiqar"},
		{Name: "Aeneas"},
		{Name: "Carmine Mask"},
	}
	orphans := matcher.FindOrphans(entries, domain.NewReferenceSet())
	if len(orphans) != 3 {
		t.Fatalf("FindOrphans() returned %d entries, want 3", len(orphans))
	}
	for i := range entries {
		if orphans[i].Name != entries[i].Name {
			t.Errorf("orphans[%d] = %q, want %q (input order preserved)", i, orphans[i].Name, entries[i].Name)
		}
	}
}

func TestCompare(t *testing.T) {
	matcher := NewMatchService(nil, MatchConfig{})

	refs := refsOf(domain.Reference{Name: "Aeneas"})
	entries := []domain.InventoryEntry{
		{Name: "Aeneas"},
		{Name: "Carmine Mask"},
	}

	result := matcher.Compare(entries, refs)
	if result.TotalReferences != 1 {
		t.Errorf("TotalReferences = %d, want 1", result.TotalReferences)
	}
	if result.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", result.TotalEntries)
	}
	if result.OrphanCount() != 1 {
		t.Errorf("OrphanCount() = %d, want 1", result.OrphanCount())
	}

	t.Run("zero orphans is a normal result", func(t *testing.T) {
		all := refsOf(
			domain.Reference{Name: "Aeneas"},
			domain.Reference{Name: "Carmine Mask"},
		)
		result := matcher.Compare(entries, all)
		if result.OrphanCount() != 0 {
			t.Errorf("OrphanCount() = %d, want 0", result.OrphanCount())
		}
	})
}
