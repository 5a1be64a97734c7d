package usecase

import (
	"go.uber.org/zap"

	"github.com/gearcheck/backend/internal/domain"
)

// MatchConfig holds configuration for the match service
type MatchConfig struct {
	EnableDebugLogging bool
}

// MatchService decides whether inventory entries are covered by extracted
// script references.
type MatchService struct {
	log   *zap.Logger
	debug bool
}

// NewMatchService creates a new match service with the given configuration
func NewMatchService(log *zap.Logger, config MatchConfig) *MatchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchService{
		log:   log,
		debug: config.EnableDebugLogging,
	}
}

// Covered reports whether any reference covers the entry.
//
// A reference covers an entry when its lowercased name equals the entry's
// primary name or alternate log name, and either the reference carries no
// augment text (any copy of the item counts as used) or its normalized
// augment set is a subset of the entry's. Scripts may require only some of
// an item's augments; a copy with extra augments still satisfies them.
func (s *MatchService) Covered(entry domain.InventoryEntry, refs domain.ReferenceSet) bool {
	nameLower := entry.NameLower()
	logNameLower := entry.LogNameLower()

	// Normalized lazily: most entries fail the name check for every reference.
	var entryAugments domain.AugmentSet

	for _, ref := range refs {
		refName := ref.NameLower()
		if refName != nameLower && (logNameLower == "" || refName != logNameLower) {
			continue
		}

		if !ref.HasAugments() {
			return true
		}

		if entryAugments == nil {
			entryAugments = entry.NormalizedAugments()
		}
		if ref.NormalizedAugments().SubsetOf(entryAugments) {
			return true
		}
	}

	return false
}

// FindOrphans returns the entries no reference covers, preserving input order.
func (s *MatchService) FindOrphans(entries []domain.InventoryEntry, refs domain.ReferenceSet) []domain.InventoryEntry {
	var orphans []domain.InventoryEntry
	for _, entry := range entries {
		if s.Covered(entry, refs) {
			continue
		}
		if s.debug {
			s.log.Debug("orphaned entry",
				zap.String("item", entry.Name),
				zap.String("container", entry.ContainerName),
				zap.String("augments", entry.AugmentText))
		}
		orphans = append(orphans, entry)
	}
	return orphans
}

// Compare runs the orphan scan and aggregates counts for reporting.
func (s *MatchService) Compare(entries []domain.InventoryEntry, refs domain.ReferenceSet) domain.ComparisonResult {
	orphans := s.FindOrphans(entries, refs)
	result := domain.ComparisonResult{
		Orphans:         orphans,
		TotalReferences: refs.Len(),
		TotalEntries:    len(entries),
	}
	s.log.Debug("comparison complete",
		zap.Int("references", result.TotalReferences),
		zap.Int("entries", result.TotalEntries),
		zap.Int("orphans", result.OrphanCount()))
	return result
}
