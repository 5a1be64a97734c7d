package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gearcheck/backend/internal/domain"
	"github.com/gearcheck/backend/internal/metrics"
)

// ChecklistServiceConfig holds configuration for the checklist service
type ChecklistServiceConfig struct {
	EnableDebugLogging bool
}

// ChecklistService runs the orphan analysis and manages the resulting
// checklist: building it, ticking items off, and exporting it.
type ChecklistService struct {
	store     domain.ChecklistStore
	loader    domain.InventoryLoader
	extractor *Extractor
	matcher   *MatchService
	log       *zap.Logger
}

// NewChecklistService creates a new checklist service with dependencies
func NewChecklistService(
	store domain.ChecklistStore,
	loader domain.InventoryLoader,
	log *zap.Logger,
	config ChecklistServiceConfig,
) *ChecklistService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChecklistService{
		store:     store,
		loader:    loader,
		extractor: NewExtractor(log),
		matcher:   NewMatchService(log, MatchConfig{EnableDebugLogging: config.EnableDebugLogging}),
		log:       log,
	}
}

// AnalyzeSummary reports the counts of one analysis run.
type AnalyzeSummary struct {
	GearswapItems  int `json:"gearswap_items"`
	InventoryItems int `json:"inventory_items"`
	OrphanedItems  int `json:"orphaned_items"`
}

// Analyze extracts references from the script sources, loads the equippable
// inventory, finds orphans, and replaces the stored checklist with a fresh
// one built from them.
func (s *ChecklistService) Analyze(
	ctx context.Context,
	sources []domain.ScriptSource,
	inventory io.Reader,
	inventoryName string,
) (*AnalyzeSummary, error) {
	texts := make([]string, len(sources))
	names := make([]string, len(sources))
	for i, src := range sources {
		texts[i] = src.Text
		names[i] = src.Name
	}

	refs := s.extractor.ExtractAll(texts)

	entries, err := s.loader.Load(inventory, true)
	if err != nil {
		return nil, fmt.Errorf("loading inventory %q: %w", inventoryName, err)
	}

	result := s.matcher.Compare(entries, refs)

	state := domain.NewChecklist(result.Orphans, inventoryName, names)
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving checklist: %w", err)
	}

	metrics.AnalysesTotal.Inc()
	metrics.ReferencesExtracted.Add(float64(result.TotalReferences))
	metrics.EntriesCompared.Add(float64(result.TotalEntries))
	metrics.OrphansFound.Add(float64(result.OrphanCount()))

	s.log.Info("analysis complete",
		zap.String("inventory", inventoryName),
		zap.Int("scripts", len(sources)),
		zap.Int("references", result.TotalReferences),
		zap.Int("entries", result.TotalEntries),
		zap.Int("orphans", result.OrphanCount()))

	return &AnalyzeSummary{
		GearswapItems:  result.TotalReferences,
		InventoryItems: result.TotalEntries,
		OrphanedItems:  result.OrphanCount(),
	}, nil
}

// Status returns the current checklist state, or ErrNoChecklist.
func (s *ChecklistService) Status(ctx context.Context) (*domain.ChecklistState, error) {
	return s.store.Load(ctx)
}

// ChecklistRow is one checklist item shaped for the grouped view.
type ChecklistRow struct {
	Key         string `json:"key"`
	ItemName    string `json:"item_name"`
	DisplayName string `json:"display_name"`
	Augments    string `json:"augments"`
	Checked     bool   `json:"checked"`
	Notes       string `json:"notes"`
}

// ChecklistView is the checklist grouped by container.
type ChecklistView struct {
	TotalItems   int                       `json:"total_items"`
	CheckedCount int                       `json:"checked_count"`
	ByContainer  map[string][]ChecklistRow `json:"by_container"`
}

// Checklist returns the checklist grouped by container, items sorted by name.
func (s *ChecklistService) Checklist(ctx context.Context) (*ChecklistView, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	byContainer := make(map[string][]ChecklistRow)
	for key, item := range state.Items {
		byContainer[item.ContainerName] = append(byContainer[item.ContainerName], ChecklistRow{
			Key:         key,
			ItemName:    item.ItemName,
			DisplayName: item.DisplayName(),
			Augments:    item.Augments,
			Checked:     item.Checked,
			Notes:       item.Notes,
		})
	}
	for container := range byContainer {
		rows := byContainer[container]
		sort.Slice(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].ItemName) < strings.ToLower(rows[j].ItemName)
		})
	}

	return &ChecklistView{
		TotalItems:   state.TotalItems,
		CheckedCount: state.CheckedCount,
		ByContainer:  byContainer,
	}, nil
}

// UpdateItem sets the checked state and optional notes of one item, persists
// the change, and returns the updated state.
func (s *ChecklistService) UpdateItem(ctx context.Context, key string, checked bool, notes *string) (*domain.ChecklistState, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := state.Update(key, checked, notes); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving checklist: %w", err)
	}
	return state, nil
}

// Clear drops the stored checklist.
func (s *ChecklistService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// ExportJSON returns the checklist state as an indented JSON document, the
// same shape Import accepts.
func (s *ChecklistService) ExportJSON(ctx context.Context) ([]byte, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(state, "", "  ")
}

// Import replaces the stored checklist with a previously exported document.
// The document must carry the items, total_items, and inventory_file keys.
func (s *ChecklistService) Import(ctx context.Context, data []byte) (*domain.ChecklistState, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	for _, key := range []string{"items", "total_items", "inventory_file"} {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: missing required key %q", domain.ErrInvalidState, key)
		}
	}

	var state domain.ChecklistState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	if state.Items == nil {
		state.Items = make(map[string]domain.ChecklistItem)
	}
	state.Recount()

	if err := s.store.Save(ctx, &state); err != nil {
		return nil, fmt.Errorf("saving checklist: %w", err)
	}
	return &state, nil
}

// ExportCSV renders the checklist as CSV, sorted by container then item name.
func (s *ChecklistService) ExportCSV(ctx context.Context) ([]byte, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ChecklistItem, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ContainerName != items[j].ContainerName {
			return items[i].ContainerName < items[j].ContainerName
		}
		return strings.ToLower(items[i].ItemName) < strings.ToLower(items[j].ItemName)
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Container", "Item Name", "Augments", "Checked", "Notes"}); err != nil {
		return nil, err
	}
	for _, item := range items {
		checked := "No"
		if item.Checked {
			checked = "Yes"
		}
		record := []string{item.ContainerName, item.ItemName, item.Augments, checked, item.Notes}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Report renders the stored checklist as the text report.
func (s *ChecklistService) Report(ctx context.Context) (string, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	entries := make([]domain.InventoryEntry, 0, len(state.Items))
	for _, item := range state.Items {
		entries = append(entries, domain.InventoryEntry{
			Name:          item.ItemName,
			ContainerName: item.ContainerName,
			AugmentText:   item.Augments,
		})
	}
	return GenerateReport(entries, state.ScriptFiles, state.InventoryFile), nil
}
