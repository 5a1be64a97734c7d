package domain

import (
	"fmt"
	"hash/fnv"
	"time"
)

// ChecklistItem is a single orphaned item awaiting player review.
type ChecklistItem struct {
	ItemName      string `json:"item_name"`
	ContainerName string `json:"container_name"`
	Augments      string `json:"augments"`
	Checked       bool   `json:"checked"`
	Notes         string `json:"notes"`
}

// DisplayName returns the item name with truncated augments.
func (i ChecklistItem) DisplayName() string {
	return displayName(i.ItemName, i.Augments)
}

// ChecklistState is the complete persisted checklist.
type ChecklistState struct {
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	InventoryFile string                   `json:"inventory_file"`
	ScriptFiles   []string                 `json:"lua_files"`
	TotalItems    int                      `json:"total_items"`
	CheckedCount  int                      `json:"checked_count"`
	Items         map[string]ChecklistItem `json:"items"`
}

// ItemKey builds the deterministic checklist key for an item. Augment text is
// folded to a hash so two copies of the same item with different augments get
// distinct keys, while re-analysis of the same inventory reproduces the same
// keys.
func ItemKey(containerName, itemName, augments string) string {
	var sum uint32
	if augments != "" {
		h := fnv.New32a()
		h.Write([]byte(augments))
		sum = h.Sum32()
	}
	return fmt.Sprintf("%s:%s:%d", containerName, itemName, sum)
}

// NewChecklist builds a fresh checklist from an orphan list.
func NewChecklist(orphans []InventoryEntry, inventoryFile string, scriptFiles []string) *ChecklistState {
	items := make(map[string]ChecklistItem, len(orphans))
	for _, entry := range orphans {
		key := ItemKey(entry.ContainerName, entry.Name, entry.AugmentText)
		items[key] = ChecklistItem{
			ItemName:      entry.Name,
			ContainerName: entry.ContainerName,
			Augments:      entry.AugmentText,
		}
	}

	now := time.Now()
	return &ChecklistState{
		CreatedAt:     now,
		UpdatedAt:     now,
		InventoryFile: inventoryFile,
		ScriptFiles:   scriptFiles,
		TotalItems:    len(items),
		Items:         items,
	}
}

// Update sets the checked state (and optionally notes) of one item and
// refreshes the aggregate counters.
func (s *ChecklistState) Update(key string, checked bool, notes *string) error {
	item, ok := s.Items[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, key)
	}

	item.Checked = checked
	if notes != nil {
		item.Notes = *notes
	}
	s.Items[key] = item

	s.UpdatedAt = time.Now()
	s.Recount()
	return nil
}

// Recount recomputes CheckedCount from the item map.
func (s *ChecklistState) Recount() {
	checked := 0
	for _, item := range s.Items {
		if item.Checked {
			checked++
		}
	}
	s.CheckedCount = checked
}
