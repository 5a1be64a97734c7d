package domain

import (
	"context"
	"io"
)

// ChecklistStore defines the interface for checklist state persistence
type ChecklistStore interface {
	Save(ctx context.Context, state *ChecklistState) error
	Load(ctx context.Context) (*ChecklistState, error)
	Clear(ctx context.Context) error
}

// InventoryLoader defines the interface for parsing tabular inventory data
type InventoryLoader interface {
	Load(r io.Reader, equippableOnly bool) ([]InventoryEntry, error)
}

// ScriptSource is one script text blob with the name it was read from.
type ScriptSource struct {
	Name string
	Text string
}
