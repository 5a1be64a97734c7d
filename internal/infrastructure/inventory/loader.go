package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gearcheck/backend/internal/domain"
)

// requiredColumns must be present in the header row.
var requiredColumns = []string{"item_id", "item_name", "container_id", "container_name"}

// Loader parses CSV inventory exports into inventory entries.
//
// The equippable container set is injected configuration, not a global: the
// caller decides which container identifiers participate in comparison.
type Loader struct {
	containers map[int]string
}

// NewLoader creates a loader filtering against the given equippable
// container map (container id -> label).
func NewLoader(containers map[int]string) *Loader {
	return &Loader{containers: containers}
}

// Load reads the CSV and returns entries in row order. With equippableOnly
// set, rows outside the equippable container set are dropped silently.
//
// Inventory data is assumed structurally trustworthy: a missing required
// column or a required numeric field that does not parse aborts the whole
// load rather than skipping the row.
func (l *Loader) Load(r io.Reader, equippableOnly bool) ([]domain.InventoryEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty inventory source", domain.ErrSourceUnreadable)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreadable, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrMalformedRow, name)
		}
	}

	var entries []domain.InventoryEntry
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRow, err)
		}
		line++

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		containerID, err := strconv.Atoi(strings.TrimSpace(field("container_id")))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: container_id %q", domain.ErrMalformedRow, line, field("container_id"))
		}

		if equippableOnly {
			if _, ok := l.containers[containerID]; !ok {
				continue
			}
		}

		itemID, err := strconv.Atoi(strings.TrimSpace(field("item_id")))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: item_id %q", domain.ErrMalformedRow, line, field("item_id"))
		}

		count := 1
		if raw := strings.TrimSpace(field("count")); raw != "" {
			count, err = strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: count %q", domain.ErrMalformedRow, line, raw)
			}
		}

		entries = append(entries, domain.InventoryEntry{
			ItemID:        itemID,
			Name:          field("item_name"),
			LogName:       strings.TrimSpace(field("item_name_log")),
			ContainerID:   containerID,
			ContainerName: field("container_name"),
			AugmentText:   strings.TrimSpace(field("augments")),
			Count:         count,
		})
	}

	return entries, nil
}
