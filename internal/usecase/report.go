package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gearcheck/backend/internal/domain"
)

// wardrobeOrder is the canonical section order for the report. Containers
// outside this list follow alphabetically.
var wardrobeOrder = []string{
	"wardrobe", "wardrobe2", "wardrobe3", "wardrobe4",
	"wardrobe5", "wardrobe6", "wardrobe7", "wardrobe8",
}

// GenerateReport renders a text report of orphaned items grouped by
// container.
func GenerateReport(orphans []domain.InventoryEntry, scriptFiles []string, inventoryFile string) string {
	rule := strings.Repeat("=", 70)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("ORPHANED INVENTORY ITEMS REPORT\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Inventory file: %s\n", inventoryFile)
	fmt.Fprintf(&b, "Lua files checked: %d\n", len(scriptFiles))
	for _, f := range scriptFiles {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total orphaned items: %d\n", len(orphans))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 70) + "\n\n")

	byContainer := make(map[string][]domain.InventoryEntry)
	for _, entry := range orphans {
		byContainer[entry.ContainerName] = append(byContainer[entry.ContainerName], entry)
	}

	writeSection := func(container string) {
		items := byContainer[container]
		fmt.Fprintf(&b, "[%s] (%d items)\n\n", strings.ToUpper(container), len(items))
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
		for _, item := range items {
			fmt.Fprintf(&b, "  %s\n", item.DisplayName())
		}
		b.WriteString("\n")
	}

	inOrder := make(map[string]bool, len(wardrobeOrder))
	for _, container := range wardrobeOrder {
		inOrder[container] = true
		if _, ok := byContainer[container]; ok {
			writeSection(container)
		}
	}

	var rest []string
	for container := range byContainer {
		if !inOrder[container] {
			rest = append(rest, container)
		}
	}
	sort.Strings(rest)
	for _, container := range rest {
		writeSection(container)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
