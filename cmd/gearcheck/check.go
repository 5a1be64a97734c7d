package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gearcheck/backend/config"
	"github.com/gearcheck/backend/internal/infrastructure/inventory"
	"github.com/gearcheck/backend/internal/infrastructure/scripts"
	"github.com/gearcheck/backend/internal/logger"
	"github.com/gearcheck/backend/internal/usecase"
)

var (
	checkAllContainers bool
	checkOutput        string
)

var checkCmd = &cobra.Command{
	Use:   "check <lua-file-or-dir> <inventory-csv>",
	Short: "Run the orphan analysis once and write a text report",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkAllContainers, "all-containers", false,
		"compare every container, not just the wardrobes")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "orphaned_items_report.txt",
		"path of the report file to write")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	scriptPath, inventoryPath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	containers, err := cfg.EquippableContainers()
	if err != nil {
		return err
	}

	reader := scripts.NewReader(log)
	sources, skipped, err := reader.ReadPath(scriptPath)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no lua files found at %s", scriptPath)
	}
	fmt.Printf("Reading %d lua file(s)...\n", len(sources))
	for _, name := range skipped {
		fmt.Printf("  skipped unreadable file: %s\n", name)
	}

	texts := make([]string, len(sources))
	names := make([]string, len(sources))
	for i, src := range sources {
		texts[i] = src.Text
		names[i] = src.Name
	}
	refs := usecase.NewExtractor(log).ExtractAll(texts)
	fmt.Printf("Found %d unique item references (%d with augments)\n",
		refs.Len(), refs.AugmentedCount())

	invFile, err := os.Open(inventoryPath)
	if err != nil {
		return fmt.Errorf("opening inventory: %w", err)
	}
	defer invFile.Close()

	loader := inventory.NewLoader(containers)
	entries, err := loader.Load(invFile, !checkAllContainers)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d inventory items\n", len(entries))

	matcher := usecase.NewMatchService(log, usecase.MatchConfig{})
	result := matcher.Compare(entries, refs)
	fmt.Printf("Found %d orphaned item(s)\n\n", result.OrphanCount())

	report := usecase.GenerateReport(result.Orphans, names, inventoryPath)
	if err := os.WriteFile(checkOutput, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Print(report)
	fmt.Printf("\nReport written to %s\n", checkOutput)
	return nil
}
