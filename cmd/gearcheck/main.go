package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gearcheck",
	Short: "Find inventory items no gearswap script references",
	Long: `gearcheck compares a FFXI inventory export against gearswap lua
scripts and reports the equippable items that no script references,
so they can be reviewed and cleared out.`,
	SilenceUsage: true,
}

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
