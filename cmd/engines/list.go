package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bc-engines/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all engine kinds",
	Long: `Shows every registered engine kind with the parameters it is
installed with. Kinds without a texture in the configured atlas are listed
as not installed.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	sb := newSandbox(cfg, nil)
	kinds := registry.List()

	if len(kinds) == 0 {
		fmt.Println("No engine kinds available.")
		return
	}

	fmt.Println("Engine kinds:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, k := range kinds {
		if len(k.ID) > maxIDLen {
			maxIDLen = len(k.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %-7s  %8s  %9s  %s\n", maxIDLen, "ID", "Title", "Heat", "Max heat", "Energy/pw", "Capacity")
	fmt.Printf("  %-*s  %-12s  %-7s  %8s  %9s  %s\n", maxIDLen, "--", "-----", "----", "--------", "---------", "--------")

	for _, k := range kinds {
		e, ok := sb.Mod.Engine(k.ID)
		if !ok {
			fmt.Printf("  %-*s  %-12s  (not installed)\n", maxIDLen, k.ID, k.Title)
			continue
		}
		p := e.Params
		fmt.Printf("  %-*s  %-12s  %-7s  %8.0f  %9.1f  %.0f\n", maxIDLen, k.ID, k.Title, p.Heat.Mode, p.MaxHeat, p.EnergyPerPower, p.MaxEnergy)
	}

	fmt.Println()
	fmt.Println("Run 'engines preview <id>' to watch an engine.")
}
