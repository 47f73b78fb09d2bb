package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bc-engines/internal/platform/tui"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [kind]",
	Short: "Show recorded runs",
	Long: `Display the most recent recorded runs, optionally for one kind.

Examples:
  engines history
  engines history iron --limit 5
  engines history --tui
  engines history creative --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs of the kind")
}

func runHistory(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	kind := ""
	if len(args) == 1 {
		kind = args[0]
	}

	if flagHistoryTUI {
		sb := newSandbox(cfg, nil)
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunHistory(store, sb.Mod.Engines(), width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	if flagHistoryClear {
		if kind == "" {
			fail("--clear needs a kind")
		}
		if err := store.ClearRuns(kind); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared runs of %s\n", kind)
		return
	}

	runs, err := store.RecentRuns(kind, flagHistoryLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	title := "all kinds"
	if kind != "" {
		title = kind
	}
	fmt.Printf("Recent runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'engines simulate <kind> --record' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-9s  %-4s  %6s  %7s  %9s  %-6s  %s\n", "#", "Kind", "Side", "Ticks", "Deploys", "Delivered", "Stage", "Date")
	fmt.Printf("  %-5s  %-9s  %-4s  %6s  %7s  %9s  %-6s  %s\n", "-", "----", "----", "-----", "-------", "---------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-9s  %-4d  %6d  %7d  %9.1f  %-6s  %s\n",
			r.ID, r.Kind, r.Side, r.Ticks, r.Deploys, r.Delivered, r.FinalStage, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if kind != "" {
		if best, err := store.BestDelivered(kind); err == nil {
			fmt.Println()
			fmt.Printf("Best: %.1f\n", best)
		}
	}
}
