package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bc-engines/internal/snapshot"
)

var (
	flagSnapKind      string
	flagSnapSide      int
	flagSnapTicks     int
	flagSnapMore      int
	flagSnapFromStore bool
	flagSnapToStore   bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and load world snapshots",
	Long: `Snapshots are zstd-compressed files holding every engine tile with
its simulation state and every consumer.

Examples:
  engines snapshot save bench.snap --kind iron --ticks 400
  engines snapshot load bench.snap --ticks 100
  engines snapshot load bench.snap --to-store
  engines snapshot save stored.snap --from-store`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Run a bench and write a snapshot",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotSave,
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Restore a snapshot and keep simulating",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotLoad,
}

func init() {
	snapshotSaveCmd.Flags().StringVar(&flagSnapKind, "kind", "creative", "Engine kind of the bench")
	snapshotSaveCmd.Flags().IntVar(&flagSnapSide, "side", -1, "Connection side 0-5 (default from config)")
	snapshotSaveCmd.Flags().IntVar(&flagSnapTicks, "ticks", 200, "Ticks to run before saving")
	snapshotSaveCmd.Flags().BoolVar(&flagSnapFromStore, "from-store", false, "Snapshot the tiles persisted in the history database instead of a bench")

	snapshotLoadCmd.Flags().IntVar(&flagSnapMore, "ticks", 0, "Ticks to run after restoring")
	snapshotLoadCmd.Flags().BoolVar(&flagSnapToStore, "to-store", false, "Persist the restored tiles in the history database")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotLoadCmd)
}

func runSnapshotSave(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	sb := newSandbox(cfg, logger)

	if flagSnapFromStore {
		store := openStore(cfg)
		n, err := sb.LoadTiles(store)
		store.Close()
		if err != nil {
			fail("%v", err)
		}
		logger.Info("tiles loaded", "count", n)
	} else {
		requireKind(sb, flagSnapKind)
		side := flagSnapSide
		if side < 0 {
			side = cfg.Preview.Side
		}
		if _, _, err := sb.Bench(flagSnapKind, side); err != nil {
			fail("%v", err)
		}
		sb.Run(flagSnapTicks)
	}

	snap, err := sb.Capture()
	if err != nil {
		fail("%v", err)
	}
	if err := snapshot.WriteFile(args[0], snap); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s: tick %d, %d engines, %d consumers\n", args[0], snap.Header.Tick, len(snap.Tiles), len(snap.Sinks))
}

func runSnapshotLoad(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	sb := newSandbox(cfg, logger)

	snap, err := snapshot.ReadFile(args[0])
	if err != nil {
		fail("%v", err)
	}
	if err := sb.Restore(snap); err != nil {
		fail("%v", err)
	}
	sb.Run(flagSnapMore)

	fmt.Printf("Restored %s at tick %d, now at tick %d\n", args[0], snap.Header.Tick, sb.World.CurrentTick())
	fmt.Println()
	for _, t := range sb.Tiles() {
		st := t.Status()
		fmt.Printf("  %-9s %s  side %d  heat %5.1f %-6s  power %.2f  energy %.1f  delivered %.1f\n",
			st.Kind, st.Pos, st.Side, st.Heat, st.HeatStage, st.Power, st.Energy, st.Delivered)
	}

	if flagSnapToStore {
		store := openStore(cfg)
		defer store.Close()
		if err := sb.SaveTiles(store); err != nil {
			fail("%v", err)
		}
		fmt.Println()
		fmt.Printf("Persisted %d engines\n", len(sb.Tiles()))
	}
}
