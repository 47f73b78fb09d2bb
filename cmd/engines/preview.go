package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bc-engines/internal/platform/tui"
	"github.com/vovakirdan/bc-engines/internal/storage"
)

var (
	flagPreviewSide   int
	flagPreviewRecord bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [kind]",
	Short: "Live terminal preview of an engine",
	Long: `Run an engine bench at the configured tick rate and draw its
animation rig with heat-colored trunk, base plate and moving piston.

Controls:
  R/Tab      - Rotate (wrench)
  +/-        - Raise or lower the fixed heat level
  F          - Add fuel
  S/Space    - Toggle the redstone signal
  P          - Pause
  X          - Replace the engine
  Ctrl+S     - Screenshot to ~/.bcengines/screenshots
  Q/Ctrl+C   - Quit

Examples:
  engines preview
  engines preview iron --side 4
  engines preview redstone --record`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&flagPreviewSide, "side", -1, "Connection side 0-5 (default from config)")
	previewCmd.Flags().BoolVar(&flagPreviewRecord, "record", false, "Record runs in the history database")
}

func runPreview(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	sb := newSandbox(cfg, nil)

	kind := cfg.Preview.Kind
	if len(args) == 1 {
		kind = args[0]
	}
	requireKind(sb, kind)

	side := flagPreviewSide
	if side < 0 {
		side = cfg.Preview.Side
	}

	rc := cfg.ScreenConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	var store *storage.Store
	if flagPreviewRecord {
		store = openStore(cfg)
		defer store.Close()
	}

	if err := tui.Run(sb, kind, side, store, rc); err != nil {
		fail("%v", err)
	}
}
