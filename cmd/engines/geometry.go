package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/rig"
)

var flagGeoKind string

var geometryCmd = &cobra.Command{
	Use:   "geometry <side> [stage]",
	Short: "Print the rig layout for a connection side",
	Long: `Compute the base, trunk and piston boxes of the engine model for a
connection side (0-5) and heat stage (default blue), with their atlas UVs.

Examples:
  engines geometry 1
  engines geometry 4 orange --kind iron`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runGeometry,
}

func init() {
	geometryCmd.Flags().StringVar(&flagGeoKind, "kind", "creative", "Engine kind for the base texture")
}

func runGeometry(_ *cobra.Command, args []string) {
	side, err := strconv.Atoi(args[0])
	if err != nil {
		fail("side must be a number: %v", err)
	}
	stage := engine.Blue
	if len(args) == 2 {
		if stage, err = engine.ParseHeatStage(args[1]); err != nil {
			fail("%v", err)
		}
	}

	cfg := loadConfig()
	atlas, err := cfg.TextureAtlas()
	if err != nil {
		fail("%v", err)
	}
	l, err := rig.LayoutFor(side, stage, flagGeoKind, atlas)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Side %d: axis %s, offset %s, piston travel %+d\n", side, l.Orientation, vec(l.Offset), l.PistonDirection)
	fmt.Printf("Skin %s (%dx%d), stage %s\n", atlas.Skin(), atlas.Size.Width, atlas.Size.Height, stage)
	fmt.Println()
	fmt.Printf("  %-7s  %-20s  %-20s  %s\n", "Part", "Origin", "Size", "UV")
	fmt.Printf("  %-7s  %-20s  %-20s  %s\n", "----", "------", "----", "--")
	for _, p := range []rig.Part{rig.PartBase, rig.PartTrunk, rig.PartPiston} {
		b := l.Box(p)
		fmt.Printf("  %-7s  %-20s  %-20s  (%d,%d)\n", p, vec(b.Origin), vec(b.Size), b.UV.X, b.UV.Y)
	}
}

func vec(v core.Vec3) string {
	return fmt.Sprintf("{%g %g %g}", v.X, v.Y, v.Z)
}
