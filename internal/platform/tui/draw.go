package tui

import (
	"math"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/rig"
)

// blockPixels is the model size of one block.
const blockPixels = 16

// Part runes.
const (
	runeBase   = '▓'
	runeTrunk  = '█'
	runePiston = '▒'
)

// kindColors is the base plate color of each engine kind.
var kindColors = map[string]core.Color{
	"creative": core.ColorCyan,
	"iron":     core.ColorWhite,
	"stirling": core.ColorGray,
	"redstone": core.ColorBrown,
}

// KindColor returns the base plate color of a kind.
func KindColor(kind string) core.Color {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return core.ColorBrown
}

// EngineView is what DrawEngine needs from a rig.
type EngineView struct {
	Kind   string
	Layout rig.Layout
	Stage  engine.HeatStage
	// Piston is the piston displacement from the block center, in blocks.
	Piston core.Vec3
}

// ViewOf captures the view of a rig.
func ViewOf(kind string, r *rig.Rig) EngineView {
	return EngineView{Kind: kind, Layout: r.Layout(), Stage: r.Stage(), Piston: r.PistonOffset()}
}

// projection maps model pixels onto an area of the screen. The view looks
// along Z unless the engine travels along Z, in which case it looks along X.
type projection struct {
	horizontal core.Axis
	cx, cy     float64
	sx, sy     float64
}

func newProjection(area core.Rect, axis core.Axis) projection {
	p := projection{
		horizontal: core.AxisX,
		cx:         float64(area.X) + float64(area.W)/2,
		cy:         float64(area.Y) + float64(area.H)/2,
		sx:         math.Min(2, float64(area.W-2)/blockPixels),
		sy:         math.Min(1, float64(area.H-2)/blockPixels),
	}
	if axis == core.AxisZ {
		p.horizontal = core.AxisZ
	}
	return p
}

// rect returns the screen cells covered by a box centered at c.
func (p projection) rect(c, size core.Vec3) core.Rect {
	h, w := c.Component(p.horizontal), size.Component(p.horizontal)
	x0 := int(math.Floor(p.cx + (h-w/2)*p.sx))
	x1 := int(math.Ceil(p.cx + (h+w/2)*p.sx))
	y0 := int(math.Floor(p.cy + (c.Y-size.Y/2)*p.sy))
	y1 := int(math.Ceil(p.cy + (c.Y+size.Y/2)*p.sy))
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// DrawEngine draws a side projection of an engine model into area. Rows grow
// along +Y as in the host's render space.
func DrawEngine(s *core.Screen, area core.Rect, v EngineView) {
	s.DrawBox(area, core.ColorGray)

	l := v.Layout
	p := newProjection(area, l.Orientation.Axis)

	s.DrawRect(p.rect(l.Center(rig.PartTrunk), l.Trunk.Size), runeTrunk, StageColor(v.Stage))
	s.DrawRect(p.rect(l.Center(rig.PartBase), l.Base.Size), runeBase, KindColor(v.Kind))

	piston := l.Center(rig.PartPiston).Add(v.Piston.Scale(blockPixels))
	s.DrawRect(p.rect(piston, l.Piston.Size), runePiston, core.ColorYellow)
}
