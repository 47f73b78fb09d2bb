package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bc-engines/internal/content"
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/rig"
	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/storage"
	"github.com/vovakirdan/bc-engines/internal/world"
)

// Preview tuning.
const (
	heatStep  = 5
	fuelTicks = 200
	hudLines  = 5
)

// Model is the Bubble Tea model of the live engine preview. It owns a
// sandbox bench: one engine at the origin and a consumer on its connection
// side.
type Model struct {
	sb     *sandbox.Sandbox
	kind   string
	tile   *content.Tile
	sink   *world.Sink
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig

	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame

	status     string
	paused     bool
	quitting   bool
	backToMenu bool
}

// NewModel builds a bench for kind connected on side and wraps it in a preview.
func NewModel(sb *sandbox.Sandbox, kind string, side int, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	tile, sink, err := sb.Bench(kind, side)
	if err != nil {
		return Model{}, err
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}

	return Model{
		sb:         sb,
		kind:       kind,
		tile:       tile,
		sink:       sink,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-hudLines)),
		store:      store,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(1, msg.Height-hudLines))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.saveRun()
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick applies the actions collected since the last tick and, unless
// paused, advances the world by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	m.apply()
	m.inputFrame.Clear()

	if !m.paused {
		m.sb.World.Tick()
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) apply() {
	params := m.tile.Kind().Params

	if m.inputFrame.Has(core.ActionPause) {
		m.paused = !m.paused
	}
	if m.inputFrame.Has(core.ActionReset) {
		if err := m.reset(); err != nil {
			m.status = "reset failed: " + err.Error()
		} else {
			m.status = "engine replaced"
		}
		return
	}
	if m.inputFrame.Has(core.ActionRotate) {
		if err := m.sb.Rotate(sandbox.Origin); err != nil {
			m.status = "rotate failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("connected on side %d", m.tile.Side())
		}
	}
	for _, step := range []struct {
		action core.Action
		delta  float64
	}{{core.ActionHeatUp, heatStep}, {core.ActionHeatDown, -heatStep}} {
		if !m.inputFrame.Has(step.action) {
			continue
		}
		err := m.tile.SetHeatLevel(m.tile.HeatLevel() + step.delta)
		switch {
		case errors.Is(err, content.ErrNotFixedHeat):
			m.status = fmt.Sprintf("%s heat follows its %s", m.kind, params.Heat.Mode)
		case err != nil:
			m.status = err.Error()
		default:
			m.status = fmt.Sprintf("heat level %.0f", m.tile.HeatLevel())
		}
	}
	if m.inputFrame.Has(core.ActionAddFuel) {
		if params.Heat.Mode == engine.HeatFuel {
			m.tile.AddFuel(fuelTicks)
			m.status = fmt.Sprintf("added %d ticks of fuel", fuelTicks)
		} else {
			m.status = m.kind + " engines burn no fuel"
		}
	}
	if m.inputFrame.Has(core.ActionToggleSignal) {
		if params.Heat.Mode == engine.HeatSignal {
			on := !m.tile.State().Signal
			m.tile.SetSignal(on)
			m.status = fmt.Sprintf("signal %v", on)
		} else {
			m.status = m.kind + " engines ignore redstone"
		}
	}
}

// reset records the current run and replaces the engine and its consumer.
func (m *Model) reset() error {
	m.saveRun()
	side := m.tile.Side()
	m.sb.World.RemoveSink(m.tile.Target())
	if err := m.sb.World.SetBlock(sandbox.Origin, world.Air, 0); err != nil {
		return err
	}
	tile, sink, err := m.sb.Bench(m.kind, side)
	if err != nil {
		return err
	}
	m.tile, m.sink = tile, sink
	return nil
}

// saveRun records the run summary when a store is attached.
func (m *Model) saveRun() {
	if m.store == nil || m.tile.State().Deploys == 0 {
		return
	}
	run, err := m.sb.RunSummary(sandbox.Origin)
	if err != nil {
		return
	}
	//nolint:errcheck // Best-effort save, the preview continues regardless
	m.store.SaveRun(run)
}

// saveScreenshot writes the plain preview to ~/.bcengines/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".bcengines", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.kind, timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) draw() {
	m.screen.Clear()
	r := m.tile.Rig()
	if r == nil {
		return
	}
	size := min(m.screen.Width()/2, m.screen.Height()*2)
	area := core.NewRect((m.screen.Width()-size)/2, 0, size, min(m.screen.Height(), size/2+2))
	DrawEngine(m.screen, area, ViewOf(m.kind, r))
}

// View renders the preview and the status lines below it.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.draw()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.hud())
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) hud() string {
	st := m.tile.State()
	o, _ := rig.Orient(m.tile.Side())

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	state := "running"
	if m.paused {
		state = "paused"
	}
	line1 := fmt.Sprintf("%s  %s",
		title.Render(m.tile.Kind().Kind.Title+" Engine"),
		dim.Render(fmt.Sprintf("side %d (%s)  tick %d  %s", m.tile.Side(), o, m.sb.World.CurrentTick(), state)))

	line2 := fmt.Sprintf("heat %5.1f %s  power %.2f/%.2f  piston %+.3f",
		st.Heat, StageStyle(st.HeatStage).Render(st.HeatStage.String()),
		st.Power, st.TargetPower, st.Piston.Position)

	line3 := fmt.Sprintf("energy %.1f/%.0f  deploys %d  delivered %.1f  consumer %.1f",
		st.Energy, m.tile.Kind().Params.MaxEnergy, st.Deploys, st.Delivered, m.sink.Received)
	switch m.tile.Kind().Params.Heat.Mode {
	case engine.HeatFuel:
		line3 += fmt.Sprintf("  fuel %d", st.Fuel)
	case engine.HeatSignal:
		line3 += fmt.Sprintf("  signal %v", st.Signal)
	case engine.HeatFixed:
		line3 += fmt.Sprintf("  level %.0f", m.tile.HeatLevel())
	}

	return strings.Join([]string{line1, line2, line3, dim.Render(m.status)}, "\n")
}

// Tile returns the previewed engine.
func (m Model) Tile() *content.Tile {
	return m.tile
}

// Paused reports whether ticking is paused.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the preview of one engine kind in the local terminal.
func Run(sb *sandbox.Sandbox, kind string, side int, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewModel(sb, kind, side, store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
