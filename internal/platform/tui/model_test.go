package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bc-engines/internal/config"
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newPreview(t *testing.T, kind string, store *storage.Store) Model {
	t.Helper()
	sb, err := sandbox.New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("sandbox.New() failed: %v", err)
	}
	m, err := NewModel(sb, kind, 1, store, core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update() returned %T", next)
		}
	}
	return m
}

func ticks(n int) []tea.Msg {
	msgs := make([]tea.Msg, n)
	for i := range msgs {
		msgs[i] = TickMsg{}
	}
	return msgs
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"r", core.ActionRotate},
		{"+", core.ActionHeatUp},
		{"-", core.ActionHeatDown},
		{"f", core.ActionAddFuel},
		{"s", core.ActionToggleSignal},
		{"p", core.ActionPause},
		{"x", core.ActionReset},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"z", core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(keyMsg(tt.key)); got != tt.want {
			t.Errorf("Action(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}

func TestPreviewTicks(t *testing.T) {
	m := newPreview(t, "creative", nil)
	m = send(t, m, ticks(10)...)

	if got := m.sb.World.CurrentTick(); got != 10 {
		t.Errorf("CurrentTick() = %d, expected 10", got)
	}

	m = send(t, m, keyMsg("p"), TickMsg{}, TickMsg{})
	if !m.Paused() {
		t.Fatal("Paused() = false after p")
	}
	if got := m.sb.World.CurrentTick(); got != 10 {
		t.Errorf("paused CurrentTick() = %d, expected 10", got)
	}
}

func TestPreviewControls(t *testing.T) {
	m := newPreview(t, "creative", nil)

	m = send(t, m, keyMsg("+"), TickMsg{})
	if got := m.Tile().HeatLevel(); got != 55 {
		t.Errorf("HeatLevel() = %v, expected 55", got)
	}

	m = send(t, m, keyMsg("r"), TickMsg{})
	if got := m.Tile().Side(); got != 2 {
		t.Errorf("Side() = %d, expected 2", got)
	}
	if _, ok := m.sb.World.Sink(m.Tile().Target()); !ok {
		t.Error("consumer should follow the rotation")
	}

	m = send(t, m, keyMsg("f"), TickMsg{})
	if m.Tile().State().Fuel != 0 {
		t.Error("creative engines should not take fuel")
	}
	if !strings.Contains(m.status, "no fuel") {
		t.Errorf("status = %q", m.status)
	}
}

func TestPreviewFuelAndSignal(t *testing.T) {
	iron := newPreview(t, "iron", nil)
	iron = send(t, iron, keyMsg("f"), TickMsg{})
	if got := iron.Tile().State().Fuel; got != fuelTicks-1 {
		t.Errorf("Fuel = %d, expected %d", got, fuelTicks-1)
	}

	red := newPreview(t, "redstone", nil)
	red = send(t, red, keyMsg("s"), TickMsg{})
	if !red.Tile().State().Signal {
		t.Error("signal should be on")
	}
	red = send(t, red, keyMsg("-"), TickMsg{})
	if !strings.Contains(red.status, "signal") {
		t.Errorf("status = %q, expected a note about signal heat", red.status)
	}
}

func TestPreviewResetRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "bc.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newPreview(t, "creative", store)
	m = send(t, m, ticks(200)...)
	old := m.Tile()
	if old.State().Deploys == 0 {
		t.Fatal("no deploys in 200 ticks")
	}

	m = send(t, m, keyMsg("x"), TickMsg{})
	if m.Tile() == old {
		t.Error("reset should replace the engine")
	}
	if !old.Rig().Destroyed() {
		t.Error("reset should destroy the old rig")
	}
	if len(m.sb.World.SinkPositions()) != 1 {
		t.Errorf("consumers = %d, expected 1", len(m.sb.World.SinkPositions()))
	}

	runs, err := store.RecentRuns("creative", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Deploys != old.State().Deploys {
		t.Errorf("RecentRuns() = %+v", runs)
	}
}

func TestPreviewQuitAndView(t *testing.T) {
	m := newPreview(t, "stirling", nil)
	m = send(t, m, ticks(3)...)

	view := m.View()
	if !strings.Contains(view, "Stirling Engine") || !strings.Contains(view, "tick 3") {
		t.Errorf("View() missing the HUD:\n%s", view)
	}

	m = send(t, m, keyMsg("q"))
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestSessionFlow(t *testing.T) {
	sb, err := sandbox.New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("sandbox.New() failed: %v", err)
	}
	var s tea.Model = NewSessionModel(sb, nil, core.DefaultConfig(), 1)

	s, _ = s.Update(keyMsg("down"))
	s, _ = s.Update(keyMsg("enter"))
	session := s.(SessionModel)
	if session.screen != screenPreview {
		t.Fatalf("screen = %v, expected preview", session.screen)
	}
	if kind := session.preview.Tile().Kind().Kind.ID; kind != "iron" {
		t.Errorf("previewing %q, expected iron", kind)
	}

	s, _ = s.Update(TickMsg{})
	s, _ = s.Update(keyMsg("esc"))
	if s.(SessionModel).screen != screenMenu {
		t.Error("esc should return to the picker")
	}

	s, _ = s.Update(keyMsg("h"))
	if s.(SessionModel).screen != screenHistory {
		t.Fatal("h should open the history")
	}
	if !strings.Contains(s.View(), "No runs recorded yet") {
		t.Errorf("history without a store should be empty:\n%s", s.View())
	}
	s, _ = s.Update(keyMsg("q"))
	if !s.(SessionModel).quitting {
		t.Error("q should quit the session")
	}
}
