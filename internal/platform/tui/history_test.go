package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bc-engines/internal/config"
	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/storage"
)

func TestHistoryTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "bc.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{Kind: "creative", Side: 1, Ticks: 100, Deploys: 2, Delivered: 40, FinalStage: "GREEN"},
		{Kind: "creative", Side: 1, Ticks: 300, Deploys: 7, Delivered: 140, FinalStage: "GREEN"},
		{Kind: "iron", Side: 4, Ticks: 50, Deploys: 1, Delivered: 6, FinalStage: "ORANGE"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	sb, err := sandbox.New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("sandbox.New() failed: %v", err)
	}
	var m tea.Model = NewHistoryModel(store, sb.Mod.Engines(), 100, 30)

	if got := len(m.(HistoryModel).Runs()); got != 3 {
		t.Errorf("All tab runs = %d, expected 3", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	h := m.(HistoryModel)
	if got := len(h.Runs()); got != 2 {
		t.Errorf("creative tab runs = %d, expected 2", got)
	}
	if h.best != 140 {
		t.Errorf("best = %v, expected 140", h.best)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := len(m.(HistoryModel).Runs()); got != 0 {
		t.Errorf("stirling tab runs = %d, expected 0", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(HistoryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
