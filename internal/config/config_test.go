package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	if err := Validate(DefaultYAML()); err != nil {
		t.Fatalf("Validate(embedded) failed: %v", err)
	}
	if got, want := Defaults(), DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("Defaults() = %+v, expected %+v", got, want)
	}
}

func TestDefaultAtlasValidates(t *testing.T) {
	cfg := DefaultConfig()
	atlas, err := cfg.TextureAtlas()
	if err != nil {
		t.Fatalf("TextureAtlas() failed: %v", err)
	}
	if err := atlas.Validate(cfg.KindIDs()); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
	if atlas.Trunk[engine.Red] != (core.UV{X: 64, Y: 96}) {
		t.Errorf("red trunk = %v, expected {64 96}", atlas.Trunk[engine.Red])
	}
}

func TestKindParams(t *testing.T) {
	cfg := DefaultConfig()
	for _, id := range cfg.KindIDs() {
		if err := cfg.Kinds[id].Params().Validate(); err != nil {
			t.Errorf("kind %s: Validate() failed: %v", id, err)
		}
	}

	p := cfg.Kinds["creative"].Params()
	if p.Heat.Mode != engine.HeatFixed || p.Heat.Level != 50 {
		t.Errorf("creative heat = %+v, expected fixed at 50", p.Heat)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	doc := []byte(`
runtime:
  tick_rate: 40
atlas:
  base:
    custom: { x: 320, y: 128 }
kinds:
  custom:
    max_heat: 80
    energy_per_power: 2
    max_energy: 500
    heat:
      mode: signal
      gain: 3
      cooling: 5
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Runtime.TickRate != 40 {
		t.Errorf("TickRate = %d, expected 40", cfg.Runtime.TickRate)
	}
	if cfg.Atlas.Name != "buildcraft_engine_atlas.png" {
		t.Errorf("Atlas.Name = %q, expected default", cfg.Atlas.Name)
	}
	if _, ok := cfg.Atlas.Base["creative"]; !ok {
		t.Error("default creative offset should survive the overlay")
	}
	if cfg.Atlas.Base["custom"] != (core.UV{X: 320, Y: 128}) {
		t.Errorf("custom offset = %v", cfg.Atlas.Base["custom"])
	}
	want := []string{"creative", "custom", "iron", "redstone", "stirling"}
	if got := cfg.KindIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("KindIDs() = %v, expected %v", got, want)
	}
	if cfg.Kinds["custom"].Heat.Mode != "signal" {
		t.Errorf("custom mode = %q, expected signal", cfg.Kinds["custom"].Heat.Mode)
	}
}

func TestParsePartialKindKeepsDefaults(t *testing.T) {
	doc := []byte(`
kinds:
  iron:
    max_heat: 80
    heat: { mode: fuel, gain: 2 }
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	def := Defaults().Kinds["iron"]
	want := def
	want.MaxHeat = 80
	want.Heat.Mode = "fuel"
	want.Heat.Gain = 2
	if got := cfg.Kinds["iron"]; got != want {
		t.Errorf("iron = %+v, expected %+v", got, want)
	}
	if cfg.Kinds["iron"].MaxEnergy == 0 || cfg.Kinds["iron"].EnergyPerPower == 0 {
		t.Errorf("iron = %+v, omitted energy fields should keep their defaults", cfg.Kinds["iron"])
	}
	if cfg.Kinds["iron"].Heat.Cooling != def.Heat.Cooling {
		t.Errorf("iron cooling = %v, expected default %v", cfg.Kinds["iron"].Heat.Cooling, def.Heat.Cooling)
	}
	if got := cfg.Kinds["creative"]; got != Defaults().Kinds["creative"] {
		t.Errorf("creative = %+v, expected the default", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero max heat", "kinds:\n  iron:\n    max_heat: 0\n    heat: { mode: fuel }\n"},
		{"max heat above ceiling", "kinds:\n  iron:\n    max_heat: 150\n    heat: { mode: fuel }\n"},
		{"unknown heat mode", "kinds:\n  iron:\n    max_heat: 100\n    heat: { mode: nuclear }\n"},
		{"missing heat", "kinds:\n  iron:\n    max_heat: 100\n"},
		{"unknown section", "engines: {}\n"},
		{"unknown trunk stage", "atlas:\n  trunk:\n    purple: { x: 1, y: 1 }\n"},
		{"negative uv", "atlas:\n  base:\n    iron: { x: -1, y: 0 }\n"},
		{"side out of range", "preview:\n  side: 6\n"},
		{"not yaml", "kinds: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Errorf("Parse(%q) should fail", tt.doc)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Defaults()) {
		t.Error("Parse(nil) should return the defaults")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engines.yaml")
	if err := os.WriteFile(path, []byte("preview:\n  kind: iron\n  side: 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Preview.Kind != "iron" || cfg.Preview.Side != 4 {
		t.Errorf("Preview = %+v, expected iron on side 4", cfg.Preview)
	}
	if cfg.Preview.Width != 60 {
		t.Errorf("Preview.Width = %d, expected default 60", cfg.Preview.Width)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestTextureAtlasRejectsUnknownStage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Atlas.Trunk["purple"] = core.UV{}
	if _, err := cfg.TextureAtlas(); err == nil {
		t.Error("TextureAtlas() should reject an unknown stage name")
	}
}

func TestScreenConfigAndAddress(t *testing.T) {
	cfg := DefaultConfig()

	rc := cfg.ScreenConfig()
	if rc.ScreenW != 60 || rc.ScreenH != 22 || rc.TickRate != cfg.Runtime.TickRate {
		t.Errorf("ScreenConfig() = %+v", rc)
	}
	if got := cfg.SSH.Address(); got != "0.0.0.0:2222" {
		t.Errorf("SSH.Address() = %q, expected 0.0.0.0:2222", got)
	}
}
