package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/bc-engines/internal/engine"
)

func testParams() engine.Params {
	return engine.Params{
		MaxHeat:        100,
		EnergyPerPower: 1,
		MaxEnergy:      1000,
		Heat:           engine.HeatModel{Mode: engine.HeatFixed, Level: 50},
	}
}

func TestRegisterAndGet(t *testing.T) {
	Register(Kind{ID: "test-get", Title: "Test", Params: testParams()})

	k, err := Get("test-get")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if k.Title != "Test" {
		t.Errorf("Title = %q, expected %q", k.Title, "Test")
	}
	if !Exists("test-get") {
		t.Error("Exists() = false, expected true")
	}

	if _, err := Get("test-missing"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Get(missing) error = %v, expected ErrUnknownKind", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Kind{ID: "test-dup", Params: testParams()})

	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate should panic")
		}
	}()
	Register(Kind{ID: "test-dup", Params: testParams()})
}

func TestRegisterInvalidParamsPanics(t *testing.T) {
	p := testParams()
	p.MaxHeat = 0

	defer func() {
		if recover() == nil {
			t.Error("Register() with invalid params should panic")
		}
	}()
	Register(Kind{ID: "test-invalid", Params: p})
}

func TestListSorted(t *testing.T) {
	Register(Kind{ID: "test-list-b", Params: testParams()})
	Register(Kind{ID: "test-list-a", Params: testParams()})

	ids := IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("IDs() not sorted: %v", ids)
			break
		}
	}
}
