package observer

import (
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/world"
)

// Version is the observer protocol version.
const Version = "1"

// Message types.
const (
	TypeSubscribe = "SUBSCRIBE"
	TypeCommand   = "COMMAND"
	TypeFrame     = "FRAME"
	TypeResult    = "RESULT"
)

// Command operations.
const (
	OpFuel   = "fuel"
	OpSignal = "signal"
	OpHeat   = "heat"
	OpRotate = "rotate"
)

// SubscribeMsg opens a session. Every selects one frame per Every ticks.
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Every           int    `json:"every,omitempty"`
}

// CommandMsg changes an engine between ticks.
type CommandMsg struct {
	Type  string        `json:"type"`
	ID    string        `json:"id,omitempty"`
	Op    string        `json:"op"`
	Pos   core.BlockPos `json:"pos"`
	Value float64       `json:"value,omitempty"`
}

// FrameMsg carries one telemetry frame.
type FrameMsg struct {
	Type string `json:"type"`
	world.Frame
}

// ResultMsg answers a command.
type ResultMsg struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BootstrapResponse describes the running harness.
type BootstrapResponse struct {
	ProtocolVersion string   `json:"protocol_version"`
	Tick            uint64   `json:"tick"`
	TickRate        int      `json:"tick_rate_hz"`
	Kinds           []string `json:"kinds"`
	Engines         int      `json:"engines"`
}

func normalizeSubscribe(sub *SubscribeMsg) {
	if sub.Every <= 0 {
		sub.Every = 1
	}
	if sub.Every > 1000 {
		sub.Every = 1000
	}
}
