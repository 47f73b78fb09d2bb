package observer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bc-engines/internal/config"
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/world"
)

func startServer(t *testing.T) (*httptest.Server, *sandbox.Sandbox) {
	t.Helper()
	sb, err := sandbox.New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("sandbox.New() failed: %v", err)
	}
	if _, _, err := sb.Bench("creative", 1); err != nil {
		t.Fatalf("Bench() failed: %v", err)
	}

	loop := world.NewLoop(sb.World, 200, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()

	srv := httptest.NewServer(NewServer(sb, loop, 200, nil).Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv, sb
}

func TestBootstrap(t *testing.T) {
	srv, _ := startServer(t)

	resp, err := http.Get(srv.URL + "/bootstrap")
	if err != nil {
		t.Fatalf("GET /bootstrap failed: %v", err)
	}
	defer resp.Body.Close()

	var b BootstrapResponse
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if b.ProtocolVersion != Version || b.Engines != 1 || b.TickRate != 200 {
		t.Errorf("bootstrap = %+v", b)
	}
	if len(b.Kinds) != 4 {
		t.Errorf("kinds = %v, expected 4", b.Kinds)
	}

	post, err := http.Post(srv.URL+"/bootstrap", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /bootstrap failed: %v", err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, expected %d", post.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestStreamAndCommands(t *testing.T) {
	srv, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, strings.TrimPrefix(srv.URL, "http://"), 1)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer c.Close()

	var frame *FrameMsg
	for frame == nil {
		f, _, err := c.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		if f != nil && len(f.Tiles) == 1 {
			frame = f
		}
	}
	if frame.Tiles[0].Kind != "creative" || len(frame.Sinks) != 1 {
		t.Errorf("frame = %+v", frame.Frame)
	}

	tests := []struct {
		cmd    CommandMsg
		wantOK bool
	}{
		{CommandMsg{ID: "a", Op: OpHeat, Pos: sandbox.Origin, Value: 90}, true},
		{CommandMsg{ID: "b", Op: OpRotate, Pos: sandbox.Origin}, true},
		{CommandMsg{ID: "c", Op: "explode", Pos: sandbox.Origin}, false},
		{CommandMsg{ID: "d", Op: OpFuel, Pos: core.BlockPos{X: 9}}, false},
	}
	for _, tt := range tests {
		if err := c.Command(tt.cmd); err != nil {
			t.Fatalf("Command(%s) failed: %v", tt.cmd.ID, err)
		}
		var res *ResultMsg
		for res == nil {
			_, r, err := c.Next()
			if err != nil {
				t.Fatalf("Next() failed: %v", err)
			}
			res = r
		}
		if res.ID != tt.cmd.ID || res.OK != tt.wantOK {
			t.Errorf("result %+v, expected id %s ok %v", res, tt.cmd.ID, tt.wantOK)
		}
	}

	for {
		f, _, err := c.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		if f != nil && len(f.Tiles) == 1 && f.Tiles[0].Side == 2 {
			break
		}
	}
}

func TestRejectsBadSubscribe(t *testing.T) {
	srv, _ := startServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(SubscribeMsg{Type: TypeSubscribe, ProtocolVersion: "0"}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Errorf("ReadMessage() error = %v, expected policy violation close", err)
	}
}

func TestIsLoopbackRemote(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1:5000", true},
		{"[::1]:5000", true},
		{"10.0.0.2:5000", false},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := isLoopbackRemote(tt.addr); got != tt.want {
			t.Errorf("isLoopbackRemote(%q) = %v, expected %v", tt.addr, got, tt.want)
		}
	}
}

func TestNormalizeSubscribe(t *testing.T) {
	sub := SubscribeMsg{Every: -3}
	normalizeSubscribe(&sub)
	if sub.Every != 1 {
		t.Errorf("Every = %d, expected 1", sub.Every)
	}
	sub.Every = 5000
	normalizeSubscribe(&sub)
	if sub.Every != 1000 {
		t.Errorf("Every = %d, expected 1000", sub.Every)
	}
}
