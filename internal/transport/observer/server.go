// Package observer streams harness frames to websocket clients and accepts
// engine commands between ticks.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/world"
)

// ErrUnknownOp is returned for commands with an unsupported op.
var ErrUnknownOp = errors.New("observer: unknown command op")

// Server serves the observer endpoints for one sandbox driven by a loop.
type Server struct {
	sandbox  *sandbox.Sandbox
	loop     *world.Loop
	tickRate int
	log      *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

// NewServer creates a server. The loop must own sb.World.
func NewServer(sb *sandbox.Sandbox, loop *world.Loop, tickRate int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		sandbox:  sb,
		loop:     loop,
		tickRate: tickRate,
		log:      logger.WithPrefix("observer"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the mux serving /bootstrap and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bootstrap", s.BootstrapHandler())
	mux.HandleFunc("/ws", s.WSHandler())
	return mux
}

// BootstrapHandler reports the protocol version, tick and installed kinds.
func (s *Server) BootstrapHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		resp := BootstrapResponse{ProtocolVersion: Version, TickRate: s.tickRate}
		for _, e := range s.sandbox.Mod.Engines() {
			resp.Kinds = append(resp.Kinds, e.Kind.ID)
		}
		err := s.loop.Do(r.Context(), func(w *world.World) error {
			resp.Tick = w.CurrentTick()
			resp.Engines = len(w.Positions())
			return nil
		})
		if err != nil {
			http.Error(rw, err.Error(), http.StatusServiceUnavailable)
			return
		}

		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(resp)
	}
}

// WSHandler upgrades the connection, waits for SUBSCRIBE and then streams
// frames while applying commands read from the client.
func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var sub SubscribeMsg
		if err := json.Unmarshal(msg, &sub); err != nil {
			closeWith(conn, websocket.ClosePolicyViolation, "bad subscribe")
			return
		}
		if sub.Type != TypeSubscribe || sub.ProtocolVersion != Version {
			closeWith(conn, websocket.ClosePolicyViolation, "expected SUBSCRIBE")
			return
		}
		normalizeSubscribe(&sub)

		sid := fmt.Sprintf("O%d", s.nextID.Add(1))
		logger := s.log.With("session", sid)
		logger.Info("observer joined", "remote", r.RemoteAddr, "every", sub.Every)
		defer logger.Info("observer left")

		frames, unsubscribe := s.loop.Subscribe(8)
		defer unsubscribe()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		var every atomic.Int64
		every.Store(int64(sub.Every))
		results := make(chan ResultMsg, 16)

		writeErr := make(chan error, 1)
		go func() {
			for {
				var out any
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case f, ok := <-frames:
					if !ok {
						writeErr <- nil
						return
					}
					if f.Tick%uint64(every.Load()) != 0 {
						continue
					}
					out = FrameMsg{Type: TypeFrame, Frame: f}
				case res := <-results:
					out = res
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(out); err != nil {
					writeErr <- err
					return
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var head struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &head); err != nil {
				continue
			}
			switch head.Type {
			case TypeSubscribe:
				var upd SubscribeMsg
				if err := json.Unmarshal(msg, &upd); err != nil || upd.ProtocolVersion != Version {
					continue
				}
				normalizeSubscribe(&upd)
				every.Store(int64(upd.Every))
			case TypeCommand:
				var cmd CommandMsg
				if err := json.Unmarshal(msg, &cmd); err != nil {
					continue
				}
				res := ResultMsg{Type: TypeResult, ID: cmd.ID, OK: true}
				if err := s.apply(ctx, cmd); err != nil {
					res.OK = false
					res.Error = err.Error()
					logger.Warn("command failed", "op", cmd.Op, "pos", cmd.Pos, "error", err)
				}
				select {
				case results <- res:
				default:
				}
			}
		}

		cancel()
		closeWith(conn, websocket.CloseNormalClosure, "bye")

		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// apply runs a command on the loop goroutine.
func (s *Server) apply(ctx context.Context, cmd CommandMsg) error {
	return s.loop.Do(ctx, func(*world.World) error {
		if cmd.Op == OpRotate {
			return s.sandbox.Rotate(cmd.Pos)
		}
		t, err := s.sandbox.Tile(cmd.Pos)
		if err != nil {
			return err
		}
		switch cmd.Op {
		case OpFuel:
			t.AddFuel(int(cmd.Value))
		case OpSignal:
			t.SetSignal(cmd.Value != 0)
		case OpHeat:
			return t.SetHeatLevel(cmd.Value)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
		}
		return nil
	})
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
