package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/transport/observer"
	"github.com/vovakirdan/bc-engines/internal/world"
)

var (
	flagObserveAddr    string
	flagObserveSide    int
	flagObserveConnect string
	flagObserveEvery   int
)

var observeCmd = &cobra.Command{
	Use:   "observe [kind...]",
	Short: "Run engine benches behind a websocket observer",
	Long: `Place one engine per kind in a row, each with a consumer, tick the
world at the configured rate and stream telemetry frames to websocket
clients on /ws. GET /bootstrap describes the running world. Observers may
send commands (fuel, signal, heat, rotate) that are applied between ticks.

With --connect, act as a client instead and print the frames of a running
observer.

Examples:
  engines observe
  engines observe creative iron --addr 127.0.0.1:9000
  engines observe --connect 127.0.0.1:8090 --every 20`,
	Run: runObserve,
}

func init() {
	observeCmd.Flags().StringVar(&flagObserveAddr, "addr", "", "Listen address (default from config)")
	observeCmd.Flags().IntVar(&flagObserveSide, "side", -1, "Connection side 0-5 (default from config)")
	observeCmd.Flags().StringVar(&flagObserveConnect, "connect", "", "Connect to an observer at host:port and print frames")
	observeCmd.Flags().IntVar(&flagObserveEvery, "every", 20, "With --connect, one frame per N ticks")
}

func runObserve(_ *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagObserveConnect != "" {
		if err := tailObserver(ctx, flagObserveConnect, flagObserveEvery); err != nil {
			fail("%v", err)
		}
		return
	}

	cfg := loadConfig()
	logger := newLogger()
	sb := newSandbox(cfg, logger)

	kinds := args
	if len(kinds) == 0 {
		kinds = cfg.KindIDs()
	}
	side := flagObserveSide
	if side < 0 {
		side = cfg.Preview.Side
	}
	for i, kind := range kinds {
		requireKind(sb, kind)
		pos := sandbox.Origin.Offset(core.Vec3{X: float64(3 * i)})
		tile, err := sb.PlaceEngine(kind, pos, side)
		if err != nil {
			fail("%v", err)
		}
		sb.World.AddSink(tile.Target(), cfg.Runtime.SinkCapacity)
	}

	loop := world.NewLoop(sb.World, cfg.Runtime.TickRate, logger)
	srv := observer.NewServer(sb, loop, cfg.Runtime.TickRate, logger)

	addr := cfg.Observer.Addr
	if flagObserveAddr != "" {
		addr = flagObserveAddr
	}
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	logger.Info("observer listening", "addr", addr, "engines", len(kinds))

	go func() {
		select {
		case err := <-errc:
			logger.Error("observer failed", "error", err)
		case <-ctx.Done():
		}
		loop.Stop()
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("loop stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}

func tailObserver(ctx context.Context, addr string, every int) error {
	c, err := observer.Dial(ctx, addr, every)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		c.Close()
	}()

	for {
		frame, res, err := c.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if res != nil {
			continue
		}
		for _, t := range frame.Tiles {
			fmt.Printf("tick %6d  %-9s %s  side %d  heat %5.1f %-6s  power %.2f  piston %+.3f  delivered %.1f\n",
				frame.Tick, t.Kind, t.Pos, t.Side, t.Heat, t.HeatStage, t.Power, t.Piston, t.Delivered)
		}
	}
}
