package world

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("world: loop stopped")

type request struct {
	fn   func(*World) error
	done chan error
}

// Loop owns a World on a single goroutine: it ticks at a fixed rate, runs
// requests between ticks and publishes a Frame to subscribers after each tick.
type Loop struct {
	world    *World
	interval time.Duration
	logger   *log.Logger

	requests chan request
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	subs    map[int]chan Frame
	nextSub int
}

// NewLoop creates a loop ticking the world tickRate times per second.
func NewLoop(w *World, tickRate int, logger *log.Logger) *Loop {
	if tickRate <= 0 {
		tickRate = 20
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loop{
		world:    w,
		interval: time.Second / time.Duration(tickRate),
		logger:   logger.WithPrefix("loop"),
		requests: make(chan request),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		subs:     make(map[int]chan Frame),
	}
}

// Run drives the world until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case req := <-l.requests:
			req.done <- req.fn(l.world)
		case <-ticker.C:
			l.world.Tick()
			l.publish(l.world.Frame())
		}
	}
}

// Stop ends Run.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Do runs fn on the loop goroutine between ticks and returns its error.
func (l *Loop) Do(ctx context.Context, fn func(*World) error) error {
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case l.requests <- req:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers a frame channel holding at most buffer frames.
// Slow subscribers lose old frames, never the latest. The returned function
// unsubscribes and closes the channel.
func (l *Loop) Subscribe(buffer int) (<-chan Frame, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Frame, buffer)

	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (l *Loop) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

func (l *Loop) publish(f Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs {
		sendLatest(ch, f)
	}
}

func sendLatest(ch chan Frame, f Frame) {
	select {
	case ch <- f:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- f:
	default:
	}
}
