package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/bc-engines/internal/config"
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/storage"
)

// SSHServer serves the engine picker, preview and run history over SSH.
// Every session gets its own sandbox.
type SSHServer struct {
	config  config.Config
	address string
	server  *ssh.Server
	store   *storage.Store
	logger  *log.Logger
}

// NewSSHServer creates a server listening on the configured SSH address.
// The store may be nil, in which case runs are not recorded.
func NewSSHServer(cfg config.Config, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srv := &SSHServer{
		config:  cfg,
		address: cfg.SSH.Address(),
		store:   store,
		logger:  logger.WithPrefix("ssh"),
	}

	hostKeyPath := cfg.SSH.HostKey
	if !filepath.IsAbs(hostKeyPath) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, hostKeyPath)
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(srv.address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(30*time.Minute),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a session model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sb, err := sandbox.New(s.config, s.logger.With("user", sshSession.User()))
	if err != nil {
		s.logger.Error("cannot build sandbox", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	cfg := s.config.ScreenConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	model := NewSessionModel(sb, s.store, cfg, s.config.Preview.Side)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("tui: SSH server: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.address
}

// sessionScreen is the screen a session shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPreview
	screenHistory
)

// SessionModel manages the full session flow: picker -> preview or history -> picker.
type SessionModel struct {
	sb       *sandbox.Sandbox
	store    *storage.Store
	config   core.RuntimeConfig
	side     int
	screen   sessionScreen
	menu     MenuModel
	preview  Model
	history  HistoryModel
	status   string
	quitting bool
}

// NewSessionModel creates a session over a sandbox. New engines are
// connected on side.
func NewSessionModel(sb *sandbox.Sandbox, store *storage.Store, cfg core.RuntimeConfig, side int) SessionModel {
	return SessionModel{
		sb:     sb,
		store:  store,
		config: cfg,
		side:   side,
		menu:   NewMenuModel(sb.Mod.Engines(), cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPreview:
		return m.updatePreview(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.store, m.sb.Mod.Engines(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.sb.World.Clear()
		preview, err := NewModel(m.sb, selected.Kind, m.side, m.store, m.config)
		if err != nil {
			m.status = err.Error()
			m.menu = NewMenuModel(m.sb.Mod.Engines(), m.config)
			return m, nil
		}
		m.preview = preview
		m.screen = screenPreview
		return m, m.preview.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.preview.Update(msg)
	if preview, ok := newModel.(Model); ok {
		m.preview = preview
	}

	if m.preview.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.preview.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.status = ""
	m.menu = NewMenuModel(m.sb.Mod.Engines(), m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPreview:
		return m.preview.View()
	case screenHistory:
		return m.history.View()
	}
	view := m.menu.View()
	if m.status != "" {
		view += "\n" + centerText(m.status, m.config.ScreenW)
	}
	return view
}
