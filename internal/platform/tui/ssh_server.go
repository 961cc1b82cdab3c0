package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/quickdoor/internal/config"
	"github.com/vovakirdan/quickdoor/internal/core"
	"github.com/vovakirdan/quickdoor/internal/quickdoor"
	"github.com/vovakirdan/quickdoor/internal/storage"
)

// SSHServer serves one Quick Door session per SSH connection.
// Every user gets their own engine; best scores are kept per username.
type SSHServer struct {
	config  config.Config
	server  *ssh.Server
	store   *storage.Store
	kv      storage.KeyValue
	book    ScoreBook
	logger  *log.Logger
	seed    int64
	hostKey string
}

// NewSSHServer creates a new SSH server with the given configuration.
// A database that cannot be opened is logged and replaced by in-memory storage.
func NewSSHServer(cfg config.Config, seed int64) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "quickdoor-ssh",
	})

	srv := &SSHServer{
		config: cfg,
		logger: logger,
		seed:   seed,
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database, using memory", "error", err)
		srv.kv = storage.NewMemory()
	} else {
		srv.store = store
		srv.kv = store
		srv.book = store
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.Server.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}
	srv.hostKey = hostKeyPath

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Server.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.Server.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath defaults to ~/.quickdoor/host_key and creates its directory.
func resolveHostKeyPath(path string) (string, error) {
	path, err := storage.ExpandHome(path)
	if err != nil {
		return "", err
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".quickdoor", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates an engine and a Bubble Tea model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	user := sess.User()

	engine := s.newEngine(user)

	// A dropped connection never sends quit, so finish the session here too.
	go func() {
		<-sess.Context().Done()
		FinishSession(engine, s.book, user, s.logger)
		engine.Close()
	}()

	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Player:  user,
	}
	model := NewModel(engine, s.book, s.logger.With("user", user), cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// newEngine builds a session engine whose best score lives under the user's namespace.
func (s *SSHServer) newEngine(user string) *quickdoor.Engine {
	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return quickdoor.New(quickdoor.Options{
		Config: s.config,
		Store:  storage.NewNamespaced(s.kv, user),
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: s.logger.With("user", user),
	})
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Server.Address, "host_key", s.hostKey)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.closeStore()
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown gracefully stops the server, then closes the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Server.Address
}
