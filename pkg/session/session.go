// Package session runs the bridge: a readiness bootstrap, then one delivery
// loop (polling or streaming) feeding the shared chat router.
//
// A lost streaming connection ends the session; there is no reconnect or
// backoff, and nothing bounds how long an idle stream may sit silent.
// Shutdown comes from the caller's context. These are accepted limitations
// of the protocol, not gaps to paper over here.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jg-phare/logan-bridge/pkg/api"
	"github.com/jg-phare/logan-bridge/pkg/chat"
)

// ErrNoDocument means LOGAN is reachable but has no log file open.
var ErrNoDocument = errors.New("logan is running but no file is open")

// Config holds the session configuration.
type Config struct {
	Name         string         // agent display name
	PollInterval time.Duration  // polling mode cadence
	Client       *api.Client    // control API client (required)
	Responder    chat.Responder // nil = chat.EchoResponder
	Logger       *slog.Logger   // nil = slog.Default()

	// Display is forwarded to the router for console output.
	Display func(origin, text string)
}

// DefaultConfig returns session defaults. The caller must still provide
// Client.
func DefaultConfig() Config {
	return Config{
		Name:         "Go Agent",
		PollInterval: 2 * time.Second,
	}
}

// Session owns one bridge run. The polling cursor and the stream frame
// buffer are each private to their loop; a session uses exactly one of them.
type Session struct {
	cfg    Config
	client *api.Client
	router *chat.Router
	log    *slog.Logger
}

// New creates a session from cfg, filling unset fields from DefaultConfig.
func New(cfg Config) *Session {
	def := DefaultConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = def.PollInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", uuid.NewString()[:8], "agent", cfg.Name)

	router := chat.NewRouter(
		sender{client: cfg.Client, name: cfg.Name},
		cfg.Responder,
		logger,
	)
	router.Display = cfg.Display

	return &Session{
		cfg:    cfg,
		client: cfg.Client,
		router: router,
		log:    logger,
	}
}

// CheckReady verifies LOGAN is reachable and has a document open. The
// returned status is surfaced for diagnostics only; no downstream logic
// depends on it.
func (s *Session) CheckReady(ctx context.Context) (api.Status, error) {
	st, err := s.client.Status(ctx)
	if err != nil {
		return api.Status{}, fmt.Errorf("logan unreachable: %w", err)
	}
	if st.FilePath == "" {
		return api.Status{}, ErrNoDocument
	}
	s.log.Info("logan ready", "file", st.FilePath, "lines", st.TotalLines)
	return st, nil
}

// register announces the display name. Registration is best-effort; a
// failure is logged and the session proceeds.
func (s *Session) register(ctx context.Context) {
	if err := s.client.Register(ctx, s.cfg.Name); err != nil {
		s.log.Warn("register failed", "error", err)
		return
	}
	s.log.Info("registered")
}

// greet sends the hello message for the given mode label.
func (s *Session) greet(ctx context.Context, mode string) {
	text := fmt.Sprintf("Hello! %s connected via %s.", s.cfg.Name, mode)
	if err := s.router.Send(ctx, text); err != nil {
		s.log.Warn("greeting failed", "error", err)
	}
}

// disconnect sends the best-effort disconnect notice. It runs on a fresh
// context because the session context is already cancelled by the time an
// interrupt lands here.
func (s *Session) disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.router.SendDisconnect(ctx)
}

// sender adapts the api client to the router's Sender, pinning the agent name.
type sender struct {
	client *api.Client
	name   string
}

func (s sender) Send(ctx context.Context, text string) error {
	return s.client.Send(ctx, text, s.name)
}
