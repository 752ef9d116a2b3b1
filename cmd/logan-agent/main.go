// LOGAN agent chat bridge.
//
// Connects an automated agent to a running LOGAN instance over its local
// HTTP control API and exchanges chat messages in one of two modes:
//
//	# poll every 2 seconds
//	go run ./cmd/logan-agent/ -mode poll -name "Go Agent"
//
//	# one long-lived event stream (only one SSE agent at a time)
//	go run ./cmd/logan-agent/ -mode sse -name "Go Agent"
//
// Settings may also come from a YAML file via -config; flags win over the
// file, the file wins over defaults.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/jg-phare/logan-bridge/pkg/api"
	"github.com/jg-phare/logan-bridge/pkg/chat"
	"github.com/jg-phare/logan-bridge/pkg/session"
)

// fileConfig mirrors the flag set for YAML config files. The interval is a
// duration string ("2s", "500ms") parsed after unmarshalling.
type fileConfig struct {
	Name     string `yaml:"name"`
	Mode     string `yaml:"mode"`
	API      string `yaml:"api"`
	Interval string `yaml:"interval"`
}

// settings is the fully resolved configuration.
type settings struct {
	name     string
	mode     string
	api      string
	interval time.Duration
}

var (
	userColor  = color.New(color.FgCyan)
	agentColor = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed)
)

func main() {
	name := flag.String("name", "", "agent display name")
	mode := flag.String("mode", "", "delivery mode: poll or sse")
	apiURL := flag.String("api", "", "LOGAN control API base URL")
	interval := flag.Duration("interval", 0, "poll interval (poll mode)")
	configPath := flag.String("config", "", "optional YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	set, err := resolve(*configPath, *name, *mode, *apiURL, *interval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	os.Exit(run(set, logger))
}

func run(set settings, logger *slog.Logger) int {
	fmt.Printf("=== LOGAN Agent Chat — %s (%s mode) ===\n\n", set.name, set.mode)

	client := api.NewClient(api.Config{BaseURL: set.api})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := session.New(session.Config{
		Name:         set.name,
		PollInterval: set.interval,
		Client:       client,
		Logger:       logger,
		Display:      display,
	})

	st, err := sess.CheckReady(ctx)
	if err != nil {
		errColor.Fprintf(os.Stderr, "Cannot start: %v\n", err)
		return 1
	}
	fmt.Printf("Connected to LOGAN\n  File: %s\n  Lines: %d\n\n", st.FilePath, st.TotalLines)

	switch set.mode {
	case "poll":
		err = sess.RunPolling(ctx)
	case "sse":
		// LOGAN accepts a single SSE agent; refuse to start a second one
		// from this host.
		lock := flock.New(filepath.Join(os.TempDir(), "logan-agent.lock"))
		locked, lockErr := lock.TryLock()
		if lockErr != nil || !locked {
			errColor.Fprintln(os.Stderr, "Another SSE agent is already running on this host.")
			return 1
		}
		defer lock.Unlock()
		err = sess.RunStream(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (use poll or sse)\n", set.mode)
		return 2
	}

	if err != nil {
		logger.Error("session ended", "error", err)
		return 1
	}
	fmt.Println("\nDisconnected.")
	return 0
}

// display prints one chat line to stdout in the scripts' console protocol.
func display(origin, text string) {
	if origin == chat.OriginUser {
		userColor.Printf("  [user] %s\n", text)
		return
	}
	agentColor.Printf("  [agent] %s\n", text)
}

// resolve layers flags over an optional config file over defaults.
func resolve(path, name, mode, apiURL string, interval time.Duration) (settings, error) {
	set := settings{
		name:     "Go Agent",
		mode:     "poll",
		api:      api.DefaultConfig().BaseURL,
		interval: session.DefaultConfig().PollInterval,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return set, fmt.Errorf("read config: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return set, fmt.Errorf("parse config: %w", err)
		}
		if fc.Name != "" {
			set.name = fc.Name
		}
		if fc.Mode != "" {
			set.mode = fc.Mode
		}
		if fc.API != "" {
			set.api = fc.API
		}
		if fc.Interval != "" {
			d, err := time.ParseDuration(fc.Interval)
			if err != nil {
				return set, fmt.Errorf("parse interval: %w", err)
			}
			set.interval = d
		}
	}

	if name != "" {
		set.name = name
	}
	if mode != "" {
		set.mode = mode
	}
	if apiURL != "" {
		set.api = apiURL
	}
	if interval != 0 {
		set.interval = interval
	}

	return set, nil
}
