package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/config"
	"github.com/phrazzld/bgtasks/internal/coordination"
	"github.com/phrazzld/bgtasks/internal/domain"
	"github.com/phrazzld/bgtasks/internal/events"
	"github.com/phrazzld/bgtasks/internal/fetch"
	"github.com/phrazzld/bgtasks/internal/platform/logger"
	"github.com/phrazzld/bgtasks/internal/posts"
	"github.com/spf13/cobra"
)

// ErrMissingSubcommand is returned when a command group is run on its own.
var ErrMissingSubcommand = errors.New("must specify a subcommand")

// cli carries the state shared by every command of one invocation.
type cli struct {
	out    *syncWriter
	errOut io.Writer

	configFile string
	baseURL    string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	client *posts.Client
}

// syncWriter serialises writes from controller callbacks and the command.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: &syncWriter{w: out}, errOut: errOut}

	root := &cobra.Command{
		Use:          "bgtasks",
		Short:        "Drive timers, fetches, workers and notifications from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.init()
		},
		RunE: func(*cobra.Command, []string) error {
			return ErrMissingSubcommand
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "path to a YAML config file")
	flags.StringVar(&c.baseURL, "base-url", "", "sample-data service URL (overrides client.base_url)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newDemoCmd(c),
		newFetchCmd(c),
		newComputeCmd(c),
		newPostCmd(c),
		newHealthCmd(c),
		newSlowCmd(c),
	)
	return root
}

// init loads configuration, applies flag overrides and builds the client.
// Logs go to errOut so command output stays machine-readable.
func (c *cli) init() error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	if c.baseURL != "" {
		cfg.Client.BaseURL = c.baseURL
	}
	if c.logLevel != "" {
		cfg.Server.LogLevel = c.logLevel
	}

	l, err := logger.SetupWriter(c.errOut, cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	c.cfg = cfg
	c.logger = l
	c.client = posts.NewClient(cfg.Client.BaseURL, cfg.Client.RequestTimeout, l)
	return nil
}

// newStore builds a coordination store on a real clock whose notifications
// are echoed to the output. The returned func releases both.
func (c *cli) newStore(source fetch.PostsSource) (*coordination.Store, func(), error) {
	emitter := events.NewInMemoryEventEmitter(c.logger)
	emitter.RegisterHandler(c.notificationPrinter())

	clk := clock.NewReal()
	store, err := coordination.New(coordination.Config{
		TimerInterval:   c.cfg.Timer.Interval,
		NotificationTTL: c.cfg.Notify.TTL,
	}, coordination.Dependencies{
		Clock:   clk,
		Posts:   source,
		Emitter: emitter,
		Logger:  c.logger,
	})
	if err != nil {
		clk.Close()
		return nil, nil, err
	}

	return store, func() {
		store.Close()
		clk.Close()
	}, nil
}

// notificationPrinter writes one line per added notification.
func (c *cli) notificationPrinter() events.EventHandler {
	return events.HandlerFunc(func(_ context.Context, e *events.Event) error {
		if e.Type != events.TypeNotificationAdded {
			return nil
		}
		var n domain.Notification
		if err := e.UnmarshalPayload(&n); err != nil {
			return fmt.Errorf("failed to decode notification: %w", err)
		}
		_, err := fmt.Fprintf(c.out, "[%s] %s\n", n.Kind, n.Message)
		return err
	})
}

// printJSON writes v as indented JSON.
func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
