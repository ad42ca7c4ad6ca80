package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/fern/internal/config"
	"github.com/vango-dev/fern/internal/devserver"
	"github.com/vango-dev/fern/pkg/fern"
	"github.com/vango-dev/fern/pkg/metrics"
	"github.com/vango-dev/fern/pkg/snapshot"
	"github.com/vango-dev/fern/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo app with live preview",
		Long: `Start the development server hosting the built-in demo app.

The server renders the app into an in-memory host tree, serves it as
HTML, and pushes fresh snapshots to connected browsers over a websocket
after every update.

Examples:
  fern serve
  fern serve --port=8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from fern.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from fern.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrNotFound) {
		cfg = config.New()
		cfg.Name = "fern demo"
	} else if err != nil {
		return err
	}

	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.SlogLevel())); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []devserver.Option{
		devserver.WithLogger(log),
		devserver.WithMetrics(metrics.New()),
	}
	if cfg.Snapshots.Enabled {
		store, err := snapshot.NewFileStore(cfg.Snapshots.Dir)
		if err != nil {
			return fmt.Errorf("snapshot store: %w", err)
		}
		if maxAge, err := time.ParseDuration(cfg.Snapshots.MaxAge); err == nil {
			if err := store.Prune(maxAge); err != nil {
				log.Warn("snapshot prune failed", "err", err)
			}
		}
		opts = append(opts, devserver.WithSnapshots(store, cfg.Name))
	}

	srv, err := devserver.New(cfg, vdom.Comp(demoApp, nil), opts...)
	if err != nil {
		return err
	}

	fmt.Printf("fern serving %s on http://%s\n", cfg.Name, cfg.Addr())
	return srv.ListenAndServe()
}

// demoApp is a small counter with a text input, enough to exercise
// state, events, and conditional rendering in the browser.
func demoApp(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
	count, setCount := fern.State(h, 0)
	name, setName := fern.State(h, "")

	greeting := "Hello!"
	if name != "" {
		greeting = "Hello, " + name + "!"
	}

	return vdom.Div(
		vdom.Class("demo"),
		vdom.H1(vdom.Text(greeting)),
		vdom.P(vdom.Textf("Clicked %d times", count)),
		vdom.Button(
			vdom.OnClick(func(vdom.Event) { setCount(count + 1) }),
			vdom.Text("Click me"),
		),
		vdom.Input(
			vdom.Type("text"),
			vdom.Placeholder("Your name"),
			vdom.Value(name),
			vdom.OnInput(func(e vdom.Event) { setName(e.Value) }),
		),
	)
}
