// Package cmd provides the CLI commands for the library client.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DeltaH-ll/library-client/internal/adapter/storage"
	"github.com/DeltaH-ll/library-client/internal/config"
	"github.com/DeltaH-ll/library-client/internal/domain/guard"
	"github.com/DeltaH-ll/library-client/internal/domain/route"
	"github.com/DeltaH-ll/library-client/internal/domain/session"
	"github.com/DeltaH-ll/library-client/internal/navigator"
	"github.com/DeltaH-ll/library-client/internal/notify"
	"github.com/DeltaH-ll/library-client/internal/transport"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "library-client",
	Short: "library-client - terminal client for the library service",
	Long: `library-client talks to the library management service with the
same session, access-control, and request handling as the web frontend.

Configuration:
  Config is loaded from library-client.yaml in the current directory,
  $HOME/.library-client/, or /etc/library-client/.

  Environment variables override config values with the LIBRARY_CLIENT_
  prefix. Example: LIBRARY_CLIENT_API_BASE=https://lib.example.com/api

Commands:
  login       Sign in and persist the session
  logout      Clear the session
  whoami      Show the current session
  profile     Update profile fields
  open        Navigate to a route and show where it settles
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./library-client.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}

// app wires the session manager, navigator, and request pipeline from
// the loaded configuration. One app is built per command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions *session.Manager
	nav      *navigator.Navigator
	client   *transport.Client

	closeStorage func() error
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)

	store, closeStorage, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(store, logger)
	nav := navigator.New(route.NewTable(), guard.New(sessions, logger, nil), logger)

	client := transport.NewClient(store,
		transport.WithAPIBase(cfg.APIBase),
		transport.WithAssetBase(cfg.AssetBase),
		transport.WithTimeout(cfg.RequestTimeout()),
		transport.WithSessionManager(sessions),
		transport.WithRedirector(nav),
		transport.WithNotifier(notify.NewConsoleNotifier(os.Stderr)),
		transport.WithLogger(logger),
	)

	return &app{
		cfg:          cfg,
		logger:       logger,
		sessions:     sessions,
		nav:          nav,
		client:       client,
		closeStorage: closeStorage,
	}, nil
}

func (a *app) Close() error {
	return a.closeStorage()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
