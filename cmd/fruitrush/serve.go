package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-rush/internal/logging"
	"github.com/vovakirdan/fruit-rush/internal/platform/tui"
	"github.com/vovakirdan/fruit-rush/internal/platform/web"
	"github.com/vovakirdan/fruit-rush/internal/storage"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
	flagServeDiff   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and WebSocket servers",
	Long: `Start servers that let users play remotely.

Each SSH session and each WebSocket connection plays its own game.
Runs from both servers go to the same scores database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.fruitrush/host_key

An empty address disables that server.

Examples:
  fruitrush serve                           # SSH on :23234, WebSocket on :8080
  fruitrush serve --ssh :2222               # SSH on port 2222
  fruitrush serve --ws ""                   # SSH only
  fruitrush serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234
  ws://localhost:8080/ws?name=you&codec=json`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", ":8080", "WebSocket server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// server is implemented by both the SSH and the WebSocket servers.
type server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

func runServe(_ *cobra.Command, _ []string) {
	logger := logging.New(os.Stderr, "serve", flagLogLevel)

	if flagSSHAddr == "" && flagWSAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: both --ssh and --ws are disabled")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var servers []server
	if flagSSHAddr != "" {
		sshSrv, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
			ConfigPath:  flagServeConfig,
			Difficulty:  flagServeDiff,
		}, store, logger.WithPrefix("ssh"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			os.Exit(1)
		}
		servers = append(servers, sshSrv)
	}
	if flagWSAddr != "" {
		handler := web.NewHandler(web.HandlerConfig{
			TickRate:   flagFPS,
			ConfigPath: flagServeConfig,
			Difficulty: flagServeDiff,
			Store:      store,
			Logger:     logger.WithPrefix("ws"),
			Seed:       flagSeed,
		})
		servers = append(servers, web.NewServer(flagWSAddr, handler, logger.WithPrefix("ws")))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, len(servers))
	for _, s := range servers {
		go func(s server) {
			errs <- s.ListenAndServe()
		}(s)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
