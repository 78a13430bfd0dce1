package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mat-arcade/internal/matinput"
	"github.com/vovakirdan/mat-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagRelayAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets their own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).
When mat input is configured, every session listens to the same mat group.

With --relay, the server also forwards mat presses over WebSocket at
/mat?group=N so other arcade instances can use --mat ws without database
credentials.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --mat firebase --relay :8080

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagRelayAddr, "relay", "", "Serve mat presses over WebSocket on this address")
}

func runServe(cmd *cobra.Command, _ []string) {
	// The server has no game on its own terminal, so log to stderr unless
	// a file was asked for.
	logPath := flagLogPath
	if !cmd.Flags().Changed("log") {
		logPath = "-"
	}
	logger, closeLog := openLogger(logPath)
	defer closeLog()
	logger.SetPrefix("arcade-ssh")

	rt := newRuntime(logger)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Pads = rt.Pads
	cfg.PadGroup = rt.PadGroup
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	var relay *http.Server
	if flagRelayAddr != "" {
		if cfg.Pads == nil {
			fmt.Fprintln(os.Stderr, "Error: --relay needs mat input (--mat firebase)")
			os.Exit(1)
		}
		relay = startRelay(flagRelayAddr, cfg.Pads, logger)
	}

	fmt.Printf("Starting arcade SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()

	if relay != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := relay.Shutdown(ctx); err != nil {
			logger.Warn("relay shutdown", "error", err)
		}
		cancel()
	}

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}

// startRelay serves src over WebSocket in the background.
func startRelay(addr string, src matinput.Source, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/mat", matinput.RelayHandler(src, logger.WithPrefix("relay")))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting mat relay", "address", addr, "path", "/mat")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("relay error", "error", err)
		}
	}()
	return srv
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
