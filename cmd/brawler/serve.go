package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/events"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
	"github.com/vovakirdan/tui-brawler/internal/metrics"
	"github.com/vovakirdan/tui-brawler/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets their own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).
Gameplay events from every session feed the Prometheus metrics.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.brawler/host_key

Examples:
  brawler serve                           # Listen on :23234 with auto-generated key
  brawler serve --ssh :2222               # Listen on port 2222
  brawler serve --host-key ./my_host_key  # Use specific host key
  brawler serve --metrics :9090           # Expose /metrics on port 9090

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for the Prometheus /metrics endpoint (disabled if empty)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "brawler-ssh",
	})
	if flagLogFile != "" {
		fileLogger, f, err := newLogger(flagLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = fileLogger
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()
	defer bus.Close()
	brawler.SetPublisher(bus)
	brawler.SetLogger(logger)

	collector := metrics.NewCollector(prometheus.NewRegistry())
	go collector.Run(ctx, bus)
	if flagMetricsAddr != "" {
		collector.StartHTTP(ctx, flagMetricsAddr, logger)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Observer:    collector,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting brawler SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
