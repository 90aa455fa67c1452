package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazor/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lazor SSH server",
	Long: `Start an SSH server that lets users browse the boards in the levels
directory and step through them in the viewer.

Each SSH connection gets its own session. Solver runs from every session
are recorded in the server's run history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses serve.host_key_path from the config

Examples:
  lazor serve                           # Listen on the configured host:port
  lazor serve --ssh :2222               # Listen on port 2222
  lazor serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 2323`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", -1, "Concurrent session cap (0 = none, default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = net.JoinHostPort(settings.Serve.Host, strconv.Itoa(settings.Serve.Port))
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	cfg.HostKeyPath = settings.Serve.HostKeyPath
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.MaxSessions = settings.Serve.MaxSessions
	if flagMaxSessions >= 0 {
		cfg.MaxSessions = flagMaxSessions
	}

	items, err := tui.LoadBoardItems(newLoader())
	if err != nil {
		fail("loading boards: %v", err)
	}
	if len(items) == 0 {
		logger.Warn("no boards to serve", "dir", settings.Levels.Dir)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := viewerOptions(store)
	opts.Logger = logger.WithPrefix("lazor-ssh")

	server, err := tui.NewSSHServer(cfg, items, opts)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting lazor SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(context.Background()); err != nil {
		fail("server: %v", err)
	}
}
