package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the snake WebSocket server",
	Long: `Start an HTTP server with a WebSocket endpoint for browser clients.

Each connection to /ws plays its own game; the server steps it and pushes
JSON state after every change. Pass ?player=<name> to keep a best score.

Client messages:
  {"action": "up"|"down"|"left"|"right"|"start"|"pause"|"resume"|"toggle"|"restart"}

Server messages:
  {"type": "config", "config": {...}}                    once per connection
  {"type": "state", "state": {...}, "outcome": {...}}    after every change

Examples:
  snake web
  snake web --addr :9000
  curl localhost:8080/healthz`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd, false)
	if err != nil {
		fatalf("%v", err)
	}
	defer s.close()

	store := openStore(s.logger)
	if store != nil {
		defer store.Close()
	}

	server, err := web.NewServer(web.Config{
		Addr:   flagWebAddr,
		Rules:  s.rules,
		Seed:   flagSeed,
		Logger: s.logger.WithPrefix("snake-web"),
	}, store)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting snake WebSocket server on %s (endpoint /ws)\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fatalf("server: %v", err)
	}
}
