// Package web serves snake over WebSocket. Every connection plays its own
// game; the server steps it on a per-connection ticker and pushes JSON
// snapshots after each change.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// DefaultPlayer names connections that do not pass ?player=.
const DefaultPlayer = "web"

// Config holds configuration for the WebSocket server.
type Config struct {
	// Addr is the host:port to listen on (e.g., ":8080").
	Addr string

	// Rules are the game rules every connection plays by.
	Rules snake.Rules

	// Seed seeds every connection's food placement; 0 derives one from time.
	Seed int64

	// Logger receives server events. Nil discards them.
	Logger *log.Logger
}

// Server hands each WebSocket connection its own snake session.
type Server struct {
	config   Config
	store    *storage.Store // nil keeps scores in memory
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewServer creates a server. store may be nil.
func NewServer(cfg Config, store *storage.Store) (*Server, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // the game holds no credentials
			},
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s, nil
}

// Handler returns the HTTP handler serving /ws and /healthz.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("web: %w", err)
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}

	player := r.URL.Query().Get("player")
	if player == "" {
		player = DefaultPlayer
	}
	id := uuid.NewString()
	logger := s.logger.With("session", id, "player", player)

	var (
		best     snake.BestScoreStore
		recorder runRecorder
	)
	if s.store != nil {
		ps := s.store.ForPlayer(player)
		best, recorder = ps, ps
	}
	session := snake.NewSession(snake.NewEngine(s.config.Rules, s.config.Seed), best, logger)

	logger.Info("connection opened", "remote", r.RemoteAddr)
	c := newConn(ws, session, recorder, logger)
	c.serve(GameConfig{
		Session:    id,
		Player:     player,
		Cells:      s.config.Rules.Cells,
		BaseTickMs: s.config.Rules.BaseTickMs,
		MinTickMs:  s.config.Rules.MinTickMs,
		FoodReward: s.config.Rules.FoodReward,
	})
	logger.Info("connection closed", "remote", r.RemoteAddr)
}
