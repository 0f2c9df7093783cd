package web

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
	sendBuffer     = 64
)

var errSlowClient = errors.New("web: send buffer full")

type runRecorder interface {
	RecordRun(score, length int) error
}

// conn is one browser playing one game.
type conn struct {
	ws       *websocket.Conn
	session  *snake.Session
	recorder runRecorder // may be nil
	logger   *log.Logger
	send     chan []byte
	wake     chan struct{} // state changed outside the ticker

	// mu orders session operations with their messages, so a tick that
	// raced an input never reaches the client after it.
	mu     sync.Mutex
	closed bool
}

func newConn(ws *websocket.Conn, session *snake.Session, recorder runRecorder, logger *log.Logger) *conn {
	return &conn{
		ws:       ws,
		session:  session,
		recorder: recorder,
		logger:   logger,
		send:     make(chan []byte, sendBuffer),
		wake:     make(chan struct{}, 1),
	}
}

// serve runs the connection until the client goes away.
func (c *conn) serve(cfg GameConfig) {
	ctx, cancel := context.WithCancel(context.Background())

	var writer, ticker sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		c.writePump()
	}()
	ticker.Add(1)
	go func() {
		defer ticker.Done()
		c.tickLoop(ctx)
	}()

	c.enqueue(ServerMessage{Type: TypeConfig, Config: &cfg})
	c.mu.Lock()
	snap := snake.NewSnapshot(c.session.State(), c.session.Rules())
	c.enqueueLocked(ServerMessage{Type: TypeState, State: &snap})
	c.mu.Unlock()

	c.readPump()

	cancel()
	ticker.Wait()
	c.mu.Lock()
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	writer.Wait()
}

// readPump applies client actions until the socket fails.
func (c *conn) readPump() {
	c.ws.SetReadLimit(maxMessageSize)
	for {
		var msg ClientMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read", "error", err)
			}
			return
		}

		action, ok := clientAction(msg.Action)
		if !ok {
			c.logger.Debug("ignored action", "action", msg.Action)
			continue
		}

		c.mu.Lock()
		next, out := c.session.Apply(action)
		if out.Changed {
			c.sendStateLocked(next, out)
		}
		c.mu.Unlock()

		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
}

// writePump writes queued messages to the socket.
func (c *conn) writePump() {
	defer c.ws.Close()

	for message := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			c.logger.Debug("write", "error", err)
			// Keep draining so senders never block.
			for range c.send {
			}
			return
		}
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// tickLoop steps the game while it runs. The ticker is stopped whenever the
// game leaves running and reset when the tick interval changes.
func (c *conn) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	ticker.Stop()
	defer ticker.Stop()

	live := false
	interval := 0
	arm := func() {
		state := c.session.State()
		switch {
		case !state.Running():
			if live {
				ticker.Stop()
				live = false
			}
		case !live || state.TickMs != interval:
			interval = state.TickMs
			ticker.Reset(time.Duration(interval) * time.Millisecond)
			live = true
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-c.wake:
			arm()

		case <-ticker.C:
			c.mu.Lock()
			next, out := c.session.Tick()
			if out.Changed {
				c.sendStateLocked(next, out)
			}
			c.mu.Unlock()

			if out.GameOver {
				c.gameOver(next)
			}
			arm()
		}
	}
}

func (c *conn) gameOver(state snake.GameState) {
	c.logger.Info("game over", "score", state.Score, "best", state.BestScore)
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordRun(state.Score, state.Length()); err != nil {
		c.logger.Warn("record run", "score", state.Score, "error", err)
	}
}

// sendStateLocked queues a state message. Must be called with mu held.
func (c *conn) sendStateLocked(state snake.GameState, out snake.Outcome) {
	snap := snake.NewSnapshot(state, c.session.Rules())
	c.enqueueLocked(ServerMessage{Type: TypeState, State: &snap, Outcome: &out})
}

func (c *conn) enqueue(msg ServerMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enqueueLocked(msg)
}

// enqueueLocked queues msg without blocking. A client that cannot keep up
// is disconnected. Must be called with mu held.
func (c *conn) enqueueLocked(msg ServerMessage) {
	if c.closed {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal message", "type", msg.Type, "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("dropping client", "error", errSlowClient)
		c.ws.Close()
	}
}
