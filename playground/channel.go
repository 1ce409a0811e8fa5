package playground

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/aiplayground/playground-client-go/playground/internal"

	"github.com/coder/websocket"
)

// Mode selects which push channel a dial opens.
type Mode string

const (
	ModeChat Mode = "chat"
	ModeGame Mode = "wordchain"
)

// Handler receives classified events one at a time, in arrival order.
type Handler func(Event)

// Transport is the send/close surface of an open channel.
type Transport interface {
	Send(ctx context.Context, text string) error
	Close() error
}

// Dialer opens a channel for a mode. Difficulty is only meaningful for
// ModeGame and fixes the AI level for the lifetime of the connection.
type Dialer func(ctx context.Context, mode Mode, difficulty int, h Handler) (Transport, error)

// NewDialer returns a Dialer bound to a config and user.
func NewDialer(cfg Config, user string, logger Logger) Dialer {
	return func(ctx context.Context, mode Mode, difficulty int, h Handler) (Transport, error) {
		return Dial(ctx, cfg, user, mode, difficulty, h, logger)
	}
}

// Channel is one live websocket to the playground server. A dropped
// connection simply stops delivering events; reconnecting is always an
// explicit action of the owning mode controller, never the channel's.
type Channel struct {
	conn   *internal.Conn
	logger Logger
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Dial opens exactly one websocket. Connection establishment past the
// handshake is asynchronous: the caller does not wait for server frames,
// they arrive on the handler.
func Dial(ctx context.Context, cfg Config, user string, mode Mode, difficulty int, h Handler, logger Logger) (*Channel, error) {
	if user == "" {
		return nil, NewError(ErrorInvalidConfig, "empty user")
	}
	if h == nil {
		return nil, NewError(ErrorInvalidConfig, "nil handler")
	}
	if logger == nil {
		logger = noopLogger{}
	}

	dialCtx := ctx
	if cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.HandshakeTimeout)
		defer cancel()
	}

	addr := channelURL(cfg.WSBaseURL, user, mode, difficulty)
	ws, _, err := websocket.Dial(dialCtx, addr, nil)
	if err != nil {
		return nil, WrapError(ErrorConnection, "dial "+string(mode)+" channel", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c := &Channel{
		conn:   internal.NewConn(ws, cfg.ReadTimeout, cfg.WriteTimeout),
		logger: logger,
		cancel: cancel,
	}
	go c.readLoop(runCtx, mode, h)
	return c, nil
}

func channelURL(base, user string, mode Mode, difficulty int) string {
	base = strings.TrimRight(base, "/")
	if mode == ModeGame {
		return fmt.Sprintf("%s/ws/wordchain/%s/%d", base, url.PathEscape(user), difficulty)
	}
	return base + "/ws/" + url.PathEscape(user)
}

// Send writes one plain-text frame.
func (c *Channel) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return NewError(ErrorNotConnected, "channel closed")
	}
	if err := c.conn.WriteText(ctx, text); err != nil {
		return WrapError(ErrorConnection, "write frame", err)
	}
	return nil
}

// Close shuts down the channel. It is idempotent and safe to call on a
// channel that already stopped delivering.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	return c.conn.Close(websocket.StatusNormalClosure, "client close")
}

func (c *Channel) readLoop(ctx context.Context, mode Mode, h Handler) {
	for {
		var raw json.RawMessage
		if err := c.conn.Read(ctx, &raw); err != nil {
			if !isExpectedDisconnect(ctx, err) {
				c.logger.Warn("channel read loop exit", map[string]any{
					"mode":  string(mode),
					"error": err.Error(),
				})
			}
			return
		}
		h(Classify(raw))
	}
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
