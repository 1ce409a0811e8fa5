package playground

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ChatSession owns chat-mode state and the single live chat channel. All
// folding of channel events and gateway results goes through its mutex, so
// no two folds ever run in parallel.
type ChatSession struct {
	user   string
	cfg    Config
	gw     Gateway
	dial   Dialer
	logger Logger

	mu        sync.Mutex
	state     ChannelState
	ch        Transport
	messages  []ChatMessage
	sessions  []ChatSessionInfo
	currentID string
	onChange  func()
}

// NewChatSession builds a controller for one user. No channel opens until
// Enter is called.
func NewChatSession(cfg Config, user string, gw Gateway, dial Dialer, logger Logger) *ChatSession {
	if logger == nil {
		logger = noopLogger{}
	}
	return &ChatSession{
		user:   user,
		cfg:    cfg,
		gw:     gw,
		dial:   dial,
		logger: logger,
	}
}

// SetOnChange registers a hook fired after every state change. Used by the
// UI to schedule a re-render; never called with the lock held.
func (s *ChatSession) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *ChatSession) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ChatSnapshot is a copy of the chat state for rendering.
type ChatSnapshot struct {
	State     ChannelState
	Messages  []ChatMessage
	Sessions  []ChatSessionInfo
	CurrentID string
}

// Snapshot returns a consistent copy of the current state.
func (s *ChatSession) Snapshot() ChatSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ChatSnapshot{
		State:     s.state,
		Messages:  append([]ChatMessage(nil), s.messages...),
		Sessions:  append([]ChatSessionInfo(nil), s.sessions...),
		CurrentID: s.currentID,
	}
}

// Enter fetches the session list and opens the chat channel. A session-list
// failure is logged, not surfaced: the log view still works without it.
func (s *ChatSession) Enter(ctx context.Context) error {
	s.refreshSessions(ctx)
	s.notify()
	return s.connect(ctx)
}

// connect opens a fresh channel, closing any previous one first so at most
// one channel exists for the mode.
func (s *ChatSession) connect(ctx context.Context) error {
	s.closeChannel()
	s.mu.Lock()
	s.state = StateConnecting
	s.mu.Unlock()
	s.notify()

	ch, err := s.dial(ctx, ModeChat, 0, s.apply)
	if err != nil {
		s.mu.Lock()
		s.state = StateDisconnected
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.mu.Lock()
	s.ch = ch
	s.mu.Unlock()
	return nil
}

func (s *ChatSession) closeChannel() {
	s.mu.Lock()
	ch := s.ch
	s.ch = nil
	s.mu.Unlock()
	if ch != nil {
		_ = ch.Close()
	}
}

// reconnect implements the settle protocol: the channel is already obsolete
// (the gateway mutated the server-side session), so close it, give the
// server a moment to finish provisioning, then dial again.
func (s *ChatSession) reconnect(ctx context.Context) error {
	s.closeChannel()
	if s.cfg.SettleDelay > 0 {
		time.Sleep(s.cfg.SettleDelay)
	}
	return s.connect(ctx)
}

// apply folds one classified event into state. Runs on the channel's read
// loop, serialized by arrival order.
func (s *ChatSession) apply(ev Event) {
	s.mu.Lock()
	switch ev.Kind {
	case KindSessionInfo:
		s.currentID = ev.SessionID
		if s.state == StateConnecting {
			s.state = StateLive
		}
	case KindHistory:
		// Authoritative replacement; applying it twice converges.
		s.messages = append([]ChatMessage(nil), ev.Messages...)
		if s.state == StateConnecting {
			s.state = StateLive
		}
	case KindMessage:
		s.messages = append(s.messages, ChatMessage{
			Type:      eventMessage,
			Username:  ev.Username,
			Message:   ev.Message,
			Timestamp: ev.Timestamp,
		})
	case KindSystem:
		s.messages = append(s.messages, ChatMessage{
			Type:      eventSystem,
			Message:   ev.Message,
			Timestamp: ev.Timestamp,
		})
	case KindSessionUpdated:
		// Metadata is stale; re-fetch the list without touching the log.
		s.mu.Unlock()
		s.refreshSessions(context.Background())
		s.notify()
		return
	default:
		// Unrecognized kinds are ignored.
	}
	s.mu.Unlock()
	s.notify()
}

// SendMessage writes one chat line to the channel. Blank input is a no-op.
func (s *ChatSession) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s.mu.Lock()
	ch := s.ch
	s.mu.Unlock()
	if ch == nil {
		return NewError(ErrorNotConnected, "chat channel not open")
	}
	return ch.Send(ctx, text)
}

// NewChat asks the server for a fresh session, clears the local log to match
// it, and reconnects after the settle delay.
func (s *ChatSession) NewChat(ctx context.Context) error {
	if err := s.gw.CreateChatSession(ctx, s.user); err != nil {
		return err
	}
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
	s.refreshSessions(ctx)
	s.notify()
	return s.reconnect(ctx)
}

// Switch makes another stored session current. Switching to the session that
// is already current is a no-op before any network call.
func (s *ChatSession) Switch(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	if sessionID == s.currentID {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	msgs, err := s.gw.SwitchChatSession(ctx, s.user, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.messages = append([]ChatMessage(nil), msgs...)
	s.currentID = sessionID
	s.mu.Unlock()
	s.refreshSessions(ctx)
	s.notify()
	return s.reconnect(ctx)
}

// Delete removes a stored session. Deleting the current session behaves like
// starting a new chat: the log clears, no session is current until the
// server assigns one, and the channel reconnects. Deleting any other session
// only refreshes the list.
func (s *ChatSession) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	wasCurrent := sessionID == s.currentID
	s.mu.Unlock()

	if err := s.gw.DeleteChatSession(ctx, s.user, sessionID); err != nil {
		return err
	}
	s.refreshSessions(ctx)
	if !wasCurrent {
		s.notify()
		return nil
	}
	s.mu.Lock()
	s.messages = nil
	s.currentID = ""
	s.mu.Unlock()
	s.notify()
	return s.reconnect(ctx)
}

// refreshSessions re-reads the sidebar list wholesale. Failures are logged,
// not surfaced.
func (s *ChatSession) refreshSessions(ctx context.Context) {
	list, err := s.gw.FetchChatSessions(ctx, s.user)
	if err != nil {
		s.logger.Warn("fetch chat sessions", map[string]any{"error": err.Error()})
		return
	}
	s.mu.Lock()
	s.sessions = list.Sessions
	s.currentID = list.CurrentID
	s.mu.Unlock()
}

// Reset closes the channel synchronously, then returns the controller to its
// initial state. Called when the user leaves chat mode.
func (s *ChatSession) Reset() {
	s.closeChannel()
	s.mu.Lock()
	s.state = StateDisconnected
	s.messages = nil
	s.sessions = nil
	s.currentID = ""
	s.mu.Unlock()
	s.notify()
}
