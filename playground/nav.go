package playground

import (
	"context"
	"strings"
	"sync"
)

// Nav is the top-level screen state machine. It owns the identity and both
// mode controllers, and guarantees the core safety invariant: at most one
// mode is active (channel open) at any time. Leaving a mode always closes
// its channel first, then clears its state, then moves to the target screen.
type Nav struct {
	cfg       Config
	gw        Gateway
	newDialer func(user string) Dialer
	logger    Logger

	mu       sync.Mutex
	screen   Screen
	identity Identity
	chat     *ChatSession
	game     *GameSession
	onChange func()
}

// NewNav builds the navigation controller. newDialer is invoked once per
// login to bind channels to the identity.
func NewNav(cfg Config, gw Gateway, newDialer func(user string) Dialer, logger Logger) *Nav {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Nav{
		cfg:       cfg,
		gw:        gw,
		newDialer: newDialer,
		logger:    logger,
		screen:    ScreenLogin,
	}
}

// SetOnChange registers a hook fired after every state change, forwarded to
// both mode controllers as they come into existence.
func (n *Nav) SetOnChange(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	chat, game := n.chat, n.game
	n.mu.Unlock()
	if chat != nil {
		chat.SetOnChange(fn)
	}
	if game != nil {
		game.SetOnChange(fn)
	}
}

func (n *Nav) notify() {
	n.mu.Lock()
	fn := n.onChange
	n.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Screen returns the current screen.
func (n *Nav) Screen() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.screen
}

// Identity returns the active identity.
func (n *Nav) Identity() Identity {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.identity
}

// Chat returns the chat controller, nil before login.
func (n *Nav) Chat() *ChatSession {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.chat
}

// Game returns the game controller, nil before login.
func (n *Nav) Game() *GameSession {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.game
}

// Login records the identity and moves to mode select. Both mode controllers
// are built here; neither opens a channel yet.
func (n *Nav) Login(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewError(ErrorInvalidConfig, "empty user name")
	}
	n.mu.Lock()
	if n.screen != ScreenLogin {
		n.mu.Unlock()
		return nil
	}
	dial := n.newDialer(name)
	n.identity = Identity{Name: name, Joined: true}
	n.chat = NewChatSession(n.cfg, name, n.gw, dial, n.logger)
	n.game = NewGameSession(n.cfg, name, n.gw, dial, n.logger)
	if n.onChange != nil {
		n.chat.SetOnChange(n.onChange)
		n.game.SetOnChange(n.onChange)
	}
	n.screen = ScreenModeSelect
	n.mu.Unlock()
	n.notify()
	return nil
}

// SelectChat enters chat mode and opens its channel.
func (n *Nav) SelectChat(ctx context.Context) error {
	n.mu.Lock()
	if n.screen != ScreenModeSelect {
		n.mu.Unlock()
		return nil
	}
	chat := n.chat
	n.screen = ScreenChat
	n.mu.Unlock()
	n.notify()
	return chat.Enter(ctx)
}

// SelectGame moves to the difficulty picker. No channel opens until a
// difficulty is chosen.
func (n *Nav) SelectGame() {
	n.mu.Lock()
	if n.screen != ScreenModeSelect {
		n.mu.Unlock()
		return
	}
	n.screen = ScreenDifficulty
	n.mu.Unlock()
	n.notify()
}

// StartGame picks a difficulty and enters the game.
func (n *Nav) StartGame(ctx context.Context, difficulty int) error {
	n.mu.Lock()
	if n.screen != ScreenDifficulty {
		n.mu.Unlock()
		return nil
	}
	game := n.game
	n.screen = ScreenGame
	n.mu.Unlock()
	n.notify()
	return game.Start(ctx, difficulty)
}

// Back leaves the current screen. Leaving an active mode tears it down:
// channel closed synchronously, state cleared, then the screen changes.
func (n *Nav) Back() {
	n.mu.Lock()
	screen := n.screen
	chat, game := n.chat, n.game
	n.mu.Unlock()

	switch screen {
	case ScreenChat:
		chat.Reset()
	case ScreenGame:
		game.Reset()
	case ScreenDifficulty:
		// nothing to tear down
	default:
		return
	}

	n.mu.Lock()
	if n.screen == screen {
		n.screen = ScreenModeSelect
	}
	n.mu.Unlock()
	n.notify()
}

// Logout tears down whatever mode is active, clears the identity, and
// returns to the login screen. The whole session state resets.
func (n *Nav) Logout() {
	n.mu.Lock()
	chat, game := n.chat, n.game
	n.mu.Unlock()
	if chat != nil {
		chat.Reset()
	}
	if game != nil {
		game.Reset()
	}
	n.mu.Lock()
	n.chat = nil
	n.game = nil
	n.identity = Identity{}
	n.screen = ScreenLogin
	n.mu.Unlock()
	n.notify()
}
