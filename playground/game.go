package playground

import (
	"context"
	"strings"
	"sync"
	"time"
)

// GameSession owns word-chain state and the single live game channel. The
// word log is append-only; the last entry is the current word whose final
// character constrains the next accepted input.
type GameSession struct {
	user   string
	cfg    Config
	gw     Gateway
	dial   Dialer
	logger Logger

	mu           sync.Mutex
	state        ChannelState
	ch           Transport
	difficulty   int
	words        []GameWord
	score        int
	isOver       bool
	overMessage  string
	transientErr string
	// errGen invalidates pending expiry timers: a stale timer must never
	// clear a banner set after it was scheduled.
	errGen   int
	history  []GameHistoryEntry
	onChange func()
}

// NewGameSession builds a controller for one user. No channel opens until a
// difficulty is picked via Start.
func NewGameSession(cfg Config, user string, gw Gateway, dial Dialer, logger Logger) *GameSession {
	if logger == nil {
		logger = noopLogger{}
	}
	return &GameSession{
		user:   user,
		cfg:    cfg,
		gw:     gw,
		dial:   dial,
		logger: logger,
	}
}

// SetOnChange registers a hook fired after every state change.
func (g *GameSession) SetOnChange(fn func()) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

func (g *GameSession) notify() {
	g.mu.Lock()
	fn := g.onChange
	g.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// GameSnapshot is a copy of the game state for rendering.
type GameSnapshot struct {
	State          ChannelState
	Difficulty     int
	Words          []GameWord
	Score          int
	IsOver         bool
	OverMessage    string
	TransientError string
	History        []GameHistoryEntry
}

// CurrentWord returns the word whose final character constrains the next
// move, or "" before the first accepted move.
func (s GameSnapshot) CurrentWord() string {
	if len(s.Words) == 0 {
		return ""
	}
	return s.Words[len(s.Words)-1].Text
}

// Snapshot returns a consistent copy of the current state.
func (g *GameSession) Snapshot() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GameSnapshot{
		State:          g.state,
		Difficulty:     g.difficulty,
		Words:          append([]GameWord(nil), g.words...),
		Score:          g.score,
		IsOver:         g.isOver,
		OverMessage:    g.overMessage,
		TransientError: g.transientErr,
		History:        append([]GameHistoryEntry(nil), g.history...),
	}
}

// Start enters the game at the picked difficulty. It restarts the game
// server-side first, so a fresh entry always begins from score 0 with an
// empty word log, then refreshes history and dials.
func (g *GameSession) Start(ctx context.Context, difficulty int) error {
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return NewError(ErrorInvalidConfig, "difficulty out of range")
	}
	if err := g.gw.RestartGame(ctx, g.user); err != nil {
		return err
	}
	g.mu.Lock()
	g.difficulty = difficulty
	g.clearGameLocked()
	g.mu.Unlock()
	g.refreshHistory(ctx)
	g.notify()
	return g.connect(ctx)
}

// clearGameLocked resets in-round state. History and difficulty survive.
func (g *GameSession) clearGameLocked() {
	g.words = nil
	g.score = 0
	g.isOver = false
	g.overMessage = ""
	g.transientErr = ""
	g.errGen++
}

func (g *GameSession) connect(ctx context.Context) error {
	g.closeChannel()
	g.mu.Lock()
	g.state = StateConnecting
	diff := g.difficulty
	g.mu.Unlock()
	g.notify()

	ch, err := g.dial(ctx, ModeGame, diff, g.apply)
	if err != nil {
		g.mu.Lock()
		g.state = StateDisconnected
		g.mu.Unlock()
		g.notify()
		return err
	}
	g.mu.Lock()
	g.ch = ch
	g.mu.Unlock()
	return nil
}

func (g *GameSession) closeChannel() {
	g.mu.Lock()
	ch := g.ch
	g.ch = nil
	g.mu.Unlock()
	if ch != nil {
		_ = ch.Close()
	}
}

// apply folds one classified event into state. A system event in game mode
// means the move was rejected: it must not touch the word log or the current
// word, only the transient banner.
func (g *GameSession) apply(ev Event) {
	g.mu.Lock()
	if g.state == StateConnecting && ev.Kind != KindUnknown {
		g.state = StateLive
	}
	switch ev.Kind {
	case KindHistory:
		// Resumed round: authoritative replacement of the word log.
		words := make([]GameWord, 0, len(ev.Messages))
		for _, m := range ev.Messages {
			if m.Type == eventMessage {
				words = append(words, GameWord{Text: m.Message, IsUser: m.Username != AIUsername})
			}
		}
		g.words = words
		g.score = ev.Score
		g.isOver = ev.IsGameOver
		if ev.Difficulty >= MinDifficulty && ev.Difficulty <= MaxDifficulty {
			g.difficulty = ev.Difficulty
		}
		if g.isOver {
			g.state = StateOver
		}
	case KindMessage:
		// Accepted move: clears any banner immediately.
		g.transientErr = ""
		g.errGen++
		g.words = append(g.words, GameWord{Text: ev.Message, IsUser: ev.Username != AIUsername})
	case KindSystem:
		g.setTransientLocked(ev.Message)
	case KindScore:
		g.score = ev.Score
	case KindGameOver:
		g.isOver = true
		g.overMessage = ev.Message
		g.state = StateOver
		g.mu.Unlock()
		g.refreshHistory(context.Background())
		g.notify()
		return
	default:
		// Unrecognized kinds are ignored.
	}
	g.mu.Unlock()
	g.notify()
}

// setTransientLocked shows a rejected-move banner and schedules its expiry.
func (g *GameSession) setTransientLocked(msg string) {
	g.transientErr = msg
	g.errGen++
	gen := g.errGen
	ttl := g.cfg.TransientErrorTTL
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	time.AfterFunc(ttl, func() { g.expireTransient(gen) })
}

func (g *GameSession) expireTransient(gen int) {
	g.mu.Lock()
	if g.errGen != gen || g.transientErr == "" {
		g.mu.Unlock()
		return
	}
	g.transientErr = ""
	g.mu.Unlock()
	g.notify()
}

// SendWord submits one move. It refuses locally once the game is over,
// mirroring the server's terminal-state rule without a network call.
func (g *GameSession) SendWord(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	g.mu.Lock()
	if g.isOver {
		g.mu.Unlock()
		return NewError(ErrorGameOver, "game is over; restart to keep playing")
	}
	ch := g.ch
	g.mu.Unlock()
	if ch == nil {
		return NewError(ErrorNotConnected, "game channel not open")
	}
	return ch.Send(ctx, word)
}

// Restart clears the round server-side, then locally, and reconnects at the
// same difficulty after the settle delay.
func (g *GameSession) Restart(ctx context.Context) error {
	if err := g.gw.RestartGame(ctx, g.user); err != nil {
		return err
	}
	g.mu.Lock()
	g.clearGameLocked()
	g.mu.Unlock()
	g.notify()
	return g.reconnect(ctx)
}

func (g *GameSession) reconnect(ctx context.Context) error {
	g.closeChannel()
	if g.cfg.SettleDelay > 0 {
		time.Sleep(g.cfg.SettleDelay)
	}
	return g.connect(ctx)
}

// DeleteHistoryEntry removes one past game by index, then re-reads the list.
func (g *GameSession) DeleteHistoryEntry(ctx context.Context, index int) error {
	if err := g.gw.DeleteGameHistoryEntry(ctx, g.user, index); err != nil {
		return err
	}
	g.refreshHistory(ctx)
	g.notify()
	return nil
}

// refreshHistory re-reads past games wholesale. Failures are logged, not
// surfaced.
func (g *GameSession) refreshHistory(ctx context.Context) {
	history, err := g.gw.FetchGameHistory(ctx, g.user)
	if err != nil {
		g.logger.Warn("fetch game history", map[string]any{"error": err.Error()})
		return
	}
	g.mu.Lock()
	g.history = history
	g.mu.Unlock()
}

// Reset closes the channel synchronously, then returns the controller to its
// initial state. Called when the user leaves game mode.
func (g *GameSession) Reset() {
	g.closeChannel()
	g.mu.Lock()
	g.state = StateDisconnected
	g.clearGameLocked()
	g.difficulty = 0
	g.history = nil
	g.mu.Unlock()
	g.notify()
}
