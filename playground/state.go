package playground

// Screen identifies the active view. Exactly one screen is current at any
// time; the Nav controller is the single source of truth for it.
type Screen int

const (
	// ScreenLogin is shown before an identity exists.
	ScreenLogin Screen = iota

	// ScreenModeSelect offers the choice between chat and the word game.
	ScreenModeSelect

	// ScreenDifficulty asks for a game difficulty before any channel opens.
	ScreenDifficulty

	// ScreenChat is the active chat mode.
	ScreenChat

	// ScreenGame is the active word-chain game mode.
	ScreenGame
)

// String returns the string representation of a Screen.
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenModeSelect:
		return "mode-select"
	case ScreenDifficulty:
		return "difficulty-select"
	case ScreenChat:
		return "chat"
	case ScreenGame:
		return "game"
	default:
		return "unknown"
	}
}

// ChannelState tracks a mode controller's connection progress.
type ChannelState int

const (
	// StateDisconnected means the mode has no open channel.
	StateDisconnected ChannelState = iota

	// StateConnecting means a channel was dialed but no event has arrived yet.
	StateConnecting

	// StateLive means events are flowing.
	StateLive

	// StateOver means the game reached its terminal state; the channel stays
	// open but moves are refused until a restart.
	StateOver
)

// String returns the string representation of a ChannelState.
func (s ChannelState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateLive:
		return "live"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}
