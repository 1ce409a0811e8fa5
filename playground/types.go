package playground

// Server-pushed frame types.
const (
	eventSessionInfo    = "session_info"
	eventHistory        = "history"
	eventSessionUpdated = "session_updated"
	eventMessage        = "message"
	eventSystem         = "system"
	eventScore          = "score"
	eventGameOver       = "game_over"
)

// AIUsername marks machine moves and machine chat lines on the wire.
const AIUsername = "AI"

// Difficulty bounds for the word game.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// envelope is the JSON frame the server pushes on either channel. Which
// fields are populated depends on Type; client-to-server frames are plain
// text and never use this shape.
type envelope struct {
	Type       string        `json:"type"`
	Username   string        `json:"username,omitempty"`
	Message    string        `json:"message,omitempty"`
	Timestamp  string        `json:"timestamp,omitempty"`
	SessionID  string        `json:"session_id,omitempty"`
	Messages   []ChatMessage `json:"messages,omitempty"`
	Score      int           `json:"score,omitempty"`
	IsGameOver bool          `json:"isGameOver,omitempty"`
	Difficulty int           `json:"difficulty,omitempty"`
}

// Identity holds the active user. Immutable between login and logout.
type Identity struct {
	Name   string
	Joined bool
}

// ChatMessage is one line of a chat session, in the server's storage shape.
// Type is "message" or "system"; system lines carry no username.
type ChatMessage struct {
	Type      string `json:"type"`
	Username  string `json:"username,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatSessionInfo is sidebar metadata for one stored chat session. The list
// is always refreshed wholesale from the server, never patched locally.
type ChatSessionInfo struct {
	ID           string `json:"id"`
	Preview      string `json:"preview"`
	MessageCount int    `json:"message_count"`
	UpdatedAt    string `json:"updated_at"`
}

// SessionList is the chat sidebar payload: all sessions plus which one the
// server considers current.
type SessionList struct {
	Sessions  []ChatSessionInfo
	CurrentID string
}

// GameWord is one accepted move in the word chain.
type GameWord struct {
	Text   string
	IsUser bool
}

// Game results as stored by the server.
const (
	ResultWin  = "win"
	ResultLose = "lose"
)

// GameHistoryEntry is one finished game, read-only and server-owned.
type GameHistoryEntry struct {
	Result     string   `json:"result"`
	Score      int      `json:"score"`
	WordsCount int      `json:"words_count"`
	Difficulty int      `json:"difficulty"`
	Timestamp  string   `json:"timestamp"`
	Words      []string `json:"words"`
}

var difficultyNames = map[int]string{
	1: "아주 쉬움",
	2: "쉬움",
	3: "보통",
	4: "어려움",
	5: "전문가",
}

// DifficultyName returns the display name for a difficulty level.
func DifficultyName(level int) string {
	if name, ok := difficultyNames[level]; ok {
		return name
	}
	return "?"
}

// LastChar returns the final character of a word. The next accepted move
// must start with it. Multi-byte scripts are the common case here.
func LastChar(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}
