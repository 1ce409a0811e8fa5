package playground

import "encoding/json"

// Kind tags a classified server event.
type Kind int

const (
	// KindUnknown marks frames the client does not recognize. They are
	// ignored by every controller.
	KindUnknown Kind = iota

	// KindSessionInfo confirms which chat session the channel serves.
	KindSessionInfo

	// KindHistory is an authoritative replacement of the in-memory log.
	KindHistory

	// KindSessionUpdated signals that session metadata is stale and the
	// sidebar list should be re-fetched.
	KindSessionUpdated

	// KindMessage is one chat line, or one accepted word in game mode.
	KindMessage

	// KindSystem is an informational banner in chat; in game mode it means
	// the last move was rejected.
	KindSystem

	// KindScore is an authoritative score update.
	KindScore

	// KindGameOver is the game's terminal event.
	KindGameOver
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindSessionInfo:
		return eventSessionInfo
	case KindHistory:
		return eventHistory
	case KindSessionUpdated:
		return eventSessionUpdated
	case KindMessage:
		return eventMessage
	case KindSystem:
		return eventSystem
	case KindScore:
		return eventScore
	case KindGameOver:
		return eventGameOver
	default:
		return "unknown"
	}
}

// Event is a classified server frame. Only the fields implied by Kind carry
// meaning; the rest are zero.
type Event struct {
	Kind       Kind
	SessionID  string
	Username   string
	Message    string
	Timestamp  string
	Messages   []ChatMessage
	Score      int
	IsGameOver bool
	Difficulty int
}

// Classify tags one raw frame. It never fails and never mutates anything:
// malformed frames and unrecognized types come back as KindUnknown, and
// folding the event into state is the mode controller's job.
func Classify(data json.RawMessage) Event {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{Kind: KindUnknown}
	}
	ev := Event{
		SessionID:  env.SessionID,
		Username:   env.Username,
		Message:    env.Message,
		Timestamp:  env.Timestamp,
		Messages:   env.Messages,
		Score:      env.Score,
		IsGameOver: env.IsGameOver,
		Difficulty: env.Difficulty,
	}
	switch env.Type {
	case eventSessionInfo:
		ev.Kind = KindSessionInfo
	case eventHistory:
		ev.Kind = KindHistory
	case eventSessionUpdated:
		ev.Kind = KindSessionUpdated
	case eventMessage:
		ev.Kind = KindMessage
	case eventSystem:
		ev.Kind = KindSystem
	case eventScore:
		ev.Kind = KindScore
	case eventGameOver:
		ev.Kind = KindGameOver
	default:
		ev.Kind = KindUnknown
	}
	return ev
}
