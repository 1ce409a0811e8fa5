package playground

import "context"

// Gateway is the request/response surface of the playground server, distinct
// from channel traffic. Every operation is a single round trip; failures are
// returned as errors and never retried here; retry is a user-initiated
// repeat of the same action.
type Gateway interface {
	// FetchChatSessions returns the sidebar list plus the current session id.
	FetchChatSessions(ctx context.Context, user string) (SessionList, error)

	// CreateChatSession asks the server to open a fresh session and make it
	// current.
	CreateChatSession(ctx context.Context, user string) error

	// SwitchChatSession makes the given session current and returns its
	// stored messages.
	SwitchChatSession(ctx context.Context, user, sessionID string) ([]ChatMessage, error)

	// DeleteChatSession removes a stored session.
	DeleteChatSession(ctx context.Context, user, sessionID string) error

	// FetchGameHistory returns past games, newest first.
	FetchGameHistory(ctx context.Context, user string) ([]GameHistoryEntry, error)

	// DeleteGameHistoryEntry removes one past game by list index.
	DeleteGameHistoryEntry(ctx context.Context, user string, index int) error

	// RestartGame clears the server-side game state for the user.
	RestartGame(ctx context.Context, user string) error
}
