package rest

import "github.com/aiplayground/playground-client-go/playground"

// statusResponse is the generic success/failure body. Some operations report
// failure with a 200 status and success=false, so both are checked.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type newSessionResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type switchResponse struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message,omitempty"`
	Messages []playground.ChatMessage `json:"messages"`
}

type sessionsResponse struct {
	Sessions  []playground.ChatSessionInfo `json:"sessions"`
	CurrentID string                       `json:"current_id"`
}

type historyResponse struct {
	History []playground.GameHistoryEntry `json:"history"`
}
