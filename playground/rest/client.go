// Package rest implements the playground Gateway over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aiplayground/playground-client-go/playground"
)

// Client provides REST API access to the playground server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ playground.Gateway = (*Client)(nil)

// NewClient creates a new REST API client.
// baseURL should be the server root, e.g. "http://localhost:8000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient allows setting a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// FetchChatSessions returns all stored chat sessions for the sidebar.
func (c *Client) FetchChatSessions(ctx context.Context, user string) (playground.SessionList, error) {
	var resp sessionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/sessions/"+url.PathEscape(user), &resp); err != nil {
		return playground.SessionList{}, err
	}
	return playground.SessionList{Sessions: resp.Sessions, CurrentID: resp.CurrentID}, nil
}

// CreateChatSession asks the server for a fresh current session.
func (c *Client) CreateChatSession(ctx context.Context, user string) error {
	var resp newSessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/new/"+url.PathEscape(user), &resp); err != nil {
		return err
	}
	if !resp.Success {
		return playground.NewError(playground.ErrorGateway, serverMessage("create chat session refused", resp.Message))
	}
	return nil
}

// SwitchChatSession makes sessionID current and returns its messages.
func (c *Client) SwitchChatSession(ctx context.Context, user, sessionID string) ([]playground.ChatMessage, error) {
	path := "/api/chat/switch/" + url.PathEscape(user) + "/" + url.PathEscape(sessionID)
	var resp switchResponse
	if err := c.do(ctx, http.MethodPost, path, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, playground.NewError(playground.ErrorGateway, serverMessage("switch chat session refused", resp.Message))
	}
	return resp.Messages, nil
}

// DeleteChatSession removes a stored session.
func (c *Client) DeleteChatSession(ctx context.Context, user, sessionID string) error {
	path := "/api/chat/session/" + url.PathEscape(user) + "/" + url.PathEscape(sessionID)
	var resp statusResponse
	if err := c.do(ctx, http.MethodDelete, path, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return playground.NewError(playground.ErrorGateway, serverMessage("delete chat session refused", resp.Message))
	}
	return nil
}

// FetchGameHistory returns past games, newest first.
func (c *Client) FetchGameHistory(ctx context.Context, user string) ([]playground.GameHistoryEntry, error) {
	var resp historyResponse
	if err := c.do(ctx, http.MethodGet, "/api/wordchain/history/"+url.PathEscape(user), &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// DeleteGameHistoryEntry removes one past game by list index.
func (c *Client) DeleteGameHistoryEntry(ctx context.Context, user string, index int) error {
	path := fmt.Sprintf("/api/wordchain/history/%s/%d", url.PathEscape(user), index)
	var resp statusResponse
	if err := c.do(ctx, http.MethodDelete, path, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return playground.NewError(playground.ErrorGateway, serverMessage("delete game history refused", resp.Message))
	}
	return nil
}

// RestartGame clears the server-side game state for the user.
func (c *Client) RestartGame(ctx context.Context, user string) error {
	var resp statusResponse
	if err := c.do(ctx, http.MethodPost, "/api/wordchain/restart/"+url.PathEscape(user), &resp); err != nil {
		return err
	}
	if !resp.Success {
		return playground.NewError(playground.ErrorGateway, serverMessage("restart game refused", resp.Message))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return playground.WrapError(playground.ErrorGateway, "create request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return playground.WrapError(playground.ErrorGateway, "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return playground.WrapError(playground.ErrorGateway, "read response", err)
	}

	if resp.StatusCode >= 400 {
		return playground.NewError(playground.ErrorGateway,
			fmt.Sprintf("http error: %s (status %d)", string(body), resp.StatusCode))
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return playground.WrapError(playground.ErrorSerialization, "unmarshal response", err)
		}
	}
	return nil
}

func serverMessage(fallback, msg string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
