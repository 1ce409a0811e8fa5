package playground

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func TestChannelURL(t *testing.T) {
	cases := []struct {
		mode       Mode
		difficulty int
		want       string
	}{
		{ModeChat, 0, "ws://host/ws/alice"},
		{ModeGame, 3, "ws://host/ws/wordchain/alice/3"},
	}
	for _, tc := range cases {
		if got := channelURL("ws://host/", "alice", tc.mode, tc.difficulty); got != tc.want {
			t.Errorf("channelURL(%v) = %q, want %q", tc.mode, got, tc.want)
		}
	}
}

func TestChannelDialSendReceive(t *testing.T) {
	events := make(chan Event, 8)
	frames := make(chan string, 1)
	paths := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close(websocket.StatusNormalClosure, "")
		ctx := r.Context()

		_ = wsjson.Write(ctx, c, map[string]any{"type": "message", "username": "AI", "message": "사과"})

		_, data, err := c.Read(ctx)
		if err != nil {
			return
		}
		frames <- string(data)

		_ = wsjson.Write(ctx, c, map[string]any{"type": "score", "score": 1})
		<-ctx.Done()
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.WSBaseURL = "ws" + strings.TrimPrefix(srv.URL, "http")

	ctx := context.Background()
	ch, err := Dial(ctx, cfg, "alice", ModeGame, 3, func(ev Event) { events <- ev }, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ch.Close()

	if got := waitFor(t, paths); got != "/ws/wordchain/alice/3" {
		t.Fatalf("path = %q, want /ws/wordchain/alice/3", got)
	}

	ev := waitForEvent(t, events)
	if ev.Kind != KindMessage || ev.Message != "사과" || ev.Username != "AI" {
		t.Fatalf("unexpected first event: %+v", ev)
	}

	if err := ch.Send(ctx, "과일"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := waitFor(t, frames); got != "과일" {
		t.Fatalf("server got %q, want 과일 as a bare text frame", got)
	}

	ev = waitForEvent(t, events)
	if ev.Kind != KindScore || ev.Score != 1 {
		t.Fatalf("unexpected second event: %+v", ev)
	}
}

func TestChannelCloseIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close(websocket.StatusNormalClosure, "")
		<-r.Context().Done()
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.WSBaseURL = "ws" + strings.TrimPrefix(srv.URL, "http")

	ch, err := Dial(context.Background(), cfg, "alice", ModeChat, 0, func(Event) {}, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	if err := ch.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := ch.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	err = ch.Send(context.Background(), "hello")
	var pe *PlaygroundError
	if !errors.As(err, &pe) || pe.Code != ErrorNotConnected {
		t.Fatalf("Send after close = %v, want %v", err, ErrorNotConnected)
	}
}

func TestDialValidation(t *testing.T) {
	cfg := testConfig()
	if _, err := Dial(context.Background(), cfg, "", ModeChat, 0, func(Event) {}, nil); err == nil {
		t.Fatal("expected error for empty user")
	}
	if _, err := Dial(context.Background(), cfg, "alice", ModeChat, 0, nil, nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func waitFor(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server")
		return ""
	}
}

func waitForEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}
