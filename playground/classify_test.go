package playground

import (
	"encoding/json"
	"testing"
)

func TestClassifyMessage(t *testing.T) {
	ev := Classify(json.RawMessage(`{"type":"message","username":"AI","message":"사과","timestamp":"2024-03-01T10:00:00"}`))
	if ev.Kind != KindMessage {
		t.Fatalf("kind = %v, want %v", ev.Kind, KindMessage)
	}
	if ev.Username != "AI" || ev.Message != "사과" || ev.Timestamp != "2024-03-01T10:00:00" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestClassifySessionInfo(t *testing.T) {
	ev := Classify(json.RawMessage(`{"type":"session_info","session_id":"abc-123"}`))
	if ev.Kind != KindSessionInfo || ev.SessionID != "abc-123" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestClassifyHistory(t *testing.T) {
	raw := `{"type":"history","messages":[{"type":"message","username":"alice","message":"hi"},{"type":"system","message":"welcome"}],"score":4,"isGameOver":true,"difficulty":2}`
	ev := Classify(json.RawMessage(raw))
	if ev.Kind != KindHistory {
		t.Fatalf("kind = %v, want %v", ev.Kind, KindHistory)
	}
	if len(ev.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(ev.Messages))
	}
	if ev.Messages[0].Username != "alice" || ev.Messages[1].Type != "system" {
		t.Fatalf("unexpected messages: %+v", ev.Messages)
	}
	if ev.Score != 4 || !ev.IsGameOver || ev.Difficulty != 2 {
		t.Fatalf("unexpected game fields: %+v", ev)
	}
}

func TestClassifyKinds(t *testing.T) {
	cases := []struct {
		raw  string
		want Kind
	}{
		{`{"type":"session_updated"}`, KindSessionUpdated},
		{`{"type":"system","message":"이미 사용된 단어입니다"}`, KindSystem},
		{`{"type":"score","score":7}`, KindScore},
		{`{"type":"game_over","message":"패배!"}`, KindGameOver},
	}
	for _, tc := range cases {
		if got := Classify(json.RawMessage(tc.raw)).Kind; got != tc.want {
			t.Errorf("Classify(%s).Kind = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestClassifyUnrecognizedType(t *testing.T) {
	ev := Classify(json.RawMessage(`{"type":"typing_indicator","message":"..."}`))
	if ev.Kind != KindUnknown {
		t.Fatalf("kind = %v, want %v", ev.Kind, KindUnknown)
	}
}

func TestClassifyMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json", `[1,2,3]`, `"text"`} {
		if got := Classify(json.RawMessage(raw)).Kind; got != KindUnknown {
			t.Errorf("Classify(%q).Kind = %v, want %v", raw, got, KindUnknown)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindGameOver.String() != "game_over" {
		t.Fatalf("KindGameOver.String() = %q", KindGameOver.String())
	}
	if Kind(99).String() != "unknown" {
		t.Fatalf("Kind(99).String() = %q", Kind(99).String())
	}
}
