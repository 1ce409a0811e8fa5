package playground

import (
	"context"
	"sync"
	"time"
)

// fakeTransport records sends and close calls.
type fakeTransport struct {
	mu     sync.Mutex
	sent   []string
	closed bool
}

func (f *fakeTransport) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTransport) sentWords() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeTransport) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type dialRecord struct {
	mode       Mode
	difficulty int
	transport  *fakeTransport
	handler    Handler
}

// fakeDialer hands out fakeTransports and keeps every dial on record so
// tests can check the at-most-one-open-channel invariant.
type fakeDialer struct {
	mu    sync.Mutex
	dials []dialRecord
	err   error
}

func (d *fakeDialer) dial(_ context.Context, mode Mode, difficulty int, h Handler) (Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	ft := &fakeTransport{}
	d.dials = append(d.dials, dialRecord{mode: mode, difficulty: difficulty, transport: ft, handler: h})
	return ft, nil
}

func (d *fakeDialer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dials)
}

func (d *fakeDialer) last() dialRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials[len(d.dials)-1]
}

// openCount counts transports that were dialed but never closed.
func (d *fakeDialer) openCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	open := 0
	for _, rec := range d.dials {
		if !rec.transport.isClosed() {
			open++
		}
	}
	return open
}

// fakeGateway serves canned payloads and counts calls.
type fakeGateway struct {
	mu sync.Mutex

	sessions       SessionList
	switchMessages []ChatMessage
	history        []GameHistoryEntry

	failCreate  error
	failSwitch  error
	failDelete  error
	failRestart error

	fetchSessionCalls  int
	createCalls        int
	switchCalls        int
	deleteSessionCalls int
	fetchHistoryCalls  int
	deleteHistoryCalls int
	restartCalls       int
}

func (g *fakeGateway) FetchChatSessions(context.Context, string) (SessionList, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchSessionCalls++
	return g.sessions, nil
}

func (g *fakeGateway) CreateChatSession(context.Context, string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	return g.failCreate
}

func (g *fakeGateway) SwitchChatSession(context.Context, string, string) ([]ChatMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.switchCalls++
	if g.failSwitch != nil {
		return nil, g.failSwitch
	}
	return g.switchMessages, nil
}

func (g *fakeGateway) DeleteChatSession(context.Context, string, string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteSessionCalls++
	return g.failDelete
}

func (g *fakeGateway) FetchGameHistory(context.Context, string) ([]GameHistoryEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchHistoryCalls++
	return g.history, nil
}

func (g *fakeGateway) DeleteGameHistoryEntry(context.Context, string, int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteHistoryCalls++
	return nil
}

func (g *fakeGateway) RestartGame(context.Context, string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.restartCalls++
	return g.failRestart
}

func (g *fakeGateway) calls(field *int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return *field
}

// testConfig keeps the timing-sensitive knobs short for tests.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SettleDelay = 0
	cfg.TransientErrorTTL = 25 * time.Millisecond
	return cfg
}

func testCtx() context.Context {
	return context.Background()
}
