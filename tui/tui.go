// Package tui is the terminal UI for the playground client: one view per
// screen of the navigation state machine. All state lives in the
// controllers; this package only renders snapshots and forwards key presses.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aiplayground/playground-client-go/playground"
)

// Model is the bubbletea model for the whole client.
type Model struct {
	nav *playground.Nav

	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	// status is a one-shot alert from a failed destructive action; cleared
	// on the next key press.
	status string

	// sessionCursor selects a chat session in the sidebar.
	sessionCursor int
	// historySel selects a past game in the game sidebar, -1 for none.
	historySel int
}

// New creates the model over a navigation controller.
func New(nav *playground.Nav) *Model {
	ti := textinput.New()
	ti.Placeholder = "닉네임을 입력하세요"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return &Model{
		nav:        nav,
		input:      ti,
		historySel: -1,
	}
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// stateChangedMsg is sent whenever a controller folds new state.
type stateChangedMsg struct{}

// actionErrMsg carries a failed user action's error.
type actionErrMsg struct{ err error }

// action runs a controller call off the UI goroutine.
func action(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}

// Update handles TUI updates.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		if msg.Type == tea.KeyCtrlC {
			m.nav.Logout()
			return m, tea.Quit
		}
		if c := m.handleKey(msg); c != nil {
			return m, c
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.refreshViewport()

	case stateChangedMsg:
		m.refreshViewport()
		return m, nil

	case actionErrMsg:
		m.status = msg.err.Error()
		return m, nil
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey dispatches a key press for the current screen. A non-nil command
// consumes the key.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.nav.Screen() {
	case playground.ScreenLogin:
		return m.handleLoginKey(msg)
	case playground.ScreenModeSelect:
		return m.handleModeKey(msg)
	case playground.ScreenDifficulty:
		return m.handleDifficultyKey(msg)
	case playground.ScreenChat:
		return m.handleChatKey(msg)
	case playground.ScreenGame:
		return m.handleGameKey(msg)
	}
	return nil
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return nil
		}
		if err := m.nav.Login(name); err != nil {
			m.status = err.Error()
			return nil
		}
		m.input.SetValue("")
		m.input.Placeholder = ""
		return func() tea.Msg { return stateChangedMsg{} }
	}
	return nil
}

func (m *Model) handleModeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "1", "c":
		m.resetChatView()
		return action(m.nav.SelectChat)
	case "2", "g":
		m.nav.SelectGame()
		return func() tea.Msg { return stateChangedMsg{} }
	case "ctrl+l":
		m.nav.Logout()
		return func() tea.Msg { return stateChangedMsg{} }
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (m *Model) handleDifficultyKey(msg tea.KeyMsg) tea.Cmd {
	switch s := msg.String(); s {
	case "1", "2", "3", "4", "5":
		level := int(s[0] - '0')
		m.resetGameView()
		return action(func(ctx context.Context) error {
			return m.nav.StartGame(ctx, level)
		})
	case "esc":
		m.nav.Back()
		return func() tea.Msg { return stateChangedMsg{} }
	case "ctrl+l":
		m.nav.Logout()
		return func() tea.Msg { return stateChangedMsg{} }
	}
	return nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	chat := m.nav.Chat()
	if chat == nil {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.nav.Back()
		return func() tea.Msg { return stateChangedMsg{} }
	case "ctrl+l":
		m.nav.Logout()
		return func() tea.Msg { return stateChangedMsg{} }
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return nil
		}
		m.input.SetValue("")
		return action(func(ctx context.Context) error {
			return chat.SendMessage(ctx, text)
		})
	case "ctrl+n":
		return action(chat.NewChat)
	case "tab":
		if n := len(chat.Snapshot().Sessions); n > 0 {
			m.sessionCursor = (m.sessionCursor + 1) % n
		}
		return func() tea.Msg { return stateChangedMsg{} }
	case "ctrl+s":
		snap := chat.Snapshot()
		if m.sessionCursor < len(snap.Sessions) {
			id := snap.Sessions[m.sessionCursor].ID
			return action(func(ctx context.Context) error {
				return chat.Switch(ctx, id)
			})
		}
	case "ctrl+d":
		snap := chat.Snapshot()
		if m.sessionCursor < len(snap.Sessions) {
			id := snap.Sessions[m.sessionCursor].ID
			return action(func(ctx context.Context) error {
				return chat.Delete(ctx, id)
			})
		}
	}
	return nil
}

func (m *Model) handleGameKey(msg tea.KeyMsg) tea.Cmd {
	game := m.nav.Game()
	if game == nil {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.nav.Back()
		return func() tea.Msg { return stateChangedMsg{} }
	case "ctrl+l":
		m.nav.Logout()
		return func() tea.Msg { return stateChangedMsg{} }
	case "enter":
		word := strings.TrimSpace(m.input.Value())
		if word == "" {
			return nil
		}
		if game.Snapshot().IsOver {
			// local terminal-state guard: nothing is sent
			return nil
		}
		m.input.SetValue("")
		return action(func(ctx context.Context) error {
			return game.SendWord(ctx, word)
		})
	case "ctrl+r":
		return action(game.Restart)
	case "tab":
		n := len(game.Snapshot().History)
		if n > 0 {
			// cycles ... -> n-1 -> none -> 0 -> ...
			m.historySel++
			if m.historySel >= n {
				m.historySel = -1
			}
		}
		return func() tea.Msg { return stateChangedMsg{} }
	case "ctrl+d":
		sel := m.historySel
		if sel < 0 || sel >= len(game.Snapshot().History) {
			return nil
		}
		m.adjustHistorySel(sel)
		return action(func(ctx context.Context) error {
			return game.DeleteHistoryEntry(ctx, sel)
		})
	}
	return nil
}

// adjustHistorySel keeps the sidebar selection stable across a delete at the
// given index: deleting the selected entry deselects, deleting an earlier
// entry shifts the selection down by one.
func (m *Model) adjustHistorySel(deleted int) {
	switch {
	case m.historySel == deleted:
		m.historySel = -1
	case m.historySel > deleted:
		m.historySel--
	}
}

func (m *Model) resetChatView() {
	m.sessionCursor = 0
	m.input.SetValue("")
	m.input.Placeholder = "메시지를 입력하세요..."
}

func (m *Model) resetGameView() {
	m.historySel = -1
	m.input.SetValue("")
	m.input.Placeholder = "단어 입력..."
}

// refreshViewport re-renders the chat log into the viewport, keeping the
// scroll pinned to the bottom unless the user scrolled away.
func (m *Model) refreshViewport() {
	if !m.ready || m.nav.Screen() != playground.ScreenChat {
		return
	}
	chat := m.nav.Chat()
	if chat == nil {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages(chat.Snapshot()))
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// Run starts the program and wires controller change notifications into it.
func Run(nav *playground.Nav) error {
	m := New(nav)
	p := tea.NewProgram(m, tea.WithAltScreen())
	nav.SetOnChange(func() { p.Send(stateChangedMsg{}) })
	_, err := p.Run()
	return err
}
