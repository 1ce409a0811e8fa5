package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/aiplayground/playground-client-go/playground"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	aiStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("75"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)
)

// View renders the current screen.
func (m *Model) View() string {
	var body string
	switch m.nav.Screen() {
	case playground.ScreenLogin:
		body = m.viewLogin()
	case playground.ScreenModeSelect:
		body = m.viewModeSelect()
	case playground.ScreenDifficulty:
		body = m.viewDifficulty()
	case playground.ScreenChat:
		body = m.viewChat()
	case playground.ScreenGame:
		body = m.viewGame()
	}
	if m.status != "" {
		body += "\n" + errStyle.Render("⚠ "+m.status)
	}
	return body
}

func (m *Model) viewLogin() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		titleStyle.Render("AI 플레이그라운드"),
		inputStyle.Render("> "+m.input.View()),
		helpStyle.Render("Enter: 시작하기 • Esc: quit"),
	)
}

func (m *Model) viewModeSelect() string {
	name := m.nav.Identity().Name
	return fmt.Sprintf(
		"%s\n\n%s\n\n  [1] 💬 AI 채팅      AI와 자유롭게 대화하기\n  [2] 🎮 끝말잇기    AI와 끝말잇기 대결!\n\n%s",
		titleStyle.Render("무엇을 할까요?"),
		fmt.Sprintf("%s님, 환영합니다!", name),
		helpStyle.Render("1/2: select • Ctrl+L: 로그아웃 • q: quit"),
	)
}

func (m *Model) viewDifficulty() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("난이도 선택"))
	b.WriteString("\n\nAI의 실력을 선택하세요!\n\n")
	for level := playground.MinDifficulty; level <= playground.MaxDifficulty; level++ {
		fmt.Fprintf(&b, "  [%d] Lv.%d %s\n", level, level, playground.DifficultyName(level))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-5: start • Esc: back • Ctrl+L: 로그아웃"))
	return b.String()
}

func (m *Model) viewChat() string {
	chat := m.nav.Chat()
	if chat == nil {
		return ""
	}
	snap := chat.Snapshot()
	name := m.nav.Identity().Name

	title := titleStyle.Render(fmt.Sprintf("AI 채팅 — %s [%s]", name, snap.State))

	var view string
	if m.ready {
		view = m.viewport.View()
	}

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		title,
		m.renderSessionBar(snap),
		view,
		inputStyle.Render("> "+m.input.View()),
		helpStyle.Render("Enter: 전송 • Ctrl+N: 새 대화 • Tab: select session • Ctrl+S: switch • Ctrl+D: delete • Esc: back"),
	)
}

func (m *Model) renderSessionBar(snap playground.ChatSnapshot) string {
	if len(snap.Sessions) == 0 {
		return systemStyle.Render("아직 기록이 없어요!")
	}
	lines := lo.Map(snap.Sessions, func(s playground.ChatSessionInfo, i int) string {
		marker := "  "
		if i == m.sessionCursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s (%d개 메시지)", marker, truncate(s.Preview, 24), s.MessageCount)
		if s.ID == snap.CurrentID {
			return currentStyle.Render(line + " [현재 대화]")
		}
		return line
	})
	return strings.Join(lines, "\n")
}

func (m *Model) renderMessages(snap playground.ChatSnapshot) string {
	name := m.nav.Identity().Name
	lines := lo.Map(snap.Messages, func(msg playground.ChatMessage, _ int) string {
		if msg.Type == "system" {
			return systemStyle.Render("· " + msg.Message)
		}
		if msg.Username == name {
			return userStyle.Render(msg.Username+": ") + msg.Message
		}
		return aiStyle.Render(msg.Username+": ") + msg.Message
	})
	return strings.Join(lines, "\n")
}

func (m *Model) viewGame() string {
	game := m.nav.Game()
	if game == nil {
		return ""
	}
	snap := game.Snapshot()
	name := m.nav.Identity().Name

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("끝말잇기 — %s [%s]", name, snap.State)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Lv.%d %s  점수: %d\n\n", snap.Difficulty, playground.DifficultyName(snap.Difficulty), snap.Score)

	b.WriteString(renderWords(snap.Words))
	b.WriteString("\n\n")

	if cur := snap.CurrentWord(); cur != "" {
		fmt.Fprintf(&b, "%s\n%s(으)로 시작하는 단어를 입력하세요!\n",
			currentStyle.Render(cur), playground.LastChar(cur))
	} else {
		b.WriteString("🎯 아무 단어나 입력해서 시작!\n")
	}

	if snap.IsOver {
		b.WriteString("\n" + bannerStyle.Render(snap.OverMessage) + "\n")
	}
	if snap.TransientError != "" {
		b.WriteString("\n" + errStyle.Render("⚠️ "+snap.TransientError) + "\n")
	}

	b.WriteString("\n" + m.renderHistory(snap.History))

	placeholder := "단어 입력..."
	if snap.IsOver {
		placeholder = "게임 종료!"
	}
	m.input.Placeholder = placeholder

	b.WriteString("\n" + inputStyle.Render("> "+m.input.View()))
	b.WriteString("\n" + helpStyle.Render("Enter: 입력 • Ctrl+R: 다시 시작 • Tab: select record • Ctrl+D: delete record • Esc: back"))
	return b.String()
}

func renderWords(words []playground.GameWord) string {
	if len(words) == 0 {
		return systemStyle.Render("단어가 여기에 표시됩니다")
	}
	parts := lo.Map(words, func(w playground.GameWord, _ int) string {
		if w.IsUser {
			return userStyle.Render(w.Text)
		}
		return aiStyle.Render(w.Text)
	})
	return strings.Join(parts, " → ")
}

func (m *Model) renderHistory(history []playground.GameHistoryEntry) string {
	if len(history) == 0 {
		return systemStyle.Render("아직 기록이 없어요!")
	}
	var b strings.Builder
	b.WriteString("게임 기록\n")
	for i, game := range history {
		marker := "  "
		if i == m.historySel {
			marker = "> "
		}
		result := "💔 패배"
		if game.Result == playground.ResultWin {
			result = "🏆 승리"
		}
		fmt.Fprintf(&b, "%s%s  %d점  %d단어  Lv.%d\n",
			marker, result, game.Score, game.WordsCount, game.Difficulty)
		if i == m.historySel && len(game.Words) > 0 {
			fmt.Fprintf(&b, "    %s\n", strings.Join(game.Words, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
