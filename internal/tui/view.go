package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/service"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle     = lipgloss.NewStyle().Faint(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	status := faintStyle.Render(stateLine(m.view))
	if m.status != "" {
		style := faintStyle
		if m.statusErr {
			style = errorStyle
		}
		status = style.Render(m.status)
	}
	return m.viewport.View() + "\n" + status + "\n" + m.input.View()
}

func stateLine(v service.View) string {
	title := "new chat"
	if v.Conversation.Confirmed() {
		title = v.Conversation.Summary().DisplayTitle()
	}
	line := fmt.Sprintf("[%s] %s", v.State, title)
	if v.Conversation != nil && len(v.Conversation.Knowledge) > 0 {
		line += fmt.Sprintf(" | %d document(s)", len(v.Conversation.Knowledge))
	}
	if v.Busy || v.Streaming.IsStreaming {
		line += " | Esc to stop"
	}
	return line
}

// renderTranscript renders the conversation followed by the partial reply.
// A non-empty list is shown above the transcript.
func renderTranscript(v service.View, list []model.ConversationSummary, width int) string {
	var b strings.Builder
	body := lipgloss.NewStyle()
	if width > 2 {
		body = body.Width(width - 2)
	}

	if len(list) > 0 {
		b.WriteString(headerStyle.Render("Conversations"))
		b.WriteString("\n")
		for _, c := range list {
			line := fmt.Sprintf("%6d  %s", c.ID, c.DisplayTitle())
			if !c.CachedAt.IsZero() {
				line += faintStyle.Render("  (offline)")
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if v.Conversation != nil {
		for _, msg := range v.Conversation.Messages {
			writeMessage(&b, body, msg)
		}
	}
	if p := v.Streaming.PartialMessage; p != nil {
		writeMessage(&b, body, *p)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeMessage(b *strings.Builder, body lipgloss.Style, msg model.Message) {
	label := assistantStyle.Render("Assistant")
	if msg.Role == model.RoleUser {
		label = userStyle.Render("You")
	}
	switch msg.Status {
	case model.StatusPending:
		label += faintStyle.Render(" ...")
	case model.StatusFailed:
		label += errorStyle.Render(" (not sent)")
	}
	content := body.Render(msg.Content)
	if msg.Status == model.StatusError {
		content = errorStyle.Render(content)
	}
	b.WriteString(label + "\n" + content + "\n\n")
}
