// Package tui is the terminal presentation of the chat session. It renders
// session events from the ChatService and turns input lines into service
// calls; all blocking work runs inside tea.Cmds.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/interfaces"
	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/service"
)

// callTimeout bounds every call except Submit, whose reply may stream for long.
const callTimeout = 60 * time.Second

type eventMsg service.Event

type eventsClosedMsg struct{}

// resultMsg reports how a command ended.
type resultMsg struct {
	note string
	err  error
}

type listMsg struct {
	convs []model.ConversationSummary
	err   error
}

type Model struct {
	chat        interfaces.ChatService
	auth        interfaces.AuthService
	events      <-chan service.Event
	unsubscribe func()

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	view      service.View
	sidebar   []model.ConversationSummary
	showList  bool
	status    string
	statusErr bool
}

func New(chat interfaces.ChatService, auth interfaces.AuthService) Model {
	events, stop := chat.Subscribe()

	ti := textinput.New()
	ti.Placeholder = "Message, or /help"
	ti.CharLimit = 8000
	ti.Focus()

	return Model{
		chat:        chat,
		auth:        auth,
		events:      events,
		unsubscribe: stop,
		input:       ti,
		view:        chat.View(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

func waitForEvent(events <-chan service.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 3
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = msg.Width - 4
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEsc:
			if m.view.Busy || m.view.Streaming.IsStreaming {
				return m, cancelCmd(m.chat)
			}
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			if strings.HasPrefix(text, "/") {
				return m.handleCommand(text)
			}
			m.setStatus("", nil)
			return m, submitCmd(m.chat, text)
		}

	case eventMsg:
		m.view = msg.View
		if msg.Kind == service.EventConversation || msg.Kind == service.EventSwitching {
			m.showList = false
		}
		m.refresh()
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, nil

	case resultMsg:
		m.setStatus(msg.note, msg.err)
		return m, nil

	case listMsg:
		if msg.err != nil {
			m.setStatus("", msg.err)
			return m, nil
		}
		m.sidebar = msg.convs
		m.showList = true
		m.setStatus("", nil)
		m.refresh()
		return m, nil
	}

	var inputCmd, viewportCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.ready {
		m.viewport, viewportCmd = m.viewport.Update(msg)
	}
	return m, tea.Batch(inputCmd, viewportCmd)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	var list []model.ConversationSummary
	if m.showList {
		list = m.sidebar
	}
	m.viewport.SetContent(renderTranscript(m.view, list, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m *Model) setStatus(note string, err error) {
	m.statusErr = err != nil
	if err == nil {
		m.status = note
		return
	}
	m.status = describeError(err)
}

func describeError(err error) string {
	var httpErr *app_errors.HTTPError
	switch {
	case errors.Is(err, app_errors.ErrAuth):
		return "Not logged in. Use /login <email> <password>."
	case errors.Is(err, app_errors.ErrConflict):
		return "A reply is still in progress. Press Esc to stop it."
	case errors.As(err, &httpErr) && httpErr.Detail != "":
		return httpErr.Detail
	default:
		return err.Error()
	}
}

func submitCmd(chat interfaces.ChatService, text string) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{err: chat.Submit(context.Background(), text)}
	}
}

func cancelCmd(chat interfaces.ChatService) tea.Cmd {
	return func() tea.Msg {
		chat.CancelStream()
		return resultMsg{note: "Stopped."}
	}
}
