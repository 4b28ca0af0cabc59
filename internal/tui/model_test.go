package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/interfaces/mocks"
	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/service"
	"flow-chat/frontend/internal/upload"
)

func setupModel(t *testing.T) (Model, *mocks.MockChatService, *mocks.MockAuthService, chan service.Event) {
	chat := mocks.NewMockChatService(t)
	auth := mocks.NewMockAuthService(t)
	events := make(chan service.Event, 8)
	chat.On("Subscribe").Return((<-chan service.Event)(events), func() {}).Once()
	chat.On("View").Return(service.View{State: service.StateIdle}).Once()

	m := New(chat, auth)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), chat, auth, events
}

func enter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestModel_SubmitRunsInCommand(t *testing.T) {
	// ARRANGE
	m, chat, _, _ := setupModel(t)
	chat.On("Submit", mock.Anything, "Hallo").Return(nil).Once()

	// ACT
	m, cmd := enter(t, m, "Hallo")
	require.NotNil(t, cmd)
	msg := cmd()

	// ASSERT
	assert.Equal(t, resultMsg{}, msg)
	assert.Equal(t, "", m.input.Value())
}

func TestModel_SubmitErrorIsShown(t *testing.T) {
	m, chat, _, _ := setupModel(t)
	chat.On("Submit", mock.Anything, "Hallo").Return(&app_errors.HTTPError{Status: 401}).Once()

	m, cmd := enter(t, m, "Hallo")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "/login")
}

func TestModel_EventsRenderLive(t *testing.T) {
	m, _, _, _ := setupModel(t)
	view := service.View{
		State: service.StateStreaming,
		Conversation: &model.Conversation{ID: 1, UUID: "u", Messages: []model.Message{
			{ID: "a", Role: model.RoleUser, Content: "Hallo", Status: model.StatusSent},
		}},
		Streaming: model.StreamingState{IsStreaming: true, PartialMessage: &model.Message{ID: "b", Role: model.RoleAssistant, Content: "Hel", Status: model.StatusPending}},
	}

	updated, cmd := m.Update(eventMsg(service.Event{Kind: service.EventPartial, View: view}))
	m = updated.(Model)

	assert.NotNil(t, cmd, "keeps listening for events")
	out := m.View()
	assert.Contains(t, out, "Hallo")
	assert.Contains(t, out, "Hel")
	assert.Contains(t, out, "Esc to stop")
}

func TestModel_EscStopsTurnBeforeReply(t *testing.T) {
	m, chat, _, _ := setupModel(t)
	m.view.Busy = true
	chat.On("CancelStream").Once()

	assert.Contains(t, m.View(), "Esc to stop")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, resultMsg{note: "Stopped."}, cmd())
}

func TestModel_EscIgnoredWhenIdle(t *testing.T) {
	m, _, _, _ := setupModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
}

func TestModel_EscCancelsStream(t *testing.T) {
	m, chat, _, _ := setupModel(t)
	m.view.Streaming.IsStreaming = true
	chat.On("CancelStream").Once()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, resultMsg{note: "Stopped."}, cmd())
}

func TestModel_Commands(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		m, chat, _, _ := setupModel(t)
		chat.On("SelectConversation", mock.Anything, int64(5)).Return(service.View{}, nil).Once()

		_, cmd := enter(t, m, "/open 5")
		require.NotNil(t, cmd)

		assert.Equal(t, resultMsg{note: "Opened conversation 5."}, cmd())
	})

	t.Run("open needs a numeric id", func(t *testing.T) {
		m, _, _, _ := setupModel(t)

		m, cmd := enter(t, m, "/open abc")

		assert.Nil(t, cmd)
		assert.True(t, m.statusErr)
	})

	t.Run("login", func(t *testing.T) {
		m, _, auth, _ := setupModel(t)
		auth.On("Login", mock.Anything, "ada@example.com", "pw").Return("tok", nil).Once()

		_, cmd := enter(t, m, "/login ada@example.com pw")

		assert.Equal(t, resultMsg{note: "Logged in as ada@example.com."}, cmd())
	})

	t.Run("logout starts a new chat", func(t *testing.T) {
		m, chat, auth, _ := setupModel(t)
		auth.On("Logout", mock.Anything).Once()
		chat.On("NewChat").Once()

		_, cmd := enter(t, m, "/logout")

		assert.Equal(t, resultMsg{note: "Logged out."}, cmd())
	})

	t.Run("delete", func(t *testing.T) {
		m, chat, _, _ := setupModel(t)
		chat.On("DeleteConversation", mock.Anything, int64(3)).Return(nil).Once()

		_, cmd := enter(t, m, "/delete 3")

		assert.Equal(t, resultMsg{note: "Deleted conversation 3."}, cmd())
	})

	t.Run("list shows the sidebar", func(t *testing.T) {
		m, chat, _, _ := setupModel(t)
		chat.On("ListConversations", mock.Anything).Return([]model.ConversationSummary{{ID: 7, UUID: "x"}}, nil).Once()

		_, cmd := enter(t, m, "/list")
		updated, _ := m.Update(cmd())
		m = updated.(Model)

		assert.Contains(t, m.View(), "Konversation 7")
	})

	t.Run("upload", func(t *testing.T) {
		m, chat, _, _ := setupModel(t)
		path := filepath.Join(t.TempDir(), "doc.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n"), 0o600))
		chat.On("UploadKnowledge", mock.Anything, mock.MatchedBy(func(f upload.File) bool {
			return f.Name == "doc.pdf" && f.ContentType == "application/pdf"
		})).Return(&model.KnowledgeItem{ID: 1, FileName: "doc.pdf"}, nil).Once()

		_, cmd := enter(t, m, "/upload "+path)

		assert.Equal(t, resultMsg{note: "Uploaded doc.pdf."}, cmd())
	})

	t.Run("unknown", func(t *testing.T) {
		m, _, _, _ := setupModel(t)

		m, cmd := enter(t, m, "/frobnicate")

		assert.Nil(t, cmd)
		assert.Contains(t, m.status, "unknown command")
	})
}

func TestRenderTranscript(t *testing.T) {
	v := service.View{Conversation: &model.Conversation{ID: 1, Messages: []model.Message{
		{ID: "1", Role: model.RoleUser, Content: "Frage", Status: model.StatusFailed},
		{ID: "2", Role: model.RoleAssistant, Content: service.ErrorReplyText, Status: model.StatusError},
	}}}

	out := renderTranscript(v, nil, 80)

	assert.Contains(t, out, "Frage")
	assert.Contains(t, out, "(not sent)")
	assert.Contains(t, out, "Sorry, an error occurred")
	assert.False(t, strings.HasSuffix(out, "\n"))
}
