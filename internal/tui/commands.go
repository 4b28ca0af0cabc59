package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabriel-vasile/mimetype"

	"flow-chat/frontend/internal/interfaces"
	"flow-chat/frontend/internal/upload"
)

// commandHandler runs one slash command.
type commandHandler func(m Model, args []string) (tea.Model, tea.Cmd)

var commandHandlers = map[string]commandHandler{
	"help":   handleHelpCommand,
	"?":      handleHelpCommand,
	"login":  handleLoginCommand,
	"logout": handleLogoutCommand,
	"new":    handleNewCommand,
	"list":   handleListCommand,
	"open":   handleOpenCommand,
	"delete": handleDeleteCommand,
	"cancel": handleCancelCommand,
	"upload": handleUploadCommand,
	"quit":   handleQuitCommand,
	"q":      handleQuitCommand,
}

const helpText = "/login <email> <password>  /logout  /new  /list  /open <id>  /delete <id>  /cancel  /upload <path>  /quit"

func (m Model) handleCommand(line string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(line)
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	handler, ok := commandHandlers[name]
	if !ok {
		m.setStatus("", fmt.Errorf("unknown command /%s, try /help", name))
		return m, nil
	}
	return handler(m, parts[1:])
}

func handleHelpCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.setStatus(helpText, nil)
	return m, nil
}

func handleQuitCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	return m.quit()
}

func handleLoginCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) != 2 {
		m.setStatus("", fmt.Errorf("usage: /login <email> <password>"))
		return m, nil
	}
	auth, email, password := m.auth, args[0], args[1]
	m.setStatus("Logging in...", nil)
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		if _, err := auth.Login(ctx, email, password); err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{note: "Logged in as " + email + "."}
	}
}

func handleLogoutCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	auth, chat := m.auth, m.chat
	return m, func() tea.Msg {
		auth.Logout(context.Background())
		chat.NewChat()
		return resultMsg{note: "Logged out."}
	}
}

func handleNewCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	chat := m.chat
	return m, func() tea.Msg {
		chat.NewChat()
		return resultMsg{note: "New chat."}
	}
}

func handleListCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	chat := m.chat
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		convs, err := chat.ListConversations(ctx)
		return listMsg{convs: convs, err: err}
	}
}

func handleOpenCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	id, err := idArg(args)
	if err != nil {
		m.setStatus("", err)
		return m, nil
	}
	chat := m.chat
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		if _, err := chat.SelectConversation(ctx, id); err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{note: fmt.Sprintf("Opened conversation %d.", id)}
	}
}

func handleDeleteCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	id, err := idArg(args)
	if err != nil {
		m.setStatus("", err)
		return m, nil
	}
	chat := m.chat
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		if err := chat.DeleteConversation(ctx, id); err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{note: fmt.Sprintf("Deleted conversation %d.", id)}
	}
}

func handleCancelCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	return m, cancelCmd(m.chat)
}

func handleUploadCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) != 1 {
		m.setStatus("", fmt.Errorf("usage: /upload <path>"))
		return m, nil
	}
	m.setStatus("Uploading "+filepath.Base(args[0])+"...", nil)
	return m, uploadCmd(m.chat, args[0])
}

func uploadCmd(chat interfaces.ChatService, path string) tea.Cmd {
	return func() tea.Msg {
		detected, err := mimetype.DetectFile(path)
		if err != nil {
			return resultMsg{err: fmt.Errorf("could not read %s: %w", path, err)}
		}
		f, err := os.Open(path)
		if err != nil {
			return resultMsg{err: fmt.Errorf("could not open %s: %w", path, err)}
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return resultMsg{err: fmt.Errorf("could not stat %s: %w", path, err)}
		}

		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		item, err := chat.UploadKnowledge(ctx, upload.File{
			Name:        filepath.Base(path),
			Size:        info.Size(),
			ContentType: detected.String(),
			Content:     f,
		})
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{note: "Uploaded " + item.FileName + "."}
	}
}

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("a conversation id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a conversation id", args[0])
	}
	return id, nil
}
