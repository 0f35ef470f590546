package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	chatWidth  = 80
	chatHeight = 16
)

// chatModel is the live chat: the polled log in a scrollable viewport and a
// compose line. Messages appear only after the server acknowledged them.
type chatModel struct {
	ctx  context.Context
	chat service.ClientChatService
	me   models.User

	state    service.ChatState
	viewport viewport.Model
	input    textinput.Model
	sending  bool
	errMsg   string

	feed  *feed[service.ChatState]
	unsub func()
}

func newChatModel(ctx context.Context, chat service.ClientChatService, me models.User) *chatModel {
	input := textinput.New()
	input.Placeholder = "Type a message"
	input.CharLimit = 1000
	input.Width = chatWidth - 4

	return &chatModel{
		ctx:      ctx,
		chat:     chat,
		me:       me,
		viewport: viewport.New(chatWidth, chatHeight),
		input:    input,
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) open() tea.Cmd {
	m.state = service.ChatState{ViewMeta: service.ViewMeta{Loading: true}}
	m.input.Focus()

	m.feed = newFeed[service.ChatState]()
	m.unsub = m.chat.Watch(m.feed.push)
	return m.feed.next(wrapFeed(m.feed))
}

func (m *chatModel) close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	if m.feed != nil {
		m.feed.stop()
	}
	m.input.Blur()
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg[service.ChatState]:
		if msg.src != m.feed {
			return m, nil
		}
		atBottom := m.viewport.AtBottom() || len(m.state.Messages) == 0
		m.state = msg.state
		m.viewport.SetContent(m.renderLog())
		if atBottom {
			m.viewport.GotoBottom()
		}
		return m, m.feed.next(wrapFeed(m.feed))

	case chatSentMsg:
		m.sending = false
		if msg.err != nil {
			m.errMsg = chatErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.input.SetValue("")
		return m, nil

	case tea.WindowSizeMsg:
		m.viewport.Width = min(msg.Width-6, chatWidth)
		m.viewport.Height = max(msg.Height-14, 5)
		m.viewport.SetContent(m.renderLog())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.sending {
				return m, nil
			}
			m.sending = true
			return m, m.cmdSend(m.input.Value())
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) cmdSend(text string) tea.Cmd {
	ctx, chat := m.ctx, m.chat
	return func() tea.Msg {
		_, err := chat.Send(ctx, text)
		return chatSentMsg{err: err}
	}
}

func (m *chatModel) renderLog() string {
	if len(m.state.Messages) == 0 {
		return helpStyle.Render("no messages yet")
	}

	var b strings.Builder
	for i, msg := range m.state.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		sender := msg.Sender
		if msg.Sender == m.me.Username {
			sender = "You"
		}
		b.WriteString(titleStyle.Render(sender))
		b.WriteString(helpStyle.Render(fmt.Sprintf(" (%s) %s %s", msg.Role, msg.Date, msg.Timestamp)))
		b.WriteString("\n")
		b.WriteString(msg.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *chatModel) View() string {
	var b strings.Builder

	b.WriteString(renderMeta(m.state.ViewMeta))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n> ")
	b.WriteString(m.input.View())
	if m.sending {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("sending..."))
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("CHAT", b.String(), "enter: send │ ↑/↓ pgup/pgdn: scroll")
}

func chatErrorMessage(err error) string {
	if fe := validators.Fields(err); fe != nil {
		if msg, ok := fe[validators.FieldMessage]; ok {
			return msg
		}
	}
	return humanizeError(err)
}
