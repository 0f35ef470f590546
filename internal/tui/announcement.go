package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// announcementModel composes an air quality alert from the latest reading,
// lets the admin adjust subject and message, and sends it after a
// confirmation.
type announcementModel struct {
	ctx      context.Context
	announce service.ClientAnnouncementService

	draft     service.Announcement
	composed  bool
	composing bool

	subject textinput.Model
	message textarea.Model
	focus   int

	confirming bool
	sending    bool
	status     string
	errMsg     string
}

func newAnnouncementModel(ctx context.Context, announce service.ClientAnnouncementService) *announcementModel {
	subject := textinput.New()
	subject.CharLimit = 200
	subject.Width = 70

	message := textarea.New()
	message.SetWidth(72)
	message.SetHeight(4)
	message.ShowLineNumbers = false

	return &announcementModel{
		ctx:      ctx,
		announce: announce,
		subject:  subject,
		message:  message,
	}
}

func (m *announcementModel) Init() tea.Cmd { return nil }

func (m *announcementModel) open() tea.Cmd {
	m.status = ""
	m.errMsg = ""
	m.confirming = false
	return m.cmdCompose()
}

func (m *announcementModel) close() {
	m.subject.Blur()
	m.message.Blur()
}

func (m *announcementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case composedMsg:
		m.composing = false
		if msg.err != nil {
			m.composed = false
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.draft = msg.announcement
		m.composed = true
		m.errMsg = ""
		m.subject.SetValue(m.draft.Subject)
		m.message.SetValue(m.draft.Message)
		m.setFocus(0)
		return m, textinput.Blink

	case announcedMsg:
		m.sending = false
		if msg.err != nil {
			m.errMsg = "Announcement failed: " + humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "Announcement sent"
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			switch {
			case key.Matches(msg, keys.yes):
				m.confirming = false
				m.sending = true
				m.status = ""
				return m, m.cmdSend(m.edited())
			case key.Matches(msg, keys.no):
				m.confirming = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.recompose):
			return m, m.cmdCompose()
		case key.Matches(msg, keys.send):
			if m.composed && !m.sending {
				m.confirming = true
			}
			return m, nil
		case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
			m.setFocus(1 - m.focus)
			return m, nil
		}
	}

	if !m.composed {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.subject, cmd = m.subject.Update(msg)
	} else {
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

func (m *announcementModel) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.message.Blur()
		m.subject.Focus()
		return
	}
	m.subject.Blur()
	m.message.Focus()
}

// edited returns the draft with the admin's subject and message.
func (m *announcementModel) edited() service.Announcement {
	a := m.draft
	a.Subject = strings.TrimSpace(m.subject.Value())
	a.Message = strings.TrimSpace(m.message.Value())
	return a
}

func (m *announcementModel) cmdCompose() tea.Cmd {
	m.composing = true
	ctx, announce := m.ctx, m.announce
	return func() tea.Msg {
		a, err := announce.Compose(ctx)
		return composedMsg{announcement: a, err: err}
	}
}

func (m *announcementModel) cmdSend(a service.Announcement) tea.Cmd {
	ctx, announce := m.ctx, m.announce
	return func() tea.Msg {
		return announcedMsg{err: announce.Send(ctx, a)}
	}
}

func (m *announcementModel) View() string {
	var b strings.Builder

	switch {
	case m.composing:
		b.WriteString("Composing from the latest reading...\n")
	case m.composed:
		recipients := 0
		if m.draft.To != "" {
			recipients = len(strings.Split(m.draft.To, ","))
		}
		level := service.LevelFor(m.draft.Reading.AQI)
		fmt.Fprintf(&b, "Recipients: %d email address(es)\n", recipients)
		fmt.Fprintf(&b, "Reading: AQI %s (%s) from %s\n\n", formatReading(m.draft.Reading.AQI),
			levelStyle(string(level)).Render(string(level)), orDash(m.draft.Reading.Model))
		b.WriteString("Subject\n")
		b.WriteString(m.subject.View())
		b.WriteString("\n\nMessage\n")
		b.WriteString(m.message.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.draft.Details))
		b.WriteString("\n")
	}

	if m.confirming {
		b.WriteString("\n")
		b.WriteString(confirmModel{message: "Send this announcement by email, chat and push?"}.View())
		b.WriteString("\n")
	}
	if m.sending {
		b.WriteString("\nSending...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("ANNOUNCEMENT", strings.TrimRight(b.String(), "\n"), "tab: subject/message │ ctrl+s: send │ ctrl+r: compose again")
}
