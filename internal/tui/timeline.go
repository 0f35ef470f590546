package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	dayLayout       = "2006-01-02"
	timelineVisible = 12
	detailWidth     = 72
)

// timelineModel lists past announcements newest first, optionally limited
// to one day.
type timelineModel struct {
	timeline service.ClientTimelineService

	state  service.TimelineState
	cursor int
	detail bool

	filtering bool
	dayInput  textinput.Model
	day       time.Time
	errMsg    string

	feed  *feed[service.TimelineState]
	unsub func()
}

func newTimelineModel(timeline service.ClientTimelineService) *timelineModel {
	dayInput := textinput.New()
	dayInput.Placeholder = dayLayout
	dayInput.CharLimit = len(dayLayout)
	dayInput.Width = 12

	return &timelineModel{
		timeline: timeline,
		dayInput: dayInput,
	}
}

func (m *timelineModel) Init() tea.Cmd { return nil }

func (m *timelineModel) open() tea.Cmd {
	m.state = service.TimelineState{ViewMeta: service.ViewMeta{Loading: true}}
	m.feed = newFeed[service.TimelineState]()
	m.unsub = m.timeline.Watch(m.feed.push)
	return m.feed.next(wrapFeed(m.feed))
}

func (m *timelineModel) close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	if m.feed != nil {
		m.feed.stop()
	}
	m.detail = false
	m.filtering = false
}

func (m *timelineModel) entries() []models.TimelineEntry {
	if m.day.IsZero() {
		return m.state.Entries
	}
	return service.FilterByDate(m.state.Entries, m.day)
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg[service.TimelineState]:
		if msg.src != m.feed {
			return m, nil
		}
		m.state = msg.state
		m.cursor = min(m.cursor, max(len(m.entries())-1, 0))
		return m, m.feed.next(wrapFeed(m.feed))

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		if m.detail {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) {
				m.detail = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.down):
			if m.cursor < len(m.entries())-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.enter):
			if len(m.entries()) > 0 {
				m.detail = true
			}
		case key.Matches(msg, keys.filter):
			m.filtering = true
			m.errMsg = ""
			m.dayInput.Focus()
			return m, textinput.Blink
		case key.Matches(msg, keys.esc):
			m.day = time.Time{}
			m.dayInput.SetValue("")
			m.cursor = 0
		case key.Matches(msg, keys.refresh):
			m.timeline.Refresh()
		}
	}

	return m, nil
}

func (m *timelineModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.filtering = false
		m.dayInput.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		m.filtering = false
		m.dayInput.Blur()
		raw := strings.TrimSpace(m.dayInput.Value())
		if raw == "" {
			m.day = time.Time{}
			return m, nil
		}
		day, err := time.ParseInLocation(dayLayout, raw, time.Local)
		if err != nil {
			m.errMsg = "Date must look like " + dayLayout
			return m, nil
		}
		m.day = day
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.dayInput, cmd = m.dayInput.Update(msg)
	return m, cmd
}

func (m *timelineModel) View() string {
	entries := m.entries()

	if m.detail && m.cursor < len(entries) {
		e := entries[m.cursor]
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\nScanned by %s using %s\n\n", e.Date, e.Timestamp, orDash(e.ScannedBy), orDash(e.ScannedUsingModel))
		b.WriteString(renderMarkdown(e.Message, detailWidth))
		return renderPage("ANNOUNCEMENT", b.String(), "esc: back")
	}

	var b strings.Builder
	b.WriteString(renderMeta(m.state.ViewMeta))
	b.WriteString("\n")

	dayLabel := "all"
	if m.filtering {
		dayLabel = m.dayInput.View()
	} else if !m.day.IsZero() {
		dayLabel = m.day.Format(dayLayout)
	}
	fmt.Fprintf(&b, "Day: %s │ %d entries\n\n", dayLabel, len(entries))

	if len(entries) == 0 && !m.state.Loading {
		b.WriteString("no announcements\n")
	}

	start := max(0, m.cursor-timelineVisible+1)
	end := min(len(entries), start+timelineVisible)
	for i := start; i < end; i++ {
		e := entries[i]
		level := service.LevelFor(e.AQI)
		line := fmt.Sprintf("%s %s  AQI %-6s %s  %s",
			padRight(e.Date, 10), padRight(e.Timestamp, 11), formatReading(e.AQI),
			padRight(string(level), 14), fitText(firstLine(e.Message), 40))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("TIMELINE", strings.TrimRight(b.String(), "\n"), "enter: details │ /: filter by day │ esc: clear filter │ r: refresh")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
