package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	barWidth     = 30
	seriesPoints = 12
)

// dashboardModel shows the latest reading of the configured sensor, the
// radar of its pollutants and the AQI series of the selected window.
type dashboardModel struct {
	readings service.ClientReadingsService

	display service.DisplayState
	radar   service.RadarState
	series  service.SeriesState
	rng     service.TimeRange

	displayFeed *feed[service.DisplayState]
	radarFeed   *feed[service.RadarState]
	seriesFeed  *feed[service.SeriesState]
	unsubscribe []func()
	unsubSeries func()

	spinner spinner.Model
}

func newDashboardModel(readings service.ClientReadingsService) *dashboardModel {
	return &dashboardModel{
		readings: readings,
		rng:      service.DefaultTimeRange,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *dashboardModel) open() tea.Cmd {
	m.display = service.DisplayState{ViewMeta: service.ViewMeta{Loading: true}}
	m.radar = service.RadarState{ViewMeta: service.ViewMeta{Loading: true}}

	m.displayFeed = newFeed[service.DisplayState]()
	m.radarFeed = newFeed[service.RadarState]()
	m.unsubscribe = []func(){
		m.readings.WatchDisplay(m.displayFeed.push),
		m.readings.WatchRadar(m.radarFeed.push),
	}

	return tea.Batch(
		m.displayFeed.next(wrapFeed(m.displayFeed)),
		m.radarFeed.next(wrapFeed(m.radarFeed)),
		m.watchSeries(),
	)
}

func (m *dashboardModel) watchSeries() tea.Cmd {
	m.stopSeries()

	m.series = service.SeriesState{Range: m.rng, ViewMeta: service.ViewMeta{Loading: true}}
	m.seriesFeed = newFeed[service.SeriesState]()
	m.unsubSeries = m.readings.WatchSeries(m.rng, m.seriesFeed.push)

	return m.seriesFeed.next(wrapFeed(m.seriesFeed))
}

func (m *dashboardModel) stopSeries() {
	if m.unsubSeries != nil {
		m.unsubSeries()
		m.unsubSeries = nil
	}
	if m.seriesFeed != nil {
		m.seriesFeed.stop()
	}
}

func (m *dashboardModel) close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
	m.stopSeries()

	if m.displayFeed != nil {
		m.displayFeed.stop()
	}
	if m.radarFeed != nil {
		m.radarFeed.stop()
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg[service.DisplayState]:
		if msg.src != m.displayFeed {
			return m, nil
		}
		m.display = msg.state
		return m, m.displayFeed.next(wrapFeed(m.displayFeed))

	case feedMsg[service.RadarState]:
		if msg.src != m.radarFeed {
			return m, nil
		}
		m.radar = msg.state
		return m, m.radarFeed.next(wrapFeed(m.radarFeed))

	case feedMsg[service.SeriesState]:
		if msg.src != m.seriesFeed {
			return m, nil
		}
		m.series = msg.state
		return m, m.seriesFeed.next(wrapFeed(m.seriesFeed))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.refresh):
			m.readings.Refresh()
		case key.Matches(msg, keys.timeRange):
			m.rng = m.rng.Next()
			return m, m.watchSeries()
		}
	}

	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(m.viewDisplay())
	b.WriteString("\n\n")
	b.WriteString(m.viewRadar())
	b.WriteString("\n\n")
	b.WriteString(m.viewSeries())

	return renderPage("DASHBOARD", b.String(), "r: refresh │ t: time range")
}

func (m *dashboardModel) viewDisplay() string {
	var b strings.Builder
	st := m.display

	b.WriteString(titleStyle.Render("Pollutant display"))
	b.WriteString("  ")
	if st.Loading {
		b.WriteString(m.spinner.View())
	}
	b.WriteString(renderMeta(st.ViewMeta))
	b.WriteString("\n")

	if !st.HasCurrent {
		if !st.Loading {
			b.WriteString("no readings yet")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	level := st.Level()
	sensor := "offline"
	if st.Current.Online() {
		sensor = "online"
	}
	fmt.Fprintf(&b, "Sensor %s (%s) │ %s\n", orDash(st.Current.Model), sensor, levelStyle(string(level)).Render(string(level)))

	for _, p := range models.Pollutants {
		fmt.Fprintf(&b, "%s %10s %-6s %s\n",
			padRight(p.Label(), 18),
			formatReading(st.Current.Value(p)),
			unitLabel(p),
			trendArrow(st.Trend(p)),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *dashboardModel) viewRadar() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Radar"))
	b.WriteString("  ")
	b.WriteString(renderMeta(m.radar.ViewMeta))
	b.WriteString("\n")

	top := 0.0
	for _, p := range m.radar.Points {
		top = max(top, p.Value)
	}
	for _, p := range m.radar.Points {
		fmt.Fprintf(&b, "%s %s %s\n", padRight(p.Label, 18), padRight(formatReading(p.Value), 8), bar(p.Value, top, barWidth))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *dashboardModel) viewSeries() string {
	var b strings.Builder
	st := m.series

	ranges := make([]string, 0, len(service.TimeRanges))
	for _, r := range service.TimeRanges {
		if r == m.rng {
			ranges = append(ranges, activeTabStyle.Render(string(r)))
			continue
		}
		ranges = append(ranges, helpStyle.Render(string(r)))
	}

	b.WriteString(titleStyle.Render("AQI series"))
	b.WriteString("  ")
	b.WriteString(strings.Join(ranges, " "))
	b.WriteString("  ")
	b.WriteString(renderMeta(st.ViewMeta))
	b.WriteString("\n")

	if len(st.Readings) == 0 {
		if !st.Loading {
			b.WriteString("no readings in this window")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	lo, hi, sum := st.Readings[0].AQI, st.Readings[0].AQI, 0.0
	for _, r := range st.Readings {
		lo, hi = min(lo, r.AQI), max(hi, r.AQI)
		sum += r.AQI
	}
	fmt.Fprintf(&b, "%d readings │ min %s │ avg %s │ max %s\n",
		len(st.Readings), formatReading(lo), formatReading(sum/float64(len(st.Readings))), formatReading(hi))

	tail := st.Readings[max(0, len(st.Readings)-seriesPoints):]
	for _, r := range tail {
		at := r.Date
		if t, ok := r.Time(); ok {
			at = t.Format("Jan 02 15:04")
		}
		fmt.Fprintf(&b, "%s %s %s\n", padRight(at, 14), padRight(formatReading(r.AQI), 8), bar(r.AQI, hi, barWidth))
	}

	return strings.TrimRight(b.String(), "\n")
}

func wrapFeed[S any](f *feed[S]) func(S) tea.Msg {
	return func(s S) tea.Msg {
		return feedMsg[S]{src: f, state: s}
	}
}

func trendArrow(t service.Trend) string {
	switch t {
	case service.TrendUp:
		return "▲"
	case service.TrendDown:
		return "▼"
	default:
		return "="
	}
}

// unitLabel is the unit column of the display: the AQI has no
// unit and is labelled as an index.
func unitLabel(p models.Pollutant) string {
	if u := service.PollutantUnit(p); u != "" {
		return u
	}
	return "index"
}

func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
