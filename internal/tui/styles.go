package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	staleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	selectedStyle   = lipgloss.NewStyle().Reverse(true)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// levelColors follows the AQI band colours of the web dashboard.
var levelColors = map[string]lipgloss.Color{
	"Very Low":       lipgloss.Color("#3bb143"),
	"Low":            lipgloss.Color("#a6d608"),
	"Moderate":       lipgloss.Color("#ffd300"),
	"High":           lipgloss.Color("#ff8c00"),
	"Very High":      lipgloss.Color("#e3242b"),
	"Extremely High": lipgloss.Color("#800080"),
}

func levelStyle(level string) lipgloss.Style {
	c, ok := levelColors[level]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
