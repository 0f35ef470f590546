package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/charmbracelet/glamour"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit │ ctrl+l: logout │ ctrl+v: about"))

	return b.String()
}

// renderMeta renders the loading and staleness line of a live view.
func renderMeta(meta service.ViewMeta) string {
	switch {
	case meta.Loading:
		return helpStyle.Render("loading...")
	case meta.Stale():
		return staleStyle.Render(fmt.Sprintf("stale since %s: %s", meta.UpdatedAt.Format(time.Kitchen), humanizeError(meta.Err)))
	case meta.Err != nil:
		return errorStyle.Render("error: " + humanizeError(meta.Err))
	case !meta.UpdatedAt.IsZero():
		return helpStyle.Render("updated " + meta.UpdatedAt.Format(time.Kitchen))
	default:
		return ""
	}
}

func fitText(v string, limit int) string {
	r := []rune(v)
	if limit <= 0 || len(r) <= limit {
		return v
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}

func padRight(v string, width int) string {
	v = fitText(v, width)
	if n := len([]rune(v)); n < width {
		return v + strings.Repeat(" ", width-n)
	}
	return v
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// bar renders v as a horizontal bar scaled against top over width cells.
func bar(v, top float64, width int) string {
	if top <= 0 || v <= 0 || width <= 0 {
		return ""
	}
	n := int(v / top * float64(width))
	n = min(max(n, 1), width)
	return barStyle.Render(strings.Repeat("█", n))
}

// renderMarkdown renders an announcement body with glamour. Every line break
// of the body is kept; the raw text is returned if rendering fails.
func renderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(strings.ReplaceAll(text, "\n", "  \n"))
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}
