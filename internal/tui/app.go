package tui

import (
	"strings"

	"github.com/MKhiriev/airguard-admin/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageLogin        = "login"
	pageDashboard    = "dashboard"
	pageUsers        = "users"
	pageChat         = "chat"
	pageTimeline     = "timeline"
	pageAnnouncement = "announcement"
)

// page is a screen of the console. open starts its subscriptions and close
// tears them down; the router calls them when the page gains and loses
// focus.
type page interface {
	tea.Model
	open() tea.Cmd
	close()
}

type tab struct {
	page    string
	label   string
	binding key.Binding
}

var mainTabs = []tab{
	{page: pageDashboard, label: "F1 Dashboard", binding: keys.dashboard},
	{page: pageUsers, label: "F2 Users", binding: keys.users},
	{page: pageChat, label: "F3 Chat", binding: keys.chat},
	{page: pageTimeline, label: "F4 Timeline", binding: keys.timeline},
	{page: pageAnnouncement, label: "F5 Announce", binding: keys.announcement},
}

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global quit, logout and about hotkeys
// 3) handles NavigateTo messages, closing the page it leaves
// 4) delegates all other messages to the active page
type RootModel struct {
	pages   map[string]page
	current string
	tabs    []tab

	user      models.User
	buildInfo models.AppBuildInfo

	quitByUser    bool
	logout        bool
	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage. tabs are shown in
// the header and switch pages by their hotkey.
func NewRootModel(pages map[string]page, startPage string, tabs []tab, user models.User, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		current:   startPage,
		tabs:      tabs,
		user:      user,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if p, ok := r.pages[r.current]; ok {
		return tea.Batch(p.Init(), p.open())
	}
	return nil
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			r.closeCurrent()
			r.quitByUser = true
			return r, tea.Quit
		case key.Matches(msg, keys.info):
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		case key.Matches(msg, keys.logout) && len(r.tabs) > 0:
			r.closeCurrent()
			r.logout = true
			return r, tea.Quit
		}

		if r.showBuildInfo {
			if key.Matches(msg, keys.esc) {
				r.showBuildInfo = false
			}
			return r, nil
		}

		for _, t := range r.tabs {
			if key.Matches(msg, t.binding) {
				return r.navigate(t.page)
			}
		}

	case NavigateTo:
		return r.navigate(msg.Page)

	case LoginResult:
		// Finalize login flow on success.
		if msg.Err == nil {
			r.user = msg.User
			r.closeCurrent()
			return r, tea.Quit
		}

	case tea.WindowSizeMsg:
		var cmds []tea.Cmd
		for name, p := range r.pages {
			updated, cmd := p.Update(msg)
			r.pages[name] = updated.(page)
			cmds = append(cmds, cmd)
		}
		return r, tea.Batch(cmds...)
	}

	p, ok := r.pages[r.current]
	if !ok {
		return r, nil
	}

	updated, cmd := p.Update(msg)
	r.pages[r.current] = updated.(page)
	return r, cmd
}

func (r RootModel) navigate(name string) (tea.Model, tea.Cmd) {
	next, ok := r.pages[name]
	if !ok || name == r.current {
		return r, nil
	}

	r.closeCurrent()
	r.showBuildInfo = false
	r.current = name

	return r, tea.Batch(next.Init(), next.open())
}

func (r RootModel) closeCurrent() {
	if p, ok := r.pages[r.current]; ok {
		p.close()
	}
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo))
	}

	p, ok := r.pages[r.current]
	if !ok {
		return renderPage("AIRGUARD", "", "")
	}

	if len(r.tabs) == 0 {
		return appStyle.Render(p.View())
	}
	return appStyle.Render(r.header() + "\n\n" + p.View())
}

func (r RootModel) header() string {
	labels := make([]string, 0, len(r.tabs))
	for _, t := range r.tabs {
		if t.page == r.current {
			labels = append(labels, activeTabStyle.Render(t.label))
			continue
		}
		labels = append(labels, helpStyle.Render(t.label))
	}

	return strings.Join(labels, " │ ") + helpStyle.Render("   signed in as "+r.user.Username)
}
