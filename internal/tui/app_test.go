package tui

import (
	"testing"

	"github.com/MKhiriev/airguard-admin/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPage records its lifecycle and the messages it receives.
type stubPage struct {
	name   string
	opens  int
	closes int
	msgs   []tea.Msg
}

type pingMsg struct{}

func (p *stubPage) Init() tea.Cmd { return nil }
func (p *stubPage) open() tea.Cmd { p.opens++; return nil }
func (p *stubPage) close()        { p.closes++ }
func (p *stubPage) View() string  { return "page " + p.name }

func (p *stubPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.msgs = append(p.msgs, msg)
	return p, nil
}

var testUser = models.User{ID: "u-1", Username: "Ada", Role: models.RoleAdmin}

func newStubRoot() (RootModel, map[string]*stubPage) {
	stubs := map[string]*stubPage{}
	pages := map[string]page{}
	for _, t := range mainTabs {
		s := &stubPage{name: t.page}
		stubs[t.page] = s
		pages[t.page] = s
	}
	return NewRootModel(pages, pageDashboard, mainTabs, testUser, models.NewAppBuildInfo("1.0.0", "", "")), stubs
}

func update(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	m, cmd := r.Update(msg)
	root, ok := m.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func TestRootModel_InitOpensStartPage(t *testing.T) {
	r, stubs := newStubRoot()

	r.Init()

	assert.Equal(t, 1, stubs[pageDashboard].opens)
	assert.Zero(t, stubs[pageUsers].opens)
}

func TestRootModel_TabKeySwitchesPage(t *testing.T) {
	r, stubs := newStubRoot()
	r.Init()

	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyF2})

	assert.Equal(t, pageUsers, r.current)
	assert.Equal(t, 1, stubs[pageDashboard].closes, "leaving a page tears it down")
	assert.Equal(t, 1, stubs[pageUsers].opens)
}

func TestRootModel_NavigateTo(t *testing.T) {
	r, stubs := newStubRoot()

	r, _ = update(t, r, NavigateTo{Page: pageChat})
	assert.Equal(t, pageChat, r.current)
	assert.Equal(t, 1, stubs[pageChat].opens)

	// same page and unknown pages are ignored
	r, _ = update(t, r, NavigateTo{Page: pageChat})
	r, _ = update(t, r, NavigateTo{Page: "nope"})
	assert.Equal(t, pageChat, r.current)
	assert.Equal(t, 1, stubs[pageChat].opens)
	assert.Zero(t, stubs[pageChat].closes)
}

func TestRootModel_DelegatesToCurrentPage(t *testing.T) {
	r, stubs := newStubRoot()

	r, _ = update(t, r, pingMsg{})

	require.Len(t, stubs[pageDashboard].msgs, 1)
	assert.Empty(t, stubs[pageUsers].msgs)
}

func TestRootModel_WindowSizeGoesToEveryPage(t *testing.T) {
	r, stubs := newStubRoot()

	update(t, r, tea.WindowSizeMsg{Width: 100, Height: 40})

	for name, s := range stubs {
		assert.Len(t, s.msgs, 1, name)
	}
}

func TestRootModel_Quit(t *testing.T) {
	r, stubs := newStubRoot()

	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, r.quitByUser)
	assert.False(t, r.logout)
	assert.Equal(t, 1, stubs[pageDashboard].closes)
}

func TestRootModel_Logout(t *testing.T) {
	r, _ := newStubRoot()

	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyCtrlL})

	require.NotNil(t, cmd)
	assert.True(t, r.logout)
	assert.False(t, r.quitByUser)
}

func TestRootModel_LogoutIgnoredOnLoginFlow(t *testing.T) {
	login := &stubPage{name: pageLogin}
	r := NewRootModel(map[string]page{pageLogin: login}, pageLogin, nil, models.User{}, models.AppBuildInfo{})

	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.False(t, r.logout)
	assert.Len(t, login.msgs, 1, "the key is passed on to the page")
}

func TestRootModel_LoginResult(t *testing.T) {
	login := &stubPage{name: pageLogin}
	r := NewRootModel(map[string]page{pageLogin: login}, pageLogin, nil, models.User{}, models.AppBuildInfo{})

	// a failed login stays on the page
	r, cmd := update(t, r, LoginResult{Err: assert.AnError})
	assert.Nil(t, cmd)
	assert.Len(t, login.msgs, 1)

	r, cmd = update(t, r, LoginResult{User: testUser})
	require.NotNil(t, cmd)
	assert.Equal(t, testUser, r.user)
}

func TestRootModel_BuildInfoOverlay(t *testing.T) {
	r, stubs := newStubRoot()

	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.True(t, r.showBuildInfo)
	assert.Contains(t, r.View(), "Version: 1.0.0")

	// keys do not reach the page while the overlay is open
	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, pageDashboard, r.current)
	assert.Empty(t, stubs[pageDashboard].msgs)

	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, r.showBuildInfo)
}

func TestRootModel_ViewShowsTabsAndUser(t *testing.T) {
	r, _ := newStubRoot()

	view := r.View()

	assert.Contains(t, view, "F1 Dashboard")
	assert.Contains(t, view, "F5 Announce")
	assert.Contains(t, view, "signed in as Ada")
	assert.Contains(t, view, "page dashboard")
}
