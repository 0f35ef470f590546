package tui

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/table"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	colAccountID = "account_id"
	colUsername  = "username"
	colRole      = "role"
	colStatus    = "status"
	colCreated   = "created_at"

	statusTTL = 4 * time.Second
)

type sortOption struct {
	column string
	desc   bool
	label  string
}

var userSorts = []sortOption{
	{label: "newest first"},
	{column: colAccountID, label: "account id"},
	{column: colUsername, label: "name"},
	{column: colRole, label: "role"},
	{column: colStatus, label: "status"},
	{column: colCreated, label: "oldest first"},
}

var (
	roleFilters   = []models.Role{"", models.RoleAdmin, models.RoleStudent}
	statusFilters = []models.Status{"", models.StatusReady, models.StatusBlocked}
)

// newUsersTable builds the accounts table: sortable by every column shown,
// ten rows per page.
func newUsersTable() *table.Table[models.User] {
	return table.New(func(u models.User) string { return u.ID }, map[string]table.Compare[models.User]{
		colAccountID: func(a, b models.User) int { return cmp.Compare(a.AccountID, b.AccountID) },
		colUsername:  func(a, b models.User) int { return cmp.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username)) },
		colRole:      func(a, b models.User) int { return cmp.Compare(a.Role, b.Role) },
		colStatus:    func(a, b models.User) int { return cmp.Compare(a.Status, b.Status) },
		colCreated:   func(a, b models.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
	})
}

// usersModel is the accounts screen: stats, a filtered and paginated table
// with row selection, bulk delete, and the add and edit forms.
type usersModel struct {
	ctx   context.Context
	users service.ClientUsersService

	table *table.Table[models.User]
	stats service.UserStats
	meta  service.ViewMeta

	cursor    int
	sortIdx   int
	roleIdx   int
	statusIdx int

	searching bool
	search    textinput.Model

	confirming bool
	bulkMode   service.BulkMode
	deleting   bool

	form    *userFormModel
	loading bool

	status string
	errMsg string

	feed  *feed[service.UsersState]
	unsub func()
}

func newUsersModel(ctx context.Context, users service.ClientUsersService) *usersModel {
	search := textinput.New()
	search.Placeholder = "account id contains..."
	search.CharLimit = 32
	search.Width = 30

	return &usersModel{
		ctx:    ctx,
		users:  users,
		table:  newUsersTable(),
		search: search,
	}
}

func (m *usersModel) Init() tea.Cmd { return nil }

func (m *usersModel) open() tea.Cmd {
	m.meta = service.ViewMeta{Loading: true}
	m.feed = newFeed[service.UsersState]()
	m.unsub = m.users.Watch(m.feed.push)
	return m.feed.next(wrapFeed(m.feed))
}

func (m *usersModel) close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	if m.feed != nil {
		m.feed.stop()
	}
	m.form = nil
	m.confirming = false
	m.searching = false
}

func (m *usersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg[service.UsersState]:
		if msg.src != m.feed {
			return m, nil
		}
		m.meta = msg.state.ViewMeta
		if !msg.state.Loading && msg.state.Err == nil {
			m.table.SetRows(msg.state.Users)
			m.stats = msg.state.Stats
			m.clampCursor()
		}
		return m, m.feed.next(wrapFeed(m.feed))

	case bulkDeletedMsg:
		m.deleting = false
		m.table.ClearSelection()
		m.clampCursor()
		if msg.err != nil {
			m.errMsg = bulkErrorMessage(msg)
			return m, nil
		}
		m.errMsg = ""
		return m, m.setStatus(fmt.Sprintf("Deleted %d user(s)", len(msg.results)))

	case userLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.form = newUserForm(m.ctx, m.users, msg.user.ID, models.FormFromUser(msg.user))
		return m, textinput.Blink

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	if m.form != nil {
		editing := m.form.editing()
		cmd, done := m.form.Update(msg)
		if done {
			m.form = nil
			if _, saved := msg.(userSavedMsg); saved {
				if editing {
					return m, m.setStatus("User updated")
				}
				return m, m.setStatus("User added")
			}
		}
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		return m.updateConfirm(keyMsg)
	}
	if m.searching {
		return m.updateSearch(keyMsg)
	}

	return m.updateTable(keyMsg)
}

func (m *usersModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.table.Visible()

	switch {
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.left):
		if m.table.PrevPage() {
			m.cursor = 0
		}
	case key.Matches(msg, keys.right):
		if m.table.NextPage() {
			m.cursor = 0
		}
	case key.Matches(msg, keys.toggle):
		if u, ok := m.current(); ok {
			m.table.Toggle(u.ID)
		}
	case key.Matches(msg, keys.toggleAll):
		m.table.ToggleAllVisible()
	case key.Matches(msg, keys.filter):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.role):
		m.roleIdx = (m.roleIdx + 1) % len(roleFilters)
		m.applyFilters()
	case key.Matches(msg, keys.status):
		m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
		m.applyFilters()
	case key.Matches(msg, keys.sort):
		m.sortIdx = (m.sortIdx + 1) % len(userSorts)
		s := userSorts[m.sortIdx]
		_ = m.table.SortBy(s.column, s.desc)
		m.cursor = 0
	case key.Matches(msg, keys.refresh):
		m.users.Refresh()
	case key.Matches(msg, keys.newItem):
		m.errMsg = ""
		m.form = newUserForm(m.ctx, m.users, "", models.UserForm{Role: models.RoleStudent})
		return m, textinput.Blink
	case key.Matches(msg, keys.edit):
		u, ok := m.current()
		if !ok || m.loading {
			return m, nil
		}
		m.loading = true
		m.errMsg = ""
		return m, m.cmdLoadUser(u.ID)
	case key.Matches(msg, keys.delete):
		if m.table.SelectedCount() == 0 {
			if u, ok := m.current(); ok {
				m.table.Toggle(u.ID)
			}
		}
		if m.table.SelectedCount() == 0 {
			m.errMsg = service.ErrNothingSelected.Error()
			return m, nil
		}
		m.errMsg = ""
		m.confirming = true
	case key.Matches(msg, keys.copy):
		u, ok := m.current()
		if !ok {
			return m, nil
		}
		if err := clipboard.WriteAll(u.AccountID); err != nil {
			m.errMsg = "Copy failed: " + err.Error()
			return m, nil
		}
		return m, m.setStatus("Copied " + u.AccountID)
	}

	return m, nil
}

func (m *usersModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirming = false
		m.deleting = true
		return m, m.cmdBulkDelete(m.table.Selected(), m.bulkMode)
	case key.Matches(msg, keys.mode):
		if m.bulkMode == service.BulkSequential {
			m.bulkMode = service.BulkBestEffort
		} else {
			m.bulkMode = service.BulkSequential
		}
	case key.Matches(msg, keys.no):
		m.confirming = false
	}
	return m, nil
}

func (m *usersModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, keys.esc):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilters()
	return m, cmd
}

func (m *usersModel) applyFilters() {
	if q := strings.ToLower(strings.TrimSpace(m.search.Value())); q != "" {
		m.table.SetFilter(colAccountID, func(u models.User) bool {
			return strings.Contains(strings.ToLower(u.AccountID), q)
		})
	} else {
		m.table.SetFilter(colAccountID, nil)
	}

	if role := roleFilters[m.roleIdx]; role != "" {
		m.table.SetFilter(colRole, func(u models.User) bool { return u.Role == role })
	} else {
		m.table.SetFilter(colRole, nil)
	}

	if st := statusFilters[m.statusIdx]; st != "" {
		m.table.SetFilter(colStatus, func(u models.User) bool { return u.Status == st })
	} else {
		m.table.SetFilter(colStatus, nil)
	}

	m.cursor = 0
}

func (m *usersModel) current() (models.User, bool) {
	visible := m.table.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.User{}, false
	}
	return visible[m.cursor], true
}

func (m *usersModel) clampCursor() {
	n := len(m.table.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *usersModel) setStatus(s string) tea.Cmd {
	m.status = s
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *usersModel) cmdLoadUser(id string) tea.Cmd {
	ctx, users := m.ctx, m.users
	return func() tea.Msg {
		u, err := users.Get(ctx, id)
		return userLoadedMsg{user: u, err: err}
	}
}

// cmdBulkDelete deletes a snapshot of the selection; the table itself is
// only touched on the UI goroutine once the result arrives.
func (m *usersModel) cmdBulkDelete(ids []string, mode service.BulkMode) tea.Cmd {
	ctx, users := m.ctx, m.users
	return func() tea.Msg {
		results, err := users.BulkDelete(ctx, service.NewSelection(ids...), mode)
		return bulkDeletedMsg{mode: mode, results: results, err: err}
	}
}

func bulkErrorMessage(msg bulkDeletedMsg) string {
	if msg.mode != service.BulkBestEffort {
		// одна общая ошибка: удалённые до сбоя остаются удалёнными
		return "Bulk delete stopped: " + humanizeError(msg.err)
	}

	var failed []string
	for _, r := range msg.results {
		if r.Err != nil {
			failed = append(failed, r.ID)
		}
	}
	return fmt.Sprintf("%d of %d deletes failed: %s", len(failed), len(msg.results), strings.Join(failed, ", "))
}

func (m *usersModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Total %d │ Admins %d │ Students %d │ Ready %d │ Blocked %d   %s\n\n",
		m.stats.Total, m.stats.Admins, m.stats.Students, m.stats.Ready, m.stats.Blocked, renderMeta(m.meta))

	fmt.Fprintf(&b, "Search: %s │ Role: %s │ Status: %s │ Sort: %s\n\n",
		m.searchView(), orAll(string(roleFilters[m.roleIdx])), orAll(string(statusFilters[m.statusIdx])), userSorts[m.sortIdx].label)

	b.WriteString("    " + padRight("Account ID", 14) + padRight("Name", 22) + padRight("Email", 26) + padRight("Role", 9) + "Status\n")

	visible := m.table.Visible()
	if len(visible) == 0 && !m.meta.Loading {
		b.WriteString("    no users match\n")
	}
	for i, u := range visible {
		check := "[ ]"
		if m.table.IsSelected(u.ID) {
			check = "[x]"
		}
		line := check + " " + padRight(u.AccountID, 14) + padRight(u.Username, 22) + padRight(orDash(u.Email), 26) + padRight(string(u.Role), 9) + string(u.Status)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nPage %d/%d │ %d selected\n", m.table.Page()+1, m.table.PageCount(), m.table.SelectedCount())

	if m.confirming {
		b.WriteString("\n")
		b.WriteString(confirmModel{
			message: fmt.Sprintf("Delete %d selected user(s)?\nMode: %s (b to switch)", m.table.SelectedCount(), m.bulkMode),
		}.View())
		b.WriteString("\n")
	}
	if m.deleting {
		b.WriteString("\nDeleting...\n")
	}
	if m.loading {
		b.WriteString("\nLoading user...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("USERS", strings.TrimRight(b.String(), "\n"),
		"space: select │ a: select page │ ←/→: page │ /: search │ f: role │ s: status │ o: sort │ n: add │ e: edit │ d: delete │ c: copy id │ r: refresh")
}

func (m *usersModel) searchView() string {
	if m.searching {
		return m.search.View()
	}
	return orAll(m.search.Value())
}

func orAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}
