package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	formAccountID = iota
	formUsername
	formEmail
	formRole
	formStatus
)

var (
	formRoles    = []models.Role{models.RoleStudent, models.RoleAdmin}
	formStatuses = []models.Status{models.StatusReady, models.StatusBlocked}
)

// userFormModel adds an account, or edits one when editID is set. Role and
// status are chosen with left/right; the status field exists only when
// editing since new accounts always start Ready.
type userFormModel struct {
	ctx    context.Context
	users  service.ClientUsersService
	editID string

	inputs    []textinput.Model
	roleIdx   int
	statusIdx int
	focus     int

	submitting bool
	fieldErrs  validators.FieldErrors
	errMsg     string
}

func newUserForm(ctx context.Context, users service.ClientUsersService, editID string, form models.UserForm) *userFormModel {
	accountID := textinput.New()
	accountID.Placeholder = "10+ characters"
	accountID.CharLimit = 32
	accountID.Width = 40
	accountID.SetValue(form.AccountID)

	username := textinput.New()
	username.Placeholder = "Full name"
	username.CharLimit = 64
	username.Width = 40
	username.SetValue(form.Username)

	email := textinput.New()
	email.Placeholder = "optional for students"
	email.CharLimit = 128
	email.Width = 40
	email.SetValue(form.Email)

	m := &userFormModel{
		ctx:    ctx,
		users:  users,
		editID: editID,
		inputs: []textinput.Model{accountID, username, email},
	}
	if i := slices.Index(formRoles, form.Role); i >= 0 {
		m.roleIdx = i
	}
	if i := slices.Index(formStatuses, form.Status); i >= 0 {
		m.statusIdx = i
	}
	m.setFocus(formAccountID)

	return m
}

func (m *userFormModel) editing() bool {
	return m.editID != ""
}

func (m *userFormModel) fieldCount() int {
	if m.editing() {
		return formStatus + 1
	}
	return formRole + 1
}

func (m *userFormModel) form() models.UserForm {
	form := models.UserForm{
		AccountID: strings.TrimSpace(m.inputs[formAccountID].Value()),
		Username:  strings.TrimSpace(m.inputs[formUsername].Value()),
		Email:     strings.TrimSpace(m.inputs[formEmail].Value()),
		Role:      formRoles[m.roleIdx],
	}
	if m.editing() {
		form.Status = formStatuses[m.statusIdx]
	}
	return form
}

// Update returns done=true when the form should close: esc was pressed or
// the account was saved.
func (m *userFormModel) Update(msg tea.Msg) (cmd tea.Cmd, done bool) {
	if saved, ok := msg.(userSavedMsg); ok {
		m.submitting = false
		if saved.err == nil {
			return nil, true
		}
		if fe := validators.Fields(saved.err); fe != nil {
			m.fieldErrs = fe
			m.errMsg = ""
			return nil, false
		}
		m.fieldErrs = nil
		m.errMsg = humanizeError(saved.err)
		return nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg), false
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return nil, true
	case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.down) && m.focus >= formRole:
		m.setFocus((m.focus + 1) % m.fieldCount())
		return nil, false
	case key.Matches(keyMsg, keys.backtab):
		m.setFocus((m.focus - 1 + m.fieldCount()) % m.fieldCount())
		return nil, false
	case key.Matches(keyMsg, keys.enter):
		if m.submitting {
			return nil, false
		}
		m.submitting = true
		m.errMsg = ""
		m.fieldErrs = nil
		return m.cmdSave(m.form()), false
	}

	if m.focus == formRole || m.focus == formStatus {
		if key.Matches(keyMsg, keys.left) || key.Matches(keyMsg, keys.right) || key.Matches(keyMsg, keys.toggle) {
			if m.focus == formRole {
				m.roleIdx = (m.roleIdx + 1) % len(formRoles)
			} else {
				m.statusIdx = (m.statusIdx + 1) % len(formStatuses)
			}
		}
		return nil, false
	}

	return m.updateInput(msg), false
}

func (m *userFormModel) updateInput(msg tea.Msg) tea.Cmd {
	if m.focus >= len(m.inputs) {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *userFormModel) setFocus(i int) {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	if i < len(m.inputs) {
		m.inputs[i].Focus()
	}
}

func (m *userFormModel) cmdSave(form models.UserForm) tea.Cmd {
	ctx, users, id := m.ctx, m.users, m.editID

	return func() tea.Msg {
		if id != "" {
			return userSavedMsg{err: users.Edit(ctx, id, form)}
		}
		return userSavedMsg{err: users.Add(ctx, form)}
	}
}

func (m *userFormModel) View() string {
	var b strings.Builder

	row := func(i int, label, value, field string) {
		marker := "  "
		if m.focus == i {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(padRight(label, 11))
		b.WriteString("│ ")
		b.WriteString(value)
		if msg, ok := m.fieldErrs[field]; ok {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render(msg))
		}
		b.WriteString("\n")
	}

	row(formAccountID, "Account ID", m.inputs[formAccountID].View(), validators.FieldAccountID)
	row(formUsername, "Name", m.inputs[formUsername].View(), validators.FieldUsername)
	row(formEmail, "Email", m.inputs[formEmail].View(), validators.FieldEmail)
	row(formRole, "Role", "‹ "+string(formRoles[m.roleIdx])+" ›", validators.FieldRole)
	if m.editing() {
		row(formStatus, "Status", "‹ "+string(formStatuses[m.statusIdx])+" ›", validators.FieldStatus)
	} else {
		b.WriteString(helpStyle.Render("\nThe default password of the role is mailed to the new user."))
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	title := "ADD USER"
	if m.editing() {
		title = "EDIT USER"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab: next field │ ←/→: change option │ enter: save │ esc: cancel")
}
