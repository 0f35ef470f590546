package table

import (
	"cmp"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id     string
	name   string
	status string
}

func rowID(r row) string { return r.id }

func newRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		status := "Ready"
		if i%3 == 0 {
			status = "Blocked"
		}
		rows[i] = row{id: fmt.Sprintf("id-%02d", i), name: fmt.Sprintf("user %02d", i), status: status}
	}
	return rows
}

func newTestTable(rows []row) *Table[row] {
	tbl := New(rowID, map[string]Compare[row]{
		"name": func(a, b row) int { return cmp.Compare(a.name, b.name) },
	})
	tbl.SetRows(rows)
	return tbl
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

// ── selection state machine ──────────────────────────────────────────────────

func TestToggle(t *testing.T) {
	tbl := newTestTable(newRows(3))

	tbl.Toggle("id-01")
	assert.True(t, tbl.IsSelected("id-01"))
	tbl.Toggle("id-01")
	assert.False(t, tbl.IsSelected("id-01"))

	tbl.Toggle("missing")
	assert.Zero(t, tbl.SelectedCount())
}

// TestSelectAllVisible_OnlyCurrentPage verifies that select-all covers the
// visible page after filtering and pagination, not every row.
func TestSelectAllVisible_OnlyCurrentPage(t *testing.T) {
	tbl := newTestTable(newRows(25))
	tbl.SetFilter("status", func(r row) bool { return r.status == "Ready" })

	require.True(t, tbl.NextPage())
	tbl.SelectAllVisible()

	visible := tbl.Visible()
	require.Len(t, visible, 6) // 16 ready rows, page 2 holds 6
	assert.Equal(t, 6, tbl.SelectedCount())
	for _, r := range visible {
		assert.True(t, tbl.IsSelected(r.id))
	}
	assert.False(t, tbl.IsSelected("id-00"), "blocked row must stay unselected")
	assert.True(t, tbl.AllVisibleSelected())

	tbl.PrevPage()
	assert.False(t, tbl.AllVisibleSelected())
}

func TestToggleAllVisible(t *testing.T) {
	tbl := newTestTable(newRows(4))

	tbl.ToggleAllVisible()
	assert.Equal(t, 4, tbl.SelectedCount())
	tbl.ToggleAllVisible()
	assert.Zero(t, tbl.SelectedCount())
}

func TestAllVisibleSelected_EmptyPage(t *testing.T) {
	tbl := newTestTable(nil)
	assert.False(t, tbl.AllVisibleSelected())
}

func TestSetRows_DropsVanishedSelections(t *testing.T) {
	rows := newRows(3)
	tbl := newTestTable(rows)
	tbl.Toggle("id-00")
	tbl.Toggle("id-02")

	tbl.SetRows(rows[:2])

	assert.Equal(t, []string{"id-00"}, tbl.Selected())
}

func TestSelected_SnapshotOrder(t *testing.T) {
	tbl := newTestTable(newRows(5))
	require.NoError(t, tbl.SortBy("name", true))

	tbl.Toggle("id-04")
	tbl.Toggle("id-01")
	tbl.Toggle("id-03")

	assert.Equal(t, []string{"id-01", "id-03", "id-04"}, tbl.Selected())

	tbl.ClearSelection()
	assert.Empty(t, tbl.Selected())
}

// ── filter / sort / pagination ───────────────────────────────────────────────

func TestFilters_Combine(t *testing.T) {
	tbl := newTestTable(newRows(10))
	tbl.SetFilter("status", func(r row) bool { return r.status == "Blocked" })
	tbl.SetFilter("name", func(r row) bool { return strings.Contains(r.name, "0") })

	assert.Equal(t, []string{"id-00", "id-03", "id-06", "id-09"}, ids(tbl.Filtered()))

	tbl.SetFilter("name", nil)
	assert.Len(t, tbl.Filtered(), 4)

	tbl.ClearFilters()
	assert.Len(t, tbl.Filtered(), 10)
}

func TestSortBy(t *testing.T) {
	tbl := newTestTable([]row{{id: "a", name: "carol"}, {id: "b", name: "alice"}, {id: "c", name: "bob"}})

	require.NoError(t, tbl.SortBy("name", false))
	assert.Equal(t, []string{"b", "c", "a"}, ids(tbl.Filtered()))

	require.NoError(t, tbl.SortBy("name", true))
	assert.Equal(t, []string{"a", "c", "b"}, ids(tbl.Filtered()))

	col, desc := tbl.Sort()
	assert.Equal(t, "name", col)
	assert.True(t, desc)

	require.NoError(t, tbl.SortBy("", false))
	assert.Equal(t, []string{"a", "b", "c"}, ids(tbl.Filtered()))

	assert.ErrorIs(t, tbl.SortBy("email", false), ErrUnknownColumn)
}

func TestPagination(t *testing.T) {
	tbl := newTestTable(newRows(23))

	assert.Equal(t, 3, tbl.PageCount())
	assert.Len(t, tbl.Visible(), 10)
	assert.False(t, tbl.PrevPage())

	assert.True(t, tbl.NextPage())
	assert.True(t, tbl.NextPage())
	assert.False(t, tbl.NextPage())
	assert.Equal(t, 2, tbl.Page())
	assert.Len(t, tbl.Visible(), 3)

	// shrinking the snapshot clamps the page
	tbl.SetRows(newRows(5))
	assert.Equal(t, 0, tbl.Page())
	assert.Len(t, tbl.Visible(), 5)

	tbl.SetPageSize(2)
	assert.Equal(t, 3, tbl.PageCount())
	tbl.SetPageSize(0)
	assert.Equal(t, 3, tbl.PageCount())
}

func TestFilterResetsPage(t *testing.T) {
	tbl := newTestTable(newRows(30))
	tbl.NextPage()

	tbl.SetFilter("status", func(r row) bool { return r.status == "Ready" })
	assert.Equal(t, 0, tbl.Page())
}

func TestEmptyTable(t *testing.T) {
	tbl := newTestTable(nil)
	assert.Equal(t, 1, tbl.PageCount())
	assert.Empty(t, tbl.Visible())
	assert.Zero(t, tbl.Len())
}
