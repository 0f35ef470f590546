// Package table is a client-side view over a snapshot of rows: column
// filters, a single-column sort, pagination and a row selection that
// survives re-fetches.
//
// Filtering, sorting and paging never touch the server. A new snapshot
// replaces the rows wholesale and drops selections whose ids vanished.
package table

import (
	"errors"
	"slices"
)

// DefaultPageSize matches the accounts table of the web dashboard.
const DefaultPageSize = 10

// ErrUnknownColumn is returned when sorting by a column that was never
// registered.
var ErrUnknownColumn = errors.New("unknown column")

// Compare orders two rows of a column, like cmp.Compare.
type Compare[T any] func(a, b T) int

// Filter reports whether a row passes a column filter.
type Filter[T any] func(row T) bool

// Table holds rows of T identified by a string id. It is not safe for
// concurrent use; the console drives it from the UI goroutine.
type Table[T any] struct {
	idOf     func(T) string
	columns  map[string]Compare[T]
	rows     []T
	filters  map[string]Filter[T]
	sortBy   string
	desc     bool
	page     int
	pageSize int
	selected map[string]struct{}
}

// New returns an empty table. columns maps sortable column names to their
// comparison.
func New[T any](idOf func(T) string, columns map[string]Compare[T]) *Table[T] {
	return &Table[T]{
		idOf:     idOf,
		columns:  columns,
		filters:  make(map[string]Filter[T]),
		pageSize: DefaultPageSize,
		selected: make(map[string]struct{}),
	}
}

// SetRows replaces the snapshot. Selected ids that are no longer present are
// dropped and the current page is clamped.
func (t *Table[T]) SetRows(rows []T) {
	t.rows = slices.Clone(rows)

	present := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		present[t.idOf(r)] = struct{}{}
	}
	for id := range t.selected {
		if _, ok := present[id]; !ok {
			delete(t.selected, id)
		}
	}
	t.clampPage()
}

// Rows returns the unfiltered snapshot.
func (t *Table[T]) Rows() []T {
	return slices.Clone(t.rows)
}

// Len returns the size of the unfiltered snapshot.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// SetFilter installs or replaces the filter of a column and returns to the
// first page. A nil filter clears it.
func (t *Table[T]) SetFilter(column string, f Filter[T]) {
	if f == nil {
		delete(t.filters, column)
	} else {
		t.filters[column] = f
	}
	t.page = 0
}

// ClearFilters removes every filter.
func (t *Table[T]) ClearFilters() {
	clear(t.filters)
	t.page = 0
}

// SortBy orders rows by column. An empty column restores snapshot order.
func (t *Table[T]) SortBy(column string, desc bool) error {
	if column != "" {
		if _, ok := t.columns[column]; !ok {
			return ErrUnknownColumn
		}
	}
	t.sortBy = column
	t.desc = desc
	return nil
}

// Sort returns the active sort column and direction.
func (t *Table[T]) Sort() (column string, desc bool) {
	return t.sortBy, t.desc
}

// Filtered returns every row that passes all filters, sorted.
func (t *Table[T]) Filtered() []T {
	out := make([]T, 0, len(t.rows))
	for _, r := range t.rows {
		if t.passes(r) {
			out = append(out, r)
		}
	}

	if cmpFn, ok := t.columns[t.sortBy]; ok {
		slices.SortStableFunc(out, func(a, b T) int {
			if t.desc {
				return cmpFn(b, a)
			}
			return cmpFn(a, b)
		})
	}
	return out
}

// Visible returns the rows of the current page.
func (t *Table[T]) Visible() []T {
	rows := t.Filtered()
	start := t.page * t.pageSize
	if start >= len(rows) {
		return nil
	}
	end := min(start+t.pageSize, len(rows))
	return rows[start:end]
}

func (t *Table[T]) passes(r T) bool {
	for _, f := range t.filters {
		if !f(r) {
			return false
		}
	}
	return true
}

// ── pagination ───────────────────────────────────────────────────────────────

// SetPageSize changes the page size; values below one are ignored.
func (t *Table[T]) SetPageSize(n int) {
	if n < 1 {
		return
	}
	t.pageSize = n
	t.clampPage()
}

// Page returns the zero-based current page.
func (t *Table[T]) Page() int {
	return t.page
}

// PageCount returns the number of pages, at least one.
func (t *Table[T]) PageCount() int {
	n := len(t.Filtered())
	if n == 0 {
		return 1
	}
	return (n + t.pageSize - 1) / t.pageSize
}

// NextPage advances one page if possible.
func (t *Table[T]) NextPage() bool {
	if t.page+1 >= t.PageCount() {
		return false
	}
	t.page++
	return true
}

// PrevPage goes back one page if possible.
func (t *Table[T]) PrevPage() bool {
	if t.page == 0 {
		return false
	}
	t.page--
	return true
}

func (t *Table[T]) clampPage() {
	if last := t.PageCount() - 1; t.page > last {
		t.page = last
	}
}

// ── selection ────────────────────────────────────────────────────────────────

// Toggle flips the selection of id. Unknown ids are ignored.
func (t *Table[T]) Toggle(id string) {
	if !t.has(id) {
		return
	}
	if _, ok := t.selected[id]; ok {
		delete(t.selected, id)
		return
	}
	t.selected[id] = struct{}{}
}

// IsSelected reports whether id is selected.
func (t *Table[T]) IsSelected(id string) bool {
	_, ok := t.selected[id]
	return ok
}

// SelectAllVisible selects every row of the current page, after filters,
// sort and pagination. Rows on other pages keep their state.
func (t *Table[T]) SelectAllVisible() {
	for _, r := range t.Visible() {
		t.selected[t.idOf(r)] = struct{}{}
	}
}

// DeselectAllVisible clears the selection of every row on the current page.
func (t *Table[T]) DeselectAllVisible() {
	for _, r := range t.Visible() {
		delete(t.selected, t.idOf(r))
	}
}

// AllVisibleSelected reports whether the current page is non-empty and
// fully selected.
func (t *Table[T]) AllVisibleSelected() bool {
	visible := t.Visible()
	if len(visible) == 0 {
		return false
	}
	for _, r := range visible {
		if !t.IsSelected(t.idOf(r)) {
			return false
		}
	}
	return true
}

// ToggleAllVisible selects the current page, or clears it when it is
// already fully selected.
func (t *Table[T]) ToggleAllVisible() {
	if t.AllVisibleSelected() {
		t.DeselectAllVisible()
		return
	}
	t.SelectAllVisible()
}

// ClearSelection deselects everything.
func (t *Table[T]) ClearSelection() {
	clear(t.selected)
}

// Selected returns the selected ids in snapshot order.
func (t *Table[T]) Selected() []string {
	ids := make([]string, 0, len(t.selected))
	for _, r := range t.rows {
		if id := t.idOf(r); t.IsSelected(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectedCount returns the number of selected rows.
func (t *Table[T]) SelectedCount() int {
	return len(t.selected)
}

func (t *Table[T]) has(id string) bool {
	return slices.ContainsFunc(t.rows, func(r T) bool { return t.idOf(r) == id })
}
