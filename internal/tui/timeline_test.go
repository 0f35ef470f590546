package tui

import (
	"testing"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimeline struct {
	state    service.TimelineState
	watchers int
	refresh  int
}

func (f *fakeTimeline) Watch(fn func(service.TimelineState)) func() {
	f.watchers++
	fn(f.state)
	return func() { f.watchers-- }
}

func (f *fakeTimeline) Refresh() { f.refresh++ }

func timelineFixture() []models.TimelineEntry {
	return []models.TimelineEntry{
		{ID: "3", Date: "2026-03-02", Timestamp: "9:15:00 AM", AQI: 160, Message: "Stay indoors\nDetails follow"},
		{ID: "2", Date: "2026-03-01", Timestamp: "6:00:00 PM", AQI: 40, Message: "Air is clean"},
		{ID: "1", Date: "2026-03-01", Timestamp: "8:00:00 AM", AQI: 75, Message: "Moderate air"},
	}
}

func openTimeline(t *testing.T, svc *fakeTimeline) *timelineModel {
	t.Helper()

	m := newTimelineModel(svc)
	m.Update(m.open()())
	return m
}

func TestTimelineModel_ShowsEntries(t *testing.T) {
	svc := &fakeTimeline{state: service.TimelineState{Entries: timelineFixture()}}
	m := openTimeline(t, svc)

	view := m.View()

	assert.Contains(t, view, "3 entries")
	assert.Contains(t, view, "Stay indoors")
	assert.NotContains(t, view, "Details follow", "only the first line is listed")

	m.close()
	assert.Zero(t, svc.watchers)
}

func TestTimelineModel_DayFilter(t *testing.T) {
	svc := &fakeTimeline{state: service.TimelineState{Entries: timelineFixture()}}
	m := openTimeline(t, svc)

	press(m, "/")
	require.True(t, m.filtering)
	typeText(m, "2026-03-01")
	press(m, "enter")

	require.False(t, m.filtering)
	entries := m.entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0].ID)
	assert.Contains(t, m.View(), "Day: 2026-03-01")

	press(m, "esc")
	assert.Len(t, m.entries(), 3)
}

func TestTimelineModel_BadDay(t *testing.T) {
	svc := &fakeTimeline{state: service.TimelineState{Entries: timelineFixture()}}
	m := openTimeline(t, svc)

	press(m, "/")
	typeText(m, "01.03.26")
	press(m, "enter")

	assert.Equal(t, "Date must look like 2006-01-02", m.errMsg)
	assert.Len(t, m.entries(), 3)
}

func TestTimelineModel_Detail(t *testing.T) {
	svc := &fakeTimeline{state: service.TimelineState{Entries: timelineFixture()}}
	m := openTimeline(t, svc)

	press(m, "down", "enter")
	require.True(t, m.detail)
	assert.Contains(t, m.View(), "Air is clean")

	press(m, "esc")
	assert.False(t, m.detail)
	assert.Equal(t, 1, m.cursor)
}

func TestTimelineModel_CursorClampedOnShrink(t *testing.T) {
	svc := &fakeTimeline{state: service.TimelineState{Entries: timelineFixture()}}
	m := openTimeline(t, svc)
	press(m, "down", "down")

	m.Update(feedMsg[service.TimelineState]{src: m.feed, state: service.TimelineState{Entries: timelineFixture()[:1]}})

	assert.Zero(t, m.cursor)
}

func TestTimelineModel_Refresh(t *testing.T) {
	svc := &fakeTimeline{}
	m := openTimeline(t, svc)

	press(m, "r")

	assert.Equal(t, 1, svc.refresh)
	assert.Contains(t, m.View(), "no announcements")
}
