package tui

import (
	"testing"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadings struct {
	display service.DisplayState
	ranges  []service.TimeRange
	active  int
	refresh int
}

func (f *fakeReadings) WatchDisplay(fn func(service.DisplayState)) func() {
	f.active++
	fn(f.display)
	return func() { f.active-- }
}

func (f *fakeReadings) WatchRadar(fn func(service.RadarState)) func() {
	f.active++
	return func() { f.active-- }
}

func (f *fakeReadings) WatchSeries(r service.TimeRange, fn func(service.SeriesState)) func() {
	f.active++
	f.ranges = append(f.ranges, r)
	fn(service.SeriesState{Range: r})
	return func() { f.active-- }
}

func (f *fakeReadings) Refresh() { f.refresh++ }

func TestDashboardModel_OpenAndClose(t *testing.T) {
	svc := &fakeReadings{display: service.DisplayState{Current: models.Reading{AQI: 42, Model: "AG-01"}}}
	m := newDashboardModel(svc)

	require.NotNil(t, m.open())
	assert.Equal(t, 3, svc.active)
	assert.Equal(t, []service.TimeRange{service.DefaultTimeRange}, svc.ranges)

	m.close()
	assert.Zero(t, svc.active)
}

func TestDashboardModel_TimeRangeResubscribes(t *testing.T) {
	svc := &fakeReadings{}
	m := newDashboardModel(svc)
	m.open()
	oldFeed := m.seriesFeed

	cmd := press(m, "t")
	require.NotNil(t, cmd)

	assert.Equal(t, service.Range7d, m.rng)
	assert.Equal(t, []service.TimeRange{service.Range24h, service.Range7d}, svc.ranges)
	assert.Equal(t, 3, svc.active, "the old series subscription is dropped")

	// a late state of the previous window is ignored
	_, late := m.Update(feedMsg[service.SeriesState]{src: oldFeed, state: service.SeriesState{Range: service.Range24h}})
	assert.Nil(t, late)

	m.Update(cmd())
	assert.Equal(t, service.Range7d, m.series.Range)
}

func TestDashboardModel_Refresh(t *testing.T) {
	svc := &fakeReadings{}
	m := newDashboardModel(svc)
	m.open()

	press(m, "r")

	assert.Equal(t, 1, svc.refresh)
}
