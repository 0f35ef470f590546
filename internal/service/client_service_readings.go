package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/models"
)

// Trend is the direction of a pollutant between two consecutive readings.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// AQILevel is the qualitative band of an AQI value.
type AQILevel string

const (
	LevelVeryLow       AQILevel = "Very Low"
	LevelLow           AQILevel = "Low"
	LevelModerate      AQILevel = "Moderate"
	LevelHigh          AQILevel = "High"
	LevelVeryHigh      AQILevel = "Very High"
	LevelExtremelyHigh AQILevel = "Extremely High"
)

// LevelFor returns the band of aqi.
func LevelFor(aqi float64) AQILevel {
	switch {
	case aqi <= 20:
		return LevelVeryLow
	case aqi <= 40:
		return LevelLow
	case aqi <= 90:
		return LevelModerate
	case aqi <= 200:
		return LevelHigh
	case aqi <= 280:
		return LevelVeryHigh
	default:
		return LevelExtremelyHigh
	}
}

// PollutantUnit returns the measuring unit of p, "" for the AQI.
func PollutantUnit(p models.Pollutant) string {
	switch p {
	case models.PollutantPM25, models.PollutantPM10:
		return "µg/m³"
	case models.PollutantCO:
		return "ppm"
	case models.PollutantNO2:
		return "ppb"
	default:
		return ""
	}
}

// DisplayState is the latest reading of the configured sensor together with
// the one before it.
type DisplayState struct {
	Current     models.Reading
	Previous    models.Reading
	HasCurrent  bool
	HasPrevious bool
	ViewMeta
}

// Trend compares p between the current and the previous reading.
func (s DisplayState) Trend(p models.Pollutant) Trend {
	if !s.HasCurrent || !s.HasPrevious {
		return TrendFlat
	}
	cur, prev := s.Current.Value(p), s.Previous.Value(p)
	switch {
	case cur > prev:
		return TrendUp
	case cur < prev:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Level returns the band of the current AQI.
func (s DisplayState) Level() AQILevel {
	return LevelFor(s.Current.AQI)
}

// RadarPoint is one axis of the radar chart.
type RadarPoint struct {
	Pollutant models.Pollutant
	Label     string
	Value     float64
}

// RadarState holds the pollutant values of the latest reading.
type RadarState struct {
	Points []RadarPoint
	ViewMeta
}

// TimeRange is the window of the time series chart.
type TimeRange string

const (
	Range24h TimeRange = "24h"
	Range7d  TimeRange = "7d"
	Range30d TimeRange = "30d"
	Range90d TimeRange = "90d"
)

// DefaultTimeRange is the window shown when the chart opens.
const DefaultTimeRange = Range24h

// TimeRanges lists the selectable windows in display order.
var TimeRanges = []TimeRange{Range24h, Range7d, Range30d, Range90d}

var ErrUnknownTimeRange = errors.New("unknown time range")

// ParseTimeRange accepts one of [TimeRanges].
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(s)
	if !slices.Contains(TimeRanges, r) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeRange, s)
	}
	return r, nil
}

// Duration returns the length of r. Unknown ranges fall back to a day.
func (r TimeRange) Duration() time.Duration {
	const day = 24 * time.Hour
	switch r {
	case Range7d:
		return 7 * day
	case Range30d:
		return 30 * day
	case Range90d:
		return 90 * day
	default:
		return day
	}
}

// Next returns the window after r, wrapping around.
func (r TimeRange) Next() TimeRange {
	i := slices.Index(TimeRanges, r)
	return TimeRanges[(i+1)%len(TimeRanges)]
}

// FilterRange returns the readings dated within r before now, oldest first.
// Readings without a parseable date are dropped.
func FilterRange(readings []models.Reading, r TimeRange, now time.Time) []models.Reading {
	since := now.Add(-r.Duration())

	type dated struct {
		reading models.Reading
		at      time.Time
	}
	kept := make([]dated, 0, len(readings))
	for _, rd := range readings {
		at, ok := rd.Time()
		if !ok || at.Before(since) {
			continue
		}
		kept = append(kept, dated{reading: rd, at: at})
	}
	slices.SortStableFunc(kept, func(a, b dated) int { return a.at.Compare(b.at) })

	out := make([]models.Reading, len(kept))
	for i, d := range kept {
		out[i] = d.reading
	}
	return out
}

// SeriesState is the chart data for one window.
type SeriesState struct {
	Range    TimeRange
	Readings []models.Reading
	ViewMeta
}

type clientReadingsService struct {
	displayKey poller.Key
	radarKey   poller.Key
	chartKey   poller.Key
	model      string

	adapter   adapter.ServerAdapter
	scheduler *poller.Scheduler
	bus       *invalidation.Bus
	logger    *logger.Logger
	now       func() time.Time
}

func NewClientReadingsService(
	polling config.ClientPolling,
	serverAdapter adapter.ServerAdapter,
	sched *poller.Scheduler,
	bus *invalidation.Bus,
	log *logger.Logger,
) ClientReadingsService {
	endpoint := endpointReadings + polling.SensorModel
	return &clientReadingsService{
		displayKey: poller.Key{Endpoint: endpoint, Interval: polling.ReadingsInterval},
		radarKey:   poller.Key{Endpoint: endpoint, Interval: polling.RadarInterval},
		chartKey:   poller.Key{Endpoint: endpointChart, Interval: polling.ChartInterval},
		model:      polling.SensorModel,
		adapter:    serverAdapter,
		scheduler:  sched,
		bus:        bus,
		logger:     log,
		now:        time.Now,
	}
}

func (r *clientReadingsService) latest(ctx context.Context) ([]models.Reading, error) {
	return r.adapter.LatestReadings(ctx, r.model)
}

func (r *clientReadingsService) WatchDisplay(fn func(DisplayState)) func() {
	var (
		mu    sync.Mutex
		state = DisplayState{ViewMeta: ViewMeta{Loading: true}}
	)

	stop := r.watchReadings(r.displayKey, r.latest, func(snap poller.Snapshot[[]models.Reading]) {
		mu.Lock()
		state = advanceDisplay(state, snap)
		out := state
		mu.Unlock()
		fn(out)
	})
	return stop
}

// advanceDisplay folds snap into st. The previous reading moves only when
// the sensor reports a reading that differs from the current one.
func advanceDisplay(st DisplayState, snap poller.Snapshot[[]models.Reading]) DisplayState {
	st.ViewMeta = metaOf(snap)
	if snap.Err != nil || !snap.HasValue || len(snap.Value) == 0 {
		return st
	}

	latest := snap.Value[0]
	switch {
	case !st.HasCurrent:
		st.Current, st.HasCurrent = latest, true
	case !sameReading(st.Current, latest):
		st.Previous, st.HasPrevious = st.Current, true
		st.Current = latest
	}
	return st
}

func sameReading(a, b models.Reading) bool {
	if a.ID != "" || b.ID != "" {
		return a.ID == b.ID
	}
	return a == b
}

func (r *clientReadingsService) WatchRadar(fn func(RadarState)) func() {
	return r.watchReadings(r.radarKey, r.latest, func(snap poller.Snapshot[[]models.Reading]) {
		st := RadarState{ViewMeta: metaOf(snap)}
		if snap.HasValue && len(snap.Value) > 0 {
			st.Points = RadarPoints(snap.Value[0])
		}
		fn(st)
	})
}

// RadarPoints returns the five pollutant axes of rd.
func RadarPoints(rd models.Reading) []RadarPoint {
	points := make([]RadarPoint, 0, len(models.Pollutants))
	for _, p := range models.Pollutants {
		points = append(points, RadarPoint{Pollutant: p, Label: p.Label(), Value: rd.Value(p)})
	}
	return points
}

func (r *clientReadingsService) WatchSeries(tr TimeRange, fn func(SeriesState)) func() {
	return r.watchReadings(r.chartKey, r.adapter.ChartReadings, func(snap poller.Snapshot[[]models.Reading]) {
		st := SeriesState{Range: tr, ViewMeta: metaOf(snap)}
		if snap.HasValue {
			st.Readings = FilterRange(snap.Value, tr, r.now())
		}
		fn(st)
	})
}

func (r *clientReadingsService) Refresh() {
	r.scheduler.RefreshEndpoint(r.displayKey.Endpoint)
	r.scheduler.RefreshEndpoint(r.chartKey.Endpoint)
}

// watchReadings polls key and refreshes every loop of its endpoint on a
// readings invalidation.
func (r *clientReadingsService) watchReadings(
	key poller.Key,
	fetch poller.FetchFunc[[]models.Reading],
	fn func(poller.Snapshot[[]models.Reading]),
) func() {
	stopPoll := poller.Watch(r.scheduler, key, fetch, fn)
	stopBus := r.bus.Subscribe(invalidation.Readings, func() {
		r.scheduler.RefreshEndpoint(key.Endpoint)
	})

	return func() {
		stopBus()
		stopPoll()
	}
}
