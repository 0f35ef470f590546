// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
)

// readingSimulator records a plausible reading of one sensor model on every
// tick, standing in for the physical sensor.
type readingSimulator struct {
	readings service.ReadingService
	model    string
	interval time.Duration
	rnd      *rand.Rand

	logger *logger.Logger
}

func NewReadingSimulator(readings service.ReadingService, model string, interval time.Duration, logger *logger.Logger) Worker {
	return &readingSimulator{
		readings: readings,
		model:    model,
		interval: interval,
		rnd:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger:   logger.WithStr("worker", "reading_simulator"),
	}
}

func (s *readingSimulator) Run(ctx context.Context) {
	s.logger.Info().Str("model", s.model).Dur("interval", s.interval).Msg("reading simulator started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reading simulator stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *readingSimulator) tick(ctx context.Context) {
	saved, err := s.readings.Record(ctx, s.next())
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Msg("error recording simulated reading")
		}
		return
	}

	s.logger.Debug().Str("id", saved.ID).Float64("aqi", saved.AQI).Msg("simulated reading recorded")
}

// next draws pollutant values in ranges a school campus sensor reports. AQI
// follows PM2.5 so that levels and concentrations stay consistent.
func (s *readingSimulator) next() models.Reading {
	pm25 := s.between(5, 80)

	return models.Reading{
		AQI:    round1(pm25 * 2.1),
		PM25:   round1(pm25),
		PM10:   round1(pm25 * s.between(1.2, 1.8)),
		CO:     round1(s.between(0.2, 9)),
		NO2:    round1(s.between(5, 60)),
		Status: models.SensorOnline,
		Model:  s.model,
	}
}

func (s *readingSimulator) between(lo, hi float64) float64 {
	return lo + s.rnd.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
