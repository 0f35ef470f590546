package models

import (
	"strings"
	"time"
)

// SensorOnline is the reading status reported by a powered sensor.
const SensorOnline = "on"

// Reading is a single air-quality sample produced by a sensor model.
type Reading struct {
	ID     string  `json:"_id,omitempty"`
	AQI    float64 `json:"aqi"`
	PM25   float64 `json:"pm2_5"`
	PM10   float64 `json:"pm10"`
	CO     float64 `json:"co"`
	NO2    float64 `json:"no2"`
	Status string  `json:"status,omitempty"`
	Model  string  `json:"model,omitempty"`

	// Timestamp and Date are formatted by the producer. Chart readings carry
	// a parseable date, see [Reading.Time].
	Timestamp string `json:"timestamp,omitempty"`
	Date      string `json:"date,omitempty"`
}

// Online reports whether the sensor that produced the reading was powered.
func (r Reading) Online() bool {
	return strings.EqualFold(r.Status, SensorOnline)
}

// Pollutant names a measured field of a [Reading].
type Pollutant string

const (
	PollutantAQI  Pollutant = "aqi"
	PollutantPM25 Pollutant = "pm2_5"
	PollutantPM10 Pollutant = "pm10"
	PollutantCO   Pollutant = "co"
	PollutantNO2  Pollutant = "no2"
)

// Pollutants lists every measured field in display order.
var Pollutants = []Pollutant{PollutantAQI, PollutantPM25, PollutantPM10, PollutantCO, PollutantNO2}

// Label returns the human readable name of p.
func (p Pollutant) Label() string {
	switch p {
	case PollutantAQI:
		return "AQI"
	case PollutantPM25:
		return "PM 2.5"
	case PollutantPM10:
		return "PM 10"
	case PollutantCO:
		return "Carbon Monoxide"
	case PollutantNO2:
		return "Nitrogen Dioxide"
	default:
		return string(p)
	}
}

// Value returns the measurement of p in r. Unknown pollutants read as zero.
func (r Reading) Value(p Pollutant) float64 {
	switch p {
	case PollutantAQI:
		return r.AQI
	case PollutantPM25:
		return r.PM25
	case PollutantPM10:
		return r.PM10
	case PollutantCO:
		return r.CO
	case PollutantNO2:
		return r.NO2
	default:
		return 0
	}
}

var readingDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Time parses the Date field of r. The second result is false when the date
// matches none of the known layouts.
func (r Reading) Time() (time.Time, bool) {
	return parseDate(r.Date, readingDateLayouts)
}

func parseDate(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
