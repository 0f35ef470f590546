package models

import "time"

// TimelineEntry is an immutable record of a past announcement or scan.
type TimelineEntry struct {
	ID                string  `json:"_id,omitempty"`
	Date              string  `json:"date"`
	Timestamp         string  `json:"timestamp"`
	AQI               float64 `json:"aqi"`
	PM25              float64 `json:"pm2_5"`
	PM10              float64 `json:"pm10"`
	CO                float64 `json:"co"`
	NO2               float64 `json:"no2"`
	ScannedBy         string  `json:"scanned_by"`
	ScannedUsingModel string  `json:"scanned_using_model"`
	Message           string  `json:"message"`
}

var timelineLayouts = []string{
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"2006-01-02 15:04:05",
	"01/02/2006 3:04:05 PM",
	"01/02/2006 3:04 pm",
	"2006-01-02",
}

// Time combines Date and Timestamp. Entries with an unparsable moment report
// false and sort after every parsable one.
func (e TimelineEntry) Time() (time.Time, bool) {
	if t, ok := parseDate(e.Date+" "+e.Timestamp, timelineLayouts); ok {
		return t, true
	}
	return parseDate(e.Date, timelineLayouts)
}

// HistoryDate formats t the way history entries store their date.
func HistoryDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// HistoryTime formats t the way history entries store their time of day.
func HistoryTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}
