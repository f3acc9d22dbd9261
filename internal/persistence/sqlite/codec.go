package sqlite

import "time"

// Storage layouts. Timestamps are naive local time, matching the API's
// serialization; dates compare correctly as text in range queries.
const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02T15:04:05"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.Local)
}

func formatDateTime(t time.Time) string {
	return t.Format(datetimeLayout)
}

func parseDateTime(value string) (time.Time, error) {
	return time.ParseInLocation(datetimeLayout, value, time.Local)
}
