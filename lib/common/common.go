package common

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02T15:04:05Z07:00"

func FormatDateRange(start int64, end int64) string {
	return fmt.Sprintf("%s to %s", FormatDate(start), FormatDate(end))
}

// FormatDate formats seconds since the unix epoch in UTC.
func FormatDate(value int64) string {
	return FormatTime(time.Unix(value, 0))
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(dateFormat)
}
