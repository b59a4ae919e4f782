package format

import (
	"strconv"
	"strings"
	"time"
)

// ISOTimestampLayout is the UTC, millisecond precision layout used by machine readable exports.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z"

// Duration renders worked minutes as H:MMh, e.g. 0:00h, 1:05h, 8:00h.
// Negative minutes are clamped to zero.
func Duration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h := minutes / 60
	m := minutes % 60

	var b strings.Builder
	b.WriteString(strconv.Itoa(h))
	b.WriteByte(':')
	if m < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(m))
	b.WriteByte('h')
	return b.String()
}

// CompactDuration renders worked minutes for KPI cards: "8 h", "5 m", "1 h 5 m".
// Zero renders as "0 m".
func CompactDuration(minutes int) string {
	if minutes <= 0 {
		return "0 m"
	}
	h := minutes / 60
	m := minutes % 60

	switch {
	case h > 0 && m > 0:
		return strconv.Itoa(h) + " h " + strconv.Itoa(m) + " m"
	case h > 0:
		return strconv.Itoa(h) + " h"
	default:
		return strconv.Itoa(m) + " m"
	}
}

// ISOTimestamp renders t in UTC with millisecond precision.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOTimestampLayout)
}
