package order

import (
	"fmt"
	"strings"
	"time"
)

// Vendor exports deliver timestamps either in ISO form or in a
// localized 12-hour pattern "YYYY-MM-DD <meridiem> H:MM:SS" where the
// meridiem token depends on the export locale. Both forms are parsed
// here; anything malformed degrades to the current instant so a bad
// row falls out of range instead of crashing the batch.

var meridiemPM = map[string]bool{
	"오후": true,
	"PM": true,
	"pm": true,
}

var meridiemAM = map[string]bool{
	"오전": true,
	"AM": true,
	"am": true,
}

// ParseVendorTime converts a vendor timestamp string into a time.Time.
// Pure for any well-formed input; malformed input returns time.Now().
func ParseVendorTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now()
	}

	if strings.Contains(s, "T") {
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", s[:min(len(s), 19)], time.Local); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		return time.Now()
	}

	parts := strings.Fields(s)
	if len(parts) < 3 {
		// Plain "YYYY-MM-DD HH:MM:SS" or a bare date
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
			return t
		}
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			return t
		}
		return time.Now()
	}

	datePart, meridiem, timePart := parts[0], parts[1], parts[2]

	var hour, minute, sec int
	n, err := fmt.Sscanf(timePart, "%d:%d:%d", &hour, &minute, &sec)
	if err != nil && n < 2 {
		return time.Now()
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || sec < 0 || sec > 59 {
		return time.Now()
	}

	switch {
	case meridiemPM[meridiem]:
		if hour < 12 {
			hour += 12
		}
	case meridiemAM[meridiem]:
		if hour == 12 {
			hour = 0
		}
	default:
		return time.Now()
	}

	iso := fmt.Sprintf("%sT%02d:%02d:%02d", datePart, hour, minute, sec)
	t, err := time.ParseInLocation("2006-01-02T15:04:05", iso, time.Local)
	if err != nil {
		return time.Now()
	}
	return t
}

// VendorDate normalizes a vendor timestamp to its calendar date
// (local midnight). Used for rule window comparisons, which are
// date-granular.
func VendorDate(s string) time.Time {
	t := ParseVendorTime(s)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatVendorTime renders a time back into the localized 12-hour
// convention using the given meridiem tokens. Round-trip counterpart
// of ParseVendorTime for exports that expect vendor-local formats.
func FormatVendorTime(t time.Time, amToken, pmToken string) string {
	hour := t.Hour()
	token := amToken
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		token = pmToken
	case hour > 12:
		hour -= 12
		token = pmToken
	}
	return fmt.Sprintf("%s %s %d:%02d:%02d", t.Format("2006-01-02"), token, hour, t.Minute(), t.Second())
}
