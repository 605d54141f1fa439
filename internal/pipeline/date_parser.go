package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dateFormats is the ordered ladder of layouts tried against cleaned
// deadline/published strings. Organization-specific idioms (the UNGM
// "03-Sep-25" style, US and UK slash dates) come after the unambiguous
// ISO forms.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-06",
	"2-Jan-06",
	"02-Jan-2006",
	"2 January 2006",
	"02 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"01/02/2006",
	"02/01/2006", // UK format
	"02.01.2006",
}

// parseDateRobust attempts to parse free-text dates, trying the format
// ladder first and regex extraction second. Date-only values resolve to end
// of day UTC so a deadline "today" is still in the future this morning.
func parseDateRobust(text string) (time.Time, error) {
	text = cleanDateString(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, text); err == nil {
			if strings.Contains(format, ":") {
				return t.UTC(), nil
			}
			return toEndOfDay(t), nil
		}
	}

	if t := parseDateWithRegex(text); !t.IsZero() {
		return toEndOfDay(t), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", text)
}

// toEndOfDay sets the time to 23:59:59 UTC.
func toEndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

var (
	isoDateRegex   = regexp.MustCompile(`\b(20\d{2})-(\d{2})-(\d{2})\b`)
	slashDateRegex = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(20\d{2})\b`)
	monthNameRegex = regexp.MustCompile(`\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+(\d{1,2}),?\s+(20\d{2})\b`)
	dayFirstRegex  = regexp.MustCompile(`\b(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+(20\d{2})\b`)
	abbrevRegex    = regexp.MustCompile(`\b(\d{1,2})-(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)-(\d{2})\b`)
)

// parseDateWithRegex extracts a date embedded in longer text.
func parseDateWithRegex(text string) time.Time {
	if m := isoDateRegex.FindString(text); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return t
		}
	}

	if m := abbrevRegex.FindStringSubmatch(text); len(m) == 4 {
		if t, err := time.Parse("2-Jan-06", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); err == nil {
			return t
		}
	}

	if m := slashDateRegex.FindStringSubmatch(text); len(m) == 4 {
		dateStr := fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])
		if t, err := time.Parse("1/2/2006", dateStr); err == nil {
			return t
		}
		// Swap day/month for UK-style dates where month > 12.
		dateStr = fmt.Sprintf("%s/%s/%s", m[2], m[1], m[3])
		if t, err := time.Parse("1/2/2006", dateStr); err == nil {
			return t
		}
	}

	if m := monthNameRegex.FindStringSubmatch(text); len(m) == 4 {
		dateStr := fmt.Sprintf("%s %s %s", m[1], m[2], m[3])
		for _, f := range []string{"January 2 2006", "Jan 2 2006"} {
			if t, err := time.Parse(f, dateStr); err == nil {
				return t
			}
		}
	}

	if m := dayFirstRegex.FindStringSubmatch(text); len(m) == 4 {
		dateStr := fmt.Sprintf("%s %s %s", m[1], m[2], m[3])
		for _, f := range []string{"2 January 2006", "2 Jan 2006"} {
			if t, err := time.Parse(f, dateStr); err == nil {
				return t
			}
		}
	}

	return time.Time{}
}

// cleanDateString removes label prefixes and normalizes meridiem markers.
func cleanDateString(s string) string {
	s = normalizeSpace(s)
	prefixes := []string{
		"Closing date:", "Deadline:", "Due date:", "Publication date:",
		"Published:", "Posted:", "Expires:", "Ends:",
		"Fecha límite:", "Fecha de cierre:", "Cierre:",
	}
	sLower := strings.ToLower(s)
	for _, p := range prefixes {
		if idx := strings.Index(sLower, strings.ToLower(p)); idx != -1 {
			s = s[idx+len(p):]
			sLower = sLower[idx+len(p):]
		}
	}

	s = strings.ReplaceAll(s, "a.m.", "AM")
	s = strings.ReplaceAll(s, "p.m.", "PM")
	return strings.TrimSpace(s)
}
