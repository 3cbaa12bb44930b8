package stamp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical timestamp layout, identical to the EXIF DateTime
// string format.
const Layout = "2006:01:02 15:04:05"

// A grammar attempts to parse one human-readable date-time style.
// ok is false when the text does not match the grammar's structure or names
// a date that does not exist on the calendar.
type grammar func(text string) (t time.Time, ok bool)

// grammars are tried in order; the first match wins and no further grammars
// are attempted.
var grammars = []grammar{
	parseDutch,
	layoutGrammar("January 2, 2006 at 3:04PM"),
	layoutGrammar("January 2, 2006 3:04PM"),
	layoutGrammar("2 January 2006 15:04"),
	layoutGrammar("2006-01-02 15:04:05"),
}

// Parse normalizes a human-readable date-time into the canonical
// YYYY:MM:DD HH:MM:SS form.
//
// It reports ok == false when no supported grammar matches. There is no error
// value: unmatched text is indistinguishable from no date text at all, which
// is what callers scanning loosely structured documents want.
func Parse(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, g := range grammars {
		if t, ok := g(text); ok {
			return t.Format(Layout), true
		}
	}
	return "", false
}

var dutchMonths = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"maart":     time.March,
	"april":     time.April,
	"mei":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"augustus":  time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"december":  time.December,
}

var reDutch = regexp.MustCompile(`^(\d{1,2}) ([a-zA-Z]+) (\d{4}) (\d{1,2}):(\d{2})$`)

// parseDutch matches "<dag> <maand> <jaar> <uur>:<minuut>", e.g.
// "18 mei 2012 16:09". Seconds are not present in the source text and are
// fixed to 00. Month-name matching is case-insensitive.
func parseDutch(text string) (time.Time, bool) {
	m := reDutch.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	month, ok := dutchMonths[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	day, ok := atoi(m[1])
	if !ok {
		return time.Time{}, false
	}
	year, ok := atoi(m[3])
	if !ok {
		return time.Time{}, false
	}
	hour, ok := atoi(m[4])
	if !ok {
		return time.Time{}, false
	}
	minute, ok := atoi(m[5])
	if !ok {
		return time.Time{}, false
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)

	// time.Date normalizes impossible dates (Feb 31 becomes Mar 2 or 3);
	// a round-trip mismatch means the date never existed.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// layoutGrammar wraps a time.Parse layout as a grammar. time.Parse already
// rejects calendrically invalid dates and maps 12AM/12PM to hours 00/12.
func layoutGrammar(layout string) grammar {
	return func(text string) (time.Time, bool) {
		t, err := time.Parse(layout, text)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
