package timeutil

import "time"

// Canonical zero-padded layouts. All stored dates and times compare
// chronologically as plain strings only in this exact form.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	dateTimeLayout = DateLayout + " " + TimeLayout
)

// Lenient layouts accept both padded and unpadded digits on parse; output
// always goes through the canonical layouts above.
const (
	lenientDateLayout = "2006-1-2"
	lenientTimeLayout = "15:4"
)

// NormalizeDate reserializes a date string into the canonical zero-padded
// YYYY-MM-DD form. Input that does not parse is returned unchanged.
func NormalizeDate(date string) string {
	t, err := time.Parse(lenientDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(DateLayout)
}

// NormalizeTime reserializes a time string into the canonical zero-padded
// HH:MM form. Input that does not parse is returned unchanged.
func NormalizeTime(tm string) string {
	t, err := time.Parse(lenientTimeLayout, tm)
	if err != nil {
		return tm
	}
	return t.Format(TimeLayout)
}

// Combine parses a date and time pair into a single local instant. Inputs
// run through the normalizers first, so legacy unpadded rows still resolve.
func Combine(date, tm string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, NormalizeDate(date)+" "+NormalizeTime(tm), time.Local)
}

// Today formats an instant as a canonical (date, time) reference point.
func Today(now time.Time) (string, string) {
	return now.Format(DateLayout), now.Format(TimeLayout)
}
