package archive

import "time"

const (
	monthSlugLayout  = "2006-01"
	daySlugLayout    = "2006-01-02"
	monthLabelLayout = "January 2006"

	// DayDisplayLayout is the fixed "DD Mon YYYY" format used for day links.
	DayDisplayLayout = "02 Jan 2006"
)

// MonthSlug returns the "YYYY-MM" slug for t.
func MonthSlug(t time.Time) string {
	return t.Format(monthSlugLayout)
}

// DaySlug returns the "YYYY-MM-DD" slug for t.
func DaySlug(t time.Time) string {
	return t.Format(daySlugLayout)
}

// MonthLabel returns a "January 2006" label for t.
func MonthLabel(t time.Time) string {
	return t.Format(monthLabelLayout)
}

// FormatDay renders t as "05 Mar 2021" in UTC.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayDisplayLayout)
}

// ParseMonth parses a "YYYY-MM" slug into the first of that month, UTC.
func ParseMonth(slug string) (time.Time, error) {
	return time.Parse(monthSlugLayout, slug)
}

// ParseDay parses a "YYYY-MM-DD" slug into midnight of that day, UTC.
func ParseDay(slug string) (time.Time, error) {
	return time.Parse(daySlugLayout, slug)
}

// FirstOfMonth truncates t to midnight on the first of its month, UTC.
func FirstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfDay truncates t to midnight, UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
