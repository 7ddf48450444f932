// Package archive holds the time-bucketed view of a message archive: the
// per-day and per-month counts that index pages are built from.
package archive

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidEntry is returned when an entry is missing a slug, a date, or has
// a negative count.
var ErrInvalidEntry = errors.New("archive: invalid entry")

// DayEntry is one day's message count within a month.
type DayEntry struct {
	Slug  string    `json:"slug"`
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
	// Page is the 1-based page of the month that holds the day's first
	// displayed message.
	Page int `json:"page"`
}

// Validate reports whether the entry can be rendered.
func (d DayEntry) Validate() error {
	switch {
	case d.Slug == "":
		return fmt.Errorf("%w: day has no slug", ErrInvalidEntry)
	case d.Date.IsZero():
		return fmt.Errorf("%w: day %q has no date", ErrInvalidEntry, d.Slug)
	case d.Count < 0:
		return fmt.Errorf("%w: day %q has negative count %d", ErrInvalidEntry, d.Slug, d.Count)
	case d.Page < 1:
		return fmt.Errorf("%w: day %q has page %d", ErrInvalidEntry, d.Slug, d.Page)
	}
	return nil
}

// MonthEntry is one month's aggregate within a year.
type MonthEntry struct {
	Slug  string    `json:"slug"`
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// NewMonth returns the entry for the month containing t.
func NewMonth(t time.Time, count int) MonthEntry {
	first := FirstOfMonth(t)
	return MonthEntry{
		Slug:  MonthSlug(first),
		Label: MonthLabel(first),
		Date:  first,
		Count: count,
	}
}

// Validate reports whether the entry can be rendered.
func (m MonthEntry) Validate() error {
	switch {
	case m.Slug == "":
		return fmt.Errorf("%w: month has no slug", ErrInvalidEntry)
	case m.Count < 0:
		return fmt.Errorf("%w: month %q has negative count %d", ErrInvalidEntry, m.Slug, m.Count)
	}
	return nil
}

// Year is the months of a single year in display order.
type Year struct {
	Year   int          `json:"year"`
	Months []MonthEntry `json:"months"`
}

// Timeline is the year -> months grouping used by the top level index.
// Years keep the order in which they were first seen.
type Timeline []Year

// Months flattens the timeline back into a single ordered list.
func (t Timeline) Months() []MonthEntry {
	var all []MonthEntry
	for _, y := range t {
		all = append(all, y.Months...)
	}
	return all
}

// Validate checks every month in the timeline.
func (t Timeline) Validate() error {
	for _, y := range t {
		if len(y.Months) == 0 {
			return fmt.Errorf("%w: year %d has no months", ErrInvalidEntry, y.Year)
		}
		for _, m := range y.Months {
			if err := m.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// GroupTimeline buckets months by year. Both years and months keep the order
// of the input.
func GroupTimeline(months []MonthEntry) Timeline {
	var t Timeline
	index := make(map[int]int)
	for _, m := range months {
		y := m.Date.Year()
		i, ok := index[y]
		if !ok {
			i = len(t)
			index[y] = i
			t = append(t, Year{Year: y})
		}
		t[i].Months = append(t[i].Months, m)
	}
	return t
}
