package archive

import "fmt"

// Dayline is the insertion-ordered set of days of a month, keyed by slug.
type Dayline struct {
	days  []DayEntry
	index map[string]int
}

// NewDayline returns a dayline holding days in the given order.
func NewDayline(days ...DayEntry) *Dayline {
	d := &Dayline{}
	for _, day := range days {
		d.Put(day)
	}
	return d
}

// Put appends day, or replaces the entry with the same slug in place.
func (d *Dayline) Put(day DayEntry) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[day.Slug]; ok {
		d.days[i] = day
		return
	}
	d.index[day.Slug] = len(d.days)
	d.days = append(d.days, day)
}

// Get looks up a day by slug.
func (d *Dayline) Get(slug string) (DayEntry, bool) {
	if d == nil {
		return DayEntry{}, false
	}
	i, ok := d.index[slug]
	if !ok {
		return DayEntry{}, false
	}
	return d.days[i], true
}

// Len is the number of days.
func (d *Dayline) Len() int {
	if d == nil {
		return 0
	}
	return len(d.days)
}

// Days returns a copy of the days in insertion order.
func (d *Dayline) Days() []DayEntry {
	if d == nil {
		return nil
	}
	return append([]DayEntry(nil), d.days...)
}

// Last returns the most recently inserted day.
func (d *Dayline) Last() (DayEntry, bool) {
	if d.Len() == 0 {
		return DayEntry{}, false
	}
	return d.days[len(d.days)-1], true
}

// Validate checks every day in the dayline.
func (d *Dayline) Validate() error {
	for _, day := range d.Days() {
		if err := day.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BuildDayline computes the days of a single month. Days are listed oldest
// first, or newest first when newOnTop is set, and each carries the page its
// first displayed message lands on.
func BuildDayline(msgs []Message, perPage int, newOnTop bool) (*Dayline, error) {
	if perPage < 1 {
		return nil, fmt.Errorf("archive: per page must be positive, got %d", perPage)
	}
	sorted := append([]Message(nil), msgs...)
	SortMessages(sorted)
	total := len(sorted)

	var days []DayEntry
	for i, m := range sorted {
		if n := len(days); n > 0 && m.Date.SameDay(days[n-1].Date) {
			days[n-1].Count++
			if newOnTop {
				// Newest message of the day is displayed first.
				days[n-1].Page = PageOf(i, total, perPage, true)
			}
			continue
		}
		start := StartOfDay(m.Date.Time)
		days = append(days, DayEntry{
			Slug:  DaySlug(start),
			Date:  start,
			Count: 1,
			Page:  PageOf(i, total, perPage, newOnTop),
		})
	}
	if newOnTop {
		reverse(days)
	}
	return NewDayline(days...), nil
}
