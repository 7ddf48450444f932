package archive

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Message is a single archived message. Only the id and date take part in
// indexing; user and content are carried along for the store.
type Message struct {
	ID      int64     `json:"id"`
	Date    Timestamp `json:"date"`
	User    string    `json:"user,omitempty"`
	Content string    `json:"content,omitempty"`
}

// ParseTime parses an RFC 3339 timestamp.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is a time that marshals as an RFC 3339 string in UTC.
type Timestamp struct {
	time.Time
}

// SameDay reports whether t and then fall on the same UTC day.
func (t Timestamp) SameDay(then time.Time) bool {
	return StartOfDay(t.Time).Equal(StartOfDay(then))
}

// SameMonth reports whether t and then fall in the same UTC month.
func (t Timestamp) SameMonth(then time.Time) bool {
	return FirstOfMonth(t.Time).Equal(FirstOfMonth(then))
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// SortMessages orders messages oldest first, breaking ties by id.
func SortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		lt, rt := msgs[i].Date.Time, msgs[j].Date.Time
		if lt.Equal(rt) {
			return msgs[i].ID < msgs[j].ID
		}
		return lt.Before(rt)
	})
}

// CountMonths aggregates messages by month. Months are returned oldest first,
// or newest first when newOnTop is set.
func CountMonths(msgs []Message, newOnTop bool) []MonthEntry {
	sorted := append([]Message(nil), msgs...)
	SortMessages(sorted)

	var months []MonthEntry
	for _, m := range sorted {
		if n := len(months); n > 0 && m.Date.SameMonth(months[n-1].Date) {
			months[n-1].Count++
			continue
		}
		months = append(months, NewMonth(m.Date.Time, 1))
	}
	if newOnTop {
		reverse(months)
	}
	return months
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
