package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]Window{
		"d":      {Days: 1},
		"day":    {Days: 1},
		"days":   {Days: 1},
		"w":      {Days: 7},
		"wk":     {Days: 7},
		"wks":    {Days: 7},
		"week":   {Days: 7},
		"weeks":  {Days: 7},
		"m":      {Months: 1},
		"mo":     {Months: 1},
		"mon":    {Months: 1},
		"month":  {Months: 1},
		"months": {Months: 1},
		"y":      {Years: 1},
		"yr":     {Years: 1},
		"yrs":    {Years: 1},
		"year":   {Years: 1},
		"years":  {Years: 1},
	}
)

// Window is a calendar span counted back from a point in time. Months and
// years follow the calendar rather than a fixed number of hours.
type Window struct {
	Years  int
	Months int
	Days   int
}

// IsZero reports whether w covers no time at all.
func (w Window) IsZero() bool {
	return w.Years == 0 && w.Months == 0 && w.Days == 0
}

// Since returns the instant w before now.
func (w Window) Since(now time.Time) time.Time {
	return now.AddDate(-w.Years, -w.Months, -w.Days)
}

// String renders w with y/m/w/d tokens, largest first.
func (w Window) String() string {
	if w.IsZero() {
		return "0d"
	}
	var b strings.Builder
	if w.Years > 0 {
		fmt.Fprintf(&b, "%dy", w.Years)
	}
	if w.Months > 0 {
		fmt.Fprintf(&b, "%dm", w.Months)
	}
	if weeks := w.Days / 7; weeks > 0 {
		fmt.Fprintf(&b, "%dw", weeks)
	}
	if days := w.Days % 7; days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	return b.String()
}

// ParseWindow parses a human-friendly window such as "12w", "6m" or "1y2m".
// An empty input is the zero Window, meaning no limit.
func ParseWindow(input string) (Window, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	var total Window
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return Window{}, fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total.Years += value * unit.Years
		total.Months += value * unit.Months
		total.Days += value * unit.Days

		remaining = remaining[len(matches[0]):]
	}

	if input != "" && total.IsZero() {
		return Window{}, fmt.Errorf("window must be greater than zero")
	}
	return total, nil
}
