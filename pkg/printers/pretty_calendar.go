package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/logbook/pkg/archive"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints month as a week grid, highlighting days that have
// messages.
func (pp *PrettyPrint) Calendar(month time.Time, d *archive.Dayline) {
	count := make([]int, DaysIn(month))
	for _, day := range d.Days() {
		if archive.MonthSlug(day.Date) != archive.MonthSlug(month) {
			continue
		}
		count[day.Date.Day()-1] += day.Count
	}
	pp.PrintMonthCount(month, count)
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	out := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := archive.MonthLabel(then)
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(out, "%s%s\n", strings.Repeat(" ", mid), m)

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(out, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(out, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
