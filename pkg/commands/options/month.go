package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/logbook/pkg/archive"
)

const (
	layoutMonth      = "2006-1"
	layoutMonthShort = "1"
)

// MonthOptions picks a single archive month.
type MonthOptions struct {
	MonthString string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.MonthString, "month", "",
		`Specify a month, example: --month="2021-01" or --month="3".`)
}

// GetMonth parses the month, a bare month number means the current year.
// The empty string is the current month.
func (o *MonthOptions) GetMonth(now time.Time) (time.Time, error) {
	if o.MonthString == "" {
		return archive.FirstOfMonth(now), nil
	}
	if t, err := archive.ParseMonth(o.MonthString); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layoutMonth, o.MonthString); err == nil {
		return t, nil
	}
	t, err := time.Parse(layoutMonthShort, o.MonthString)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", o.MonthString)
	}
	return time.Date(now.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
