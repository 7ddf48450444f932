package printers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/logbook/pkg/archive"
)

// PrettyPrint writes archive summaries for a terminal.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " message")
	default:
		_, _ = c.Fprintln(pp.out(), " messages")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Timeline prints one row per month, grouped under its year.
func (pp *PrettyPrint) Timeline(t archive.Timeline) {
	if len(t) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, y := range t {
		total := 0
		for _, m := range y.Months {
			total += m.Count
		}
		tbl.AddRow(bold.Sprint(y.Year), "", bold.Sprint(total))
		for _, m := range y.Months {
			tbl.AddRow("", m.Label, m.Count, faint.Sprint(m.Slug))
		}
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Dayline prints one row per day with the page it links to.
func (pp *PrettyPrint) Dayline(d *archive.Dayline) {
	if d.Len() == 0 {
		pp.none()
		return
	}

	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, day := range d.Days() {
		tbl.AddRow(archive.FormatDay(day.Date), day.Count, faint.Sprint("page "+strconv.Itoa(day.Page)))
	}
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Fragment prints rendered HTML as is.
func (pp *PrettyPrint) Fragment(html string) {
	_, _ = fmt.Fprintln(pp.out(), html)
}
