// Package get shows the archive timeline or a month's dayline, either as a
// terminal table or as the HTML fragment a build would publish.
package get

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/logbook/pkg/archive"
	"tableflip.dev/logbook/pkg/printers"
	"tableflip.dev/logbook/pkg/render"
	"tableflip.dev/logbook/pkg/store"
	"tableflip.dev/logbook/pkg/timeutil"
)

// Kind selects what Get shows.
type Kind string

const (
	Timeline Kind = "timeline"
	Dayline  Kind = "dayline"
)

type Get struct {
	Kind Kind
	// Month picks the month for Dayline.
	Month time.Time
	// Window limits Timeline to months overlapping the window, zero shows
	// all.
	Window   timeutil.Window
	Reverse  bool
	HTML     bool
	Calendar bool

	PerPage  int
	NewOnTop bool

	Persistence store.Persistence
	Out         io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}

	switch n.Kind {
	case Timeline, "":
		return n.timeline(ctx)
	case Dayline:
		return n.dayline(ctx)
	}
	return fmt.Errorf("can not get %q", n.Kind)
}

func (n *Get) order() render.Order {
	if n.Reverse {
		return render.Reverse
	}
	return render.Forward
}

func (n *Get) timeline(ctx context.Context) error {
	months := n.Persistence.Months(ctx, false)
	if !n.Window.IsZero() {
		now := time.Now
		if n.Now != nil {
			now = n.Now
		}
		since := archive.FirstOfMonth(n.Window.Since(now()))
		kept := months[:0]
		for _, m := range months {
			if !m.Date.Before(since) {
				kept = append(kept, m)
			}
		}
		months = kept
	}
	tl := archive.GroupTimeline(months)
	opts := render.TimelineOptions{Years: n.order(), Months: n.order()}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.HTML {
		html, err := render.RenderTimeline(tl, opts)
		if err != nil {
			return err
		}
		pp.Fragment(html)
		return nil
	}

	ordered := make(archive.Timeline, 0, len(tl))
	for _, y := range render.Ordered([]archive.Year(tl), opts.Years) {
		ordered = append(ordered, archive.Year{Year: y.Year, Months: render.Ordered(y.Months, opts.Months)})
	}
	pp.NewLine()
	pp.Title("Timeline")
	pp.Timeline(ordered)
	return nil
}

func (n *Get) dayline(ctx context.Context) error {
	if n.Month.IsZero() {
		return errors.New("can not get dayline, no month")
	}
	perPage := n.PerPage
	if perPage < 1 {
		perPage = 500
	}

	msgs := n.Persistence.List(ctx, n.Month)
	month := archive.NewMonth(n.Month, len(msgs))
	d, err := archive.BuildDayline(msgs, perPage, n.NewOnTop)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.HTML {
		link := render.Paginator{NewOnTop: n.NewOnTop, TotalPages: archive.TotalPages(len(msgs), perPage)}
		html, err := render.RenderDayline(d, month, n.order(), link)
		if err != nil {
			return err
		}
		pp.Fragment(html)
		return nil
	}

	days := render.Ordered(d.Days(), n.order())
	pp.NewLine()
	pp.TitleWithCount(month.Label, month.Count)
	if n.Calendar {
		pp.Calendar(month.Date, d)
	}
	pp.Dayline(archive.NewDayline(days...))
	return nil
}
