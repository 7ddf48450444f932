// Package render turns pre-grouped archive data into the HTML list fragments
// used by the archive index pages, and into the month pages they link to.
//
// Rendering is pure: the same input always yields the same bytes, nothing is
// written anywhere, and every function is safe for concurrent use.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"tableflip.dev/logbook/pkg/archive"
)

// Order controls the direction a list is walked in.
type Order int

const (
	// Forward keeps insertion order.
	Forward Order = iota
	// Reverse walks the list from the end.
	Reverse
)

func (o Order) String() string {
	switch o {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder converts "forward" or "reverse" into an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward":
		return Forward, nil
	case "reverse":
		return Reverse, nil
	}
	return Forward, fmt.Errorf("render: unknown order %q", s)
}

// TimelineOptions sets the order of each nesting level of the timeline.
type TimelineOptions struct {
	Years  Order
	Months Order
}

type dayItem struct {
	Slug  string
	Href  string
	Date  string
	Count int
}

// RenderDayline renders the days of month as a list of links. Each link points
// at link.Filename(month, day.Page) anchored on the day slug.
func RenderDayline(d *archive.Dayline, month archive.MonthEntry, order Order, link LinkBuilder) (string, error) {
	if link == nil {
		return "", fmt.Errorf("render: dayline %q: nil link builder", month.Slug)
	}
	if err := d.Validate(); err != nil {
		return "", err
	}

	days := Ordered(d.Days(), order)
	items := make([]dayItem, 0, len(days))
	for _, day := range days {
		items = append(items, dayItem{
			Slug:  day.Slug,
			Href:  link.Filename(month, day.Page) + "#" + day.Slug,
			Date:  archive.FormatDay(day.Date),
			Count: day.Count,
		})
	}
	return execute(daylineTemplate, items)
}

type monthItem struct {
	Slug  string
	Href  string
	Label string
	Count int
}

type yearItem struct {
	Year   int
	Href   string
	Months []monthItem
}

// RenderTimeline renders the year -> month index. Each year heading links to
// the first month of that year as ordered by opts.Months.
func RenderTimeline(t archive.Timeline, opts TimelineOptions) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	years := Ordered([]archive.Year(t), opts.Years)
	items := make([]yearItem, 0, len(years))
	for _, y := range years {
		months := Ordered(y.Months, opts.Months)
		yi := yearItem{
			Year:   y.Year,
			Href:   pageName(months[0].Slug),
			Months: make([]monthItem, 0, len(months)),
		}
		for _, m := range months {
			yi.Months = append(yi.Months, monthItem{
				Slug:  m.Slug,
				Href:  pageName(m.Slug),
				Label: m.Label,
				Count: m.Count,
			})
		}
		items = append(items, yi)
	}
	return execute(timelineTemplate, items)
}

type pageItem struct {
	Page int
	Href string
}

// RenderPagination renders links to every page of month, 1 through
// totalPages, in the given order.
func RenderPagination(month archive.MonthEntry, totalPages int, order Order, link LinkBuilder) (string, error) {
	if link == nil {
		return "", fmt.Errorf("render: pagination %q: nil link builder", month.Slug)
	}
	if err := month.Validate(); err != nil {
		return "", err
	}
	if totalPages < 0 {
		return "", fmt.Errorf("%w: month %q has %d pages", archive.ErrInvalidEntry, month.Slug, totalPages)
	}

	pages := make([]pageItem, 0, totalPages)
	for p := 1; p <= totalPages; p++ {
		pages = append(pages, pageItem{Page: p, Href: link.Filename(month, p)})
	}
	return execute(paginationTemplate, Ordered(pages, order))
}

// RenderDayCounter renders the message count badge of a single day.
func RenderDayCounter(day archive.DayEntry) (string, error) {
	if err := day.Validate(); err != nil {
		return "", err
	}
	return execute(dayCounterTemplate, day)
}

// MonthPage is one published page of a month. Messages are in display
// order. The timeline and dayline are either pulled in from script
// fragments or embedded as already rendered HTML.
type MonthPage struct {
	Month      archive.MonthEntry
	Page       int
	TotalPages int
	Messages   []archive.Message

	TimelineScript string
	DaylineScript  string
	Timeline       string
	Dayline        string
}

type pageMessage struct {
	ID      int64
	User    string
	Content string
	Time    string
	ISO     string
}

type pageDay struct {
	Slug     string
	Date     string
	Messages []pageMessage
}

type pageData struct {
	Title          string
	Label          string
	TimelineScript string
	DaylineScript  string
	Timeline       template.HTML
	Dayline        template.HTML
	Pagination     template.HTML
	Days           []pageDay
}

// RenderPage renders a full month page. Each day section is anchored on the
// day slug and each message on its id, so dayline links resolve.
func RenderPage(p MonthPage, order Order, link LinkBuilder) (string, error) {
	if p.Page < 1 || p.Page > p.TotalPages {
		return "", fmt.Errorf("%w: page %d of %d in month %q", archive.ErrInvalidEntry, p.Page, p.TotalPages, p.Month.Slug)
	}
	pagination, err := RenderPagination(p.Month, p.TotalPages, order, link)
	if err != nil {
		return "", err
	}

	data := pageData{
		Title:          fmt.Sprintf("%s - page %d", p.Month.Label, p.Page),
		Label:          p.Month.Label,
		TimelineScript: p.TimelineScript,
		DaylineScript:  p.DaylineScript,
		// Both come out of the fragment renderers and are already escaped.
		Timeline:   template.HTML(p.Timeline),
		Dayline:    template.HTML(p.Dayline),
		Pagination: template.HTML(pagination),
	}
	for _, m := range p.Messages {
		if m.Date.IsZero() {
			return "", fmt.Errorf("%w: message %d has no date", archive.ErrInvalidEntry, m.ID)
		}
		slug := archive.DaySlug(m.Date.UTC())
		if n := len(data.Days); n == 0 || data.Days[n-1].Slug != slug {
			data.Days = append(data.Days, pageDay{Slug: slug, Date: archive.FormatDay(m.Date.Time)})
		}
		day := &data.Days[len(data.Days)-1]
		day.Messages = append(day.Messages, pageMessage{
			ID:      m.ID,
			User:    m.User,
			Content: m.Content,
			Time:    m.Date.UTC().Format("15:04"),
			ISO:     m.Date.String(),
		})
	}
	return execute(pageTemplate, data)
}

var scriptEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "${", `\${`)

// Script wraps a fragment in a document.write call so a static page can pull
// it in with a script tag.
func Script(fragment string) string {
	return "document.write(`\n" + scriptEscaper.Replace(fragment) + "\n`);\n"
}

func pageName(slug string) string {
	return slug + ".html"
}

// Ordered returns s in the requested order without touching the input.
func Ordered[T any](s []T, order Order) []T {
	out := append([]T(nil), s...)
	if order == Reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render: %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
