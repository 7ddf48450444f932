package render

import (
	"fmt"

	"tableflip.dev/logbook/pkg/archive"
)

// LinkBuilder maps a month and one of its pages to the file that page is
// published as.
type LinkBuilder interface {
	Filename(month archive.MonthEntry, page int) string
}

// LinkFunc adapts a plain function to LinkBuilder.
type LinkFunc func(month archive.MonthEntry, page int) string

func (f LinkFunc) Filename(month archive.MonthEntry, page int) string {
	return f(month, page)
}

// Paginator names month pages the way the archive publishes them: the page a
// reader lands on first is "{slug}.html" and every other page gets a "_N"
// suffix.
//
// Oldest-first archives land on page 1. New-on-top archives land on the last
// page, so TotalPages must be set for them.
type Paginator struct {
	NewOnTop   bool
	TotalPages int
}

func (p Paginator) Filename(month archive.MonthEntry, page int) string {
	if p.landing(page) {
		return pageName(month.Slug)
	}
	return fmt.Sprintf("%s_%d.html", month.Slug, page)
}

func (p Paginator) landing(page int) bool {
	if p.NewOnTop {
		return page >= p.TotalPages
	}
	return page <= 1
}
