// Package mcp serves the archive indexes over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/logbook/pkg/archive"
	"tableflip.dev/logbook/pkg/render"
	"tableflip.dev/logbook/pkg/store"
)

// Service answers index queries for the MCP server.
type Service struct {
	Persistence store.Persistence
	PerPage     int
	NewOnTop    bool
}

// ErrMonthNotFound is returned when a month holds no messages.
var ErrMonthNotFound = errors.New("month not found")

// MonthSummary is a transport-friendly projection of a month.
type MonthSummary struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Count int    `json:"count"`
	Pages int    `json:"pages"`
}

// DaySummary is a transport-friendly projection of a day.
type DaySummary struct {
	Slug  string `json:"slug"`
	Date  string `json:"date"`
	Count int    `json:"count"`
	Page  int    `json:"page"`
	Href  string `json:"href"`
}

// NewService builds a service over p. A perPage below one uses 500.
func NewService(p store.Persistence, perPage int, newOnTop bool) *Service {
	if perPage < 1 {
		perPage = 500
	}
	return &Service{Persistence: p, PerPage: perPage, NewOnTop: newOnTop}
}

// ListMonths returns every month in archive order.
func (s *Service) ListMonths(ctx context.Context) ([]MonthSummary, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	months := s.Persistence.Months(ctx, s.NewOnTop)
	out := make([]MonthSummary, 0, len(months))
	for _, m := range months {
		out = append(out, MonthSummary{
			Slug:  m.Slug,
			Label: m.Label,
			Count: m.Count,
			Pages: archive.TotalPages(m.Count, s.PerPage),
		})
	}
	return out, nil
}

// Dayline returns the days of the month named by slug with the page link of
// each.
func (s *Service) Dayline(ctx context.Context, slug string) ([]DaySummary, error) {
	month, d, link, err := s.dayline(ctx, slug)
	if err != nil {
		return nil, err
	}
	out := make([]DaySummary, 0, d.Len())
	for _, day := range d.Days() {
		out = append(out, DaySummary{
			Slug:  day.Slug,
			Date:  archive.FormatDay(day.Date),
			Count: day.Count,
			Page:  day.Page,
			Href:  link.Filename(month, day.Page) + "#" + day.Slug,
		})
	}
	return out, nil
}

// Render returns the HTML fragment of kind: "timeline", "dayline" or
// "pagination". The month slug is ignored for the timeline.
func (s *Service) Render(ctx context.Context, kind, slug string, order render.Order) (string, error) {
	if s.Persistence == nil {
		return "", errors.New("persistence is not configured")
	}
	switch kind {
	case "timeline":
		tl := archive.GroupTimeline(s.Persistence.Months(ctx, false))
		return render.RenderTimeline(tl, render.TimelineOptions{Years: order, Months: order})
	case "dayline":
		month, d, link, err := s.dayline(ctx, slug)
		if err != nil {
			return "", err
		}
		return render.RenderDayline(d, month, order, link)
	case "pagination":
		month, _, link, err := s.dayline(ctx, slug)
		if err != nil {
			return "", err
		}
		return render.RenderPagination(month, link.TotalPages, order, link)
	}
	return "", fmt.Errorf("unknown fragment %q", kind)
}

// ListMessages returns the messages of the day named by slug, oldest first.
func (s *Service) ListMessages(ctx context.Context, slug string) ([]archive.Message, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	day, err := archive.ParseDay(slug)
	if err != nil {
		return nil, err
	}
	out := make([]archive.Message, 0)
	for _, m := range s.Persistence.List(ctx, day) {
		if m.Date.SameDay(day) {
			out = append(out, m)
		}
	}
	archive.SortMessages(out)
	return out, nil
}

func (s *Service) dayline(ctx context.Context, slug string) (archive.MonthEntry, *archive.Dayline, render.Paginator, error) {
	if s.Persistence == nil {
		return archive.MonthEntry{}, nil, render.Paginator{}, errors.New("persistence is not configured")
	}
	t, err := archive.ParseMonth(slug)
	if err != nil {
		return archive.MonthEntry{}, nil, render.Paginator{}, err
	}
	msgs := s.Persistence.List(ctx, t)
	if len(msgs) == 0 {
		return archive.MonthEntry{}, nil, render.Paginator{}, fmt.Errorf("%w: %s", ErrMonthNotFound, slug)
	}
	d, err := archive.BuildDayline(msgs, s.PerPage, s.NewOnTop)
	if err != nil {
		return archive.MonthEntry{}, nil, render.Paginator{}, err
	}
	link := render.Paginator{NewOnTop: s.NewOnTop, TotalPages: archive.TotalPages(len(msgs), s.PerPage)}
	return archive.NewMonth(t, len(msgs)), d, link, nil
}
