package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/logbook/pkg/archive"
	"tableflip.dev/logbook/pkg/render"
	"tableflip.dev/logbook/pkg/store"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func newTestService(t *testing.T, newOnTop bool) *Service {
	t.Helper()
	p, err := store.Load(testConfig(t.TempDir()))
	require.NoError(t, err)
	for i, d := range []time.Time{
		time.Date(2021, time.January, 5, 11, 0, 0, 0, time.UTC),
		time.Date(2021, time.January, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2021, time.January, 9, 10, 0, 0, 0, time.UTC),
		time.Date(2021, time.February, 1, 10, 0, 0, 0, time.UTC),
	} {
		require.NoError(t, p.Store(archive.Message{ID: int64(i + 1), Date: archive.Timestamp{Time: d}, User: "ada"}))
	}
	return NewService(p, 2, newOnTop)
}

func TestServiceListMonths(t *testing.T) {
	svc := newTestService(t, false)

	months, err := svc.ListMonths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []MonthSummary{
		{Slug: "2021-01", Label: "January 2021", Count: 3, Pages: 2},
		{Slug: "2021-02", Label: "February 2021", Count: 1, Pages: 1},
	}, months)
}

func TestServiceDayline(t *testing.T) {
	svc := newTestService(t, false)

	days, err := svc.Dayline(context.Background(), "2021-01")
	require.NoError(t, err)
	assert.Equal(t, []DaySummary{
		{Slug: "2021-01-05", Date: "05 Jan 2021", Count: 2, Page: 1, Href: "2021-01.html#2021-01-05"},
		{Slug: "2021-01-09", Date: "09 Jan 2021", Count: 1, Page: 2, Href: "2021-01_2.html#2021-01-09"},
	}, days)

	_, err = svc.Dayline(context.Background(), "2020-12")
	assert.True(t, errors.Is(err, ErrMonthNotFound))

	_, err = svc.Dayline(context.Background(), "december")
	assert.Error(t, err)
}

func TestServiceDaylineNewOnTop(t *testing.T) {
	svc := newTestService(t, true)

	days, err := svc.Dayline(context.Background(), "2021-01")
	require.NoError(t, err)
	require.Len(t, days, 2)
	// The newest page is the landing page.
	assert.Equal(t, "2021-01.html#2021-01-09", days[0].Href)
}

func TestServiceRender(t *testing.T) {
	svc := newTestService(t, false)
	ctx := context.Background()

	html, err := svc.Render(ctx, "timeline", "", render.Reverse)
	require.NoError(t, err)
	assert.Contains(t, html, `<a href="2021-02.html">2021</a>`)

	html, err = svc.Render(ctx, "dayline", "2021-01", render.Forward)
	require.NoError(t, err)
	assert.Contains(t, html, `05 Jan 2021 <span class="count">(2)</span>`)

	html, err = svc.Render(ctx, "pagination", "2021-01", render.Forward)
	require.NoError(t, err)
	assert.Contains(t, html, `<li><a href="2021-01_2.html">2</a></li>`)

	_, err = svc.Render(ctx, "feed", "", render.Forward)
	assert.Error(t, err)
}

func TestServiceListMessages(t *testing.T) {
	svc := newTestService(t, false)

	msgs, err := svc.ListMessages(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(2), msgs[0].ID)
	assert.Equal(t, int64(1), msgs[1].ID)

	_, err = svc.ListMessages(context.Background(), "yesterday")
	assert.Error(t, err)
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := &Service{}
	_, err := svc.ListMonths(context.Background())
	assert.Error(t, err)
}

func TestRunnerRequiresPersistence(t *testing.T) {
	assert.Error(t, Runner{Transport: TransportStdio}.Do(context.Background()))
}
