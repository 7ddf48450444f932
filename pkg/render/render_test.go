package render

import (
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/logbook/pkg/archive"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func day(y int, m time.Month, d, count, page int) archive.DayEntry {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return archive.DayEntry{Slug: archive.DaySlug(t), Date: t, Count: count, Page: page}
}

func month(y int, m time.Month, count int) archive.MonthEntry {
	return archive.NewMonth(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), count)
}

func TestRenderDaylineForward(t *testing.T) {
	d := archive.NewDayline(
		day(2021, time.January, 2, 3, 1),
		day(2021, time.January, 5, 2, 2),
	)

	got, err := RenderDayline(d, month(2021, time.January, 5), Forward, Paginator{})
	require.NoError(t, err)

	want := `<ul class="index">
<li class="day-2021-01-02"><a href="2021-01.html#2021-01-02">02 Jan 2021 <span class="count">(3)</span></a></li>
<li class="day-2021-01-05"><a href="2021-01_2.html#2021-01-05">05 Jan 2021 <span class="count">(2)</span></a></li>
</ul>`
	assert.Equal(t, want, got)
}

func TestRenderDaylineReverseIsExactReverse(t *testing.T) {
	d := archive.NewDayline(
		day(2021, time.March, 1, 1, 1),
		day(2021, time.March, 5, 4, 1),
		day(2021, time.March, 9, 2, 1),
	)
	m := month(2021, time.March, 7)

	fwd, err := RenderDayline(d, m, Forward, Paginator{})
	require.NoError(t, err)
	rev, err := RenderDayline(d, m, Reverse, Paginator{})
	require.NoError(t, err)

	fwdItems := listItems(fwd)
	revItems := listItems(rev)
	require.Len(t, fwdItems, 3)
	require.Len(t, revItems, 3)
	for i := range fwdItems {
		assert.Equal(t, fwdItems[i], revItems[len(revItems)-1-i])
	}
	assert.Contains(t, revItems[0], "09 Mar 2021")
}

func TestRenderDaylineSingleEntry(t *testing.T) {
	d := archive.NewDayline(archive.DayEntry{
		Slug:  "d1날짜",
		Date:  time.Date(2021, time.January, 2, 0, 0, 0, 0, time.UTC),
		Count: 3,
		Page:  1,
	})

	got, err := RenderDayline(d, month(2021, time.January, 3), Forward, Paginator{})
	require.NoError(t, err)

	items := listItems(got)
	require.Len(t, items, 1)
	assert.Contains(t, items[0], `class="day-d1날짜"`)
	assert.Contains(t, items[0], "02 Jan 2021")
	assert.Contains(t, items[0], `<span class="count">(3)</span>`)
}

func TestRenderDaylineUsesLinkBuilder(t *testing.T) {
	var calls []int
	link := LinkFunc(func(m archive.MonthEntry, page int) string {
		calls = append(calls, page)
		return "custom-" + m.Slug + ".html"
	})
	d := archive.NewDayline(day(2020, time.December, 31, 9, 4))

	got, err := RenderDayline(d, month(2020, time.December, 9), Forward, link)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, calls)
	assert.Contains(t, got, `href="custom-2020-12.html#2020-12-31"`)
}

func TestRenderDaylineEmpty(t *testing.T) {
	got, err := RenderDayline(archive.NewDayline(), month(2021, time.January, 0), Reverse, Paginator{})
	require.NoError(t, err)
	assert.Equal(t, "<ul class=\"index\">\n</ul>", got)

	got, err = RenderDayline(nil, month(2021, time.January, 0), Forward, Paginator{})
	require.NoError(t, err)
	assert.Equal(t, "<ul class=\"index\">\n</ul>", got)
}

func TestRenderDaylineRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		day  archive.DayEntry
	}{
		{name: "missing slug", day: archive.DayEntry{Date: time.Now(), Count: 1, Page: 1}},
		{name: "missing date", day: archive.DayEntry{Slug: "x", Count: 1, Page: 1}},
		{name: "negative count", day: archive.DayEntry{Slug: "x", Date: time.Now(), Count: -1, Page: 1}},
		{name: "no page", day: archive.DayEntry{Slug: "x", Date: time.Now(), Count: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderDayline(archive.NewDayline(tt.day), month(2021, time.May, 1), Forward, Paginator{})
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, archive.ErrInvalidEntry), "got %v", err)
		})
	}
}

func TestRenderDaylineNilLinkBuilder(t *testing.T) {
	_, err := RenderDayline(archive.NewDayline(), month(2021, time.May, 0), Forward, nil)
	assert.Error(t, err)
}

func TestRenderDaylineEscapesHTML(t *testing.T) {
	d := archive.NewDayline(archive.DayEntry{
		Slug:  `"><script>`,
		Date:  time.Date(2021, time.January, 2, 0, 0, 0, 0, time.UTC),
		Count: 1,
		Page:  1,
	})
	got, err := RenderDayline(d, month(2021, time.January, 1), Forward, Paginator{})
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")
}

func TestRenderDaylineSnapshot(t *testing.T) {
	d := archive.NewDayline(
		day(2023, time.July, 30, 12, 3),
		day(2023, time.July, 14, 800, 2),
		day(2023, time.July, 1, 40, 1),
	)
	got, err := RenderDayline(d, month(2023, time.July, 852), Reverse, Paginator{NewOnTop: true, TotalPages: 3})
	require.NoError(t, err)

	// The last page is the landing page of a new-on-top month.
	assert.Contains(t, got, `<a href="2023-07.html#2023-07-30">30 Jul 2023`)
	assert.Contains(t, got, `<a href="2023-07_2.html#2023-07-14">14 Jul 2023`)
	assert.Contains(t, got, `<a href="2023-07_1.html#2023-07-01">01 Jul 2023`)
	assert.Less(t, strings.Index(got, "2023-07-01"), strings.Index(got, "2023-07-30"))
	snaps.WithConfig(snaps.Ext(".html")).MatchStandaloneSnapshot(t, got)
}

func testTimeline() archive.Timeline {
	return archive.GroupTimeline([]archive.MonthEntry{
		month(2020, time.November, 10),
		month(2020, time.December, 20),
		month(2021, time.January, 30),
		month(2021, time.February, 40),
	})
}

func TestRenderTimelineForward(t *testing.T) {
	got, err := RenderTimeline(testTimeline(), TimelineOptions{})
	require.NoError(t, err)

	want := `<ul class="timeline index">
<li><h3 class="year"><a href="2020-11.html">2020</a></h3>
<ul class="months">
<li id="timeline-index-li-2020-11"><a href="2020-11.html">November 2020 <span class="count">(10)</span></a></li>
<li id="timeline-index-li-2020-12"><a href="2020-12.html">December 2020 <span class="count">(20)</span></a></li>
</ul>
</li>
<li><h3 class="year"><a href="2021-01.html">2021</a></h3>
<ul class="months">
<li id="timeline-index-li-2021-01"><a href="2021-01.html">January 2021 <span class="count">(30)</span></a></li>
<li id="timeline-index-li-2021-02"><a href="2021-02.html">February 2021 <span class="count">(40)</span></a></li>
</ul>
</li>
</ul>`
	assert.Equal(t, want, got)
}

func TestRenderTimelineYearLinksFollowMonthOrder(t *testing.T) {
	tests := []struct {
		name     string
		opts     TimelineOptions
		wantHead []string
	}{
		{
			name:     "forward",
			opts:     TimelineOptions{Years: Forward, Months: Forward},
			wantHead: []string{`<a href="2020-11.html">2020</a>`, `<a href="2021-01.html">2021</a>`},
		},
		{
			name:     "reverse both",
			opts:     TimelineOptions{Years: Reverse, Months: Reverse},
			wantHead: []string{`<a href="2021-02.html">2021</a>`, `<a href="2020-12.html">2020</a>`},
		},
		{
			name:     "reverse years only",
			opts:     TimelineOptions{Years: Reverse, Months: Forward},
			wantHead: []string{`<a href="2021-01.html">2021</a>`, `<a href="2020-11.html">2020</a>`},
		},
		{
			name:     "reverse months only",
			opts:     TimelineOptions{Years: Forward, Months: Reverse},
			wantHead: []string{`<a href="2020-12.html">2020</a>`, `<a href="2021-02.html">2021</a>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderTimeline(testTimeline(), tt.opts)
			require.NoError(t, err)

			var heads []string
			for _, line := range strings.Split(got, "\n") {
				if strings.HasPrefix(line, `<li><h3 class="year">`) {
					heads = append(heads, strings.TrimSuffix(strings.TrimPrefix(line, `<li><h3 class="year">`), "</h3>"))
				}
			}
			assert.Equal(t, tt.wantHead, heads)
		})
	}
}

func TestRenderTimelineEmpty(t *testing.T) {
	got, err := RenderTimeline(nil, TimelineOptions{Years: Reverse})
	require.NoError(t, err)
	assert.Equal(t, "<ul class=\"timeline index\">\n</ul>", got)
}

func TestRenderTimelineRejectsEmptyYear(t *testing.T) {
	_, err := RenderTimeline(archive.Timeline{{Year: 2020}}, TimelineOptions{})
	assert.ErrorIs(t, err, archive.ErrInvalidEntry)
}

func TestRenderTimelineSnapshot(t *testing.T) {
	got, err := RenderTimeline(testTimeline(), TimelineOptions{Years: Reverse, Months: Reverse})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, `<ul class="timeline index">
<li><h3 class="year"><a href="2021-02.html">2021</a></h3>
<ul class="months">
<li id="timeline-index-li-2021-02">`), got)
	assert.Less(t, strings.Index(got, "2020-12.html\">December"), strings.Index(got, "2020-11.html\">November"))
	snaps.WithConfig(snaps.Ext(".html")).MatchStandaloneSnapshot(t, got)
}

func TestRenderIsDeterministic(t *testing.T) {
	d := archive.NewDayline(day(2021, time.January, 2, 3, 1), day(2021, time.January, 3, 1, 1))
	m := month(2021, time.January, 4)

	first, err := RenderDayline(d, m, Reverse, Paginator{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = RenderDayline(d, m, Reverse, Paginator{})
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, first, r)
	}
}

func TestRenderPagination(t *testing.T) {
	m := month(2022, time.April, 1200)

	got, err := RenderPagination(m, 3, Forward, Paginator{})
	require.NoError(t, err)
	want := `<ul class="pagination">
<li><a href="2022-04.html">1</a></li>
<li><a href="2022-04_2.html">2</a></li>
<li><a href="2022-04_3.html">3</a></li>
</ul>`
	assert.Equal(t, want, got)

	got, err = RenderPagination(m, 3, Reverse, Paginator{NewOnTop: true, TotalPages: 3})
	require.NoError(t, err)
	want = `<ul class="pagination">
<li><a href="2022-04.html">3</a></li>
<li><a href="2022-04_2.html">2</a></li>
<li><a href="2022-04_1.html">1</a></li>
</ul>`
	assert.Equal(t, want, got)

	got, err = RenderPagination(m, 0, Forward, Paginator{})
	require.NoError(t, err)
	assert.Equal(t, "<ul class=\"pagination\">\n</ul>", got)
}

func TestRenderDayCounter(t *testing.T) {
	got, err := RenderDayCounter(day(2021, time.March, 5, 42, 1))
	require.NoError(t, err)
	assert.Equal(t, `<span class="count" id="day-counter-2021-03-05">42</span>`, got)

	_, err = RenderDayCounter(archive.DayEntry{})
	assert.ErrorIs(t, err, archive.ErrInvalidEntry)
}

func TestScript(t *testing.T) {
	got := Script("<p>`a` ${b} \\c</p>")
	assert.Equal(t, "document.write(`\n<p>\\`a\\` \\${b} \\\\c</p>\n`);\n", got)
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{in: "", want: Forward},
		{in: "forward", want: Forward},
		{in: " Reverse ", want: Reverse},
		{in: "sideways", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "reverse", Reverse.String())
	assert.Equal(t, "Order(7)", Order(7).String())
}

// listItems returns the top level <li> lines of a dayline fragment.
func listItems(fragment string) []string {
	var items []string
	for _, line := range strings.Split(fragment, "\n") {
		if strings.HasPrefix(line, "<li") {
			items = append(items, line)
		}
	}
	return items
}

func TestRenderPage(t *testing.T) {
	at := func(s string) archive.Timestamp {
		ts, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return archive.Timestamp{Time: ts}
	}
	page := MonthPage{
		Month:      month(2021, time.March, 3),
		Page:       1,
		TotalPages: 2,
		Messages: []archive.Message{
			{ID: 1, Date: at("2021-03-01T08:00:00Z"), User: "ada", Content: "<b>hi</b>"},
			{ID: 2, Date: at("2021-03-01T09:15:00Z"), User: "bob", Content: "hello"},
			{ID: 4, Date: at("2021-03-04T10:00:00Z"), User: "ada", Content: "later"},
		},
		DaylineScript: "dayline-2021-03.js",
		Timeline:      `<ul class="timeline index"></ul>`,
	}

	got, err := RenderPage(page, Forward, Paginator{})
	require.NoError(t, err)

	assert.Contains(t, got, "<title>March 2021 - page 1</title>")
	assert.Contains(t, got, `<script src="dayline-2021-03.js"></script>`)
	assert.Contains(t, got, `<nav class="timeline">
<ul class="timeline index"></ul>
</nav>`)
	assert.Contains(t, got, `<li><a href="2021-03_2.html">2</a></li>`)
	assert.Contains(t, got, `<section class="day" id="2021-03-01">
<h3>01 Mar 2021</h3>
<div class="message" id="1">
<span class="user">ada</span> <time datetime="2021-03-01T08:00:00Z">08:00</time>
<div class="text">&lt;b&gt;hi&lt;/b&gt;</div>
</div>
<div class="message" id="2">`)
	assert.Contains(t, got, `<section class="day" id="2021-03-04">`)
	assert.Equal(t, 2, strings.Count(got, `<section class="day"`))
}

func TestRenderPageRejectsBadPage(t *testing.T) {
	_, err := RenderPage(MonthPage{Month: month(2021, time.March, 1), Page: 3, TotalPages: 2}, Forward, Paginator{})
	assert.ErrorIs(t, err, archive.ErrInvalidEntry)

	_, err = RenderPage(MonthPage{
		Month:      month(2021, time.March, 1),
		Page:       1,
		TotalPages: 1,
		Messages:   []archive.Message{{ID: 9}},
	}, Forward, Paginator{})
	assert.ErrorIs(t, err, archive.ErrInvalidEntry)
}
