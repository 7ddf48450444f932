// Package build publishes the archive: the timeline index, per month the
// dayline, the pagination strip, the day counters and the month pages, and
// index.html as a copy of the latest page.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/logbook/pkg/archive"
	"tableflip.dev/logbook/pkg/config"
	"tableflip.dev/logbook/pkg/render"
	"tableflip.dev/logbook/pkg/store"
)

// Build renders every index fragment of the archive into Config.PublishDir.
type Build struct {
	Config      *config.Config
	Persistence store.Persistence
	// Watch keeps rebuilding on archive changes until the context is done.
	Watch bool

	written []string
}

// Do runs the build, and with Watch set, keeps rebuilding.
func (b *Build) Do(ctx context.Context) error {
	if b.Persistence == nil {
		return errors.New("can not build, no persistence")
	}
	if b.Config == nil {
		return errors.New("can not build, no config")
	}
	if err := b.Config.Validate(); err != nil {
		return err
	}

	if err := b.Once(ctx); err != nil {
		return err
	}
	if !b.Watch {
		return nil
	}

	events, err := b.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	zap.L().Info("Watching archive for changes", zap.String("path", b.Config.BasePath()))
	for ev := range events {
		zap.L().Info("Archive changed, rebuilding", zap.Stringer("event", ev.Type), zap.String("month", ev.Month))
		if err := b.Once(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			zap.L().Error("Rebuild failed", zap.Error(err))
		}
	}
	return nil
}

// Written lists the files produced by the last build, in write order.
func (b *Build) Written() []string {
	return append([]string(nil), b.written...)
}

// Once performs a single full build.
func (b *Build) Once(ctx context.Context) error {
	b.written = nil
	cfg := b.Config

	if err := b.createPublishDir(); err != nil {
		return err
	}

	months := b.Persistence.Months(ctx, cfg.NewOnTop)
	if len(months) == 0 {
		zap.L().Info("No messages found to publish")
		return nil
	}

	// Months arrive newest first for new-on-top archives, so only the
	// oldest-first timeline needs flipping to show recent years on top.
	opts := render.TimelineOptions{Years: render.Reverse, Months: render.Reverse}
	if cfg.NewOnTop {
		opts = render.TimelineOptions{Years: render.Forward, Months: render.Forward}
	}
	timeline, err := render.RenderTimeline(archive.GroupTimeline(months), opts)
	if err != nil {
		return err
	}
	if err := b.write("timeline-index", timeline); err != nil {
		return err
	}

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.month(ctx, month, timeline); err != nil {
			return fmt.Errorf("build %s: %w", month.Slug, err)
		}
	}

	if err := b.index(months); err != nil {
		return err
	}

	zap.L().Info("Build finished", zap.Int("months", len(months)), zap.Int("files", len(b.written)))
	return nil
}

func (b *Build) month(ctx context.Context, month archive.MonthEntry, timeline string) error {
	cfg := b.Config

	msgs := b.Persistence.List(ctx, month.Date)
	dayline, err := archive.BuildDayline(msgs, cfg.PerPage, cfg.NewOnTop)
	if err != nil {
		return err
	}
	if err := b.dayCounters(dayline); err != nil {
		return err
	}

	totalPages := archive.TotalPages(len(msgs), cfg.PerPage)
	link := render.Paginator{NewOnTop: cfg.NewOnTop, TotalPages: totalPages}
	order := render.Forward
	if cfg.NewOnTop {
		order = render.Reverse
	}

	var daylineHTML string
	if cfg.ShowDayIndex {
		daylineHTML, err = render.RenderDayline(dayline, month, order, link)
		if err != nil {
			return err
		}
		if err := b.write("dayline-"+month.Slug, daylineHTML); err != nil {
			return err
		}
	}

	html, err := render.RenderPagination(month, totalPages, order, link)
	if err != nil {
		return err
	}
	if err := b.write("pagination-"+month.Slug, html); err != nil {
		return err
	}

	for _, page := range archive.Paginate(msgs, cfg.PerPage, cfg.NewOnTop) {
		name := link.Filename(month, page.Number)
		// Full pages other than the landing page never change once written.
		if cfg.IncrementalBuilds && len(page.Messages) == cfg.PerPage &&
			name != link.Filename(month, landingPage(cfg.NewOnTop, totalPages)) && b.pageExists(name) {
			zap.L().Debug("Incremental build, skipping existing page", zap.String("file", name))
			continue
		}

		mp := render.MonthPage{
			Month:      month,
			Page:       page.Number,
			TotalPages: totalPages,
			Messages:   page.Messages,
		}
		if cfg.ScriptFragments {
			mp.TimelineScript = b.filename("timeline-index")
			if cfg.ShowDayIndex {
				mp.DaylineScript = b.filename("dayline-" + month.Slug)
			}
		} else {
			mp.Timeline = timeline
			mp.Dayline = daylineHTML
		}
		html, err := render.RenderPage(mp, order, link)
		if err != nil {
			return err
		}
		if err := b.writeFile(name, html); err != nil {
			return err
		}
	}
	return nil
}

// index copies the latest page, the last page of the newest month, to
// index.html.
func (b *Build) index(months []archive.MonthEntry) error {
	latest := months[len(months)-1]
	if b.Config.NewOnTop {
		latest = months[0]
	}
	totalPages := archive.TotalPages(latest.Count, b.Config.PerPage)
	link := render.Paginator{NewOnTop: b.Config.NewOnTop, TotalPages: totalPages}
	name := link.Filename(latest, totalPages)

	content, err := os.ReadFile(filepath.Join(b.Config.PublishDir, name))
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return b.writeFile("index.html", string(content))
}

func landingPage(newOnTop bool, totalPages int) int {
	if newOnTop {
		return totalPages
	}
	return 1
}

// dayCounters renders one counter per day. Incremental builds skip counters
// already on disk, except that the day before a newly rendered one and the
// last day of the month are always refreshed since their counts may have
// grown.
func (b *Build) dayCounters(dayline *archive.Dayline) error {
	var prev *archive.DayEntry
	rendered := false
	for _, day := range dayline.Days() {
		name := "day-counter-" + day.Slug
		exists := b.exists(name)
		if b.Config.IncrementalBuilds && exists {
			zap.L().Debug("Incremental build, skipping existing file", zap.String("file", b.filename(name)))
			d := day
			prev = &d
			continue
		}

		rendered = true
		if err := b.dayCounter(day); err != nil {
			return err
		}
		if prev != nil {
			if err := b.dayCounter(*prev); err != nil {
				return err
			}
			prev = nil
		}
	}

	if b.Config.IncrementalBuilds && !rendered {
		if last, ok := dayline.Last(); ok {
			return b.dayCounter(last)
		}
	}
	return nil
}

func (b *Build) dayCounter(day archive.DayEntry) error {
	html, err := render.RenderDayCounter(day)
	if err != nil {
		return err
	}
	return b.write("day-counter-"+day.Slug, html)
}

func (b *Build) filename(name string) string {
	if b.Config.ScriptFragments {
		return name + ".js"
	}
	return name + ".html"
}

func (b *Build) exists(name string) bool {
	_, err := os.Stat(filepath.Join(b.Config.PublishDir, b.filename(name)))
	return err == nil
}

func (b *Build) pageExists(name string) bool {
	_, err := os.Stat(filepath.Join(b.Config.PublishDir, name))
	return err == nil
}

// write publishes a fragment, wrapped for document.write in script mode.
func (b *Build) write(name, html string) error {
	content := html + "\n"
	if b.Config.ScriptFragments {
		content = render.Script(html)
	}
	return b.writeFile(b.filename(name), content)
}

func (b *Build) writeFile(fname, content string) error {
	zap.L().Info("Rendering", zap.String("file", fname))
	if err := os.WriteFile(filepath.Join(b.Config.PublishDir, fname), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fname, err)
	}
	b.written = append(b.written, fname)
	return nil
}

// createPublishDir makes sure the publish dir exists. Full builds clear the
// fragments a previous build left behind.
func (b *Build) createPublishDir() error {
	dir := b.Config.PublishDir
	if !b.Config.IncrementalBuilds {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		for _, e := range entries {
			if e.IsDir() || !isFragment(e.Name()) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return os.MkdirAll(dir, 0o755)
}

var pageName = regexp.MustCompile(`^\d{4}-\d{2}(_\d+)?\.html$`)

func isFragment(name string) bool {
	if name == "index.html" || pageName.MatchString(name) {
		return true
	}
	ext := filepath.Ext(name)
	if ext != ".js" && ext != ".html" {
		return false
	}
	for _, prefix := range []string{"timeline-index", "dayline-", "pagination-", "day-counter-"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
