package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/logbook/pkg/archive"
)

// ErrNotFound is returned when a message is not in the archive.
var ErrNotFound = errors.New("store: message not found")

// Config supplies the on-disk location of the archive.
type Config interface {
	BasePath() string
}

// Persistence defines the persistence contract for archived messages.
type Persistence interface {
	ListAll(ctx context.Context) []archive.Message
	List(ctx context.Context, month time.Time) []archive.Message
	Get(date time.Time, id int64) (archive.Message, error)
	Months(ctx context.Context, newOnTop bool) []archive.MonthEntry
	Count(ctx context.Context, month time.Time) int
	Store(m archive.Message) error
	Delete(m archive.Message) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv rooted at cfg.BasePath().
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (archive.Message, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return archive.Message{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return archive.Message{}, err
	}
	m := archive.Message{}
	if err := json.Unmarshal(val, &m); err != nil {
		return archive.Message{}, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return m, nil
}

func (p *persistence) readAll(ctx context.Context, prefix string) []archive.Message {
	all := make([]archive.Message, 0)
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		m, err := p.read(key)
		if err != nil {
			zap.L().Warn("Skipping unreadable message", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, m)
	}
	archive.SortMessages(all)
	return all
}

func (p *persistence) ListAll(ctx context.Context) []archive.Message {
	return p.readAll(ctx, "")
}

func (p *persistence) List(ctx context.Context, month time.Time) []archive.Message {
	return p.readAll(ctx, archive.MonthSlug(month.UTC())+"-")
}

func (p *persistence) Get(date time.Time, id int64) (archive.Message, error) {
	return p.read(toKey(archive.Message{ID: id, Date: archive.Timestamp{Time: date}}))
}

// Months counts messages per month from the keys alone, without reading
// any message bodies.
func (p *persistence) Months(ctx context.Context, newOnTop bool) []archive.MonthEntry {
	counts := make(map[string]int)
	for key := range p.d.Keys(ctx.Done()) {
		if len(key) < len(layoutMonth) {
			continue
		}
		counts[key[:len(layoutMonth)]]++
	}

	months := make([]archive.MonthEntry, 0, len(counts))
	for slug, n := range counts {
		t, err := archive.ParseMonth(slug)
		if err != nil {
			zap.L().Warn("Skipping unexpected key prefix", zap.String("prefix", slug), zap.Error(err))
			continue
		}
		months = append(months, archive.NewMonth(t, n))
	}
	sort.Slice(months, func(i, j int) bool {
		if newOnTop {
			return months[i].Date.After(months[j].Date)
		}
		return months[i].Date.Before(months[j].Date)
	})
	return months
}

func (p *persistence) Count(ctx context.Context, month time.Time) int {
	n := 0
	for range p.d.KeysPrefix(archive.MonthSlug(month.UTC())+"-", ctx.Done()) {
		n++
	}
	return n
}

func (p *persistence) Store(m archive.Message) error {
	if m.Date.IsZero() {
		return fmt.Errorf("store: message %d has no date", m.ID)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(m), data)
}

func (p *persistence) Delete(m archive.Message) error {
	key := toKey(m)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return p.d.Erase(key)
}

const (
	layoutMonth = "2006-01"
	layoutDay   = "2006-01-02"
)

// keyToPathTransform stores `2021-03-05-42` as 2021/03/05-42.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) < 3 {
		return &diskv.PathKey{Path: []string{}, FileName: s}
	}
	return &diskv.PathKey{
		Path:     parts[:2],
		FileName: parts[2],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `date-id`
func toKey(m archive.Message) string {
	return fmt.Sprintf("%s-%s", m.Date.UTC().Format(layoutDay), strconv.FormatInt(m.ID, 10))
}
