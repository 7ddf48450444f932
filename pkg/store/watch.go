package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tableflip.dev/logbook/pkg/archive"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventMonthChanged indicates messages of the given month were added,
	// edited, or removed.
	EventMonthChanged EventType = iota

	// EventArchiveInvalidated signals a change that could not be pinned to a
	// single month; callers should rebuild everything.
	EventArchiveInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventMonthChanged:
		return "month-changed"
	case EventArchiveInvalidated:
		return "archive-invalidated"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	// Month is the "YYYY-MM" slug of the changed month, empty for
	// EventArchiveInvalidated.
	Month string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				zap.L().Warn("Closing archive watcher", zap.Error(err))
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		// Track directories we already watch so we can add new ones at runtime
		// without duplicating watches.
		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; a subsequent
				// rebuild will pick up the changes.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				zap.L().Warn("Archive watcher error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventArchiveInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// If a new directory appears, start watching it to capture
					// subsequent file writes.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								zap.L().Warn("Watching new directory", zap.String("dir", absDir), zap.Error(err))
							} else {
								watched[absDir] = struct{}{}
							}
						}
						// A new year or month directory.
						throttle.Enqueue(Event{Type: EventArchiveInvalidated}, send)
						continue
					}
				}

				month := p.monthForPath(evt.Name)
				if month == "" {
					throttle.Enqueue(Event{Type: EventArchiveInvalidated}, send)
					continue
				}

				throttle.Enqueue(Event{Type: EventMonthChanged, Month: month}, send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// monthForPath derives the month slug from a path like base/2021/03/05-42.
func (p *persistence) monthForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) < 2 {
		return ""
	}
	slug := parts[0] + "-" + parts[1]
	if _, err := archive.ParseMonth(slug); err != nil {
		return ""
	}
	return slug
}

// eventThrottle coalesces rapid change notifications so a burst of writes
// triggers a single rebuild.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	if ev.Month != "" {
		t.pending[ev.Type][ev.Month] = struct{}{}
	}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush sends while holding the lock so Stop cannot return, and the events
// channel cannot be closed, in the middle of a flush. send must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil

	for eventType, months := range pending {
		if len(months) == 0 {
			send(Event{Type: eventType})
			continue
		}

		for month := range months {
			send(Event{Type: eventType, Month: month})
		}
	}
}

// Stop cancels any pending flush and waits for a running one to finish.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
