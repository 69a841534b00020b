package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pfrederiksen/henley-schedule/internal/config"
	"github.com/pfrederiksen/henley-schedule/internal/logger"
	"github.com/pfrederiksen/henley-schedule/internal/scraper"
)

const (
	dayLayout = "2006-01-02"
	pageExt   = ".html"
)

// ErrNoCachedPage is returned in offline mode when no page has been cached yet
var ErrNoCachedPage = errors.New("no cached timetable page")

// Storage handles persistence of downloaded timetable pages
type Storage struct {
	dataDir string
	clock   clockwork.Clock
}

// New creates a new Storage instance
func New(dataDir string, clock clockwork.Clock) (*Storage, error) {
	dataDir, err := config.ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Storage{
		dataDir: dataDir,
		clock:   clock,
	}, nil
}

// Dir returns the data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// pagePath returns the cache file for the given day
func (s *Storage) pagePath(day time.Time) string {
	return filepath.Join(s.dataDir, day.Format(dayLayout)+pageExt)
}

// TodayPath returns the cache file for the current day
func (s *Storage) TodayPath() string {
	return s.pagePath(s.clock.Now())
}

// LoadPage returns today's cached page. The boolean is false when none exists.
func (s *Storage) LoadPage() (string, bool, error) {
	data, err := os.ReadFile(s.TodayPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading cached page: %w", err)
	}
	return string(data), true, nil
}

// LoadLatestPage returns the most recent cached page of any day
func (s *Storage) LoadLatestPage() (string, string, error) {
	days, err := s.cachedDays()
	if err != nil {
		return "", "", err
	}
	if len(days) == 0 {
		return "", "", ErrNoCachedPage
	}

	path := filepath.Join(s.dataDir, days[len(days)-1]+pageExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading cached page: %w", err)
	}
	return string(data), path, nil
}

// SavePage stores markup as today's page
func (s *Storage) SavePage(markup string) error {
	if err := os.WriteFile(s.TodayPath(), []byte(markup), 0644); err != nil {
		return fmt.Errorf("writing cached page: %w", err)
	}
	return nil
}

// CleanExpired removes cached pages older than maxAge and returns how many were removed.
// The newest page is always kept for offline use.
func (s *Storage) CleanExpired(maxAge time.Duration) (int, error) {
	days, err := s.cachedDays()
	if err != nil {
		return 0, err
	}
	if len(days) > 0 {
		days = days[:len(days)-1]
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	removed := 0
	for _, day := range days {
		t, err := time.Parse(dayLayout, day)
		if err != nil {
			continue
		}
		if today.Sub(t) <= maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(s.dataDir, day+pageExt)); err != nil {
			return removed, fmt.Errorf("removing cached page: %w", err)
		}
		removed++
	}

	return removed, nil
}

// cachedDays lists the days with a cached page, oldest first
func (s *Storage) cachedDays() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	days := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, pageExt) {
			continue
		}
		day := strings.TrimSuffix(name, pageExt)
		if _, err := time.Parse(dayLayout, day); err != nil {
			continue
		}
		days = append(days, day)
	}

	sort.Strings(days)
	return days, nil
}

// Mode selects how CachingSource uses the cache
type Mode int

const (
	// ModeDefault uses today's cached page if present, otherwise fetches and caches
	ModeDefault Mode = iota
	// ModeRefresh always fetches and overwrites today's page
	ModeRefresh
	// ModeOffline never fetches and reads the most recent cached page
	ModeOffline
)

// CachingSource wraps a scraper.Source with the page cache
type CachingSource struct {
	source scraper.Source
	store  *Storage
	mode   Mode
}

// NewCachingSource creates a CachingSource
func NewCachingSource(source scraper.Source, store *Storage, mode Mode) *CachingSource {
	return &CachingSource{
		source: source,
		store:  store,
		mode:   mode,
	}
}

// Fetch returns the timetable page, from the cache or the wrapped source.
// Failing to write the cache is logged and does not fail the fetch.
func (c *CachingSource) Fetch(ctx context.Context) (string, error) {
	switch c.mode {
	case ModeOffline:
		markup, path, err := c.store.LoadLatestPage()
		if err != nil {
			return "", err
		}
		logger.Debug("Using cached page", logger.Fields{"path": path})
		return markup, nil

	case ModeDefault:
		markup, ok, err := c.store.LoadPage()
		if err != nil {
			logger.Warn("Ignoring unreadable cached page", logger.Fields{"path": c.store.TodayPath(), "error": err.Error()})
		} else if ok {
			logger.Debug("Using cached page", logger.Fields{"path": c.store.TodayPath()})
			return markup, nil
		}
	}

	markup, err := c.source.Fetch(ctx)
	if err != nil {
		return "", err
	}

	if err := c.store.SavePage(markup); err != nil {
		logger.Error("Failed to cache timetable page", logger.Fields{"path": c.store.TodayPath()}, err)
	} else {
		logger.Debug("Cached timetable page", logger.Fields{"path": c.store.TodayPath(), "bytes": len(markup)})
	}

	return markup, nil
}
