package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type fakeSource struct {
	markup string
	err    error
	calls  int
}

func (f *fakeSource) Fetch(ctx context.Context) (string, error) {
	f.calls++
	return f.markup, f.err
}

func newTestStorage(t *testing.T) (*Storage, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.July, 2, 9, 0, 0, 0, time.UTC))
	store, err := New(filepath.Join(t.TempDir(), "data"), clock)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return store, clock
}

func TestNew_CreatesDirectory(t *testing.T) {
	store, _ := newTestStorage(t)

	info, err := os.Stat(store.Dir())
	if err != nil {
		t.Fatalf("data directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("data path is not a directory")
	}
}

func TestSaveAndLoadPage(t *testing.T) {
	store, clock := newTestStorage(t)

	if _, ok, err := store.LoadPage(); err != nil || ok {
		t.Fatalf("LoadPage() on empty cache = ok %v, err %v", ok, err)
	}

	if err := store.SavePage("<html>day one</html>"); err != nil {
		t.Fatalf("SavePage() error: %v", err)
	}

	if got := filepath.Base(store.TodayPath()); got != "2026-07-02.html" {
		t.Errorf("TodayPath() = %q, want 2026-07-02.html", got)
	}

	markup, ok, err := store.LoadPage()
	if err != nil || !ok {
		t.Fatalf("LoadPage() = ok %v, err %v", ok, err)
	}
	if markup != "<html>day one</html>" {
		t.Errorf("LoadPage() = %q", markup)
	}

	// Next day has no page yet
	clock.Advance(24 * time.Hour)
	if _, ok, _ := store.LoadPage(); ok {
		t.Error("LoadPage() on a new day should miss")
	}
}

func TestLoadLatestPage(t *testing.T) {
	store, clock := newTestStorage(t)

	if _, _, err := store.LoadLatestPage(); !errors.Is(err, ErrNoCachedPage) {
		t.Fatalf("LoadLatestPage() on empty cache error = %v, want ErrNoCachedPage", err)
	}

	store.SavePage("first")
	clock.Advance(24 * time.Hour)
	store.SavePage("second")
	clock.Advance(72 * time.Hour)

	// Unrelated files are ignored
	os.WriteFile(filepath.Join(store.Dir(), "notes.html"), []byte("x"), 0644)

	markup, path, err := store.LoadLatestPage()
	if err != nil {
		t.Fatalf("LoadLatestPage() error: %v", err)
	}
	if markup != "second" {
		t.Errorf("LoadLatestPage() = %q, want second", markup)
	}
	if filepath.Base(path) != "2026-07-03.html" {
		t.Errorf("LoadLatestPage() path = %q", path)
	}
}

func TestCleanExpired(t *testing.T) {
	store, clock := newTestStorage(t)

	for i := 0; i < 5; i++ {
		if err := store.SavePage("page"); err != nil {
			t.Fatalf("SavePage() error: %v", err)
		}
		clock.Advance(24 * time.Hour)
	}

	// Now 2026-07-07; pages exist for 07-02 .. 07-06
	removed, err := store.CleanExpired(2 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("CleanExpired() error: %v", err)
	}
	if removed != 3 {
		t.Errorf("CleanExpired() removed %d, want 3", removed)
	}

	days, err := store.cachedDays()
	if err != nil {
		t.Fatalf("cachedDays() error: %v", err)
	}
	if len(days) != 2 || days[0] != "2026-07-05" || days[1] != "2026-07-06" {
		t.Errorf("remaining days = %v", days)
	}
}

func TestCleanExpired_KeepsNewestPage(t *testing.T) {
	store, clock := newTestStorage(t)

	if err := store.SavePage("old page"); err != nil {
		t.Fatalf("SavePage() error: %v", err)
	}
	clock.Advance(30 * 24 * time.Hour)

	removed, err := store.CleanExpired(14 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("CleanExpired() error: %v", err)
	}
	if removed != 0 {
		t.Errorf("CleanExpired() removed %d, want 0", removed)
	}

	markup, _, err := store.LoadLatestPage()
	if err != nil {
		t.Fatalf("LoadLatestPage() error: %v", err)
	}
	if markup != "old page" {
		t.Errorf("LoadLatestPage() = %q, want %q", markup, "old page")
	}
}

func TestCachingSource(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		cached     string
		fetched    string
		fetchErr   error
		want       string
		wantCalls  int
		wantErr    bool
		wantCached string
	}{
		{
			name:       "miss fetches and caches",
			mode:       ModeDefault,
			fetched:    "fresh",
			want:       "fresh",
			wantCalls:  1,
			wantCached: "fresh",
		},
		{
			name:       "hit skips fetch",
			mode:       ModeDefault,
			cached:     "cached",
			fetched:    "fresh",
			want:       "cached",
			wantCalls:  0,
			wantCached: "cached",
		},
		{
			name:       "refresh overwrites",
			mode:       ModeRefresh,
			cached:     "cached",
			fetched:    "fresh",
			want:       "fresh",
			wantCalls:  1,
			wantCached: "fresh",
		},
		{
			name:       "offline reads cache",
			mode:       ModeOffline,
			cached:     "cached",
			want:       "cached",
			wantCalls:  0,
			wantCached: "cached",
		},
		{
			name:      "offline without cache fails",
			mode:      ModeOffline,
			wantErr:   true,
			wantCalls: 0,
		},
		{
			name:      "fetch error propagates",
			mode:      ModeDefault,
			fetchErr:  errors.New("network down"),
			wantErr:   true,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStorage(t)
			if tt.cached != "" {
				if err := store.SavePage(tt.cached); err != nil {
					t.Fatalf("SavePage() error: %v", err)
				}
			}

			src := &fakeSource{markup: tt.fetched, err: tt.fetchErr}
			cs := NewCachingSource(src, store, tt.mode)

			got, err := cs.Fetch(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Fetch() = %q, want %q", got, tt.want)
			}
			if src.calls != tt.wantCalls {
				t.Errorf("source called %d times, want %d", src.calls, tt.wantCalls)
			}

			if tt.wantCached != "" {
				cached, _, _ := store.LoadPage()
				if cached != tt.wantCached {
					t.Errorf("cached page = %q, want %q", cached, tt.wantCached)
				}
			}
		})
	}
}
