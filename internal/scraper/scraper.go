package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/henley-schedule/internal/race"
	"golang.org/x/net/html/charset"
)

const (
	TimetableURL = "https://www.hrr.co.uk/race-timetable/"
	UserAgent    = "henley-schedule-cli/1.0 (github.com/pfrederiksen/henley-schedule)"
	Timeout      = 30 * time.Second
)

const (
	rowSelector       = "tr.timetable-row-r"
	raceDateSelector  = ".d-none.d-md-inline"
	fieldRaceNumber   = "td.timetable-field-race"
	fieldTime         = "td.timetable-field-time"
	fieldTrophy       = "td.timetable-field-trophy"
	fieldBerksStation = "td.timetable-field-berks"
	fieldBucksStation = "td.timetable-field-bucks"
)

// Source supplies the full timetable page markup
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Fetcher downloads the timetable page over HTTP
type Fetcher struct {
	client    *http.Client
	url       string
	userAgent string
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithURL overrides the timetable page address
func WithURL(url string) Option {
	return func(f *Fetcher) {
		if url != "" {
			f.url = url
		}
	}
}

// WithTimeout overrides the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// New creates a new Fetcher instance
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:       TimetableURL,
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the page address the fetcher reads from
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch downloads the timetable page and returns it decoded as UTF-8
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding page: %w", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}

	return string(data), nil
}

// Parse reads the page markup once and returns its timetable rows in document
// order together with the race day from the page header ("" when absent).
// A page without rows yields an empty slice and no error.
func Parse(markup string) ([]race.Row, string, error) {
	doc, err := newDocument(markup)
	if err != nil {
		return nil, "", err
	}
	return rowsOf(doc), raceDateOf(doc), nil
}

// ParseRows extracts every timetable row from the page markup in document order.
// A page without rows yields an empty slice and no error.
func ParseRows(markup string) ([]race.Row, error) {
	doc, err := newDocument(markup)
	if err != nil {
		return nil, err
	}
	return rowsOf(doc), nil
}

// ParseRaceDate returns the race day shown in the page header, or "" when absent
func ParseRaceDate(markup string) string {
	doc, err := newDocument(markup)
	if err != nil {
		return ""
	}
	return raceDateOf(doc)
}

func newDocument(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

func rowsOf(doc *goquery.Document) []race.Row {
	rows := make([]race.Row, 0)
	doc.Find(rowSelector).Each(func(i int, sel *goquery.Selection) {
		rows = append(rows, race.Row{
			Number:  fieldText(sel, fieldRaceNumber),
			RawTime: fieldText(sel, fieldTime),
			Trophy:  fieldText(sel, fieldTrophy),
			Berks:   fieldText(sel, fieldBerksStation),
			Bucks:   fieldText(sel, fieldBucksStation),
		})
	})
	return rows
}

func raceDateOf(doc *goquery.Document) string {
	return cleanText(doc.Find(raceDateSelector).First())
}

// fieldText returns the cleaned text of the first cell matching selector
func fieldText(row *goquery.Selection, selector string) string {
	return cleanText(row.Find(selector).First())
}

// cleanText joins the selection's text nodes, drops line breaks and trims the result.
// Line breaks are removed, not replaced with spaces.
func cleanText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	text := strings.NewReplacer("\r", "", "\n", "").Replace(sel.Text())
	return strings.TrimSpace(text)
}
