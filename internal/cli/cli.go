package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pfrederiksen/henley-schedule/internal/calendar"
	"github.com/pfrederiksen/henley-schedule/internal/config"
	"github.com/pfrederiksen/henley-schedule/internal/filter"
	"github.com/pfrederiksen/henley-schedule/internal/logger"
	"github.com/pfrederiksen/henley-schedule/internal/preferences"
	"github.com/pfrederiksen/henley-schedule/internal/scraper"
	"github.com/pfrederiksen/henley-schedule/internal/storage"
	"github.com/pfrederiksen/henley-schedule/internal/timetable"
	"github.com/pfrederiksen/henley-schedule/internal/trophy"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNoMatches = 2
)

const defaultGMTOffset = 1

// cacheMaxAge is how long downloaded pages are kept
const cacheMaxAge = 14 * 24 * time.Hour

// errNoMatches is returned with --fail-empty when no race is displayed
var errNoMatches = errors.New("no matching races")

// options holds the root command flags
type options struct {
	crew      []string
	gmt       int
	boat      string
	trophy    string
	format    string
	sort      string
	date      string
	refresh   bool
	offline   bool
	noCache   bool
	noColor   bool
	verbose   bool
	failEmpty bool
}

// app carries what the commands share
type app struct {
	cfg   *config.Config
	clock clockwork.Clock
	opts  options
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil, clockwork.NewRealClock())
}

func newRootCmd(cfg *config.Config, clock clockwork.Clock) *cobra.Command {
	a := &app{cfg: cfg, clock: clock}

	cmd := &cobra.Command{
		Use:   "henley-schedule",
		Short: "Show the Henley Royal Regatta race timetable",
		Long: `Fetches the Henley Royal Regatta race timetable and shows the races in GB
time and in your local GMT offset. Races can be filtered by crew, boat class and
trophy; stations matching a crew name are highlighted. Run it after the draw is
published to get the latest timetable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.runSchedule,
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&a.opts.crew, "crew", nil, "Crew name to match in either station (repeat for several; commas are part of the name)")
	flags.IntVar(&a.opts.gmt, "gmt", defaultGMTOffset, "GMT offset for the local time column (-12 to +14)")
	flags.StringVar(&a.opts.boat, "boat", "", "Only show races for this boat class (e.g., M8+, W4x)")
	flags.StringVar(&a.opts.trophy, "trophy", "", "Only show races for this trophy (exact name)")
	flags.StringVar(&a.opts.format, "format", "text", "Output format: text, json or ics")
	flags.StringVar(&a.opts.sort, "sort", "page", "Race order: page, time or number")
	flags.StringVar(&a.opts.date, "date", "", "Race day for ics output (YYYY-MM-DD); defaults to the page header date")
	flags.BoolVar(&a.opts.refresh, "refresh", false, "Download the timetable even if today's page is cached")
	flags.BoolVar(&a.opts.offline, "offline", false, "Use the most recent cached page without downloading")
	flags.BoolVar(&a.opts.noCache, "no-cache", false, "Neither read nor write the page cache")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "Disable highlighting")
	flags.BoolVar(&a.opts.failEmpty, "fail-empty", false, "Exit with status 2 when no race is shown")
	cmd.PersistentFlags().BoolVar(&a.opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.MarkFlagsMutuallyExclusive("refresh", "offline", "no-cache")

	cmd.AddCommand(newDefaultsCmd(a))
	cmd.AddCommand(newTrophiesCmd(a))

	return cmd
}

// setup loads configuration and configures logging
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	return nil
}

// loadTable returns the configured trophy table, or the bundled one
func (a *app) loadTable() (trophy.Table, error) {
	if a.cfg.TrophyTable != "" {
		logger.Debug("Loading trophy table", logger.Fields{"path": a.cfg.TrophyTable})
		return trophy.LoadFile(a.cfg.TrophyTable)
	}
	return trophy.Default()
}

// source builds the page source for the chosen cache mode
func (a *app) source() (scraper.Source, error) {
	fetcher := scraper.New(
		scraper.WithURL(a.cfg.URL),
		scraper.WithTimeout(a.cfg.Timeout),
		scraper.WithUserAgent(a.cfg.UserAgent),
	)
	if a.opts.noCache {
		return fetcher, nil
	}

	store, err := storage.New(a.cfg.DataDir, a.clock)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	if removed, err := store.CleanExpired(cacheMaxAge); err != nil {
		logger.Warn("Failed to clean page cache", logger.Fields{"dir": store.Dir(), "error": err.Error()})
	} else if removed > 0 {
		logger.Debug("Cleaned page cache", logger.Fields{"removed": removed})
	}

	mode := storage.ModeDefault
	switch {
	case a.opts.refresh:
		mode = storage.ModeRefresh
	case a.opts.offline:
		mode = storage.ModeOffline
	}

	return storage.NewCachingSource(fetcher, store, mode), nil
}

// resolveOptions applies saved defaults to the flags the user did not set
func (a *app) resolveOptions(cmd *cobra.Command, saved preferences.Defaults) (int, filter.Criteria) {
	flags := cmd.Flags()

	gmt := a.opts.gmt
	if !flags.Changed("gmt") && saved.GMT != nil {
		gmt = *saved.GMT
	}

	criteria := saved.Criteria()
	if flags.Changed("crew") {
		criteria.Crew = a.opts.crew
	}
	if flags.Changed("boat") {
		criteria.Boat = a.opts.boat
	}
	if flags.Changed("trophy") {
		criteria.Trophy = a.opts.trophy
	}
	criteria.Crew = filter.ParseCrew(criteria.Crew)

	return gmt, criteria
}

// runSchedule is the main command logic
func (a *app) runSchedule(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(a.opts.format))
	if format != FormatText && format != FormatJSON && format != FormatICS {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", a.opts.format)
	}

	var raceDay time.Time
	if a.opts.date != "" {
		raceDay = calendar.ParseRaceDay(a.opts.date, a.clock.Now())
		if raceDay.IsZero() {
			return fmt.Errorf("invalid date: %s", a.opts.date)
		}
	}

	order := SortOrder(strings.ToLower(a.opts.sort))
	if order != SortByPage && order != SortByTime && order != SortByNumber {
		return fmt.Errorf("invalid sort: %s (must be 'page', 'time' or 'number')", a.opts.sort)
	}

	saved, err := preferences.NewFileStorage(a.cfg.ConfigDir).Load()
	if err != nil {
		return fmt.Errorf("loading defaults: %w", err)
	}

	gmt, criteria := a.resolveOptions(cmd, saved)

	table, err := a.loadTable()
	if err != nil {
		return err
	}

	if criteria.Boat != "" {
		if boat, err := filter.ParseBoat(criteria.Boat, table.Boats()); err != nil {
			logger.Warn("Boat class not in trophy table", logger.Fields{"boat": criteria.Boat})
		} else {
			criteria.Boat = boat
		}
	}

	extractor, err := timetable.New(gmt, table)
	if err != nil {
		return err
	}

	src, err := a.source()
	if err != nil {
		return err
	}

	logger.Debug("Fetching timetable", logger.Fields{"url": a.cfg.URL})
	start := time.Now()

	markup, err := src.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching timetable: %w", err)
	}

	logger.Debug("Fetched timetable", logger.Fields{"bytes": len(markup), "elapsed": time.Since(start).String()})

	tt, err := extractor.Extract(markup)
	if err != nil {
		return err
	}

	if tt.NoRows {
		logger.Warn("No race elements found", logger.Fields{"url": a.cfg.URL})
	}
	for _, d := range tt.Dropped {
		logger.Warn("Skipping race with unreadable time", logger.Fields{"race": d.Number, "row": d.Index, "reason": d.Reason})
	}

	if raceDay.IsZero() {
		raceDay = calendar.ParseRaceDay(tt.RaceDate, a.clock.Now())
	}

	matches := timetable.Filter(tt.Records, criteria)
	sortMatches(matches, order)

	logger.Debug("Filtered races", logger.Fields{"total": len(tt.Records), "shown": len(matches), "filter": criteria.String()})

	result := &OutputResult{
		RaceDate:  tt.RaceDate,
		GMTOffset: gmt,
		Filter:    criteria,
		Races:     matches,
		RaceCount: len(matches),
		NoRows:    tt.NoRows,
		Dropped:   tt.Dropped,
		RaceDay:   raceDay,
		Generated: a.clock.Now(),
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format, !a.opts.noColor); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if a.opts.failEmpty && len(matches) == 0 {
		return errNoMatches
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(NewRootCmd(), os.Stderr))
}

// run executes cmd and maps its error to an exit code
func run(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNoMatches):
		return ExitNoMatches
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}
