package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/varoOP/animetop/internal/config"
	"github.com/varoOP/animetop/internal/database"
	"github.com/varoOP/animetop/internal/domain"
	"github.com/varoOP/animetop/internal/jikan"
	"github.com/varoOP/animetop/internal/logger"
	"github.com/varoOP/animetop/internal/notification"
	"github.com/varoOP/animetop/internal/repository"
	"github.com/varoOP/animetop/internal/transform"
)

const (
	ModeBounded   = "bounded"
	ModeAll       = "all"
	ModeTransform = "transform"
)

// App represents the main application with all dependencies initialized
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	paths               *domain.Paths
	records             domain.RecordRepository
	tables              domain.TableRepository
	profiles            domain.ProfileRepository
	fetcher             jikan.Service
	notificationService domain.NotificationService
}

// NewApp loads the configuration and builds an application from it
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return New(logger.NewLoggerWithLevel(logger.Level(cfg.Quiet, cfg.Debug)), cfg)
}

// New creates an application instance for an already validated configuration
func New(log zerolog.Logger, cfg *domain.Config) (*App, error) {
	fetcher, err := jikan.NewService(log, jikan.Options{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		PerPage:   cfg.PerPage,
		Delay:     cfg.Delay,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fetcher: %w", err)
	}

	fileRepo := repository.NewFileRepository(log)

	return &App{
		log:                 log,
		config:              cfg,
		paths:               cfg.Paths(),
		records:             fileRepo,
		tables:              fileRepo,
		profiles:            fileRepo,
		fetcher:             fetcher,
		notificationService: notification.NewService(log, cfg.DiscordWebhookURL),
	}, nil
}

// Paths returns the resolved data locations
func (a *App) Paths() *domain.Paths {
	return a.paths
}

// FetchSummary is the outcome of a fetch together with when it started
type FetchSummary struct {
	*jikan.Result
	Mode      string
	StartedAt time.Time
}

// Fetch downloads the ranking and stores the raw records. A request failure
// ends the fetch early but is not an error: whatever was accumulated is kept.
func (a *App) Fetch(ctx context.Context) (*FetchSummary, error) {
	summary, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}

	a.recordRun(ctx, &domain.Run{
		Mode:        summary.Mode,
		Pages:       summary.Pages,
		Fetched:     len(summary.Records),
		StopReason:  string(summary.Stop),
		StartedAt:   summary.StartedAt,
		CompletedAt: time.Now(),
	})

	return summary, nil
}

func (a *App) fetch(ctx context.Context) (*FetchSummary, error) {
	summary := &FetchSummary{Mode: ModeBounded, StartedAt: time.Now()}

	var err error
	if a.config.FetchAll {
		summary.Mode = ModeAll
		summary.Result, err = a.fetcher.FetchAll(ctx)
	} else {
		summary.Result, err = a.fetcher.FetchTop(ctx, a.config.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top anime: %w", err)
	}

	if summary.Err != nil {
		a.log.Warn().Err(summary.Err).Int("records", len(summary.Records)).Msg("Fetch stopped early, keeping partial results")
	}

	if err := a.records.Store(ctx, a.paths.RawPath, summary.Records); err != nil {
		return nil, fmt.Errorf("failed to store raw records: %w", err)
	}

	a.log.Info().
		Str("mode", summary.Mode).
		Int("pages", summary.Pages).
		Int("records", len(summary.Records)).
		Str("stop_reason", string(summary.Stop)).
		Str("path", string(a.paths.RawPath)).
		Msg("Fetch complete")

	return summary, nil
}

// Transform cleans the stored raw records and writes the configured sinks
func (a *App) Transform(ctx context.Context) (*transform.Report, error) {
	started := time.Now()

	records, err := a.records.Get(ctx, a.paths.RawPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load raw records: %w", err)
	}

	report, err := a.transform(ctx, records)
	if err != nil {
		return nil, err
	}

	a.recordRun(ctx, &domain.Run{
		Mode:        ModeTransform,
		Fetched:     report.RowsIn,
		Kept:        report.RowsOut,
		StartedAt:   started,
		CompletedAt: time.Now(),
	})

	return report, nil
}

func (a *App) transform(ctx context.Context, records []domain.Record) (*transform.Report, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to transform in %s", a.paths.RawPath)
	}

	profile, err := a.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	table := domain.NewTable(records, profile.Columns...)

	report, err := transform.NewDefaultPipeline(a.log, profile).Run(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to transform records: %w", err)
	}

	if err := a.writeTable(ctx, table); err != nil {
		return nil, err
	}

	a.log.Info().
		Int("rows_in", report.RowsIn).
		Int("rows_out", report.RowsOut).
		Int("duplicates", report.Dropped(transform.StageDropDuplicates)).
		Int("invalid_scores", report.Dropped(transform.StageFilterScores)).
		Msg("Transform complete")

	return report, nil
}

// Run fetches and transforms in one go and reports the outcome
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			if notifyErr := a.notificationService.SendError(ctx, err); notifyErr != nil {
				a.log.Warn().Err(notifyErr).Msg("Failed to send error notification")
			}
		}
	}()

	summary, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	report, err := a.transform(ctx, summary.Records)
	if err != nil {
		return err
	}

	stats := calculateStatistics(summary, report)

	a.recordRun(ctx, &domain.Run{
		Mode:        summary.Mode,
		Pages:       summary.Pages,
		Fetched:     stats.Fetched,
		Kept:        stats.RowsOut,
		StopReason:  stats.StopReason,
		StartedAt:   summary.StartedAt,
		CompletedAt: time.Now(),
	})

	a.log.Info().
		Int("fetched", stats.Fetched).
		Int("kept", stats.RowsOut).
		Float64("kept_pct", stats.KeptPercent).
		Msg("=== RUN SUMMARY ===")

	if notifyErr := a.notificationService.SendSuccess(ctx, stats); notifyErr != nil {
		a.log.Warn().Err(notifyErr).Msg("Failed to send success notification")
	}

	return nil
}

func calculateStatistics(summary *FetchSummary, report *transform.Report) domain.Statistics {
	stats := domain.Statistics{
		Mode:              summary.Mode,
		Pages:             summary.Pages,
		Fetched:           len(summary.Records),
		StopReason:        string(summary.Stop),
		RowsIn:            report.RowsIn,
		RowsOut:           report.RowsOut,
		DuplicatesDropped: report.Dropped(transform.StageDropDuplicates),
		InvalidScores:     report.Dropped(transform.StageFilterScores),
	}

	if stats.RowsIn > 0 {
		stats.KeptPercent = float64(stats.RowsOut) / float64(stats.RowsIn) * 100
	}

	return stats
}

// loadProfile reads the profile file when one exists and falls back to the
// built-in profile otherwise. An explicitly configured profile must exist.
func (a *App) loadProfile(ctx context.Context) (*domain.Profile, error) {
	path := a.paths.ProfilePath
	if _, err := os.Stat(string(path)); err != nil {
		if os.IsNotExist(err) && a.config.ProfilePath == "" {
			return domain.DefaultProfile(), nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile, err := a.profiles.GetProfile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	a.log.Debug().Str("path", string(path)).Msg("Using transform profile")
	return profile, nil
}

func (a *App) writeTable(ctx context.Context, table *domain.Table) error {
	if a.config.WritesCSV() {
		if err := a.tables.StoreTable(ctx, a.paths.CleanPath, table); err != nil {
			return fmt.Errorf("failed to write clean csv: %w", err)
		}
		a.log.Info().Str("path", string(a.paths.CleanPath)).Int("rows", table.Len()).Msg("Wrote clean table")
	}

	if a.config.WritesSQLite() {
		err := a.withDB(func(db *database.DB) error {
			return database.NewAnimeRepo(a.log, db).ReplaceAll(ctx, table)
		})
		if err != nil {
			return fmt.Errorf("failed to write sqlite table: %w", err)
		}
		a.log.Info().Str("path", database.Path(a.paths.DBDir)).Int("rows", table.Len()).Msg("Wrote clean table")
	}

	return nil
}

// recordRun appends to the run log when the SQLite sink is enabled. A failure
// here never fails the run.
func (a *App) recordRun(ctx context.Context, run *domain.Run) {
	if !a.config.WritesSQLite() {
		return
	}

	err := a.withDB(func(db *database.DB) error {
		_, err := database.NewRunRepo(a.log, db).InsertRun(ctx, run)
		return err
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to record run")
	}
}

func (a *App) withDB(fn func(db *database.DB) error) error {
	if err := os.MkdirAll(a.paths.DBDir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := database.NewDB(a.paths.DBDir, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
