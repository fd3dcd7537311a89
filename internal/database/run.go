package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/animetop/internal/domain"
)

// RunRepo implements domain.RunStore
type RunRepo struct {
	log zerolog.Logger
	db  *DB
}

// NewRunRepo creates a new run log repository
func NewRunRepo(log zerolog.Logger, db *DB) *RunRepo {
	return &RunRepo{
		log: log.With().Str("repo", "runs").Logger(),
		db:  db,
	}
}

var _ domain.RunStore = (*RunRepo)(nil)

// InsertRun records a run and returns its id
func (r *RunRepo) InsertRun(ctx context.Context, run *domain.Run) (int64, error) {
	queryBuilder := r.db.squirrel.
		Insert("runs").
		Columns("mode", "pages", "fetched", "kept", "stop_reason", "started_at", "completed_at").
		Values(run.Mode, run.Pages, run.Fetched, run.Kept, run.StopReason,
			run.StartedAt.UTC().Format(time.RFC3339), run.CompletedAt.UTC().Format(time.RFC3339))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("InsertRun")

	res, err := r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "error executing query")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "error reading run id")
	}

	run.ID = id
	return id, nil
}

// LatestRun returns the most recent run, or nil when none was recorded
func (r *RunRepo) LatestRun(ctx context.Context) (*domain.Run, error) {
	query, args, err := r.db.squirrel.
		Select("id", "mode", "pages", "fetched", "kept", "stop_reason", "started_at", "completed_at").
		From("runs").
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	var (
		run                domain.Run
		stopReason         sql.NullString
		started, completed string
	)

	err = r.db.handler.QueryRowContext(ctx, query, args...).
		Scan(&run.ID, &run.Mode, &run.Pages, &run.Fetched, &run.Kept, &stopReason, &started, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error executing query")
	}

	run.StopReason = stopReason.String
	if run.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return nil, errors.Wrap(err, "error parsing started_at")
	}
	if run.CompletedAt, err = time.Parse(time.RFC3339, completed); err != nil {
		return nil, errors.Wrap(err, "error parsing completed_at")
	}

	return &run, nil
}
