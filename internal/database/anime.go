package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/animetop/internal/domain"
)

// AnimeRepo implements domain.AnimeStore
type AnimeRepo struct {
	log zerolog.Logger
	db  *DB
}

// NewAnimeRepo creates a new anime repository
func NewAnimeRepo(log zerolog.Logger, db *DB) *AnimeRepo {
	return &AnimeRepo{
		log: log.With().Str("repo", "anime").Logger(),
		db:  db,
	}
}

var _ domain.AnimeStore = (*AnimeRepo)(nil)

// ReplaceAll deletes every stored row and inserts the table in order.
// Rows are numbered from 1 in table order.
func (r *AnimeRepo) ReplaceAll(ctx context.Context, table *domain.Table) error {
	r.db.lock.Lock()
	defer r.db.lock.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := r.db.squirrel.Delete("anime").ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error clearing anime table")
	}

	now := time.Now().Format(time.RFC3339)
	for i, rec := range table.Rows {
		data, err := json.Marshal(project(rec, table.Columns))
		if err != nil {
			return errors.Wrapf(err, "error encoding row %d", i+1)
		}

		query, args, err := r.db.squirrel.
			Insert("anime").
			Columns("position", "mal_id", "title", "rank", "score", "data", "stored_at").
			Values(i+1, nullInt(rec["mal_id"]), rec.Title(), nullInt(rec["rank"]), nullFloat(rec["score"]), string(data), now).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "error building query")
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "error inserting row %d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "error committing transaction")
	}

	r.log.Debug().Int("rows", table.Len()).Msg("replaced anime table")
	return nil
}

// Count returns the number of stored rows
func (r *AnimeRepo) Count(ctx context.Context) (int, error) {
	query, args, err := r.db.squirrel.Select("COUNT(*)").From("anime").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building query")
	}

	var count int
	if err := r.db.handler.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error executing query")
	}

	return count, nil
}

// TopByScore returns up to n rows with a known score, best first.
// Ties keep table order.
func (r *AnimeRepo) TopByScore(ctx context.Context, n int) ([]*domain.StoredAnime, error) {
	if n <= 0 {
		return []*domain.StoredAnime{}, nil
	}

	queryBuilder := r.db.squirrel.
		Select("position", "mal_id", "title", "rank", "score", "data").
		From("anime").
		Where(sq.GtOrEq{"score": 0}).
		OrderBy("score DESC", "position ASC").
		Limit(uint64(n))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("TopByScore")

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	result := []*domain.StoredAnime{}
	for rows.Next() {
		var (
			a           domain.StoredAnime
			malID, rank sql.NullInt64
			score       sql.NullFloat64
		)
		if err := rows.Scan(&a.Position, &malID, &a.Title, &rank, &score, &a.Data); err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		a.MalID = int(malID.Int64)
		a.Rank = int(rank.Int64)
		a.Score = score.Float64
		result = append(result, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return result, nil
}

func project(rec domain.Record, columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for _, col := range columns {
		out[col] = rec[col]
	}
	return out
}

func nullInt(v any) sql.NullInt64 {
	n, ok := domain.ToInt(v)
	return sql.NullInt64{Int64: int64(n), Valid: ok}
}

func nullFloat(v any) sql.NullFloat64 {
	f, ok := domain.ToFloat(v)
	return sql.NullFloat64{Float64: f, Valid: ok}
}
