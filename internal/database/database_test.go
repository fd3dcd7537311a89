package database

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/animetop/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDB_CreatesFileAndMigrates(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, db.Close())

	_, err = os.Stat(Path(dir))
	require.NoError(t, err)

	// reopening an up to date database is a no-op
	db, err = NewDB(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestAnimeRepo_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimeRepo(zerolog.Nop(), openTestDB(t))

	first := &domain.Table{
		Columns: []string{"mal_id", "title", "rank", "score"},
		Rows: []domain.Record{
			{"mal_id": 1.0, "title": "Old", "rank": 1, "score": 5.0},
		},
	}
	require.NoError(t, repo.ReplaceAll(ctx, first))

	second := &domain.Table{
		Columns: []string{"mal_id", "title", "rank", "score", "genres"},
		Rows: []domain.Record{
			{"mal_id": 9253.0, "title": "Steins;Gate", "rank": 3, "score": 9.07, "genres": "Drama"},
			{"mal_id": 43.0, "title": "Upcoming", "rank": 99999, "score": -1.0, "genres": ""},
			{"mal_id": 5114.0, "title": "Fullmetal Alchemist: Brotherhood", "rank": 1, "score": 9.1, "genres": "Action, Adventure"},
			{"mal_id": 1.0, "title": "Tie", "rank": 4, "score": 9.07, "genres": ""},
		},
	}
	require.NoError(t, repo.ReplaceAll(ctx, second))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	top, err := repo.TopByScore(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3, "unknown scores are excluded")

	var titles []string
	for _, a := range top {
		titles = append(titles, a.Title)
	}
	require.Equal(t, []string{"Fullmetal Alchemist: Brotherhood", "Steins;Gate", "Tie"}, titles)

	require.Equal(t, 3, top[0].Position)
	require.Equal(t, 5114, top[0].MalID)
	require.Equal(t, 1, top[0].Rank)
	require.Equal(t, 9.1, top[0].Score)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(top[0].Data), &data))
	require.Equal(t, "Action, Adventure", data["genres"])
	require.Len(t, data, 5)

	top, err = repo.TopByScore(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	top, err = repo.TopByScore(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestAnimeRepo_ReplaceAllEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimeRepo(zerolog.Nop(), openTestDB(t))

	require.NoError(t, repo.ReplaceAll(ctx, &domain.Table{
		Columns: []string{"title"},
		Rows:    []domain.Record{{"title": "A"}},
	}))
	require.NoError(t, repo.ReplaceAll(ctx, &domain.Table{Columns: []string{"title"}}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRunRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepo(zerolog.Nop(), openTestDB(t))

	latest, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	require.Nil(t, latest)

	started := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	for i, mode := range []string{"bounded", "all"} {
		run := &domain.Run{
			Mode:        mode,
			Pages:       2 + i,
			Fetched:     50,
			Kept:        48,
			StopReason:  "empty_page",
			StartedAt:   started.Add(time.Duration(i) * time.Hour),
			CompletedAt: started.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		id, err := repo.InsertRun(ctx, run)
		require.NoError(t, err)
		require.Equal(t, int64(i+1), id)
		require.Equal(t, id, run.ID)
	}

	latest, err = repo.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, int64(2), latest.ID)
	require.Equal(t, "all", latest.Mode)
	require.Equal(t, 3, latest.Pages)
	require.Equal(t, "empty_page", latest.StopReason)
	require.True(t, started.Add(time.Hour).Equal(latest.StartedAt))
	require.True(t, started.Add(time.Hour+time.Minute).Equal(latest.CompletedAt))
}
