package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/animetop/internal/domain"
)

func TestFileRepository_RecordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(zerolog.Nop())
	path := domain.DataPath(filepath.Join(t.TempDir(), "raw", "top_anime.json"))

	records := []domain.Record{
		{"mal_id": 5114.0, "title": "Fullmetal Alchemist: Brotherhood", "genres": []any{map[string]any{"name": "Action"}}},
		{"mal_id": 9253.0, "title": "Steins;Gate <3", "year": nil},
	}
	require.NoError(t, repo.Store(ctx, path, records))

	raw, err := os.ReadFile(string(path))
	require.NoError(t, err)
	require.Contains(t, string(raw), "Steins;Gate <3", "html characters stay unescaped")

	got, err := repo.Get(ctx, path)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestFileRepository_StoreNilRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(zerolog.Nop())
	path := domain.DataPath(filepath.Join(t.TempDir(), "empty.json"))

	require.NoError(t, repo.Store(ctx, path, nil))

	got, err := repo.Get(ctx, path)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFileRepository_GetErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(zerolog.Nop())
	dir := t.TempDir()

	_, err := repo.Get(ctx, domain.DataPath(filepath.Join(dir, "missing.json")))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = repo.Get(ctx, domain.DataPath(dir))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = repo.Get(ctx, domain.DataPath(bad))
	require.Error(t, err)
}

func TestFileRepository_StoreTable(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(zerolog.Nop())
	path := domain.DataPath(filepath.Join(t.TempDir(), "processed", "clean.csv"))

	table := &domain.Table{
		Columns: []string{"mal_id", "title", "score", "scored_by", "genres", "has_year"},
		Rows: []domain.Record{
			{"mal_id": 5114.0, "title": "Fullmetal Alchemist: Brotherhood", "score": 9.1, "scored_by": 2000000.0, "genres": "Action, Adventure", "has_year": 1},
			{"mal_id": 43.0, "title": "Upcoming", "score": -1.0, "scored_by": 0, "genres": "", "has_year": 0},
		},
	}
	require.NoError(t, repo.StoreTable(ctx, path, table))

	raw, err := os.ReadFile(string(path))
	require.NoError(t, err)
	require.Equal(t,
		"mal_id,title,score,scored_by,genres,has_year\n"+
			"5114,Fullmetal Alchemist: Brotherhood,9.1,2000000,\"Action, Adventure\",1\n"+
			"43,Upcoming,-1,0,,0\n",
		string(raw))

	got, err := repo.GetTable(ctx, path)
	require.NoError(t, err)
	require.Equal(t, table.Columns, got.Columns)
	require.Equal(t, "Action, Adventure", got.Rows[0]["genres"])
	require.Equal(t, "-1", got.Rows[1]["score"])
}

func TestFileRepository_ProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(zerolog.Nop())
	path := domain.DataPath(filepath.Join(t.TempDir(), "profile.yaml"))

	require.NoError(t, repo.StoreProfile(ctx, path, domain.DefaultProfile()))

	got, err := repo.GetProfile(ctx, path)
	require.NoError(t, err)

	want := domain.DefaultProfile()
	require.Equal(t, want.Columns, got.Columns)
	require.Equal(t, want.Schema, got.Schema)
	require.Len(t, got.Defaults, len(want.Defaults))
	for i, d := range got.Defaults {
		require.Equal(t, want.Defaults[i].Column, d.Column)
	}
	require.Equal(t, "Unknown", got.Defaults[1].Value)
	require.Equal(t, 99999, got.Defaults[4].Value)
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "", FormatValue(nil))
	require.Equal(t, "12", FormatValue(12.0))
	require.Equal(t, "9.07", FormatValue(9.07))
	require.Equal(t, "-1", FormatValue(-1))
	require.Equal(t, "true", FormatValue(true))
	require.Equal(t, `[{"name":"Action"}]`, FormatValue([]any{map[string]any{"name": "Action"}}))
}
