package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/varoOP/animetop/internal/database"
	"github.com/varoOP/animetop/internal/domain"
	"github.com/varoOP/animetop/internal/repository"
)

// previewColumns are shown when present; a table without any of them is
// shown in full.
var previewColumns = []string{"rank", "title", "type", "episodes", "season", "year", "score", "genres"}

// Preview renders the first rows of the cleaned table. It reads the CSV sink
// when enabled and otherwise the best scored rows from SQLite.
func (a *App) Preview(ctx context.Context, w io.Writer, rows int) error {
	var (
		clean *domain.Table
		err   error
	)

	if a.config.WritesCSV() {
		clean, err = a.tables.GetTable(ctx, a.paths.CleanPath)
		if err != nil {
			return fmt.Errorf("failed to load clean table: %w", err)
		}
		if rows >= 0 && rows < clean.Len() {
			clean.Rows = clean.Rows[:rows]
		}
	} else {
		err = a.withDB(func(db *database.DB) error {
			var dbErr error
			clean, dbErr = topFromDB(ctx, database.NewAnimeRepo(a.log, db), rows)
			return dbErr
		})
		if err != nil {
			return fmt.Errorf("failed to load clean table: %w", err)
		}
	}

	renderTable(w, clean)
	return nil
}

func topFromDB(ctx context.Context, store domain.AnimeStore, n int) (*domain.Table, error) {
	top, err := store.TopByScore(ctx, n)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(top))
	for _, a := range top {
		rec := domain.Record{}
		if err := json.Unmarshal([]byte(a.Data), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode stored row %d: %w", a.Position, err)
		}
		records = append(records, rec)
	}

	return domain.NewTable(records, previewColumns...), nil
}

func renderTable(w io.Writer, clean *domain.Table) {
	columns := make([]string, 0, len(previewColumns))
	for _, c := range previewColumns {
		if clean.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		columns = clean.Columns
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, rec := range clean.Rows {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			row[i] = repository.FormatValue(rec[c])
		}
		t.AppendRow(row)
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", clean.Len())})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
