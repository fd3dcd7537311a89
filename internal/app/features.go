package app

import (
	"context"
	"fmt"

	"github.com/varoOP/animetop/internal/domain"
	"github.com/varoOP/animetop/internal/features"
)

// FeatureOptions selects how the cleaned table becomes a feature matrix
type FeatureOptions struct {
	Target    string
	OneHot    []string
	DropFirst bool
	Drop      []string
}

// Features one-hot encodes the cleaned table, splits off the target and
// writes features plus target (as the last column) to the feature CSV.
func (a *App) Features(ctx context.Context, opts FeatureOptions) (*domain.Table, error) {
	clean, err := a.tables.GetTable(ctx, a.paths.CleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load clean table: %w", err)
	}

	if err := features.OneHot(clean, opts.OneHot, opts.DropFirst); err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}

	x, y, err := features.Select(clean, opts.Target, opts.Drop...)
	if err != nil {
		return nil, fmt.Errorf("failed to select features: %w", err)
	}

	x.AddColumn(opts.Target)
	for i, rec := range x.Rows {
		rec[opts.Target] = y[i]
	}

	if err := a.tables.StoreTable(ctx, a.paths.FeaturePath, x); err != nil {
		return nil, fmt.Errorf("failed to write features: %w", err)
	}

	a.log.Info().
		Int("rows", x.Len()).
		Int("columns", len(x.Columns)).
		Str("path", string(a.paths.FeaturePath)).
		Msg("Wrote feature table")

	return x, nil
}
