package transform

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/animetop/internal/domain"
)

const topAnimeFixture = `[
	{
		"mal_id": 5114, "title": "Fullmetal Alchemist: Brotherhood", "type": "TV", "episodes": 64,
		"status": "Finished Airing", "source": "Manga", "season": "spring", "year": 2009,
		"rating": "R - 17+ (violence & profanity)", "rank": 1, "score": 9.1, "scored_by": 2000000,
		"genres": [{"mal_id": 1, "type": "anime", "name": "Action"}, {"mal_id": 2, "type": "anime", "name": "Adventure"}],
		"demographics": [{"mal_id": 27, "type": "anime", "name": "Shounen"}]
	},
	{
		"mal_id": 9253, "title": "Steins;Gate", "type": "tv", "episodes": 24,
		"status": "finished airing", "source": "visual novel", "season": null, "year": null,
		"rating": "pg-13 - teens 13 or older", "rank": 3, "score": 9.07, "scored_by": 1300000,
		"genres": [{"mal_id": 8, "type": "anime", "name": "Drama"}],
		"demographics": []
	},
	{
		"mal_id": 1, "title": "Steins;Gate", "type": "TV", "episodes": 1,
		"status": "Finished Airing", "source": "Original", "season": "fall", "year": 2020,
		"rating": "G", "rank": 2, "score": 8.0, "scored_by": 10,
		"genres": [], "demographics": []
	},
	{
		"mal_id": 42, "title": "Broken Score", "type": null, "episodes": null,
		"status": "Not yet aired", "source": "Manga", "season": "winter", "year": 2026,
		"rating": null, "rank": null, "score": 15, "scored_by": null,
		"genres": null, "demographics": null
	},
	{
		"mal_id": 43, "title": "Upcoming", "type": "Movie", "episodes": null,
		"status": "Not yet aired", "source": "Original", "season": null, "year": null,
		"rating": null, "rank": null, "score": null, "scored_by": null,
		"genres": "n/a", "demographics": []
	}
]`

func TestDefaultPipeline_EndToEnd(t *testing.T) {
	table := domain.NewTable(decodeRecords(t, topAnimeFixture))
	profile := domain.DefaultProfile()

	report, err := NewDefaultPipeline(zerolog.Nop(), profile).Run(context.Background(), table)
	require.NoError(t, err)

	require.Equal(t, 5, report.RowsIn)
	require.Equal(t, 3, report.RowsOut)
	require.Equal(t, 1, report.Dropped(StageDropDuplicates))
	require.Equal(t, 1, report.Dropped(StageFilterScores))
	require.Equal(t, profile.Columns, table.Columns)

	want := []domain.Record{
		{
			"mal_id": float64(5114), "title": "Fullmetal Alchemist: Brotherhood", "type": "Tv", "episodes": 64,
			"status": "Finished Airing", "source": "Manga", "season": "Spring", "year": 2009,
			"rating": "R - 17+ (VIOLENCE & PROFANITY)", "rank": 1, "score": 9.1, "scored_by": float64(2000000),
			"genres": "Action, Adventure", "demographics": "Shounen", "has_year": 1, "has_season": 1,
		},
		{
			"mal_id": float64(9253), "title": "Steins;Gate", "type": "Tv", "episodes": 24,
			"status": "Finished Airing", "source": "Visual Novel", "season": "Unknown", "year": -1,
			"rating": "PG-13 - TEENS 13 OR OLDER", "rank": 3, "score": 9.07, "scored_by": float64(1300000),
			"genres": "Drama", "demographics": "", "has_year": 0, "has_season": 0,
		},
		{
			"mal_id": float64(43), "title": "Upcoming", "type": "Movie", "episodes": 0,
			"status": "Not Yet Aired", "source": "Original", "season": "Unknown", "year": -1,
			"rating": "UNKNOWN", "rank": 99999, "score": -1.0, "scored_by": 0,
			"genres": "", "demographics": "", "has_year": 0, "has_season": 0,
		},
	}

	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("cleaned table mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_SchemaCheckedBeforeStages(t *testing.T) {
	table := domain.NewTable([]domain.Record{{"title": "A", "score": 5.0}})
	stage := &recordingStage{}

	_, err := NewPipeline(zerolog.Nop(), domain.Schema{Required: []string{"title", "genres"}}, stage).
		Run(context.Background(), table)

	require.ErrorIs(t, err, domain.ErrSchema)
	require.False(t, stage.called)
}

func TestPipeline_StageErrorStopsRun(t *testing.T) {
	table := domain.NewTable([]domain.Record{{"title": "A", "year": "unknown"}})
	after := &recordingStage{}

	_, err := NewPipeline(zerolog.Nop(), domain.Schema{},
		CoerceInts{Columns: []string{"year"}},
		after,
	).Run(context.Background(), table)

	require.Error(t, err)
	require.Contains(t, err.Error(), StageCoerceInts)
	require.False(t, after.called)
}

func TestPipeline_IndicatorsAfterFillSeeDefaults(t *testing.T) {
	// Indicators placed after the fill stage can no longer tell what was missing.
	records := []domain.Record{{"title": "A", "year": nil, "season": nil}}
	table := domain.NewTable(records)

	_, err := NewPipeline(zerolog.Nop(), domain.Schema{},
		FillDefaults{Defaults: domain.DefaultDefaults()},
		DefaultMissingIndicators(),
	).Run(context.Background(), table)
	require.NoError(t, err)
	require.Equal(t, 1, table.Rows[0]["has_year"])

	table = domain.NewTable([]domain.Record{{"title": "A", "year": nil, "season": nil}})
	_, err = NewDefaultPipeline(zerolog.Nop(), &domain.Profile{
		Defaults: domain.DefaultDefaults(),
		Schema:   domain.Schema{Required: []string{"title"}},
		Columns:  []string{"title", "year", "has_year", "has_season"},
	}).Run(context.Background(), table)
	require.Error(t, err, "status and friends are required by the string stage")

	table = domain.NewTable([]domain.Record{{
		"title": "A", "year": nil, "season": nil, "status": "", "source": "",
		"genres": nil, "demographics": nil,
	}})
	_, err = NewDefaultPipeline(zerolog.Nop(), &domain.Profile{
		Defaults: domain.DefaultDefaults(),
		Columns:  []string{"title", "year", "has_year", "has_season"},
	}).Run(context.Background(), table)
	require.NoError(t, err)
	require.Equal(t, domain.Record{"title": "A", "year": -1, "has_year": 0, "has_season": 0}, table.Rows[0])
}

func TestPipeline_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stage := &recordingStage{}
	_, err := NewPipeline(zerolog.Nop(), domain.Schema{}, stage).Run(ctx, domain.NewTable(nil))
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, stage.called)
}

type recordingStage struct {
	called bool
}

func (s *recordingStage) Name() string { return "recording" }

func (s *recordingStage) Apply(t *domain.Table) error {
	s.called = true
	return nil
}
