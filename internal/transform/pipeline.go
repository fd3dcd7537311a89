package transform

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/animetop/internal/domain"
)

// Stage is a whole-table operation. Stages run one after another and never
// see a partially transformed table.
type Stage interface {
	Name() string
	Apply(t *domain.Table) error
}

// StageReport records the row counts around a single stage.
type StageReport struct {
	Name    string
	RowsIn  int
	RowsOut int
}

// Report summarizes a pipeline run.
type Report struct {
	RowsIn  int
	RowsOut int
	Stages  []StageReport
}

// Dropped returns how many rows the named stage removed.
func (r *Report) Dropped(name string) int {
	for _, s := range r.Stages {
		if s.Name == name {
			return s.RowsIn - s.RowsOut
		}
	}
	return 0
}

type Pipeline struct {
	log    zerolog.Logger
	schema domain.Schema
	stages []Stage
}

func NewPipeline(log zerolog.Logger, schema domain.Schema, stages ...Stage) *Pipeline {
	return &Pipeline{
		log:    log.With().Str("module", "transform").Logger(),
		schema: schema,
		stages: stages,
	}
}

// NewDefaultPipeline builds the cleaning pipeline for a profile. Missing
// indicators come first so they observe the input before defaults are filled.
func NewDefaultPipeline(log zerolog.Logger, profile *domain.Profile) *Pipeline {
	return NewPipeline(log, profile.Schema,
		DefaultMissingIndicators(),
		FillDefaults{Defaults: profile.Defaults},
		CoerceInts{Columns: []string{"year", "episodes", "rank"}},
		NormalizeStrings{
			Title: []string{"type", "season", "status", "source"},
			Upper: []string{"rating"},
		},
		FlattenLists{Columns: []string{"genres", "demographics"}},
		DropDuplicates{Column: "title"},
		DefaultScoreFilter(),
		Reorder{Columns: profile.Columns},
	)
}

func (p *Pipeline) Add(s Stage) *Pipeline {
	p.stages = append(p.stages, s)
	return p
}

// Run checks the schema and applies every stage in order, stopping at the
// first failure.
func (p *Pipeline) Run(ctx context.Context, t *domain.Table) (*Report, error) {
	if err := p.schema.Check(t); err != nil {
		return nil, errors.Wrap(err, "input does not match schema")
	}

	report := &Report{RowsIn: t.Len()}
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		in := t.Len()
		if err := s.Apply(t); err != nil {
			return nil, errors.Wrapf(err, "stage %s", s.Name())
		}

		report.Stages = append(report.Stages, StageReport{Name: s.Name(), RowsIn: in, RowsOut: t.Len()})
		p.log.Debug().Str("stage", s.Name()).Int("rows_in", in).Int("rows_out", t.Len()).Msg("applied stage")
	}
	report.RowsOut = t.Len()

	p.log.Info().Int("rows_in", report.RowsIn).Int("rows_out", report.RowsOut).Msg("Transform complete")
	return report, nil
}
