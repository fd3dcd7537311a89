package transform

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/varoOP/animetop/internal/domain"
)

const (
	StageMissingIndicators = "missing_indicators"
	StageFillDefaults      = "fill_defaults"
	StageCoerceInts        = "coerce_ints"
	StageNormalizeStrings  = "normalize_strings"
	StageFlattenLists      = "flatten_lists"
	StageDropDuplicates    = "drop_duplicates"
	StageFilterScores      = "filter_scores"
	StageReorder           = "reorder"
)

func requireColumns(t *domain.Table, cols ...string) error {
	return domain.Schema{Required: cols}.Check(t)
}

// Indicator derives a 0/1 column from the presence of another column.
type Indicator struct {
	Column string
	Source string
}

type MissingIndicators struct {
	Indicators []Indicator
}

func DefaultMissingIndicators() MissingIndicators {
	return MissingIndicators{Indicators: []Indicator{
		{Column: "has_year", Source: "year"},
		{Column: "has_season", Source: "season"},
	}}
}

func (MissingIndicators) Name() string { return StageMissingIndicators }

func (s MissingIndicators) Apply(t *domain.Table) error {
	for _, ind := range s.Indicators {
		t.AddColumn(ind.Column)
		for _, r := range t.Rows {
			if r.Present(ind.Source) {
				r[ind.Column] = 1
			} else {
				r[ind.Column] = 0
			}
		}
	}
	return nil
}

// FillDefaults replaces missing values only; present values are never touched.
type FillDefaults struct {
	Defaults domain.Defaults
}

func (FillDefaults) Name() string { return StageFillDefaults }

func (s FillDefaults) Apply(t *domain.Table) error {
	for _, d := range s.Defaults {
		t.AddColumn(d.Column)
		for _, r := range t.Rows {
			if !r.Present(d.Column) {
				r[d.Column] = d.Value
			}
		}
	}
	return nil
}

type CoerceInts struct {
	Columns []string
}

func (CoerceInts) Name() string { return StageCoerceInts }

func (s CoerceInts) Apply(t *domain.Table) error {
	if err := requireColumns(t, s.Columns...); err != nil {
		return err
	}

	for _, col := range s.Columns {
		for i, r := range t.Rows {
			n, ok := domain.ToInt(r[col])
			if !ok {
				return errors.Errorf("column %s row %d: cannot convert %v to integer", col, i, r[col])
			}
			r[col] = n
		}
	}
	return nil
}

// NormalizeStrings trims and title-cases or upper-cases string columns.
// Missing values become the empty string.
type NormalizeStrings struct {
	Title []string
	Upper []string
}

func (NormalizeStrings) Name() string { return StageNormalizeStrings }

func (s NormalizeStrings) Apply(t *domain.Table) error {
	if err := requireColumns(t, append(append([]string{}, s.Title...), s.Upper...)...); err != nil {
		return err
	}

	title := cases.Title(language.Und)
	upper := cases.Upper(language.Und)

	for _, col := range s.Title {
		for _, r := range t.Rows {
			r[col] = title.String(stringify(r[col]))
		}
	}
	for _, col := range s.Upper {
		for _, r := range t.Rows {
			r[col] = upper.String(stringify(r[col]))
		}
	}
	return nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// FlattenLists turns lists of {name, ...} objects into "A, B" strings.
type FlattenLists struct {
	Columns []string
}

func (FlattenLists) Name() string { return StageFlattenLists }

func (s FlattenLists) Apply(t *domain.Table) error {
	if err := requireColumns(t, s.Columns...); err != nil {
		return err
	}

	for _, col := range s.Columns {
		for _, r := range t.Rows {
			r[col] = ListToNames(r[col])
		}
	}
	return nil
}

// ListToNames joins the name of every object in items with ", ". Objects
// without a name are skipped and anything that is not a list yields "".
func ListToNames(items any) string {
	var names []string
	switch list := items.(type) {
	case []any:
		for _, item := range list {
			if name, ok := nameOf(item); ok {
				names = append(names, name)
			}
		}
	case []map[string]any:
		for _, item := range list {
			if name, ok := nameOf(item); ok {
				names = append(names, name)
			}
		}
	case []domain.Record:
		for _, item := range list {
			if name, ok := nameOf(map[string]any(item)); ok {
				names = append(names, name)
			}
		}
	default:
		return ""
	}
	return strings.Join(names, ", ")
}

func nameOf(item any) (string, bool) {
	var m map[string]any
	switch v := item.(type) {
	case map[string]any:
		m = v
	case domain.Record:
		m = v
	default:
		return "", false
	}

	name, ok := m["name"]
	if !ok {
		return "", false
	}
	if name == nil {
		return "", true
	}
	return fmt.Sprint(name), true
}

// DropDuplicates keeps the first row for each value of Column.
type DropDuplicates struct {
	Column string
}

func (DropDuplicates) Name() string { return StageDropDuplicates }

func (s DropDuplicates) Apply(t *domain.Table) error {
	if err := requireColumns(t, s.Column); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]
	for _, r := range t.Rows {
		key := fmt.Sprintf("%T:%v", r[s.Column], r[s.Column])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	t.Rows = kept
	return nil
}

// FilterScores keeps rows whose score is the sentinel or inside [Min, Max].
type FilterScores struct {
	Column   string
	Sentinel float64
	Min      float64
	Max      float64
}

func DefaultScoreFilter() FilterScores {
	return FilterScores{Column: "score", Sentinel: -1, Min: 0, Max: 10}
}

func (FilterScores) Name() string { return StageFilterScores }

func (s FilterScores) Apply(t *domain.Table) error {
	if err := requireColumns(t, s.Column); err != nil {
		return err
	}

	kept := t.Rows[:0]
	for i, r := range t.Rows {
		score, ok := domain.ToFloat(r[s.Column])
		if !ok {
			return errors.Errorf("column %s row %d: %v is not a number", s.Column, i, r[s.Column])
		}
		if score == s.Sentinel || (score >= s.Min && score <= s.Max) {
			kept = append(kept, r)
		}
	}
	t.Rows = kept
	return nil
}

// Reorder projects the table onto Columns, in that order.
type Reorder struct {
	Columns []string
}

func (Reorder) Name() string { return StageReorder }

func (s Reorder) Apply(t *domain.Table) error {
	if len(s.Columns) == 0 {
		return nil
	}
	if err := requireColumns(t, s.Columns...); err != nil {
		return err
	}

	for i, r := range t.Rows {
		projected := make(domain.Record, len(s.Columns))
		for _, col := range s.Columns {
			projected[col] = r[col]
		}
		t.Rows[i] = projected
	}
	t.Columns = append([]string{}, s.Columns...)
	return nil
}
