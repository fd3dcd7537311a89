// Package features turns a cleaned table into model inputs.
package features

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/varoOP/animetop/internal/domain"
)

// OneHot replaces each categorical column with 0/1 columns named
// <column>_<value>, appended after the remaining columns. Categories are
// sorted; with dropFirst the first one gets no column. Missing values encode
// as all zeros.
func OneHot(t *domain.Table, cols []string, dropFirst bool) error {
	if err := (domain.Schema{Required: cols}).Check(t); err != nil {
		return errors.Wrap(err, "one-hot encode")
	}

	encode := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		encode[c] = struct{}{}
	}

	var kept []string
	for _, c := range t.Columns {
		if _, ok := encode[c]; !ok {
			kept = append(kept, c)
		}
	}

	var added []string
	for _, col := range cols {
		categories := categoriesOf(t, col)
		if dropFirst && len(categories) > 0 {
			categories = categories[1:]
		}

		for _, cat := range categories {
			name := col + "_" + cat
			added = append(added, name)
			for _, r := range t.Rows {
				if r.Present(col) && fmt.Sprint(r[col]) == cat {
					r[name] = 1
				} else {
					r[name] = 0
				}
			}
		}

		for _, r := range t.Rows {
			delete(r, col)
		}
	}

	t.Columns = append(kept, added...)
	return nil
}

func categoriesOf(t *domain.Table, col string) []string {
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		if !r.Present(col) {
			continue
		}
		seen[fmt.Sprint(r[col])] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Select splits a table into features and the target column values. Columns
// listed in drop are left out of the features.
func Select(t *domain.Table, target string, drop ...string) (*domain.Table, []any, error) {
	required := append([]string{target}, drop...)
	if err := (domain.Schema{Required: required}).Check(t); err != nil {
		return nil, nil, errors.Wrap(err, "select features")
	}

	excluded := make(map[string]struct{}, len(required))
	for _, c := range required {
		excluded[c] = struct{}{}
	}

	x := &domain.Table{}
	for _, c := range t.Columns {
		if _, ok := excluded[c]; !ok {
			x.Columns = append(x.Columns, c)
		}
	}

	y := make([]any, 0, t.Len())
	for _, r := range t.Rows {
		row := make(domain.Record, len(x.Columns))
		for _, c := range x.Columns {
			row[c] = r[c]
		}
		x.Rows = append(x.Rows, row)
		y = append(y, r[target])
	}

	return x, y, nil
}
