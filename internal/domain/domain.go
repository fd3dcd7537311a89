package domain

// Record is a single anime entry as returned by the ranking API.
// A field is missing when its key is absent or its value is nil.
type Record map[string]any

// Present reports whether the field exists and is not null.
func (r Record) Present(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Title returns the record title or "" when it is missing or not a string.
func (r Record) Title() string {
	s, _ := r["title"].(string)
	return s
}

// Table is an ordered set of columns over a slice of records.
type Table struct {
	Columns []string
	Rows    []Record
}

// NewTable builds a table from records, taking the union of their keys in
// first-seen order. Key order inside a map is not stable, so the keys of each
// record are visited in the order given by keyOrder when possible.
func NewTable(records []Record, keyOrder ...string) *Table {
	t := &Table{Rows: records}
	seen := make(map[string]struct{})

	add := func(col string) {
		if _, ok := seen[col]; ok {
			return
		}
		seen[col] = struct{}{}
		t.Columns = append(t.Columns, col)
	}

	for _, col := range keyOrder {
		for _, r := range records {
			if _, ok := r[col]; ok {
				add(col)
				break
			}
		}
	}

	for _, r := range records {
		for _, col := range sortedKeys(r) {
			add(col)
		}
	}

	return t
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// AddColumn declares a column if it is not declared yet.
func (t *Table) AddColumn(col string) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
