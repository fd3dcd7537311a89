package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTable_ColumnOrder(t *testing.T) {
	records := []Record{
		{"title": "A", "mal_id": 1.0},
		{"score": 9.0, "title": "B", "year": nil},
	}

	table := NewTable(records, "mal_id", "title", "not_there")
	require.Equal(t, []string{"mal_id", "title", "score", "year"}, table.Columns)
	require.Equal(t, 2, table.Len())
}

func TestRecord_Present(t *testing.T) {
	r := Record{"year": nil, "season": "spring"}
	require.False(t, r.Present("year"))
	require.True(t, r.Present("season"))
	require.False(t, r.Present("episodes"))
}

func TestSchema_Check(t *testing.T) {
	table := NewTable([]Record{{"title": "A"}})

	require.NoError(t, Schema{Required: []string{"title"}}.Check(table))

	err := Schema{Required: []string{"title", "genres", "score"}}.Check(table)
	require.ErrorIs(t, err, ErrSchema)
	require.EqualError(t, err, "schema mismatch: missing columns [genres, score]")
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{in: 12.0, want: 12, ok: true},
		{in: 12.9, want: 12, ok: true},
		{in: 7, want: 7, ok: true},
		{in: "42", want: 42, ok: true},
		{in: "x", ok: false},
		{in: nil, ok: false},
		{in: true, ok: false},
	}

	for _, tt := range tests {
		got, ok := ToInt(tt.in)
		require.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			require.Equal(t, tt.want, got, "%v", tt.in)
		}
	}
}
