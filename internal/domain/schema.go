package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is matched by every *SchemaError.
var ErrSchema = errors.New("schema mismatch")

// SchemaError lists the columns a table is missing.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing columns [%s]", ErrSchema, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// Schema is the set of columns a table must declare.
type Schema struct {
	Required []string `yaml:"required" mapstructure:"required"`
}

// Check returns a *SchemaError when any required column is not declared.
func (s Schema) Check(t *Table) error {
	var missing []string
	for _, col := range s.Required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Default is a single fill value for a column.
type Default struct {
	Column string `yaml:"column" mapstructure:"column"`
	Value  any    `yaml:"value" mapstructure:"value"`
}

// Defaults is an ordered column to fill value mapping.
type Defaults []Default

// DefaultDefaults returns the fill values for the top anime listing.
func DefaultDefaults() Defaults {
	return Defaults{
		{Column: "year", Value: -1},
		{Column: "season", Value: "Unknown"},
		{Column: "score", Value: -1.0},
		{Column: "scored_by", Value: 0},
		{Column: "rank", Value: 99999},
		{Column: "episodes", Value: 0},
		{Column: "rating", Value: "Unknown"},
		{Column: "type", Value: "Unknown"},
	}
}

// Profile bundles everything the cleaning pipeline needs to know about the
// shape of its input and output.
type Profile struct {
	Defaults Defaults `yaml:"defaults"`
	Schema   Schema   `yaml:"schema"`
	Columns  []string `yaml:"columns"`
}

// DefaultProfile returns the profile used for the Jikan top anime listing.
func DefaultProfile() *Profile {
	return &Profile{
		Defaults: DefaultDefaults(),
		// defaulted columns are added by the fill stage
		Schema: Schema{Required: []string{
			"mal_id", "title", "status", "source", "genres", "demographics",
		}},
		Columns: []string{
			"mal_id", "title", "type", "episodes", "status", "source",
			"season", "year", "rating", "rank", "score", "scored_by",
			"genres", "demographics", "has_year", "has_season",
		},
	}
}
