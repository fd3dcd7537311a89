package domain

import "time"

// OutputFormat selects where the cleaned table is written
type OutputFormat string

const (
	OutputFormatCSV    OutputFormat = "csv"
	OutputFormatSQLite OutputFormat = "sqlite"
	OutputFormatBoth   OutputFormat = "both"
)

// MaxPerPage is the largest page size the ranking API accepts.
const MaxPerPage = 25

// Config holds the resolved settings for a run
type Config struct {
	RootPath          string        `mapstructure:"root_path"`
	RawPath           string        `mapstructure:"raw_path"`
	CleanPath         string        `mapstructure:"clean_path"`
	DBDir             string        `mapstructure:"db_dir"`
	BaseURL           string        `mapstructure:"base_url"`
	UserAgent         string        `mapstructure:"user_agent"`
	Limit             int           `mapstructure:"limit"`
	PerPage           int           `mapstructure:"per_page"`
	Delay             time.Duration `mapstructure:"delay"`
	Timeout           time.Duration `mapstructure:"timeout"`
	FetchAll          bool          `mapstructure:"fetch_all"`
	OutputFormat      OutputFormat  `mapstructure:"output_format"`
	ProfilePath       string        `mapstructure:"profile_path"`
	Quiet             bool          `mapstructure:"quiet"`
	Debug             bool          `mapstructure:"debug"`
	DiscordWebhookURL string        `mapstructure:"discord_webhook_url"`
}

// Paths resolves the data locations, letting explicit settings override the
// layout under RootPath.
func (c *Config) Paths() *Paths {
	p := NewPaths(c.RootPath)
	if c.RawPath != "" {
		p.RawPath = DataPath(c.RawPath)
	}
	if c.CleanPath != "" {
		p.CleanPath = DataPath(c.CleanPath)
	}
	if c.DBDir != "" {
		p.DBDir = c.DBDir
	}
	if c.ProfilePath != "" {
		p.ProfilePath = DataPath(c.ProfilePath)
	}
	return p
}

// WritesCSV reports whether the configured format includes the CSV sink.
func (c *Config) WritesCSV() bool {
	return c.OutputFormat == OutputFormatCSV || c.OutputFormat == OutputFormatBoth
}

// WritesSQLite reports whether the configured format includes the SQLite sink.
func (c *Config) WritesSQLite() bool {
	return c.OutputFormat == OutputFormatSQLite || c.OutputFormat == OutputFormatBoth
}
