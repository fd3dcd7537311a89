package database

const schema = `
-- Cleaned top anime table, replaced wholesale on every transform
CREATE TABLE anime (
	position INTEGER PRIMARY KEY,
	mal_id INTEGER,
	title TEXT NOT NULL,
	rank INTEGER,
	score REAL,
	data TEXT NOT NULL,
	stored_at TEXT NOT NULL
);

CREATE INDEX idx_anime_mal_id ON anime(mal_id);
CREATE INDEX idx_anime_score ON anime(score);

-- One row per fetch/transform invocation
CREATE TABLE runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	mode TEXT NOT NULL,
	pages INTEGER NOT NULL DEFAULT 0,
	fetched INTEGER NOT NULL DEFAULT 0,
	kept INTEGER NOT NULL DEFAULT 0,
	stop_reason TEXT,
	started_at TEXT NOT NULL,
	completed_at TEXT NOT NULL
);

CREATE INDEX idx_runs_started_at ON runs(started_at);
`

// migrations contains incremental schema changes
// Each migration is applied in order based on the current user_version
// migrations[0] is empty because version 0 uses the base schema
var migrations = []string{
	"",
}
