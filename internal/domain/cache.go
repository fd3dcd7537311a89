package domain

import (
	"context"
	"time"
)

// AnimeStore defines the interface for the SQLite sink
type AnimeStore interface {
	// ReplaceAll swaps the stored table for the given one in a single transaction
	ReplaceAll(ctx context.Context, table *Table) error

	Count(ctx context.Context) (int, error)
	TopByScore(ctx context.Context, n int) ([]*StoredAnime, error)
}

// RunStore defines the interface for the run log
type RunStore interface {
	InsertRun(ctx context.Context, run *Run) (int64, error)
	LatestRun(ctx context.Context) (*Run, error)
}

// StoredAnime represents a row of the anime table
type StoredAnime struct {
	Position int
	MalID    int
	Title    string
	Rank     int
	Score    float64
	Data     string
}

// Run represents one fetch and/or transform invocation
type Run struct {
	ID          int64
	Mode        string
	Pages       int
	Fetched     int
	Kept        int
	StopReason  string
	StartedAt   time.Time
	CompletedAt time.Time
}
