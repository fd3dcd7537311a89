package domain

import (
	"context"
)

// RecordRepository defines the interface for raw record storage
type RecordRepository interface {
	Get(ctx context.Context, path DataPath) ([]Record, error)
	Store(ctx context.Context, path DataPath, records []Record) error
}

// TableRepository defines the interface for cleaned table storage
type TableRepository interface {
	GetTable(ctx context.Context, path DataPath) (*Table, error)
	StoreTable(ctx context.Context, path DataPath, table *Table) error
}

// ProfileRepository defines the interface for transform profile storage
type ProfileRepository interface {
	GetProfile(ctx context.Context, path DataPath) (*Profile, error)
	StoreProfile(ctx context.Context, path DataPath, profile *Profile) error
}
