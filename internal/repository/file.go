package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/varoOP/animetop/internal/domain"
)

// FileRepository implements the record, table and profile repositories using file storage
type FileRepository struct {
	log zerolog.Logger
}

// NewFileRepository creates a new file-based repository
func NewFileRepository(log zerolog.Logger) *FileRepository {
	return &FileRepository{
		log: log.With().Str("module", "repository").Logger(),
	}
}

var _ domain.RecordRepository = (*FileRepository)(nil)
var _ domain.TableRepository = (*FileRepository)(nil)
var _ domain.ProfileRepository = (*FileRepository)(nil)

// Get retrieves raw records from a JSON file
func (r *FileRepository) Get(ctx context.Context, path domain.DataPath) ([]domain.Record, error) {
	body, err := readFile(string(path))
	if err != nil {
		return nil, err
	}

	records := []domain.Record{}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json from %s: %w", path, err)
	}

	return records, nil
}

// Store saves raw records to a JSON file
func (r *FileRepository) Store(ctx context.Context, path domain.DataPath, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to marshal anime data: %w", err)
	}

	if err := writeFile(string(path), buf.Bytes()); err != nil {
		return err
	}

	r.log.Debug().Str("path", string(path)).Int("count", len(records)).Msg("stored raw records")
	return nil
}

// StoreTable writes a table as CSV with a header row
func (r *FileRepository) StoreTable(ctx context.Context, path domain.DataPath, table *domain.Table) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(table.Columns))
	for _, rec := range table.Rows {
		for i, col := range table.Columns {
			row[i] = FormatValue(rec[col])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if err := writeFile(string(path), buf.Bytes()); err != nil {
		return err
	}

	r.log.Debug().Str("path", string(path)).Int("rows", table.Len()).Msg("stored table")
	return nil
}

// GetTable reads a CSV written by StoreTable. Every value is read back as a string.
func (r *FileRepository) GetTable(ctx context.Context, path domain.DataPath) (*domain.Table, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header from %s: %w", path, err)
	}

	table := &domain.Table{Columns: header}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row from %s: %w", path, err)
		}

		rec := make(domain.Record, len(header))
		for i, col := range header {
			rec[col] = fields[i]
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

// GetProfile retrieves a transform profile from a YAML file
func (r *FileRepository) GetProfile(ctx context.Context, path domain.DataPath) (*domain.Profile, error) {
	b, err := readFile(string(path))
	if err != nil {
		return nil, err
	}

	p := &domain.Profile{}
	if err := yaml.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml from %s: %w", path, err)
	}

	return p, nil
}

// StoreProfile saves a transform profile to a YAML file
func (r *FileRepository) StoreProfile(ctx context.Context, path domain.DataPath, profile *domain.Profile) error {
	b, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	if err := writeFile(string(path), b); err != nil {
		return err
	}

	r.log.Debug().Str("path", string(path)).Msg("stored profile")
	return nil
}

// FormatValue renders a cell for text output. Whole floats print without a
// fraction so counts decoded from JSON stay readable.
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	case []any, map[string]any:
		b, err := json.Marshal(n)
		if err != nil {
			return fmt.Sprint(n)
		}
		return string(b)
	default:
		return fmt.Sprint(n)
	}
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return b, nil
}

func writeFile(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", path, err)
	}
	return nil
}
