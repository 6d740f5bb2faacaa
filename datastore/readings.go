package datastore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/coreybb/glucolog/models"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no reading matches the requested ID.
var ErrNotFound = errors.New("reading not found")

// timestampLayout is the on-disk datetime format. It matches the format
// written by earlier versions of the tracker, so old files keep loading.
const timestampLayout = "2006-01-02 15:04:05"

// historyRow is the CSV representation of one reading. Columns are matched
// by header name, so legacy files missing the id or reading_type columns
// still load; the missing fields come back as zero values.
type historyRow struct {
	ID        string  `csv:"id"`
	Timestamp string  `csv:"datetime"`
	Type      string  `csv:"reading_type"`
	Value     float64 `csv:"sugar"`
}

// ReadingRepository persists readings in a flat CSV history file.
// The file is append-only from the app's point of view; each append
// rewrites the file so legacy files pick up newer columns, the same way
// the original tracker upgraded files in place.
type ReadingRepository struct {
	path string
}

// NewReadingRepository creates a ReadingRepository backed by the CSV file
// at path. The file is created on first append.
func NewReadingRepository(path string) *ReadingRepository {
	return &ReadingRepository{path: path}
}

// Path returns the location of the backing history file.
func (r *ReadingRepository) Path() string {
	return r.path
}

// Append stores a new reading at the end of the history file.
// The caller provides all fields including the generated ID.
func (r *ReadingRepository) Append(ctx context.Context, reading *models.Reading) error {
	if reading.ID == "" {
		return fmt.Errorf("missing required ID for storing reading")
	}
	if _, err := uuid.Parse(reading.ID); err != nil {
		return fmt.Errorf("invalid reading ID format: %w", err)
	}
	if err := reading.Validate(); err != nil {
		return fmt.Errorf("invalid reading: %w", err)
	}

	rows, err := r.loadRows(ctx)
	if err != nil {
		return err
	}

	rows = append(rows, historyRow{
		ID:        reading.ID,
		Timestamp: reading.Timestamp.Format(timestampLayout),
		Type:      string(reading.Type),
		Value:     reading.Value,
	})

	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("failed to open history file for writing: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// All returns every reading in the history file in file (chronological)
// order. A missing file is not an error: it means no history yet.
func (r *ReadingRepository) All(ctx context.Context) ([]models.Reading, error) {
	rows, err := r.loadRows(ctx)
	if err != nil {
		return nil, err
	}

	readings := make([]models.Reading, 0, len(rows))
	for i, row := range rows {
		reading, err := rowToReading(row)
		if err != nil {
			return nil, fmt.Errorf("history file row %d: %w", i+1, err)
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

// Recent returns the last n readings in chronological order. When fewer
// than n exist, it returns all of them.
func (r *ReadingRepository) Recent(ctx context.Context, n int) ([]models.Reading, error) {
	readings, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return tail(readings, n), nil
}

// RecentByType returns the last n readings of the given type in
// chronological order.
func (r *ReadingRepository) RecentByType(ctx context.Context, rt models.ReadingType, n int) ([]models.Reading, error) {
	readings, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := readings[:0:0]
	for _, reading := range readings {
		if reading.Type == rt {
			filtered = append(filtered, reading)
		}
	}
	return tail(filtered, n), nil
}

// GetByID retrieves a reading by its server-assigned ID. Readings written
// by legacy versions have no ID and are never returned here.
func (r *ReadingRepository) GetByID(ctx context.Context, id string) (*models.Reading, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid reading ID format: %w", err)
	}

	readings, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range readings {
		if readings[i].ID == id {
			return &readings[i], nil
		}
	}
	return nil, ErrNotFound
}

// loadRows reads the raw CSV rows, returning an empty slice when the
// history file does not exist yet.
func (r *ReadingRepository) loadRows(ctx context.Context) ([]historyRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []historyRow{}, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var rows []historyRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []historyRow{}, nil
		}
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	return rows, nil
}

// rowToReading converts a CSV row into the domain model, applying the
// legacy defaults: rows without a reading_type are treated as random.
func rowToReading(row historyRow) (models.Reading, error) {
	ts, err := time.ParseInLocation(timestampLayout, row.Timestamp, time.Local)
	if err != nil {
		return models.Reading{}, fmt.Errorf("invalid datetime %q: %w", row.Timestamp, err)
	}

	rt := models.ReadingTypeRandom
	if row.Type != "" {
		rt, err = models.ParseReadingType(row.Type)
		if err != nil {
			return models.Reading{}, err
		}
	}

	return models.Reading{
		ID:        row.ID,
		Timestamp: ts,
		Type:      rt,
		Value:     row.Value,
	}, nil
}

func tail(readings []models.Reading, n int) []models.Reading {
	if n <= 0 || len(readings) <= n {
		return readings
	}
	return readings[len(readings)-n:]
}
