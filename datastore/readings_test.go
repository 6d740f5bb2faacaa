package datastore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/glucolog/models"
)

func newTestRepo(t *testing.T) *ReadingRepository {
	t.Helper()
	return NewReadingRepository(filepath.Join(t.TempDir(), "sugar_history.csv"))
}

func newReading(value float64, rt models.ReadingType) *models.Reading {
	return &models.Reading{
		ID:        uuid.NewString(),
		Timestamp: time.Date(2025, 6, 1, 8, 30, 0, 0, time.Local),
		Type:      rt,
		Value:     value,
	}
}

func TestAllOnMissingFileReturnsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	readings, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestAppendThenRead(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	r := newReading(95, models.ReadingTypeFasting)
	require.NoError(t, repo.Append(ctx, r))

	readings, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, r.ID, readings[0].ID)
	assert.Equal(t, models.ReadingTypeFasting, readings[0].Type)
	assert.Equal(t, 95.0, readings[0].Value)
	// Timestamps round-trip at second precision.
	assert.True(t, r.Timestamp.Truncate(time.Second).Equal(readings[0].Timestamp))
}

func TestAppendedReadingShowsUpInRecentWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, newReading(float64(90+i), models.ReadingTypeRandom)))
	}
	last := newReading(142, models.ReadingTypePostLunch)
	require.NoError(t, repo.Append(ctx, last))

	recent, err := repo.Recent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, recent, 6)
	assert.Equal(t, last.ID, recent[len(recent)-1].ID)
}

func TestRecentTruncatesToWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, repo.Append(ctx, newReading(float64(80+i), models.ReadingTypeRandom)))
	}

	recent, err := repo.Recent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, recent, 7)
	assert.Equal(t, 83.0, recent[0].Value)
	assert.Equal(t, 89.0, recent[6].Value)
}

func TestRecentByType(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, newReading(95, models.ReadingTypeFasting)))
	require.NoError(t, repo.Append(ctx, newReading(150, models.ReadingTypePostDinner)))
	require.NoError(t, repo.Append(ctx, newReading(88, models.ReadingTypeFasting)))

	fasting, err := repo.RecentByType(ctx, models.ReadingTypeFasting, 7)
	require.NoError(t, err)
	require.Len(t, fasting, 2)
	assert.Equal(t, 95.0, fasting[0].Value)
	assert.Equal(t, 88.0, fasting[1].Value)
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	r := newReading(110, models.ReadingTypeRandom)
	require.NoError(t, repo.Append(ctx, r))

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Value, got.Value)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.Error(t, err)
}

func TestAppendValidatesReading(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	missingID := newReading(95, models.ReadingTypeFasting)
	missingID.ID = ""
	assert.Error(t, repo.Append(ctx, missingID))

	badID := newReading(95, models.ReadingTypeFasting)
	badID.ID = "42"
	assert.Error(t, repo.Append(ctx, badID))

	badValue := newReading(0, models.ReadingTypeFasting)
	assert.Error(t, repo.Append(ctx, badValue))
}

// Files written before the reading_type and id columns existed must keep
// loading; the missing type defaults to random.
func TestLegacyFileWithoutTypeColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sugar_history.csv")
	legacy := "datetime,sugar\n2025-05-30 08:00:00,105\n2025-05-31 08:15:00,98\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	repo := NewReadingRepository(path)
	ctx := context.Background()

	readings, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, models.ReadingTypeRandom, readings[0].Type)
	assert.Empty(t, readings[0].ID)
	assert.Equal(t, 105.0, readings[0].Value)
}

// Appending to a legacy file upgrades it in place: old rows survive and
// the new row carries the full column set.
func TestAppendUpgradesLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sugar_history.csv")
	legacy := "datetime,reading_type,sugar\n2025-05-31 08:15:00,fasting,98\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	repo := NewReadingRepository(path)
	ctx := context.Background()

	r := newReading(120, models.ReadingTypeRandom)
	require.NoError(t, repo.Append(ctx, r))

	readings, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, models.ReadingTypeFasting, readings[0].Type)
	assert.Equal(t, 98.0, readings[0].Value)
	assert.Equal(t, r.ID, readings[1].ID)
}

func TestEmptyFileIsNoHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sugar_history.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	repo := NewReadingRepository(path)
	readings, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, readings)
}
