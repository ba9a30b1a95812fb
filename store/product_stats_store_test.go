package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/api/models"
)

const upsertPattern = `INSERT INTO product_statistics .* ON CONFLICT \(product_id, bucket, starts_at, ends_at\) DO UPDATE SET .* RETURNING id;`

func sampleStat() models.ProductStatistic {
	return models.ProductStatistic{
		ProductID:        "p1",
		ProductName:      "Sample",
		Bucket:           models.BucketDaily,
		StartsAt:         time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:           time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
		TotalViews:       100,
		TotalAddedToCart: 25,
		ConversionRate:   25,
		UpdatedAt:        time.Now().UTC(),
	}
}

func TestUpsertUsesSingleOnConflictStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(upsertPattern).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("stat-1"))

	s := NewProductStatsStore(db, nil, nil, nil, nil)
	stat := sampleStat()
	require.NoError(t, s.upsert(context.Background(), &stat))

	assert.Equal(t, "stat-1", stat.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertOverwritesExistingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Two writes for the same key resolve to the same row, one statement
	// each, no read-before-write.
	mock.ExpectQuery(upsertPattern).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("stat-1"))
	mock.ExpectQuery(upsertPattern).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("stat-1"))

	s := NewProductStatsStore(db, nil, nil, nil, nil)

	first := sampleStat()
	require.NoError(t, s.upsert(context.Background(), &first))

	second := sampleStat()
	second.TotalViews = 120
	require.NoError(t, s.upsert(context.Background(), &second))

	assert.Equal(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopByVolumeDefaultsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM product_statistics ORDER BY total_sales DESC LIMIT \$1;`).
		WithArgs(defaultVolumeLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s := NewProductStatsStore(db, nil, nil, nil, nil)
	stats, err := s.TopByVolume(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBottomByVolumeExcludesZeroSales(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM product_statistics WHERE total_sales > 0 ORDER BY total_sales ASC LIMIT \$1;`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s := NewProductStatsStore(db, nil, nil, nil, nil)
	stats, err := s.BottomByVolume(context.Background(), 3)

	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
