package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/api/models"
)

func expectStatisticsQueries(mock sqlmock.Sqlmock, total int64, reasons, stages *sqlmock.Rows, totalLost, avgLost float64) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM abandoned_carts;`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(total))
	mock.ExpectQuery(`SELECT reason, COUNT\(\*\) AS cnt, COALESCE\(AVG\(total\), 0\) FROM abandoned_carts GROUP BY reason ORDER BY cnt DESC;`).
		WillReturnRows(reasons)
	mock.ExpectQuery(`SELECT stage, COUNT\(\*\) AS cnt FROM abandoned_carts GROUP BY stage ORDER BY cnt DESC;`).
		WillReturnRows(stages)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\), COALESCE\(AVG\(total\), 0\) FROM abandoned_carts;`).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "avg"}).AddRow(totalLost, avgLost))
}

func TestStatisticsReasonCountsSumToTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reasons := sqlmock.NewRows([]string{"reason", "cnt", "avg"}).
		AddRow("price_too_high", 3, 120.5).
		AddRow("just_browsing", 2, 40.0)
	stages := sqlmock.NewRows([]string{"stage", "cnt"}).
		AddRow("checkout", 3).
		AddRow("cart", 2)
	expectStatisticsQueries(mock, 5, reasons, stages, 441.5, 88.3)

	s := NewAbandonmentStore(db)
	stats, err := s.Statistics(context.Background())

	require.NoError(t, err)
	var reasonSum int64
	for _, rs := range stats.ByReason {
		reasonSum += rs.Count
	}
	assert.Equal(t, stats.TotalAbandoned, reasonSum)
	assert.Equal(t, models.ReasonPriceTooHigh, stats.ByReason[0].Reason)
	assert.Equal(t, models.StageCheckout, stats.ByStage[0].Stage)
	assert.Equal(t, 441.5, stats.LostValue.TotalLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsEmptyHistoryIsZeroValued(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectStatisticsQueries(mock, 0,
		sqlmock.NewRows([]string{"reason", "cnt", "avg"}),
		sqlmock.NewRows([]string{"stage", "cnt"}),
		0, 0)

	s := NewAbandonmentStore(db)
	stats, err := s.Statistics(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.TotalAbandoned)
	assert.NotNil(t, stats.ByReason)
	assert.Empty(t, stats.ByReason)
	assert.NotNil(t, stats.ByStage)
	assert.Empty(t, stats.ByStage)
	assert.Zero(t, stats.LostValue.TotalLost)
	assert.Zero(t, stats.LostValue.AvgLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}
