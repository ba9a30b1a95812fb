package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCountsSplitsNewAndReturning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WITH window_customers AS \( SELECT user_id FROM orders WHERE status = 'paid' AND created_at >= \$1 AND created_at <= \$2 GROUP BY user_id \) SELECT COUNT\(\*\), COUNT\(\*\) FILTER .* FROM window_customers;`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"total", "new"}).AddRow(5, 2))

	l := NewOrderLedger(db)
	total, newCustomers, returning, err := l.CustomerCounts(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, int64(2), newCustomers)
	assert.Equal(t, int64(3), returning)
	assert.NoError(t, mock.ExpectationsWereMet())
}
