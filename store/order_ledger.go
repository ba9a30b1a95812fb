// api/store/order_ledger.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"storepulse/api/models"
)

// OrderLedger supplies raw order, revenue and customer aggregates from the
// commerce tables. The report generator shapes these into snapshots; it never
// computes order totals from first principles.
type OrderLedger struct {
	db *sql.DB
}

func NewOrderLedger(db *sql.DB) *OrderLedger {
	return &OrderLedger{db: db}
}

// OrderTotals returns order count, revenue and average order value for paid
// orders placed inside [from, to].
func (l *OrderLedger) OrderTotals(ctx context.Context, from, to time.Time) (int64, float64, float64, error) {
	var orders int64
	var revenue, avgValue float64
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(AVG(total), 0)
		FROM orders
		WHERE status = 'paid' AND created_at >= $1 AND created_at <= $2;
	`, from, to).Scan(&orders, &revenue, &avgValue)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to aggregate order totals: %w", err)
	}

	return orders, revenue, avgValue, nil
}

// CustomerCounts returns distinct customers in range, split into new (first
// order ever falls inside the window) and returning.
func (l *OrderLedger) CustomerCounts(ctx context.Context, from, to time.Time) (int64, int64, int64, error) {
	var total, newCustomers int64
	err := l.db.QueryRowContext(ctx, `
		WITH window_customers AS (
			SELECT user_id
			FROM orders
			WHERE status = 'paid' AND created_at >= $1 AND created_at <= $2
			GROUP BY user_id
		)
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT EXISTS (
		           SELECT 1 FROM orders o
		           WHERE o.user_id = window_customers.user_id
		             AND o.status = 'paid'
		             AND o.created_at < $1
		       ))
		FROM window_customers;
	`, from, to).Scan(&total, &newCustomers)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return total, newCustomers, total - newCustomers, nil
}

// TopProducts returns the best-selling products in range by units sold.
func (l *OrderLedger) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]models.ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT oi.product_id, oi.product_name,
		       SUM(oi.quantity) AS units, SUM(oi.quantity * oi.unit_price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'paid' AND o.created_at >= $1 AND o.created_at <= $2
		GROUP BY oi.product_id, oi.product_name
		ORDER BY units DESC
		LIMIT $3;
	`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductSales{}
	for rows.Next() {
		var p models.ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Revenue); err != nil {
			log.Printf("Error scanning top product row: %v", err)
			continue
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while reading top products: %w", err)
	}

	return products, nil
}

// TopCategories returns the best-selling categories in range by units sold.
func (l *OrderLedger) TopCategories(ctx context.Context, from, to time.Time, limit int) ([]models.CategorySales, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT oi.category,
		       SUM(oi.quantity) AS units, SUM(oi.quantity * oi.unit_price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'paid' AND o.created_at >= $1 AND o.created_at <= $2
		GROUP BY oi.category
		ORDER BY units DESC
		LIMIT $3;
	`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	defer rows.Close()

	categories := []models.CategorySales{}
	for rows.Next() {
		var c models.CategorySales
		if err := rows.Scan(&c.Category, &c.Quantity, &c.Revenue); err != nil {
			log.Printf("Error scanning top category row: %v", err)
			continue
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while reading top categories: %w", err)
	}

	return categories, nil
}

// CartsCreated counts carts opened inside [from, to].
func (l *OrderLedger) CartsCreated(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM carts WHERE created_at >= $1 AND created_at <= $2;
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count created carts: %w", err)
	}

	return count, nil
}

// ProductSales returns units sold and revenue for one product in range.
func (l *OrderLedger) ProductSales(ctx context.Context, productID string, from, to time.Time) (int64, float64, error) {
	var units int64
	var revenue float64
	err := l.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity), 0), COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id = $1
		  AND o.status = 'paid'
		  AND o.created_at >= $2 AND o.created_at <= $3;
	`, productID, from, to).Scan(&units, &revenue)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate sales for product %s: %w", productID, err)
	}

	return units, revenue, nil
}
