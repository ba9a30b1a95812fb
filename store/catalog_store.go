// api/store/catalog_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ProductNameUnavailable is returned when a referenced product no longer
// exists in the catalog. Analytics entities hold weak references only, so a
// missing product is a defined placeholder, never an error.
const ProductNameUnavailable = "unavailable"

// CatalogStore resolves display data for opaque product identities. The
// analytics entities store ids; names and ratings are joined on demand.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// ProductName looks up the product's display name, falling back to the
// unavailable placeholder when the product is gone.
func (s *CatalogStore) ProductName(ctx context.Context, productID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM products WHERE id = $1;
	`, productID).Scan(&name)
	if err == sql.ErrNoRows {
		return ProductNameUnavailable, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up product %s: %w", productID, err)
	}

	return name, nil
}

// RatingSummary returns the product's average rating and rating count, both
// zero when it has none.
func (s *CatalogStore) RatingSummary(ctx context.Context, productID string) (float64, int64, error) {
	var avg float64
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM ratings
		WHERE product_id = $1;
	`, productID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to summarize ratings for product %s: %w", productID, err)
	}

	return avg, count, nil
}
