// api/store/abandonment_store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"storepulse/api/models"
)

// AbandonmentStore records abandoned-cart snapshots and aggregates them.
// It is a passive recorder: abandonment detection happens at the calling
// surface, and every call stores a new snapshot (no dedup per cart).
type AbandonmentStore struct {
	db *sql.DB
}

func NewAbandonmentStore(db *sql.DB) *AbandonmentStore {
	return &AbandonmentStore{db: db}
}

// Record persists one abandonment snapshot and returns it with its id.
func (s *AbandonmentStore) Record(ctx context.Context, cart models.AbandonedCart) (models.AbandonedCart, error) {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if cart.Reason == "" {
		cart.Reason = models.ReasonUnknown
	}
	if cart.AbandonedAt.IsZero() {
		cart.AbandonedAt = time.Now().UTC()
	}
	if cart.CartCreatedAt.IsZero() {
		cart.CartCreatedAt = cart.AbandonedAt
	}
	if cart.Items == nil {
		cart.Items = []models.AbandonedCartItem{}
	}

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return models.AbandonedCart{}, fmt.Errorf("failed to encode cart items: %w", err)
	}

	metadata := cart.Metadata
	if metadata == nil {
		metadata = json.RawMessage("{}")
	}

	query := `
		INSERT INTO abandoned_carts (
			id, cart_id, user_id, items, subtotal, total,
			cart_created_at, abandoned_at, reason, stage,
			device, browser, ip_address, metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = s.db.ExecContext(ctx, query,
		cart.ID,
		cart.CartID,
		nullableString(cart.UserID),
		itemsJSON,
		cart.Subtotal,
		cart.Total,
		cart.CartCreatedAt,
		cart.AbandonedAt,
		string(cart.Reason),
		string(cart.Stage),
		cart.Device,
		cart.Browser,
		cart.IPAddress,
		[]byte(metadata),
	)
	if err != nil {
		return models.AbandonedCart{}, fmt.Errorf("failed to record abandoned cart: %w", err)
	}

	return cart, nil
}

// List returns abandonment snapshots, newest-abandoned first, optionally
// bounded by [from, to].
func (s *AbandonmentStore) List(ctx context.Context, from, to *time.Time) ([]models.AbandonedCart, error) {
	var args []interface{}
	whereClause := ""
	argN := 0
	appendCond := func(cond string, v interface{}) {
		argN++
		if whereClause == "" {
			whereClause = "WHERE "
		} else {
			whereClause += " AND "
		}
		whereClause += fmt.Sprintf(cond, argN)
		args = append(args, v)
	}
	if from != nil {
		appendCond("abandoned_at >= $%d", *from)
	}
	if to != nil {
		appendCond("abandoned_at <= $%d", *to)
	}

	query := fmt.Sprintf(`
		SELECT id, cart_id, COALESCE(user_id, ''), items, subtotal, total,
		       cart_created_at, abandoned_at, reason, stage,
		       device, browser, ip_address, metadata
		FROM abandoned_carts
		%s
		ORDER BY abandoned_at DESC;
	`, whereClause)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query abandoned carts: %w", err)
	}
	defer rows.Close()

	carts := []models.AbandonedCart{}
	for rows.Next() {
		var (
			cart          models.AbandonedCart
			reason, stage string
			itemsJSON     []byte
			metadata      []byte
		)
		if err := rows.Scan(
			&cart.ID,
			&cart.CartID,
			&cart.UserID,
			&itemsJSON,
			&cart.Subtotal,
			&cart.Total,
			&cart.CartCreatedAt,
			&cart.AbandonedAt,
			&reason,
			&stage,
			&cart.Device,
			&cart.Browser,
			&cart.IPAddress,
			&metadata,
		); err != nil {
			log.Printf("Error scanning abandoned cart row: %v", err)
			continue
		}
		cart.Reason = models.AbandonmentReason(reason)
		cart.Stage = models.AbandonmentStage(stage)
		if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
			log.Printf("Error decoding items for abandoned cart %s: %v", cart.ID, err)
			cart.Items = []models.AbandonedCartItem{}
		}
		if len(metadata) > 0 && string(metadata) != "{}" {
			cart.Metadata = json.RawMessage(metadata)
		}
		carts = append(carts, cart)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while reading abandoned carts: %w", err)
	}

	return carts, nil
}

// Statistics aggregates the whole abandonment history: total, breakdowns by
// reason and stage (descending by count), and lost cart value. All parts are
// zero-valued, never absent, when the table is empty.
func (s *AbandonmentStore) Statistics(ctx context.Context) (models.AbandonmentStatistics, error) {
	stats := models.AbandonmentStatistics{
		ByReason: []models.ReasonStat{},
		ByStage:  []models.StageStat{},
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM abandoned_carts;`,
	).Scan(&stats.TotalAbandoned); err != nil {
		return stats, fmt.Errorf("failed to count abandoned carts: %w", err)
	}

	reasonRows, err := s.db.QueryContext(ctx, `
		SELECT reason, COUNT(*) AS cnt, COALESCE(AVG(total), 0)
		FROM abandoned_carts
		GROUP BY reason
		ORDER BY cnt DESC;
	`)
	if err != nil {
		return stats, fmt.Errorf("failed to group abandonments by reason: %w", err)
	}
	defer reasonRows.Close()

	for reasonRows.Next() {
		var rs models.ReasonStat
		var reason string
		if err := reasonRows.Scan(&reason, &rs.Count, &rs.AvgTotal); err != nil {
			log.Printf("Error scanning reason stat row: %v", err)
			continue
		}
		rs.Reason = models.AbandonmentReason(reason)
		stats.ByReason = append(stats.ByReason, rs)
	}
	if err := reasonRows.Err(); err != nil {
		return stats, fmt.Errorf("row error while reading reason stats: %w", err)
	}

	stageRows, err := s.db.QueryContext(ctx, `
		SELECT stage, COUNT(*) AS cnt
		FROM abandoned_carts
		GROUP BY stage
		ORDER BY cnt DESC;
	`)
	if err != nil {
		return stats, fmt.Errorf("failed to group abandonments by stage: %w", err)
	}
	defer stageRows.Close()

	for stageRows.Next() {
		var ss models.StageStat
		var stage string
		if err := stageRows.Scan(&stage, &ss.Count); err != nil {
			log.Printf("Error scanning stage stat row: %v", err)
			continue
		}
		ss.Stage = models.AbandonmentStage(stage)
		stats.ByStage = append(stats.ByStage, ss)
	}
	if err := stageRows.Err(); err != nil {
		return stats, fmt.Errorf("row error while reading stage stats: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0), COALESCE(AVG(total), 0)
		FROM abandoned_carts;
	`).Scan(&stats.LostValue.TotalLost, &stats.LostValue.AvgLost); err != nil {
		return stats, fmt.Errorf("failed to compute lost cart value: %w", err)
	}

	return stats, nil
}

// ReasonsBreakdown lists abandonment reasons with counts, descending.
func (s *AbandonmentStore) ReasonsBreakdown(ctx context.Context) ([]models.ReasonCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reason, COUNT(*) AS cnt
		FROM abandoned_carts
		GROUP BY reason
		ORDER BY cnt DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query abandonment reasons: %w", err)
	}
	defer rows.Close()

	reasons := []models.ReasonCount{}
	for rows.Next() {
		var rc models.ReasonCount
		var reason string
		if err := rows.Scan(&reason, &rc.Count); err != nil {
			log.Printf("Error scanning reason count row: %v", err)
			continue
		}
		rc.Reason = models.AbandonmentReason(reason)
		reasons = append(reasons, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while reading reason counts: %w", err)
	}

	return reasons, nil
}

// CountContainingProduct counts snapshots abandoned in [from, to] whose line
// items include the product.
func (s *AbandonmentStore) CountContainingProduct(ctx context.Context, productID string, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM abandoned_carts
		WHERE items @> $1::jsonb
		  AND abandoned_at >= $2 AND abandoned_at <= $3;
	`
	needle, err := json.Marshal([]map[string]string{{"productId": productID}})
	if err != nil {
		return 0, fmt.Errorf("failed to build containment filter: %w", err)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, needle, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count abandonments containing product %s: %w", productID, err)
	}

	return count, nil
}

// CountBetween counts snapshots abandoned inside [from, to].
func (s *AbandonmentStore) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM abandoned_carts
		WHERE abandoned_at >= $1 AND abandoned_at <= $2;
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count abandonments in range: %w", err)
	}

	return count, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
