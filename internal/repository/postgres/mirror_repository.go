package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MirrorRecord is a local snapshot of a provider resource, written by
// the mirror-sync worker. The provider stays the source of truth; this
// table only serves reporting and debugging reads.
type MirrorRecord struct {
	Resource   string          `json:"resource"`
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type MirrorRepository struct {
	pool *pgxpool.Pool
}

func NewMirrorRepository(pool *pgxpool.Pool) *MirrorRepository {
	return &MirrorRepository{pool: pool}
}

func (r *MirrorRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// Upsert writes the latest snapshot of a provider resource. Older
// events replaying through the stream simply overwrite with their own
// snapshot; the stream is close enough to ordered for a cache.
func (r *MirrorRepository) Upsert(ctx context.Context, rec *MirrorRecord) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO provider_mirror (resource, id, customer_id, payload, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (resource, id) DO UPDATE SET
		   customer_id = EXCLUDED.customer_id,
		   payload = EXCLUDED.payload,
		   updated_at = EXCLUDED.updated_at`,
		rec.Resource, rec.ID, rec.CustomerID, rec.Payload, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert mirror record: %w", err)
	}
	return nil
}

func (r *MirrorRepository) Delete(ctx context.Context, resource, id string) error {
	_, err := r.db(ctx).Exec(ctx,
		`DELETE FROM provider_mirror WHERE resource = $1 AND id = $2`,
		resource, id,
	)
	if err != nil {
		return fmt.Errorf("delete mirror record: %w", err)
	}
	return nil
}

func (r *MirrorRepository) Get(ctx context.Context, resource, id string) (*MirrorRecord, error) {
	rec := &MirrorRecord{}
	err := r.db(ctx).QueryRow(ctx,
		`SELECT resource, id, customer_id, payload, updated_at
		 FROM provider_mirror WHERE resource = $1 AND id = $2`,
		resource, id,
	).Scan(&rec.Resource, &rec.ID, &rec.CustomerID, &rec.Payload, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // not found
		}
		return nil, fmt.Errorf("get mirror record: %w", err)
	}
	return rec, nil
}

// ListByCustomer returns every mirrored resource of one kind owned by a
// customer, newest first.
func (r *MirrorRepository) ListByCustomer(ctx context.Context, resource, customerID string, limit int) ([]*MirrorRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db(ctx).Query(ctx,
		`SELECT resource, id, customer_id, payload, updated_at
		 FROM provider_mirror
		 WHERE resource = $1 AND customer_id = $2
		 ORDER BY updated_at DESC
		 LIMIT $3`,
		resource, customerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list mirror records: %w", err)
	}
	defer rows.Close()

	var out []*MirrorRecord
	for rows.Next() {
		rec := &MirrorRecord{}
		if err := rows.Scan(&rec.Resource, &rec.ID, &rec.CustomerID, &rec.Payload, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mirror record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
