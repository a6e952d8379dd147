package repository

import (
	"context"
	"time"

	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/pkg/psqlbuilder"
	"bodyshop/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

func (r *IdempotencyRepository) Find(ctx context.Context, userID int64, key string, now time.Time) (*shared.IdempotencyRecord, error) {
	query, args, err := psqlbuilder.Select("user_id", "key", "endpoint", "request_hash", "booking_id", "expires_at").
		From("idempotency_keys").
		Where(sq.Eq{"user_id": userID, "key": key}).
		Where(sq.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build idempotency select", err, infra.KindDBFailure)
	}

	var rec shared.IdempotencyRecord
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&rec.UserID, &rec.Key, &rec.Endpoint, &rec.RequestHash, &rec.BookingID, &rec.ExpiresAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	return &rec, nil
}

// Save inserts the key. An expired row is overwritten in place; a live one
// leaves zero rows affected, reported as a duplicate.
func (r *IdempotencyRepository) Save(ctx context.Context, rec shared.IdempotencyRecord, now time.Time) error {
	query, args, err := psqlbuilder.Insert("idempotency_keys").
		Columns("user_id", "key", "endpoint", "request_hash", "booking_id", "expires_at", "created_at").
		Values(rec.UserID, rec.Key, rec.Endpoint, rec.RequestHash, rec.BookingID, rec.ExpiresAt, now).
		Suffix(`ON CONFLICT (user_id, key) DO UPDATE SET
			endpoint = EXCLUDED.endpoint,
			request_hash = EXCLUDED.request_hash,
			booking_id = EXCLUDED.booking_id,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at
		WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build idempotency insert", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to save idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key already in use", nil, infra.KindDuplicateKey)
	}
	return nil
}
