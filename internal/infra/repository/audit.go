package repository

import (
	"context"
	"encoding/json"

	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/pkg/psqlbuilder"
	"bodyshop/internal/usecase/shared"
)

type AuditRepository struct {
	db db.DBTX
}

func NewAuditRepository(dbtx db.DBTX) *AuditRepository {
	return &AuditRepository{db: dbtx}
}

func (r *AuditRepository) Insert(ctx context.Context, entry shared.AuditEntry) error {
	var details []byte
	if entry.Details != nil {
		encoded, err := json.Marshal(entry.Details)
		if err != nil {
			return infra.WrapRepoErr("failed to encode audit details", err, infra.KindDBFailure)
		}
		details = encoded
	}

	query, args, err := psqlbuilder.Insert("audit_logs").
		Columns("user_id", "action", "entity_type", "entity_id", "details", "ip_address").
		Values(entry.UserID, entry.Action, entry.EntityType, entry.EntityID, details, entry.IPAddress).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build audit insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert audit log", err)
	}
	return nil
}
