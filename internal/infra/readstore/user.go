package readstore

import (
	"context"

	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"
	"bodyshop/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	query, args, err := psqlbuilder.Select("id", "email", "name", "phone", "role", "is_active", "created_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err, infra.KindDBFailure)
	}

	var (
		v         queries.UserView
		phone     pgtype.Text
		createdAt pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(&v.ID, &v.Email, &v.Name, &phone, &v.Role, &v.IsActive, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	v.Phone = pgconv.StringPtrFromPgtype(phone)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}
