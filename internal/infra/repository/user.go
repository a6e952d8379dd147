package repository

import (
	"context"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/repository/converter"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"

	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{"id", "email", "password_hash", "name", "phone", "role", "is_active", "created_at", "updated_at"}

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "password_hash", "name", "phone", "role", "is_active").
		Values(u.Email().Value(), u.PasswordHash(), u.Name().String(), pgconv.TextFromPtr(u.Phone()), u.Role().String(), u.IsActive()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build user insert", err, infra.KindDBFailure)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*user.User, error) {
	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err, infra.KindDBFailure)
	}

	var row converter.UserRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	u, err := converter.UserFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert user row", err, infra.KindDBFailure)
	}
	return u, nil
}
