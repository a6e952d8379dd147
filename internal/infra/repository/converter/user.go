package converter

import (
	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type UserRow struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        pgtype.Text
	Role         string
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func (r *UserRow) ScanTargets() []any {
	return []any{&r.ID, &r.Email, &r.PasswordHash, &r.Name, &r.Phone, &r.Role, &r.IsActive, &r.CreatedAt, &r.UpdatedAt}
}

func UserFromRow(row UserRow) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	name, err := user.NewName(row.Name)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(
		row.ID,
		email,
		row.PasswordHash,
		name,
		pgconv.StringPtrFromPgtype(row.Phone),
		role,
		row.IsActive,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
