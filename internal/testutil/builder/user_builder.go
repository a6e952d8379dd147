//go:build unit || e2e

package builder

import (
	"time"

	"bodyshop/internal/domain/user"
)

type UserBuilder struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Role         string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           10,
		Email:        "client@example.com",
		PasswordHash: "hashed_password",
		Name:         "Test Client",
		Role:         "client",
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	name, err := user.NewName(u.Name)
	if err != nil {
		return nil, err
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return user.ReconstructUser(u.ID, email, u.PasswordHash, name, u.Phone, role, u.IsActive, now, now), nil
}

func (u *UserBuilder) MustBuildDomain() *user.User {
	usr, err := u.BuildDomain()
	if err != nil {
		panic(err)
	}
	return usr
}

func (u *UserBuilder) Actor() user.Actor {
	return user.NewActor(u.ID, user.Role(u.Role))
}
