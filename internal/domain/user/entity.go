package user

import (
	"time"
)

type User struct {
	id           int64
	email        Email
	passwordHash string
	name         Name
	phone        *string
	role         Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser builds a not yet persisted user; the id is assigned by storage.
func NewUser(email Email, passwordHash string, name Name, phone *string, role Role) *User {
	return &User{
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phone:        phone,
		role:         role,
		isActive:     true,
	}
}

func ReconstructUser(
	id int64,
	email Email,
	passwordHash string,
	name Name,
	phone *string,
	role Role,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phone:        phone,
		role:         role,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Name() Name           { return u.name }
func (u *User) Phone() *string       { return u.phone }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
