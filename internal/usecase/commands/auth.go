package commands

//go:generate mockgen -source=auth.go -destination=../../testutil/mock/commands/auth_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/jwt"
	"bodyshop/internal/pkg/password"
	"bodyshop/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.Mark(errs.New("invalid email or password"), errs.ErrUnauthenticated)
	ErrUserInactive       = errs.Mark(errs.New("user account is inactive"), errs.ErrUnauthenticated)
	ErrEmailTaken         = errs.Mark(errs.New("email is already registered"), errs.ErrConflict)
	ErrTokenGeneration    = errs.New("token generation failed")
)

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID      int64
	Role        user.Role
	AccessToken string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Register(ctx context.Context, req RegisterRequest) (int64, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	denylist   shared.TokenDenylist
	audit      shared.AuditRecorder
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, denylist shared.TokenDenylist, audit shared.AuditRecorder, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		denylist:   denylist,
		audit:      audit,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return 0, err
	}
	name, err := user.NewName(req.Name)
	if err != nil {
		return 0, err
	}
	if err := password.Validate(req.Password); err != nil {
		return 0, errs.Mark(err, errs.ErrValidation)
	}

	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	id, err := a.uow.Repos().Users().Create(ctx, user.NewUser(email, hash, name, req.Phone, user.RoleClient))
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return 0, errs.Wrapf(ErrEmailTaken, "%s", email)
		}
		return 0, err
	}

	a.audit.Record(ctx, shared.AuditEntry{
		UserID:     &id,
		Action:     shared.AuditUserRegistered,
		EntityType: shared.EntityUser,
		EntityID:   &id,
	})
	return id, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := a.uow.Repos().Users().FindByEmail(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// same answer as a wrong password to prevent user enumeration
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.ComparePassword(u.PasswordHash(), req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      u.ID(),
		Role:        u.Role(),
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}

// Logout revokes the token id until the token's own expiry. Tokens that no
// longer validate need no revocation.
func (a *authCommandsImpl) Logout(ctx context.Context, accessToken string) error {
	claims, err := a.jwtService.ValidateToken(accessToken)
	if err != nil {
		slog.Debug("logout with unusable token", "error", err.Error())
		return nil
	}
	return a.denylist.Revoke(ctx, claims.TokenID(), claims.ExpiresAtTime())
}
