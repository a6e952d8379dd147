package usecase

//go:generate mockgen -source=token_validator.go -destination=../testutil/mock/usecase/token_validator_mock.go -package=usecasemock

import (
	"context"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/jwt"
	"bodyshop/internal/usecase/shared"
)

var ErrTokenRevoked = errs.Mark(errs.New("token has been revoked"), errs.ErrUnauthenticated)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (user.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	denylist   shared.TokenDenylist
}

func NewTokenValidator(jwtService *jwt.Service, denylist shared.TokenDenylist) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		denylist:   denylist,
	}
}

func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (user.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Actor{}, errs.Mark(err, errs.ErrUnauthenticated)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Actor{}, errs.Mark(err, errs.ErrUnauthenticated)
	}

	revoked, err := t.denylist.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return user.Actor{}, errs.Wrap(err, "check token revocation")
	}
	if revoked {
		return user.Actor{}, ErrTokenRevoked
	}

	return user.NewActor(claims.UserID, role), nil
}
