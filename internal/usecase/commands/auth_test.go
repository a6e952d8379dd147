//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/jwt"
	"bodyshop/internal/pkg/password"
	"bodyshop/internal/testutil/builder"
	"bodyshop/internal/usecase/commands"
	"bodyshop/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsSuite struct {
	suite.Suite
	h   *harness
	jwt *jwt.Service
	uc  commands.AuthCommands
}

func (s *AuthCommandsSuite) SetupTest() {
	s.h = newHarness(s.T())
	s.jwt = jwt.NewService("test-secret", time.Hour, "bodyshop-test", s.h.clock)
	s.uc = commands.NewAuthCommands(s.h.uow, s.h.denylist, s.h.audit, s.jwt)
}

func (s *AuthCommandsSuite) TestRegister_CreatesClient() {
	s.h.users.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user.User) (int64, error) {
			s.Equal(user.RoleClient, u.Role())
			s.Equal("new@example.com", u.Email().Value())
			s.NoError(password.ComparePassword(u.PasswordHash(), "longenough"))
			return 33, nil
		})
	s.h.audit.EXPECT().Record(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, e shared.AuditEntry) {
			s.Equal(shared.AuditUserRegistered, e.Action)
		})

	id, err := s.uc.Register(context.Background(), commands.RegisterRequest{
		Email: "new@example.com", Password: "longenough", Name: "New Client",
	})
	s.Require().NoError(err)
	s.Equal(int64(33), id)
}

func (s *AuthCommandsSuite) TestRegister_ShortPassword() {
	_, err := s.uc.Register(context.Background(), commands.RegisterRequest{
		Email: "new@example.com", Password: "short", Name: "New Client",
	})
	s.True(errs.Is(err, errs.ErrValidation))
}

func (s *AuthCommandsSuite) TestRegister_DuplicateEmail() {
	s.h.users.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(int64(0), infra.WrapRepoErr("insert user", nil, infra.KindDuplicateKey))

	_, err := s.uc.Register(context.Background(), commands.RegisterRequest{
		Email: "taken@example.com", Password: "longenough", Name: "Dup",
	})
	s.True(errs.Is(err, commands.ErrEmailTaken))
	s.True(errs.Is(err, errs.ErrConflict))
}

func (s *AuthCommandsSuite) TestLogin() {
	hash, err := password.HashPassword("correct-horse")
	s.Require().NoError(err)

	tests := []struct {
		name     string
		user     *builder.UserBuilder
		findErr  error
		password string
		wantErr  error
	}{
		{name: "valid credentials", user: builder.NewUserBuilder().WithPasswordHash(hash), password: "correct-horse"},
		{name: "wrong password", user: builder.NewUserBuilder().WithPasswordHash(hash), password: "battery-staple", wantErr: commands.ErrInvalidCredentials},
		{name: "unknown email", findErr: notFound(), password: "correct-horse", wantErr: commands.ErrInvalidCredentials},
		{name: "inactive user", user: builder.NewUserBuilder().WithPasswordHash(hash).AsInactive(), password: "correct-horse", wantErr: commands.ErrUserInactive},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			var found *user.User
			if tt.user != nil {
				found = tt.user.MustBuildDomain()
			}
			s.h.users.EXPECT().FindByEmail(gomock.Any(), "client@example.com").Return(found, tt.findErr)

			res, err := s.uc.Login(context.Background(), commands.LoginRequest{Email: "client@example.com", Password: tt.password})
			if tt.wantErr != nil {
				s.True(errs.Is(err, tt.wantErr), "got %v", err)
				s.True(errs.Is(err, errs.ErrUnauthenticated))
				return
			}
			s.Require().NoError(err)
			s.Equal(found.ID(), res.UserID)
			s.Equal(time.Hour, res.ExpiresIn)

			claims, err := s.jwt.ValidateToken(res.AccessToken)
			s.Require().NoError(err)
			s.Equal(found.ID(), claims.UserID)
		})
	}
}

func (s *AuthCommandsSuite) TestLogout_RevokesTokenUntilExpiry() {
	token, err := s.jwt.GenerateToken(10, user.RoleClient)
	s.Require().NoError(err)
	claims, err := s.jwt.ValidateToken(token)
	s.Require().NoError(err)

	s.h.denylist.EXPECT().Revoke(gomock.Any(), claims.TokenID(), now.Add(time.Hour)).Return(nil)

	s.NoError(s.uc.Logout(context.Background(), token))
}

func (s *AuthCommandsSuite) TestLogout_GarbageTokenIsNoop() {
	s.NoError(s.uc.Logout(context.Background(), "not-a-jwt"))
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsSuite))
}

func TestLoginResult_RoleIsCarried(t *testing.T) {
	h := newHarness(t)
	svc := jwt.NewService("test-secret", time.Hour, "bodyshop-test", h.clock)
	uc := commands.NewAuthCommands(h.uow, h.denylist, h.audit, svc)

	hash, err := password.HashPassword("correct-horse")
	require.NoError(t, err)
	u := builder.NewUserBuilder().WithRole("admin").WithPasswordHash(hash).MustBuildDomain()
	h.users.EXPECT().FindByEmail(gomock.Any(), "client@example.com").Return(u, nil)

	res, err := uc.Login(context.Background(), commands.LoginRequest{Email: "client@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, res.Role)
}
