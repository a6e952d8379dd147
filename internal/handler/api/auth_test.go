//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/handler/api"
	"bodyshop/internal/handler/middleware"
	reqdto "bodyshop/internal/handler/dto/request"
	resdto "bodyshop/internal/handler/dto/response"
	"bodyshop/internal/pkg/config"
	"bodyshop/internal/pkg/cookie"
	"bodyshop/internal/pkg/errs"
	commandsmock "bodyshop/internal/testutil/mock/commands"
	queriesmock "bodyshop/internal/testutil/mock/queries"
	usecasemock "bodyshop/internal/testutil/mock/usecase"
	th "bodyshop/internal/testutil/httptest"
	"bodyshop/internal/usecase"
	"bodyshop/internal/usecase/commands"
	"bodyshop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCommands  *commandsmock.MockAuthCommands
	mockUsers     *queriesmock.MockUserQueries
	mockValidator *usecasemock.MockTokenValidator
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.router = newEngine()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockUsers = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)

	h := api.NewAuthHandler(s.mockCommands, s.mockUsers, config.NewTestConfig())
	auth := middleware.NewAuthMiddleware(s.mockValidator)

	s.router.POST("/auth/register", h.Register)
	s.router.POST("/auth/login", h.Login)
	s.router.POST("/auth/logout", auth.RequireAuth(), h.Logout)
	s.router.GET("/auth/me", auth.RequireAuth(), h.Me)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) userView(id int64, role string) *queries.UserView {
	return &queries.UserView{ID: id, Email: "jane@example.com", Name: "Jane", Role: role, IsActive: true, CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *AuthHandlerTestSuite) TestRegister() {
	req := reqdto.RegisterRequest{Email: "jane@example.com", Password: "s3cretpass", Name: "Jane"}

	s.Run("success: 201 with the created user", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), req.ToCommand()).Return(int64(7), nil)
		s.mockUsers.EXPECT().GetCurrentUser(gomock.Any(), int64(7)).Return(s.userView(7, "client"), nil)

		rec := th.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", req, "")

		var body resdto.RegisterResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Require().NotNil(body.User)
		s.Equal(int64(7), body.User.ID)
		s.Equal("client", body.User.Role)
	})

	invalid := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing email", mutate: th.Field("email", nil)},
		{name: "malformed email", mutate: th.Field("email", "not-an-email")},
		{name: "short password", mutate: th.Field("password", "short")},
		{name: "missing name", mutate: th.Field("name", nil)},
	}
	for _, tc := range invalid {
		s.Run("error: "+tc.name, func() {
			rec := th.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", th.DtoMap(s.T(), req, tc.mutate), "")
			th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		})
	}

	s.Run("error: 409 on a taken email", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(int64(0), commands.ErrEmailTaken)
		rec := th.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", req, "")
		th.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already registered")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	req := reqdto.LoginRequest{Email: "jane@example.com", Password: "s3cretpass"}

	s.Run("success: token in body and cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), req.ToCommand()).Return(&commands.LoginResult{
			UserID: 7, Role: user.RoleClient, AccessToken: "signed.jwt.token", ExpiresIn: time.Hour,
		}, nil)
		s.mockUsers.EXPECT().GetCurrentUser(gomock.Any(), int64(7)).Return(s.userView(7, "client"), nil)

		rec := th.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")

		var body resdto.LoginResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("signed.jwt.token", body.AccessToken)
		s.Equal(int64(3600), body.ExpiresIn)

		c := th.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Equal("signed.jwt.token", c.Value)
		s.True(c.HttpOnly)
	})

	s.Run("error: 401 on bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, commands.ErrInvalidCredentials)
		rec := th.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")
		th.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "invalid email or password")
		s.Nil(th.ExtractCookie(rec, cookie.AccessTokenCookieName))
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: revokes the presented token and clears the cookie", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "tok").Return(clientActor, nil)
		s.mockCommands.EXPECT().Logout(gomock.Any(), "tok").Return(nil)

		rec := th.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "tok")

		s.Equal(http.StatusNoContent, rec.Code)
		c := th.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Empty(c.Value)
		s.Negative(c.MaxAge)
	})

	s.Run("success: cookie token is preferred over the header", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "from-cookie").Return(clientActor, nil)
		s.mockCommands.EXPECT().Logout(gomock.Any(), "from-cookie").Return(nil)

		rec := th.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, "/auth/logout", nil,
			[]*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: "from-cookie"}}, "from-header")

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 401 on a revoked token", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "tok").Return(user.Actor{}, usecase.ErrTokenRevoked)
		rec := th.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "tok")
		th.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "tok").Return(staffActor, nil)
		s.mockUsers.EXPECT().GetCurrentUser(gomock.Any(), staffActor.ID).Return(s.userView(staffActor.ID, "staff"), nil)

		rec := th.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "tok")

		var body resdto.UserResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("staff", body.Role)
	})

	s.Run("error: 401 without a token", func() {
		rec := th.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		th.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 500 when validation cannot reach the denylist", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "tok").Return(user.Actor{}, errs.New("redis: connection refused"))
		rec := th.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "tok")
		th.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
