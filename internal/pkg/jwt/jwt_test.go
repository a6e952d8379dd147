//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/clock"
	"bodyshop/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	clk := clock.NewFixedClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, "bodyshop-test", clk)

	token, err := svc.GenerateToken(42, user.RoleStaff)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.NotEmpty(t, claims.TokenID())
	assert.Equal(t, clk.Now().Add(time.Hour), claims.ExpiresAtTime())
	assert.Equal(t, time.UTC, claims.ExpiresAtTime().Location())
}

func TestService_UniqueTokenIDs(t *testing.T) {
	clk := clock.NewFixedClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, "bodyshop-test", clk)

	first, err := svc.GenerateToken(1, user.RoleClient)
	require.NoError(t, err)
	second, err := svc.GenerateToken(1, user.RoleClient)
	require.NoError(t, err)

	c1, err := svc.ValidateToken(first)
	require.NoError(t, err)
	c2, err := svc.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.TokenID(), c2.TokenID())
}

func TestService_ValidateToken_Failures(t *testing.T) {
	clk := clock.NewFixedClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, "bodyshop-test", clk)

	token, err := svc.GenerateToken(7, user.RoleClient)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := clock.NewFixedClock(clk.Now().Add(2 * time.Hour))
		_, err := jwt.NewService("secret", time.Hour, "bodyshop-test", later).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := jwt.NewService("other", time.Hour, "bodyshop-test", clk).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := jwt.NewService("secret", time.Hour, "someone-else", clk).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
