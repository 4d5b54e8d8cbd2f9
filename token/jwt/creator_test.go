package jwt_test

import (
	"testing"
	"time"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/token"
	tokenjwt "github.com/jrsteele09/pos-console/token/jwt"
	"github.com/jrsteele09/pos-console/users"
	"github.com/stretchr/testify/require"
)

var testUser = &users.User{ID: "user-1", Username: "sales1", Role: users.RoleSales}

func TestCreator_CreateAndVerify(t *testing.T) {
	c := tokenjwt.NewCreator(tokenjwt.NewHMACSigner([]byte("secret")), "capital-pos", time.Hour)

	issued, err := c.CreateAccessToken(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, issued.JTI)

	claims, err := c.Verify(issued.Raw)
	require.NoError(t, err)
	require.Equal(t, "sales1", claims.Username)
	require.Equal(t, users.RoleSales, claims.Role)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, issued.JTI, claims.ID)
	require.True(t, issued.ExpiresAt.Equal(claims.ExpiresAtTime()))

	// The console decodes the very same token without the secret
	decoded, err := token.Decode(issued.Raw)
	require.NoError(t, err)
	require.Equal(t, claims.Username, decoded.Username)
	require.Equal(t, claims.Role, decoded.Role)
}

func TestCreator_VerifyRejects(t *testing.T) {
	c := tokenjwt.NewCreator(tokenjwt.NewHMACSigner([]byte("secret")), "capital-pos", time.Minute)

	t.Run("wrong secret", func(t *testing.T) {
		other := tokenjwt.NewCreator(tokenjwt.NewHMACSigner([]byte("other")), "capital-pos", time.Minute)
		issued, err := other.CreateAccessToken(testUser)
		require.NoError(t, err)

		_, err = c.Verify(issued.Raw)
		require.ErrorIs(t, err, poserrors.ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		unsigned := tokenjwt.NewCreator(tokenjwt.UnsignedSigner{}, "capital-pos", time.Minute)
		issued, err := unsigned.CreateAccessToken(testUser)
		require.NoError(t, err)

		_, err = c.Verify(issued.Raw)
		require.ErrorIs(t, err, poserrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		issued, err := c.CreateAccessToken(testUser)
		require.NoError(t, err)

		original := tokenjwt.NowTimeFunc
		tokenjwt.NowTimeFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { tokenjwt.NowTimeFunc = original }()

		_, err = c.Verify(issued.Raw)
		require.ErrorIs(t, err, poserrors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := c.Verify("abc.def.ghi")
		require.ErrorIs(t, err, poserrors.ErrInvalidToken)
	})
}
