package users_test

import (
	"testing"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/users"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range users.Roles {
		got, err := users.ParseRole(string(r))
		require.NoError(t, err)
		require.Equal(t, r, got)
	}

	_, err := users.ParseRole("manager")
	require.ErrorIs(t, err, poserrors.ErrUnknownRole)

	_, err = users.ParseRole("")
	require.ErrorIs(t, err, poserrors.ErrUnknownRole)
}

func TestUser_Authenticate(t *testing.T) {
	hash, err := users.HashPassword("sales123")
	require.NoError(t, err)

	u := &users.User{Username: "sales1", PasswordHash: hash, Role: users.RoleSales}

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, u.Authenticate("sales123"))
	})

	t.Run("wrong password", func(t *testing.T) {
		require.ErrorIs(t, u.Authenticate("nope"), poserrors.ErrInvalidCredentials)
	})

	t.Run("blocked", func(t *testing.T) {
		blocked := *u
		blocked.Blocked = true
		require.ErrorIs(t, blocked.Authenticate("sales123"), poserrors.ErrUserBlocked)
	})
}
