package mockapi_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/pos-console/apiclient"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/posapi"
	"github.com/jrsteele09/pos-console/router"
	"github.com/jrsteele09/pos-console/session"
	"github.com/jrsteele09/pos-console/tokenstore"
	"github.com/jrsteele09/pos-console/tokenstore/storefake"
	"github.com/jrsteele09/pos-console/users"
	"github.com/stretchr/testify/require"
)

func TestConsoleSessionAgainstMockAPI(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	store := storefake.NewMemoryStore()
	var navigations []string
	client, err := apiclient.New(f.srv.URL, store, apiclient.WithNavigator(apiclient.NavigatorFunc(func(path string) {
		navigations = append(navigations, path)
	})))
	require.NoError(t, err)
	api := posapi.New(client)
	manager, err := session.NewManager(store, api.Auth)
	require.NoError(t, err)

	require.Equal(t, session.Unauthenticated, manager.Bootstrap(ctx))

	failed := manager.Login(ctx, "admin", "wrong")
	require.False(t, failed.Success)
	require.Equal(t, "Invalid username or password", failed.Message)

	result := manager.Login(ctx, "admin", "admin123")
	require.True(t, result.Success)
	require.Equal(t, users.RoleAdmin, result.Role)

	s, ok := manager.Current(ctx)
	require.True(t, ok)
	decision, err := router.Resolve(router.RouteAdmin, &s)
	require.NoError(t, err)
	require.Equal(t, router.Allow, decision)

	list, err := api.Users.List(ctx, nil)
	require.NoError(t, err)
	require.Contains(t, string(list), `"username":"sales1"`)

	require.NoError(t, manager.Refresh(ctx))
	refreshed, ok := manager.Current(ctx)
	require.True(t, ok)
	require.NotEqual(t, s.RawToken, refreshed.RawToken)

	// the pre-refresh token was revoked by the server
	require.NoError(t, store.Save(ctx, s.RawToken))
	_, err = api.Users.List(ctx, nil)
	require.ErrorIs(t, err, poserrors.ErrSessionRevoked)
	require.False(t, tokenstore.Has(ctx, store))
	require.Equal(t, session.Unauthenticated, manager.State(ctx))

	decision, err = router.Resolve(router.RouteAdmin, nil)
	require.NoError(t, err)
	require.Equal(t, router.Redirect(router.RouteLogin), decision)

	manager.Logout(ctx)
	manager.Logout(ctx)
	require.False(t, tokenstore.Has(ctx, store))
	// one from the failed login, one from the revoked token
	require.Equal(t, []string{apiclient.LoginPath, apiclient.LoginPath}, navigations)
}
