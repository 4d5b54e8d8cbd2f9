package router

import (
	"testing"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/session"
	"github.com/jrsteele09/pos-console/users"
	"github.com/stretchr/testify/require"
)

func sessionFor(role users.Role) *session.Session {
	return &session.Session{Username: string(role) + "-user", Role: role, RawToken: "a.b.c"}
}

func TestAuthorizeWithoutSession(t *testing.T) {
	for _, role := range append([]users.Role{""}, users.Roles...) {
		t.Run("required "+string(role), func(t *testing.T) {
			require.Equal(t, Redirect("/login"), Authorize(nil, role))
		})
	}
}

func TestAuthorizeWrongRoleGoesHome(t *testing.T) {
	require.Equal(t, Redirect("/sales"), Authorize(sessionFor(users.RoleSales), users.RoleAdmin))

	for _, have := range users.Roles {
		for _, want := range users.Roles {
			if have == want {
				continue
			}
			decision := Authorize(sessionFor(have), want)
			require.False(t, decision.Allowed)
			require.Equal(t, "/"+string(have), decision.RedirectTo)
		}
	}
}

func TestAuthorizeAllows(t *testing.T) {
	s := sessionFor(users.RoleSales)
	require.Equal(t, Allow, Authorize(s, users.RoleSales))
	require.Equal(t, Allow, Authorize(s, ""))
	require.Equal(t, "allow", Allow.String())
	require.Equal(t, "redirect /login", Redirect(RouteLogin).String())
}

func TestResolve(t *testing.T) {
	tech := sessionFor(users.RoleTech)

	tests := []struct {
		name     string
		path     string
		session  *session.Session
		expected Decision
	}{
		{name: "login anonymous", path: "/login", expected: Allow},
		{name: "root anonymous", path: "/", expected: Allow},
		{name: "login when logged in", path: "/login", session: tech, expected: Redirect("/tech")},
		{name: "root when logged in", path: "", session: tech, expected: Redirect("/tech")},
		{name: "own section", path: "/tech", session: tech, expected: Allow},
		{name: "own section trailing slash", path: "tech/", session: tech, expected: Allow},
		{name: "other section", path: "/admin", session: tech, expected: Redirect("/tech")},
		{name: "protected anonymous", path: "/customer", expected: Redirect("/login")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := Resolve(tc.path, tc.session)
			require.NoError(t, err)
			require.Equal(t, tc.expected, decision)
		})
	}

	_, err := Resolve("/billing", tech)
	require.ErrorIs(t, err, poserrors.ErrUnknownRoute)
}

func TestMenu(t *testing.T) {
	for _, role := range users.Roles {
		require.NotEmpty(t, Menu(role), role)
		_, ok := protected[HomePath(role)]
		require.True(t, ok, "home of %s must be a protected route", role)
	}
	require.Empty(t, Menu("guest"))

	menu := Menu(users.RoleTech)
	menu[0].Title = "changed"
	require.Equal(t, "Tickets", Menu(users.RoleTech)[0].Title)
}
