package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jrsteele09/pos-console/internal/config"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/mockapi"
	"github.com/jrsteele09/pos-console/posapi"
	"github.com/jrsteele09/pos-console/token/jwt"
	fakeuserrepo "github.com/jrsteele09/pos-console/users/repofake"
	"github.com/stretchr/testify/require"
)

type consoleFixture struct {
	cfgFile   string
	tokenFile string
	repo      *fakeuserrepo.FakeUserRepo
}

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	color.NoColor = true

	repo, err := fakeuserrepo.NewDemoUserRepo()
	require.NoError(t, err)
	creator := jwt.NewCreator(jwt.NewHMACSigner([]byte("console-test")), "pos-test", time.Hour)
	s, err := mockapi.New(config.New(nil), repo, creator)
	require.NoError(t, err)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "pos-console.yaml")
	yaml := fmt.Sprintf("api:\n  base_url: %s\ndata:\n  folder: %s\nlog:\n  level: error\n", srv.URL, dir)
	require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0o600))

	return &consoleFixture{cfgFile: cfgFile, tokenFile: filepath.Join(dir, "token"), repo: repo}
}

func (f *consoleFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--config", f.cfgFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	f := newConsoleFixture(t)

	out, err := f.run(t, "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as admin (admin)")
	require.Contains(t, out, "=> /admin")
	require.Contains(t, out, "pos-console users list")
	require.FileExists(t, f.tokenFile)

	out, err = f.run(t, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, `"username": "admin"`)
	require.Contains(t, out, `"home": "/admin"`)

	out, err = f.run(t, "whoami", "-o", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "role: admin")

	out, err = f.run(t, "users", "list")
	require.NoError(t, err)
	require.Contains(t, out, `"username": "sales1"`)

	out, err = f.run(t, "refresh")
	require.NoError(t, err)
	require.Contains(t, out, "Token refreshed")

	out, err = f.run(t, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "Logged out")
	require.NoFileExists(t, f.tokenFile)

	_, err = f.run(t, "whoami")
	require.ErrorIs(t, err, poserrors.ErrNotAuthenticated)

	_, err = f.run(t, "logout")
	require.NoError(t, err)
}

func TestLoginRejected(t *testing.T) {
	f := newConsoleFixture(t)

	_, err := f.run(t, "login", "-u", "admin", "-p", "wrong")
	require.EqualError(t, err, mockapi.InvalidLoginMessage)
	require.NoFileExists(t, f.tokenFile)
}

func TestLoginRejectedWhileLoggedInEndsSession(t *testing.T) {
	f := newConsoleFixture(t)

	_, err := f.run(t, "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)
	require.FileExists(t, f.tokenFile)

	out, err := f.run(t, "login", "-u", "admin", "-p", "wrong")
	require.EqualError(t, err, mockapi.InvalidLoginMessage)
	require.Contains(t, out, "=> /login")
	require.NoFileExists(t, f.tokenFile)

	_, err = f.run(t, "whoami")
	require.ErrorIs(t, err, poserrors.ErrNotAuthenticated)
}

func TestRecoverPassword(t *testing.T) {
	f := newConsoleFixture(t)

	out, err := f.run(t, "recover-password", "--email", "admin@example.com")
	require.NoError(t, err)
	require.Contains(t, out, mockapi.RecoveryAcceptedMessage)

	_, err = f.run(t, "recover-password", "-e", "admin")
	require.EqualError(t, err, "Invalid email address")
}

func TestRecoverPasswordUnreachableAPI(t *testing.T) {
	f := newConsoleFixture(t)

	_, err := f.run(t, "--api-url", "http://127.0.0.1:1", "recover-password", "-e", "admin@example.com")
	require.EqualError(t, err, posapi.RecoveryFailedMessage)
}

func TestOpen(t *testing.T) {
	f := newConsoleFixture(t)

	out, err := f.run(t, "open", "/admin")
	require.NoError(t, err)
	require.Contains(t, out, "=> /login")

	_, err = f.run(t, "login", "-u", "tech1", "-p", "tech123")
	require.NoError(t, err)

	out, err = f.run(t, "open", "/admin")
	require.NoError(t, err)
	require.Contains(t, out, "=> /tech")
	require.Contains(t, out, "Equipment")

	out, err = f.run(t, "open", "/tech")
	require.NoError(t, err)
	require.Contains(t, out, "=> /tech")
	require.Contains(t, out, "Tickets")

	_, err = f.run(t, "open", "/nowhere")
	require.ErrorIs(t, err, poserrors.ErrUnknownRoute)
}

func TestRevokedTokenSendsConsoleToLogin(t *testing.T) {
	f := newConsoleFixture(t)

	forged, err := jwt.NewCreator(jwt.NewHMACSigner([]byte("other")), "pos-test", time.Hour).
		CreateAccessToken(mustUser(t, f.repo, "admin"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.tokenFile, []byte(forged.Raw), 0o600))

	out, err := f.run(t, "users", "list")
	require.ErrorIs(t, err, poserrors.ErrSessionRevoked)
	require.Contains(t, out, "=> /login")
	require.NoFileExists(t, f.tokenFile)
}

func TestForbiddenKeepsSession(t *testing.T) {
	f := newConsoleFixture(t)

	_, err := f.run(t, "login", "-u", "sales1", "-p", "sales123")
	require.NoError(t, err)

	out, err := f.run(t, "users", "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Insufficient role")
	require.NotContains(t, out, "=> /login")
	require.FileExists(t, f.tokenFile)
}

func TestUnknownOutputFormat(t *testing.T) {
	f := newConsoleFixture(t)
	_, err := f.run(t, "whoami", "-o", "xml")
	require.ErrorContains(t, err, "unknown output format")
}

func TestUnknownStore(t *testing.T) {
	f := newConsoleFixture(t)
	_, err := f.run(t, "--store", "etcd", "whoami")
	require.ErrorContains(t, err, "unknown token store")
}
