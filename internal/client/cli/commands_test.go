package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/api"
	"github.com/dmitrijs2005/idregistry/internal/client/client"
	"github.com/dmitrijs2005/idregistry/internal/client/config"
	"github.com/dmitrijs2005/idregistry/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token   string
	closed  bool
	err     error
	profile api.Profile
	events  []api.Event
	args    []string
	since   int64
	active  bool
}

func (f *fakeClient) Close() error                 { f.closed = true; return nil }
func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) Register(_ context.Context, username, email, publicKey string) (api.Profile, error) {
	f.args = []string{username, email, publicKey}
	return f.profile, f.err
}

func (f *fakeClient) Login(context.Context) (time.Time, error) {
	return f.profile.LastLogin, f.err
}

func (f *fakeClient) UpdateProfile(_ context.Context, username, email, publicKey string) (api.Profile, error) {
	f.args = []string{username, email, publicKey}
	return f.profile, f.err
}

func (f *fakeClient) Deactivate(_ context.Context, identity string) error {
	f.args = []string{identity}
	return f.err
}

func (f *fakeClient) Reactivate(_ context.Context, identity string) error {
	f.args = []string{identity}
	return f.err
}

func (f *fakeClient) IsRegistered(_ context.Context, identity string) (bool, error) {
	f.args = []string{identity}
	return f.profile.Identity == identity, f.err
}

func (f *fakeClient) IsActive(_ context.Context, identity string) (bool, error) {
	return f.active, f.err
}

func (f *fakeClient) GetProfile(_ context.Context, identity string) (api.Profile, error) {
	f.args = []string{identity}
	return f.profile, f.err
}

func (f *fakeClient) ListEvents(_ context.Context, since int64, _ int) ([]api.Event, error) {
	f.since = since
	return f.events, f.err
}

func (f *fakeClient) Ping(context.Context) error { return f.err }

func newTestApp(t *testing.T, fc *fakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &App{
		config: &config.Config{RequestTimeout: time.Second},
		client: fc,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

var aliceProfile = api.Profile{
	Identity:     "alice",
	Username:     "alice",
	Email:        "alice@example.com",
	RegisteredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	IsActive:     true,
}

func TestApp_Register(t *testing.T) {
	fc := &fakeClient{profile: aliceProfile}
	a, out := newTestApp(t, fc, "alice\nalice@example.com\n\n")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, []string{"alice", "alice@example.com", ""}, fc.args)
	assert.Contains(t, out.String(), "Registered!")
	assert.Contains(t, out.String(), "last login:    never")
	assert.NotContains(t, out.String(), "public key:")
}

func TestApp_RegisterInputError(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(t, fc, "")

	err := a.Register(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Nil(t, fc.args)
}

func TestApp_UpdatePassesEmptyFields(t *testing.T) {
	fc := &fakeClient{profile: aliceProfile}
	a, out := newTestApp(t, fc, "\nnew@example.com\n\n")

	require.NoError(t, a.Update(context.Background()))
	assert.Equal(t, []string{"", "new@example.com", ""}, fc.args)
	assert.Contains(t, out.String(), "Updated!")
}

func TestApp_Login(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 123000, time.UTC)
	fc := &fakeClient{profile: api.Profile{LastLogin: at}}
	a, out := newTestApp(t, fc, "")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "Logged in at 2024-05-06T07:08:09.000123Z\n", out.String())
}

func TestApp_ProfileDefaultsToSelf(t *testing.T) {
	fc := &fakeClient{profile: aliceProfile}
	a, _ := newTestApp(t, fc, "")

	assert.ErrorIs(t, a.Profile(context.Background(), nil), errNoIdentity)

	a.identity = "alice"
	require.NoError(t, a.Profile(context.Background(), nil))
	assert.Equal(t, []string{"alice"}, fc.args)

	require.NoError(t, a.Profile(context.Background(), []string{"bob"}))
	assert.Equal(t, []string{"bob"}, fc.args)
}

func TestApp_Status(t *testing.T) {
	fc := &fakeClient{profile: aliceProfile, active: true}
	a, out := newTestApp(t, fc, "")

	require.NoError(t, a.Status(context.Background(), []string{"alice"}))
	assert.Equal(t, "alice: registered=true active=true\n", out.String())
}

func TestApp_DeactivateReactivate(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc, "")

	require.NoError(t, a.Deactivate(context.Background(), nil))
	assert.Equal(t, []string{""}, fc.args)

	require.NoError(t, a.Deactivate(context.Background(), []string{"bob"}))
	assert.Equal(t, []string{"bob"}, fc.args)

	require.NoError(t, a.Reactivate(context.Background(), []string{"bob"}))
	assert.Equal(t, []string{"bob"}, fc.args)
	assert.Error(t, a.Reactivate(context.Background(), nil))

	assert.Equal(t, "Deactivated.\nDeactivated.\nReactivated.\n", out.String())
}

func TestApp_ServerErrorPropagates(t *testing.T) {
	fc := &fakeClient{err: client.ErrNotOwner}
	a, out := newTestApp(t, fc, "")

	assert.ErrorIs(t, a.Reactivate(context.Background(), []string{"bob"}), client.ErrNotOwner)
	assert.Empty(t, out.String())
}

func TestApp_Events(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	fc := &fakeClient{events: []api.Event{
		{Seq: 3, Kind: "Registered", Identity: "alice", Username: "alice", Email: "alice@example.com", Timestamp: ts},
		{Seq: 4, Kind: "LoggedIn", Identity: "alice", Timestamp: ts},
	}}
	a, out := newTestApp(t, fc, "")

	require.NoError(t, a.Events(context.Background(), []string{"2"}))
	assert.Equal(t, int64(2), fc.since)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "#3")
	assert.Contains(t, lines[0], "username=alice email=alice@example.com")
	assert.NotContains(t, lines[1], "username=")

	assert.Error(t, a.Events(context.Background(), []string{"x"}))

	fc.events = nil
	out.Reset()
	require.NoError(t, a.Events(context.Background(), nil))
	assert.Equal(t, int64(0), fc.since)
	assert.Equal(t, "No events.\n", out.String())
}

func TestApp_PingAndWhoAmI(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc, "")

	require.NoError(t, a.Ping(context.Background()))
	assert.ErrorIs(t, a.WhoAmI(context.Background()), errNoIdentity)

	a.identity = "alice"
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "OK\nalice\n", out.String())

	fc.err = errors.New("down")
	assert.EqualError(t, a.Ping(context.Background()), "down")
}

func TestApp_EnsureToken(t *testing.T) {
	token, err := auth.GenerateToken("alice", []byte("secret"), time.Hour)
	require.NoError(t, err)

	fc := &fakeClient{}
	a, _ := newTestApp(t, fc, "")
	a.config.AccessToken = token

	require.NoError(t, a.ensureToken())
	assert.Equal(t, token, fc.token)
	assert.Equal(t, "alice", a.identity)
	assert.Equal(t, "(alice)", a.status())
}

func TestApp_EnsureTokenPrompts(t *testing.T) {
	token, err := auth.GenerateToken("bob", []byte("secret"), time.Hour)
	require.NoError(t, err)

	orig := getSecret
	t.Cleanup(func() { getSecret = orig })
	getSecret = func(io.Writer, string) ([]byte, error) { return []byte(token), nil }

	fc := &fakeClient{}
	a, _ := newTestApp(t, fc, "")

	require.NoError(t, a.ensureToken())
	assert.Equal(t, "bob", a.identity)
}

func TestApp_RunWithoutToken(t *testing.T) {
	captureOutput(t)

	orig := getSecret
	t.Cleanup(func() { getSecret = orig })
	getSecret = func(io.Writer, string) ([]byte, error) { return []byte("garbage"), nil }

	fc := &fakeClient{}
	a, out := newTestApp(t, fc, "exit\n")

	a.Run(context.Background())

	assert.True(t, fc.closed)
	assert.Empty(t, fc.token)
	assert.Contains(t, out.String(), "only queries will work")
	assert.Equal(t, "(anonymous)", a.status())
}
