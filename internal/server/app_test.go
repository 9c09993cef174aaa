package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/logging"
	"github.com/dmitrijs2005/idregistry/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = MemoryDSN
	c.OwnerIdentity = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	return c
}

func TestNewApp_NormalizesOwner(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", app.registry.Owner())
}

func TestNewApp_RequiresOwner(t *testing.T) {
	c := testConfig()
	c.OwnerIdentity = ""

	_, err := newApp(context.Background(), c, logging.Nop{})
	require.Error(t, err)
}

func TestNewApp_SQLiteJournalSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	c := testConfig()
	c.DatabaseDSN = "sqlite:" + t.TempDir() + "/registry.db"

	app, err := newApp(ctx, c, logging.Nop{})
	require.NoError(t, err)
	_, err = app.registry.Register(ctx, "alice", "alice", "a@x.com", "")
	require.NoError(t, err)
	app.close()

	app, err = newApp(ctx, c, logging.Nop{})
	require.NoError(t, err)
	defer app.close()
	assert.True(t, app.registry.IsRegistered("alice"))
}

func TestNewApp_BadRedisURL(t *testing.T) {
	c := testConfig()
	c.RedisURL = "::not a url"

	_, err := newApp(context.Background(), c, logging.Nop{})
	require.ErrorContains(t, err, "redis")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
