package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDotEnv(t *testing.T, f func() error) {
	t.Helper()
	orig := loadDotEnv
	t.Cleanup(func() { loadDotEnv = orig })
	loadDotEnv = f
}

func TestParseEnv_Variables(t *testing.T) {
	withDotEnv(t, func() error { return nil })

	t.Setenv("GRPC_ADDRESS", ":7000")
	t.Setenv("DATABASE_DSN", "sqlite:/tmp/r.db")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SNAPSHOT_INTERVAL", "15m")
	t.Setenv("TOKEN_VALIDITY", "2h")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":7000", c.EndpointAddrGRPC)
	assert.Equal(t, "sqlite:/tmp/r.db", c.DatabaseDSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, c.SnapshotInterval)
	assert.Equal(t, 2*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OWNER_IDENTITY=dotenv-owner\nEVENTS_CHANNEL=ch\n"), 0o600))

	// register cleanup of the variables godotenv is about to set
	t.Setenv("OWNER_IDENTITY", "")
	t.Setenv("EVENTS_CHANNEL", "")
	require.NoError(t, os.Unsetenv("OWNER_IDENTITY"))
	require.NoError(t, os.Unsetenv("EVENTS_CHANNEL"))

	withDotEnv(t, func() error { return godotenv.Load(path) })

	c := &Config{}
	parseEnv(c)

	assert.Equal(t, "dotenv-owner", c.OwnerIdentity)
	assert.Equal(t, "ch", c.EventsChannel)
}

func TestParseEnv_MissingDotEnvIsIgnored(t *testing.T) {
	withDotEnv(t, func() error { return godotenv.Load(filepath.Join(t.TempDir(), "absent.env")) })

	c := &Config{}
	require.NotPanics(t, func() { parseEnv(c) })
}

func TestParseEnv_Panics(t *testing.T) {
	t.Run("dotenv error", func(t *testing.T) {
		withDotEnv(t, func() error { return errors.New("boom") })
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("bad duration", func(t *testing.T) {
		withDotEnv(t, func() error { return nil })
		t.Setenv("SNAPSHOT_INTERVAL", "often")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
