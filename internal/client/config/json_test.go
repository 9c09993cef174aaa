package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr":"h:1","access_token":"tok","request_timeout":"7s"}`), 0o600))

	t.Run("loads values", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", path}
		c := &Config{}
		parseJson(c)
		assert.Equal(t, "h:1", c.ServerEndpointAddr)
		assert.Equal(t, "tok", c.AccessToken)
		assert.Equal(t, 7*time.Second, c.RequestTimeout)
	})

	t.Run("flags win over json", func(t *testing.T) {
		os.Args = []string{"cmd", "-config", path, "-t", "flagtok"}
		c := LoadConfig()
		assert.Equal(t, "h:1", c.ServerEndpointAddr)
		assert.Equal(t, "flagtok", c.AccessToken)
	})

	t.Run("no file", func(t *testing.T) {
		os.Args = []string{"cmd"}
		c := &Config{ServerEndpointAddr: "keep"}
		parseJson(c)
		assert.Equal(t, "keep", c.ServerEndpointAddr)
	})

	t.Run("bad json panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		os.Args = []string{"cmd", "-c", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
