package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("overlays present fields only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"backend":         "s3",
			"s3_bucket":       "creds",
			"s3_endpoint":     "http://minio:9000",
			"request_timeout": "10s",
		})

		cfg := defaults()
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, BackendS3, cfg.Backend)
		assert.Equal(t, "creds", cfg.S3Bucket)
		assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "pinkeeper.db", cfg.DBPath, "absent field keeps default")
	})

	t.Run("integer nanoseconds", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"request_timeout": int64(2 * time.Second)})

		cfg := defaults()
		require.NoError(t, parseJson(cfg, path))
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("empty path → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file → error", func(t *testing.T) {
		cfg := defaults()
		err := parseJson(cfg, filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := defaults()
		err := parseJson(cfg, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}
