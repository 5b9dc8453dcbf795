package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"PINKEEPER_S3_BUCKET=from-file\nPINKEEPER_S3_REGION=eu-west-1\n"), 0o600))

	t.Setenv(EnvS3Bucket, "from-env")
	t.Setenv(EnvS3Region, "")
	require.NoError(t, os.Unsetenv(EnvS3Region))

	loadDotEnv(path)
	t.Cleanup(func() { _ = os.Unsetenv(EnvS3Region) })

	assert.Equal(t, "from-env", os.Getenv(EnvS3Bucket))
	assert.Equal(t, "eu-west-1", os.Getenv(EnvS3Region))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
}
