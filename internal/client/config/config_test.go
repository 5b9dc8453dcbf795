package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	var c Config
	c.LoadDefaults()
	return &c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, BackendPinata, c.Backend)
	assert.Equal(t, "https://api.pinata.cloud", c.PinataAPIURL)
	assert.Empty(t, c.GatewayURL)
	assert.Equal(t, DefaultPinataGatewayURL, c.EffectiveGatewayURL())
	assert.Equal(t, "pinkeeper.db", c.DBPath)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_DefaultsAndEnvironment(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"pinkeeper", "status"}

	t.Setenv(EnvPinataJWT, "jwt-from-env")
	t.Setenv(EnvGatewayURL, "https://gw.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	want := defaults()
	want.PinataJWT = "jwt-from-env"
	want.GatewayURL = "https://gw.test"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_JSONThenEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"db_path":         "/from/json.db",
		"gateway_url":     "https://json.gw",
		"request_timeout": "5s",
	})
	os.Args = []string{"pinkeeper", "--config", path, "status"}
	t.Setenv(EnvGatewayURL, "https://env.gw")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/from/json.db", cfg.DBPath)
	assert.Equal(t, "https://env.gw", cfg.GatewayURL, "environment overrides JSON")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_BadEnvTimeout(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"pinkeeper"}
	t.Setenv(EnvRequestTimeout, "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRequestTimeout)
}

func TestParseEnv(t *testing.T) {
	env := map[string]string{
		EnvBackend:        "s3",
		EnvS3Bucket:       "backups",
		EnvS3AccessKey:    "ak",
		EnvS3SecretKey:    "sk",
		EnvRequestTimeout: "12s",
		EnvLogLevel:       "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, lookup))

	assert.Equal(t, BackendS3, cfg.Backend)
	assert.Equal(t, "backups", cfg.S3Bucket)
	assert.Equal(t, "ak", cfg.S3AccessKey)
	assert.Equal(t, "sk", cfg.S3SecretKey)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel, "empty values are ignored")
}

func TestBindFlags_OverridesValues(t *testing.T) {
	cfg := defaults()
	cfg.PinataJWT = "keep"

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, cfg)

	require.NoError(t, fs.Parse([]string{
		"--backend", "s3",
		"--s3-bucket", "b",
		"--db-path", "/tmp/x.db",
		"--timeout", "7s",
		"-c", "ignored.json",
	}))

	assert.Equal(t, BackendS3, cfg.Backend)
	assert.Equal(t, "b", cfg.S3Bucket)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "keep", cfg.PinataJWT)
	assert.Nil(t, fs.Lookup("pinata-jwt"), "secrets are not flags")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"pinata ok", func(c *Config) { c.PinataJWT = "jwt" }, ""},
		{"pinata missing jwt", func(c *Config) {}, "pinata jwt is required"},
		{"s3 ok", func(c *Config) { c.Backend = BackendS3; c.S3Bucket = "b" }, ""},
		{"s3 without gateway", func(c *Config) { c.Backend = BackendS3; c.S3Bucket = "b"; c.GatewayURL = "" }, ""},
		{"s3 missing bucket", func(c *Config) { c.Backend = BackendS3 }, "s3 bucket is required"},
		{"unknown backend", func(c *Config) { c.Backend = "ftp" }, `unknown backend "ftp"`},
		{"bad gateway", func(c *Config) { c.PinataJWT = "jwt"; c.GatewayURL = "gw" }, "invalid gateway url"},
		{"zero timeout", func(c *Config) { c.PinataJWT = "jwt"; c.RequestTimeout = 0 }, "request timeout must be positive"},
		{"empty db path", func(c *Config) { c.PinataJWT = "jwt"; c.DBPath = "" }, "db path is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEffectiveGatewayURL(t *testing.T) {
	c := defaults()
	assert.Equal(t, DefaultPinataGatewayURL, c.EffectiveGatewayURL())

	c.GatewayURL = "https://my.gw"
	assert.Equal(t, "https://my.gw", c.EffectiveGatewayURL())

	c.Backend = BackendS3
	c.GatewayURL = ""
	assert.Empty(t, c.EffectiveGatewayURL(), "s3 derives the bucket URL itself")
}
