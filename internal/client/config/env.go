package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvBackend        = "PINKEEPER_BACKEND"
	EnvPinataAPIURL   = "PINKEEPER_PINATA_API_URL"
	EnvPinataJWT      = "PINKEEPER_PINATA_JWT"
	EnvGatewayURL     = "PINKEEPER_GATEWAY_URL"
	EnvS3Endpoint     = "PINKEEPER_S3_ENDPOINT"
	EnvS3Region       = "PINKEEPER_S3_REGION"
	EnvS3Bucket       = "PINKEEPER_S3_BUCKET"
	EnvS3AccessKey    = "PINKEEPER_S3_ACCESS_KEY"
	EnvS3SecretKey    = "PINKEEPER_S3_SECRET_KEY"
	EnvS3Prefix       = "PINKEEPER_S3_PREFIX"
	EnvDBPath         = "PINKEEPER_DB_PATH"
	EnvRequestTimeout = "PINKEEPER_REQUEST_TIMEOUT"
	EnvLogLevel       = "PINKEEPER_LOG_LEVEL"
)

// loadDotEnv copies variables from a .env file into the process environment.
// Variables that are already set win; a missing file is ignored.
func loadDotEnv(path string) {
	_ = godotenv.Load(path)
}

// parseEnv overlays cfg with the PINKEEPER_* variables visible through lookup.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvBackend, &cfg.Backend},
		{EnvPinataAPIURL, &cfg.PinataAPIURL},
		{EnvPinataJWT, &cfg.PinataJWT},
		{EnvGatewayURL, &cfg.GatewayURL},
		{EnvS3Endpoint, &cfg.S3Endpoint},
		{EnvS3Region, &cfg.S3Region},
		{EnvS3Bucket, &cfg.S3Bucket},
		{EnvS3AccessKey, &cfg.S3AccessKey},
		{EnvS3SecretKey, &cfg.S3SecretKey},
		{EnvS3Prefix, &cfg.S3Prefix},
		{EnvDBPath, &cfg.DBPath},
		{EnvLogLevel, &cfg.LogLevel},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}

	return nil
}
