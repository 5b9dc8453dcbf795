package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pinkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration, so they can be written as "30s" or as integer nanoseconds.
type JsonConfig struct {
	Backend        string         `json:"backend"`
	PinataAPIURL   string         `json:"pinata_api_url"`
	PinataJWT      string         `json:"pinata_jwt"`
	GatewayURL     string         `json:"gateway_url"`
	S3Endpoint     string         `json:"s3_endpoint"`
	S3Region       string         `json:"s3_region"`
	S3Bucket       string         `json:"s3_bucket"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	S3Prefix       string         `json:"s3_prefix"`
	DBPath         string         `json:"db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the values found in the JSON file at path.
// Fields missing from the file keep their current values. An empty path is a
// no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.PinataAPIURL, jc.PinataAPIURL)
	setString(&cfg.PinataJWT, jc.PinataJWT)
	setString(&cfg.GatewayURL, jc.GatewayURL)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
