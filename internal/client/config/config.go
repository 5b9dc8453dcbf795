package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/pinkeeper/internal/flagx"
)

const (
	BackendPinata = "pinata"
	BackendS3     = "s3"

	DefaultPinataGatewayURL = "https://gateway.pinata.cloud"
)

// Config holds runtime settings for the pinkeeper CLI.
//
// Backend selects the remote backup service ("pinata" or "s3"). GatewayURL is
// the public base used to build retrieval URLs. When empty, pinata falls back
// to the public Pinata gateway and s3 to the bucket URL.
type Config struct {
	Backend string

	PinataAPIURL string
	PinataJWT    string
	GatewayURL   string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string

	DBPath         string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendPinata
	c.PinataAPIURL = "https://api.pinata.cloud"
	c.S3Region = "us-east-1"
	c.S3Prefix = "auth/"
	c.DBPath = "pinkeeper.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config from defaults, then the JSON file named by
// -c/--config (if any), then the environment (and an optional .env file).
// Command-line flags are bound later by the CLI and take precedence over all
// of these.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFileFromArgs(os.Args[1:])); err != nil {
		return nil, err
	}

	loadDotEnv(".env")
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EffectiveGatewayURL returns GatewayURL, or the public Pinata gateway when it
// is empty and the backend is pinata. An empty value is kept for s3.
func (c *Config) EffectiveGatewayURL() string {
	if c.GatewayURL == "" && c.Backend == BackendPinata {
		return DefaultPinataGatewayURL
	}
	return c.GatewayURL
}

// Validate checks that the settings needed by the selected backend are
// present.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendPinata:
		if c.PinataAPIURL == "" {
			errs = append(errs, errors.New("pinata api url is required"))
		}
		if c.PinataJWT == "" {
			errs = append(errs, errors.New("pinata jwt is required (set PINKEEPER_PINATA_JWT)"))
		}
	case BackendS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("s3 bucket is required"))
		}
		if c.S3Region == "" {
			errs = append(errs, errors.New("s3 region is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	if c.GatewayURL != "" {
		if u, err := url.Parse(c.GatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid gateway url %q", c.GatewayURL))
		}
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	return errors.Join(errs...)
}
