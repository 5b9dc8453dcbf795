package config

import "github.com/spf13/pflag"

// BindFlags registers the command-line overrides for cfg on fs. Current cfg
// values become the flag defaults, so flags win over JSON and environment.
//
// Secrets (Pinata JWT, S3 keys) are deliberately not exposed as flags; set
// them through the environment or the JSON file.
//
//	-c, --config string        JSON config file (read before flags are parsed)
//	    --backend string       remote backup backend: pinata or s3
//	    --pinata-api-url string
//	    --gateway-url string   base URL used to build retrieval links
//	    --s3-endpoint string
//	    --s3-region string
//	    --s3-bucket string
//	    --s3-prefix string
//	    --db-path string       local credential database file
//	    --timeout duration     per-request timeout for the remote service
//	    --log-level string     debug, info, warn or error
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	var configFile string
	fs.StringVarP(&configFile, "config", "c", "", "JSON config file")

	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "remote backup backend: pinata or s3")
	fs.StringVar(&cfg.PinataAPIURL, "pinata-api-url", cfg.PinataAPIURL, "Pinata API base URL")
	fs.StringVar(&cfg.GatewayURL, "gateway-url", cfg.GatewayURL, "base URL used to build retrieval links")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3-compatible endpoint URL")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket for credential backups")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "object key prefix for credential backups")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "local credential database file")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout for the remote service")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
}
