// Package config loads runtime configuration for the pinkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config.
//  3. PINKEEPER_* environment variables, optionally seeded from a .env file
//     in the working directory.
//  4. Command-line flags bound by BindFlags.
//
// # JSON schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "backend": "pinata",
//	  "pinata_api_url": "https://api.pinata.cloud",
//	  "pinata_jwt": "eyJ...",
//	  "gateway_url": "https://example.mypinata.cloud",
//	  "db_path": "/home/me/.pinkeeper/pinkeeper.db",
//	  "request_timeout": "30s",
//	  "log_level": "warn"
//	}
//
// Call (*Config).Validate once all sources are applied.
package config
