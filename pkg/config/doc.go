// Package config provides process configuration from environment variables.
//
// # Overview
//
// Settings are read from the environment, optionally seeded from a .env
// file. Variables already present in the environment take precedence over
// the file.
//
//	I18NLINT_LOG_LEVEL="warn"        # trace, debug, info, warn, error
//	I18NLINT_WORKERS="8"             # parallel catalog parsers
//	I18NLINT_CACHE_ENABLED="true"
//	I18NLINT_CACHE_SIZE="512"        # parsed sources kept in memory
//	I18NLINT_CACHE_TTL="10m"
//	I18NLINT_METRICS_FILE=""         # Prometheus textfile output
//
// # Usage Example
//
//	cfg, err := config.Load(config.DefaultEnvFile)
//	if err != nil {
//		log.Fatal(err)
//	}
//	log := cfg.NewLogger()
//
// # Related Packages
//
//   - pkg/loader: Uses worker and cache settings
//   - pkg/observability: Uses the metrics file setting
package config
