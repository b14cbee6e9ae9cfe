// Package config manages application configuration for the mini-app API.
//
// Configuration is read from environment variables with development
// defaults; a local .env file is honored when present. Load never fails
// on missing values — Validate reports every problem at once so a broken
// deployment fails fast with a complete list:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // one joined error per missing/invalid variable
//	}
//
// Key environment variables:
//
//	SERVER_PORT               - HTTP server port (default: 8000)
//	SERVER_ENV                - development | production | test
//	DATABASE_URL              - Postgres connection URL (required)
//	DB_POOL_SIZE              - max open connections (default: 20)
//	REDIS_HOST / REDIS_PORT   - cache address
//	BOT_TOKEN                 - shared bot secret for init-data signatures (required)
//	TRACEBACK_OUTPUT_ENABLED  - attach tracebacks to 500 envelopes (debug only)
package config
