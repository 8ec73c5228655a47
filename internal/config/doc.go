// Package config provides centralized configuration management for the
// striking distance service and CLI.
//
// # Configuration Sources
//
// Configuration is layered in the following order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (config.yaml or configs/config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern STRIKING_<SECTION>_<KEY>:
//
//	STRIKING_SERVER_PORT=8080
//	STRIKING_LOGGING_LEVEL=debug
//	STRIKING_PIPELINE_MIN_POSITION=4
//	STRIKING_SECURITY_RATE_LIMIT_RPS=5
//	STRIKING_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Path Management
//
// Paths resolves the output and log directories against the working
// directory:
//
//	paths, err := config.GetPaths(cfg.Paths)
//	out := paths.GetOutputPath("striking_distance.csv")
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := cfg.Pipeline.Options()
package config
