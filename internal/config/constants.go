package config

// Application constants
const (
	// Application Info
	AppName = "strikingdistance"

	// File Paths (relative to the working directory)
	DefaultOutputDir = "output"
	DefaultLogsDir   = "logs"
	DefaultLogFile   = "app.log"

	// Default output file name, without extension
	DefaultOutputName = "striking_distance"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints
	APIBasePath           = "/api"
	HealthEndpoint        = "/api/health"
	VersionEndpoint       = "/api/version"
	OpportunitiesEndpoint = "/api/opportunities"
	MetricsEndpoint       = "/metrics"
)
