// Package app wires configuration, logging, telemetry, services and the HTTP
// router into a runnable server and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Resolve and create the output and log directories
//	2. Initialize OpenTelemetry and the pipeline metrics
//	3. Create the opportunity and health services
//	4. Build the chi router with middleware and handlers
//	5. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Run returns after SIGINT or SIGTERM once in-flight requests have drained
// or the shutdown timeout has passed.
package app
