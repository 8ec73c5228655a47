// Striking Distance CLI - finds keywords ranking just outside the top positions
//
// Usage:
//
//	strikingdistance run --queries q.csv --keywords k.xlsx --cannibalisation c.csv [options]
//	strikingdistance serve [--port 8080]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"strikingdistance/internal/config"
	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/infrastructure"
	"strikingdistance/pkg/contracts"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      config.AppName,
		Usage:     "Find striking distance keywords in search console exports",
		Version:   contracts.GetFullVersionString(),
		Writer:    stdout,
		ErrWriter: stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},

		Commands: []*cli.Command{
			runCommand(),
			serveCommand(),
		},

		After: func(*cli.Context) error {
			return infrastructure.CloseLogFile()
		},
	}
}

// loadConfig layers the --config file and environment over the defaults,
// then applies the global flags
func loadConfig(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, apierrors.NewConfigError("failed to load config", err)
	}

	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	return cfg, nil
}

func initLogger(cfg *config.Config) *slog.Logger {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		// Keep the configured level on the console
		fallback := infrastructure.NewLogger(cfg.Logging.Level, os.Stderr)
		fallback.Warn("Failed to initialize logger, using console", slog.String("error", err.Error()))
		return fallback
	}
	return logger
}
