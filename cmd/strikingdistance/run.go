package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"strikingdistance/internal/config"
	"strikingdistance/internal/dataprocessing"
	"strikingdistance/internal/exporter"
	"strikingdistance/internal/infrastructure"
	"strikingdistance/internal/services"
	"strikingdistance/internal/striking"
	"strikingdistance/internal/validation"
)

// stdoutTarget as --out streams the export to standard output
const stdoutTarget = "-"

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Merge the three exports and write the scored keyword table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "queries",
				Aliases:  []string{"q"},
				Usage:    "Query performance export (CSV or XLSX)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "keywords",
				Aliases:  []string{"k"},
				Usage:    "Keyword metrics export (CSV or XLSX)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "cannibalisation",
				Usage:    "Cannibalisation export (CSV or XLSX)",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "min-position",
				Usage: "Lowest average position kept (inclusive)",
			},
			&cli.IntFlag{
				Name:  "max-position",
				Usage: "Highest average position kept (inclusive)",
			},
			&cli.StringFlag{
				Name:  "exclude",
				Usage: "Comma separated terms; keywords containing any are dropped",
			},
			&cli.BoolFlag{
				Name:  "combine",
				Usage: "Keep only the highest impression landing page per query",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file, or - for stdout (default: striking_distance.<format> in the output dir)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(exporter.FormatCSV),
				Usage:   "Output format (csv, xlsx, json)",
			},
			&cli.BoolFlag{
				Name:  "bom",
				Usage: "Prefix CSV output with a UTF-8 byte order mark",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail when the result is empty or the scores are degenerate",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := initLogger(cfg)

	format, err := exporter.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	opts := cfg.Pipeline.Options()
	if c.IsSet("min-position") {
		opts.MinPosition = c.Int("min-position")
	}
	if c.IsSet("max-position") {
		opts.MaxPosition = c.Int("max-position")
	}
	if c.IsSet("exclude") {
		opts.ExcludeKeywords = c.String("exclude")
	}
	if c.IsSet("combine") {
		opts.CombineKeywords = c.Bool("combine")
	}
	bom := cfg.Pipeline.CSVBOM
	if c.IsSet("bom") {
		bom = c.Bool("bom")
	}

	inputs := dataprocessing.Paths{
		Queries:         c.String("queries"),
		Keywords:        c.String("keywords"),
		Cannibalisation: c.String("cannibalisation"),
	}
	out := c.String("out")

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputs(inputs); err != nil {
		return err
	}
	if out != stdoutTarget {
		if err := validator.ValidateOutputFile(out); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(infrastructure.EnsureTraceID(c.Context), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelCfg := infrastructure.OTelConfigFrom(cfg.Telemetry)
	otelCfg.TraceWriter = c.App.ErrWriter
	// Nothing scrapes a one-shot run
	otelCfg.MetricExporter = "none"
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	service := services.NewOpportunityService(providers.Tracer, nil, logger)
	res, err := service.AnalyzeFiles(ctx, inputs, opts, c.Bool("strict"))
	if err != nil {
		return err
	}

	for _, cond := range res.Conditions {
		logger.WarnContext(ctx, "Run finished with condition",
			slog.String("code", string(cond.Code)),
			slog.String("stage", cond.Stage),
			slog.String("message", cond.Message))
		fmt.Fprintf(c.App.ErrWriter, "warning: %s (%s)\n", cond.Message, cond.Code)
	}

	// A file format has nothing to carry beyond the warning above
	if res.Has(striking.EmptyResult) && format != exporter.FormatJSON {
		logger.WarnContext(ctx, "No striking distance keywords found, nothing written",
			slog.String("format", string(format)))
		return nil
	}

	writer := exporter.NewWriter(nil, exporter.WriteOptions{BOMPrefix: bom}, logger)
	if out == stdoutTarget {
		return writer.Write(c.App.Writer, format, res)
	}

	if out == "" {
		paths, err := config.GetPaths(cfg.Paths)
		if err != nil {
			return err
		}
		out = paths.GetOutputPath(exporter.DefaultFileName(format))
	}

	written, err := writer.WriteFile(out, format, res)
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(c.App.ErrWriter, "wrote %d rows to %s\n", len(res.Rows), written)
	return nil
}
