// Command ingest pulls NBA scoreboards and box scores into the export tables.
//
// Usage:
//
//	scoracle-ingest run
//	scoracle-ingest run --days-back 7
//	scoracle-ingest run --start 2024-10-22 --end 2024-10-31 --mirror parquet,xlsx
//	scoracle-ingest schedule --cron "0 6 * * *"
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-boxscores/internal/calendar"
	"github.com/albapepper/scoracle-boxscores/internal/config"
	"github.com/albapepper/scoracle-boxscores/internal/export"
	"github.com/albapepper/scoracle-boxscores/internal/provider/nbacdn"
	"github.com/albapepper/scoracle-boxscores/internal/scheduler"
	"github.com/albapepper/scoracle-boxscores/internal/seed"
)

var (
	level  = new(slog.LevelVar)
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "scoracle-ingest",
		Short:         "NBA box score ingestion CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd())
	root.AddCommand(scheduleCmd())

	if err := root.Execute(); err != nil {
		logger.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

// overrides are command-line values that take precedence over the env.
type overrides struct {
	start    string
	end      string
	daysBack int
	mirrors  []string
}

func (o *overrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.start, "start", "", "First date to ingest (YYYY-MM-DD, Eastern)")
	cmd.Flags().StringVar(&o.end, "end", "", "Last date to ingest (YYYY-MM-DD, Eastern)")
	cmd.Flags().IntVar(&o.daysBack, "days-back", 0, "Ingest the last N days through today")
	cmd.Flags().StringSliceVar(&o.mirrors, "mirror", nil, "Mirror formats to write next to the CSV (parquet, xlsx)")
}

func (o *overrides) apply(cfg *config.Config) error {
	if o.daysBack < 0 {
		return fmt.Errorf("--days-back must be positive, got %d", o.daysBack)
	}
	if o.daysBack > 0 {
		cfg.DaysBack = o.daysBack
		cfg.StartDate, cfg.EndDate = "", ""
	}
	if o.start != "" || o.end != "" {
		cfg.StartDate, cfg.EndDate = o.start, o.end
	}
	if o.mirrors != nil {
		cfg.MirrorFormats = cfg.MirrorFormats[:0]
		for _, m := range o.mirrors {
			if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
				cfg.MirrorFormats = append(cfg.MirrorFormats, m)
			}
		}
	}
	return cfg.ValidateWindow()
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var o overrides
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest the configured date window once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(&o, func(ctx context.Context, cfg *config.Config, deps seed.Deps) error {
				return ingestOnce(ctx, cfg, deps)
			})
		},
	}
	o.register(cmd)
	return cmd
}

// --------------------------------------------------------------------------
// schedule command
// --------------------------------------------------------------------------

func scheduleCmd() *cobra.Command {
	var (
		o           overrides
		spec        string
		skipInitial bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Ingest on a cron schedule (US Eastern time)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(&o, func(ctx context.Context, cfg *config.Config, deps seed.Deps) error {
				if spec == "" {
					spec = cfg.CronSpec
				}
				s, err := scheduler.New(spec, func(ctx context.Context) error {
					return ingestOnce(ctx, cfg, deps)
				}, logger)
				if err != nil {
					return err
				}
				logger.Info("Scheduling ingest", "tz", calendar.Eastern.String(), "run_at_start", !skipInitial)
				return s.Run(ctx, !skipInitial)
			})
		},
	}
	o.register(cmd)
	cmd.Flags().StringVar(&spec, "cron", "", "Cron expression (default INGEST_CRON or "+config.DefaultCron+")")
	cmd.Flags().BoolVar(&skipInitial, "skip-initial", false, "Wait for the first cron trigger instead of running at startup")
	return cmd
}

// ingestOnce runs the pipeline over the window computed from cfg at call
// time, so scheduled runs follow the calendar.
func ingestOnce(ctx context.Context, cfg *config.Config, deps seed.Deps) error {
	window := calendar.Window{Start: cfg.StartDate, End: cfg.EndDate, DaysBack: cfg.DaysBack}
	dates, desc, err := calendar.Targets(window, time.Now())
	if err != nil {
		return fmt.Errorf("date window: %w", err)
	}
	logger.Info("Ingest window", "window", desc, "dates", len(dates))

	start := time.Now()
	result, err := seed.SeedNBA(ctx, deps, dates, logger)
	logger.Info("NBA ingest finished",
		"run_id", result.RunID,
		"duration", time.Since(start).Round(time.Second),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))
	for _, e := range result.Errors {
		logger.Warn("ingest error", "run_id", result.RunID, "error", e)
	}
	for _, w := range result.Warnings {
		logger.Warn("ingest warning", "run_id", result.RunID, "warning", w)
	}
	return err
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runSeed handles config loading, dependency wiring, and context cancellation.
func runSeed(o *overrides, fn func(ctx context.Context, cfg *config.Config, deps seed.Deps) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := o.apply(cfg); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}

	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	return fn(ctx, cfg, deps)
}

// buildDeps creates the source client, resolver and exporter from cfg.
func buildDeps(ctx context.Context, cfg *config.Config) (seed.Deps, error) {
	var opts []export.Option

	for _, f := range cfg.MirrorFormats {
		switch f {
		case config.MirrorParquet:
			opts = append(opts, export.WithMirrors(export.ParquetMirror{}))
		case config.MirrorXLSX:
			opts = append(opts, export.WithMirrors(export.XLSXMirror{}))
		default:
			return seed.Deps{}, fmt.Errorf("unknown mirror format %q (valid: %s, %s)",
				f, config.MirrorParquet, config.MirrorXLSX)
		}
	}

	if cfg.PublishEnabled() {
		pub, err := export.NewS3Publisher(ctx, export.S3PublisherConfig{
			Bucket:          cfg.PublishBucket,
			Prefix:          cfg.PublishPrefix,
			Endpoint:        cfg.PublishEndpoint,
			Region:          cfg.PublishRegion,
			AccessKeyID:     cfg.PublishAccessKey,
			SecretAccessKey: cfg.PublishSecretKey,
		})
		if err != nil {
			return seed.Deps{}, fmt.Errorf("publisher: %w", err)
		}
		opts = append(opts, export.WithPublisher(pub))
		logger.Info("Publishing enabled", "bucket", cfg.PublishBucket, "prefix", cfg.PublishPrefix)
	}

	logger.Info("Export configured", "dir", cfg.ExportDir, "mirrors", cfg.MirrorFormats)

	return seed.Deps{
		Client:   nbacdn.NewClient(cfg.HTTPTimeout, cfg.UserAgent, logger),
		Resolver: nbacdn.NewResolver(cfg.LiveBaseURL, cfg.LegacyBaseURL, time.Now),
		Exporter: export.New(cfg.ExportDir, logger, opts...),
		Pace:     cfg.BoxscorePace,
	}, nil
}
