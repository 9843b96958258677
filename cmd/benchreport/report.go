package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ycsbtools/benchreport/pkg/collector"
	"github.com/ycsbtools/benchreport/pkg/config"
	"github.com/ycsbtools/benchreport/pkg/dataset"
	"github.com/ycsbtools/benchreport/pkg/report"
	"github.com/ycsbtools/benchreport/pkg/upload"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from benchmark logs",
	Long: `Scan the results directory for benchmark log files, aggregate them
into one record per database, workload and phase, and write report
artifacts to the output directory.`,
	RunE: runReport,
}

// reportFlags binds flag and env overrides for the report command. Env
// vars use the BENCHREPORT_ prefix, e.g. BENCHREPORT_RESULTS_DIR.
var reportFlags = viper.New()

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("results-dir", "",
		"directory containing benchmark log files (overrides config)")
	reportCmd.Flags().String("output-dir", "",
		"directory report artifacts are written to (overrides config)")

	reportFlags.SetEnvPrefix("BENCHREPORT")
	reportFlags.AutomaticEnv()

	_ = reportFlags.BindPFlag("results_dir", reportCmd.Flags().Lookup("results-dir"))
	_ = reportFlags.BindPFlag("output_dir", reportCmd.Flags().Lookup("output-dir"))
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Flag and env overrides win over the config file.
	if v := reportFlags.GetString("results_dir"); v != "" {
		cfg.Collector.ResultsDir = v
	}

	if v := reportFlags.GetString("output_dir"); v != "" {
		cfg.Report.OutputDir = v
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	// Setup context with signal handling.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	}()

	coll := collector.New(log, cfg.Collector.Concurrency)

	records, err := coll.Collect(ctx, cfg.Collector.ResultsDir)
	if err != nil {
		if errors.Is(err, collector.ErrNoRecords) {
			return fmt.Errorf("%w in %s", err, cfg.Collector.ResultsDir)
		}

		return fmt.Errorf("collecting benchmark records: %w", err)
	}

	aggregated := dataset.Aggregate(records)

	if err := report.New(log, &cfg.Report).Emit(aggregated); err != nil {
		return fmt.Errorf("emitting report: %w", err)
	}

	if s3cfg := cfg.S3Upload(); s3cfg != nil {
		uploader, err := upload.NewS3Uploader(log, s3cfg)
		if err != nil {
			return fmt.Errorf("creating uploader: %w", err)
		}

		if err := uploader.Preflight(ctx); err != nil {
			return fmt.Errorf("upload preflight: %w", err)
		}

		if err := uploader.Upload(ctx, cfg.Report.OutputDir); err != nil {
			return fmt.Errorf("uploading report: %w", err)
		}
	}

	return nil
}
