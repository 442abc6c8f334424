// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/counterpoint/pkg/logging"
	"github.com/AleutianAI/counterpoint/pkg/telemetry"
	"github.com/AleutianAI/counterpoint/pkg/ux"
)

// rootOptions holds the persistent flags and the resources they set up.
type rootOptions struct {
	logLevel        string
	logJSON         bool
	logDir          string
	personality     string
	traceExporter   string
	metricsExporter string
	metricsFile     string

	logger   *logging.Logger
	shutdown func(context.Context) error
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "counterpoint",
		Short: "Check two-voice first and second species counterpoint",
		Long: `counterpoint checks a counterpoint line against its cantus firmus
using the rules of first species (note against note) or second species
(two notes against one).

Scores are YAML documents with two parts, P1 above P2, named CP and CF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")
	pf.StringVar(&opts.logDir, "log-dir", "", "Also write JSON logs to a daily file in this directory")
	pf.StringVar(&opts.personality, "personality", "", "Output style: full, minimal, machine (default: detect)")
	pf.StringVar(&opts.traceExporter, "trace-exporter", "", "Trace exporter: stdout, otlp, none (default: $OTEL_TRACES_EXPORTER or none)")
	pf.StringVar(&opts.metricsExporter, "metrics-exporter", "", "Metric exporter: prometheus, stdout, none (default: $OTEL_METRICS_EXPORTER or none)")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	root.AddCommand(newAnalyzeCmd(opts), newRulesCmd(), newConfigCmd())
	return root, opts
}

// setup configures output, logging and telemetry before any command runs.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.personality != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(o.personality))
	} else {
		ux.InitPersonality()
	}

	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return failure(err)
	}
	o.logger = logging.New(logging.Config{
		Level:   level,
		JSON:    o.logJSON,
		Service: "counterpoint",
		Output:  cmd.ErrOrStderr(),
		LogDir:  o.logDir,
	})

	cfg := telemetry.DefaultConfig()
	cfg.Output = cmd.ErrOrStderr()
	if o.traceExporter != "" {
		cfg.TraceExporter = o.traceExporter
	}
	if o.metricsExporter != "" {
		cfg.MetricExporter = o.metricsExporter
	}
	if o.metricsFile != "" {
		cfg.MetricsFile = o.metricsFile
		if cfg.MetricExporter == telemetry.ExporterNone {
			cfg.MetricExporter = telemetry.ExporterPrometheus
		}
	}

	shutdown, err := telemetry.Init(cmd.Context(), cfg)
	if err != nil {
		return failure(err)
	}
	o.shutdown = shutdown

	o.logger.Debug("Telemetry initialized",
		"trace_exporter", cfg.TraceExporter,
		"metric_exporter", cfg.MetricExporter,
	)
	return nil
}

// close flushes telemetry and closes the log file.
func (o *rootOptions) close(ctx context.Context) error {
	var errs []error
	if o.shutdown != nil {
		errs = append(errs, o.shutdown(ctx))
	}
	if o.logger != nil {
		errs = append(errs, o.logger.Close())
	}
	return errors.Join(errs...)
}
