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
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/counterpoint/pkg/telemetry"
	"github.com/AleutianAI/counterpoint/pkg/ux"
	"github.com/AleutianAI/counterpoint/services/counterpoint/analysis"
	"github.com/AleutianAI/counterpoint/services/counterpoint/score"
)

var tracer = otel.Tracer("counterpoint.cli")

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

type analyzeOptions struct {
	species        int
	configPath     string
	format         string
	concurrency    int
	only           []string
	failOnFindings bool
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	o := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <score.yaml>",
		Short: "Check a counterpoint exercise",
		Long: `Check a two-part exercise against the rules of first or second species.

Each finding is printed as "At #<position>: <description>", where the
position counts timepoints from 1.

Examples:
  counterpoint analyze exercise.yaml
  counterpoint analyze exercise.yaml --species 2 --config lenient.yaml
  counterpoint analyze exercise.yaml --only consecutive_fifths,consecutive_octaves
  counterpoint analyze exercise.yaml --format json --fail-on-findings

Exit Codes:
  0 = Analysis completed (findings are reported but do not fail the run)
  1 = Findings reported and --fail-on-findings was set
  2 = Error (unreadable score, bad configuration, voices not aligned)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, o, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVarP(&o.species, "species", "s", 1, "Species to check (1 or 2)")
	f.StringVarP(&o.configPath, "config", "c", "", "YAML file overriding the species defaults")
	f.StringVarP(&o.format, "format", "f", formatText, "Output format: text, json")
	f.IntVar(&o.concurrency, "concurrency", 1, "Number of rules to run at once")
	f.StringSliceVar(&o.only, "only", nil, "Run only these rules (see 'counterpoint rules')")
	f.BoolVar(&o.failOnFindings, "fail-on-findings", false, "Exit 1 when anything is found")

	return cmd
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runAnalyze(cmd *cobra.Command, root *rootOptions, o *analyzeOptions, path string) error {
	if o.format != formatText && o.format != formatJSON {
		return failure(fmt.Errorf("unknown format %q (want text or json)", o.format))
	}

	ctx, span := tracer.Start(cmd.Context(), "cli.analyze",
		trace.WithAttributes(
			attribute.String("score.path", path),
			attribute.Int("analysis.species", o.species),
		),
	)
	defer span.End()

	logger := telemetry.LoggerWithTrace(ctx, root.logger.Slog())

	sc, err := score.Load(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return failure(err)
	}

	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithConcurrency(o.concurrency),
	}
	if o.configPath != "" {
		cfg, err := analysis.LoadConfiguration(o.configPath, o.species)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return failure(err)
		}
		opts = append(opts, analysis.WithConfiguration(cfg))
	}
	if len(o.only) > 0 {
		rules, err := analysis.SelectRules(o.only...)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return failure(err)
		}
		opts = append(opts, analysis.WithRules(rules...))
	}

	a, err := analysis.New(sc, o.species, opts...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return failure(err)
	}

	report, err := a.Run(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return failure(fmt.Errorf("%s: %w", path, err))
	}
	span.SetAttributes(attribute.Int("analysis.findings", report.Findings.Len()))

	logger.Info("Score analyzed",
		"path", path,
		"species", o.species,
		"findings", report.Findings.Len(),
	)

	out := cmd.OutOrStdout()
	switch o.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return failure(err)
		}
	default:
		ux.Findings(out, reportTitle(sc, path), reportFields(sc, report), report.Strings())
	}

	if o.failOnFindings && !report.Clean() {
		return &codedError{code: exitFindings}
	}
	return nil
}

func reportTitle(sc *score.Score, path string) string {
	if sc.Metadata.Title != "" {
		return sc.Metadata.Title
	}
	return path
}

func reportFields(sc *score.Score, report *analysis.Report) []ux.Field {
	position := "below the cantus firmus"
	if report.CPIsTop {
		position = "above the cantus firmus"
	}
	return []ux.Field{
		{Label: "Species", Value: strconv.Itoa(report.Species)},
		{Label: "Key", Value: sc.Metadata.MainKey.String()},
		{Label: "Counterpoint", Value: position},
		{Label: "Rules", Value: strconv.Itoa(report.RulesRun)},
	}
}
