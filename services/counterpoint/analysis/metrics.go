// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analysis

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for analysis runs.
var (
	tracer = otel.Tracer("counterpoint.analysis")
	meter  = otel.Meter("counterpoint.analysis")
)

// Metrics for analysis runs.
var (
	analysisLatency  metric.Float64Histogram
	analysisTotal    metric.Int64Counter
	findingsPerRun   metric.Int64Histogram
	findingsFound    metric.Int64Counter
	preconditionFail metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		analysisLatency, err = meter.Float64Histogram(
			"analysis_duration_seconds",
			metric.WithDescription("Duration of counterpoint analysis runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		analysisTotal, err = meter.Int64Counter(
			"analysis_total",
			metric.WithDescription("Total number of analysis runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		findingsPerRun, err = meter.Int64Histogram(
			"analysis_findings",
			metric.WithDescription("Number of distinct findings per analysis run"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		findingsFound, err = meter.Int64Counter(
			"analysis_findings_total",
			metric.WithDescription("Total number of findings by kind"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		preconditionFail, err = meter.Int64Counter(
			"analysis_precondition_failures_total",
			metric.WithDescription("Total number of runs rejected before any rule executed"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startAnalysisSpan creates a span for an analysis run.
func startAnalysisSpan(ctx context.Context, species, rules int, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Analysis.Run",
		trace.WithAttributes(
			attribute.Int("analysis.species", species),
			attribute.Int("analysis.rules", rules),
			attribute.String("analysis.run_id", runID),
		),
	)
}

// setAnalysisSpanResult sets the result attributes on an analysis span.
func setAnalysisSpanResult(span trace.Span, timepoints, findings int, cpIsTop bool) {
	span.SetAttributes(
		attribute.Int("analysis.timepoints", timepoints),
		attribute.Int("analysis.findings", findings),
		attribute.Bool("analysis.cp_is_top", cpIsTop),
	)
}

// setAnalysisSpanError marks the span failed.
func setAnalysisSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// recordAnalysisMetrics records metrics for an analysis run.
func recordAnalysisMetrics(ctx context.Context, species int, duration time.Duration, findings FindingSet, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Int("species", species),
		attribute.Bool("success", success),
	)

	analysisLatency.Record(ctx, duration.Seconds(), attrs)
	analysisTotal.Add(ctx, 1, attrs)

	if !success {
		preconditionFail.Add(ctx, 1, metric.WithAttributes(
			attribute.Int("species", species),
		))
		return
	}

	findingsPerRun.Record(ctx, int64(findings.Len()), metric.WithAttributes(
		attribute.Int("species", species),
	))
	for kind, n := range findings.CountByKind() {
		findingsFound.Add(ctx, int64(n), metric.WithAttributes(
			attribute.Int("species", species),
			attribute.String("kind", kind.Name()),
		))
	}
}
