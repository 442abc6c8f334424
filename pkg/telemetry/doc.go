// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry initializes OpenTelemetry tracing and metrics for the
// counterpoint tools.
//
// OTel is used directly: packages call otel.Tracer and otel.Meter, and Init
// installs the global providers. Backends are chosen by exporter name.
//
// # Traces
//
// "stdout" pretty-prints spans to Config.Output, "otlp" sends them to an
// OTLP/gRPC receiver such as Jaeger, "none" leaves the no-op provider.
//
// # Metrics
//
// "prometheus" collects into a private registry. A short-lived CLI run
// cannot be scraped, so when Config.MetricsFile is set the registry is
// written there in the text exposition format on shutdown, ready for the
// node_exporter textfile collector. MetricsHandler serves the same registry
// over HTTP for long-running processes. "stdout" prints metrics on shutdown.
//
// # Usage
//
//	shutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
//	if err != nil {
//	    return fmt.Errorf("init telemetry: %w", err)
//	}
//	defer shutdown(context.Background())
//
// # Environment Variables
//
//   - OTEL_TRACES_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_METRICS_EXPORTER: prometheus, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint (default: localhost:4317)
//   - COUNTERPOINT_ENV: environment name (default: development)
package telemetry
