// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analysis checks two-voice first and second species counterpoint.
//
// # Overview
//
// An Analysis takes a score whose parts P1 and P2 hold the counterpoint
// (named "CP") and the cantus firmus (named "CF"), aligns both voices on
// shared timepoints, and runs an ordered list of rules. Each rule is a pure
// function of the aligned State and returns positional Findings; the run's
// result is their set union.
//
//	a, err := analysis.New(sc, 1)
//	if err != nil {
//	    return err
//	}
//	report, err := a.Run(ctx)
//	if err != nil {
//	    return err // *PreconditionError: voice roles or alignment
//	}
//	for _, msg := range report.Strings() {
//	    fmt.Println(msg) // "At #4: consecutive fifths"
//	}
//
// # Configuration
//
// Each species has a default Configuration built from a shared template.
// Species 2 lifts the ceilings on melodic fourths and fifths, forbids
// melodic unisons and allows the third as a starting degree above the
// cantus firmus. Overrides can be loaded from YAML with LoadConfiguration.
//
// # Findings
//
// Finding kinds form a closed catalog (Kind). Each renders as
// "At #<position>: <description>" with a 1-based timepoint position.
//
// # Observability
//
// Run records an OpenTelemetry span and metrics through the global
// providers, and logs at debug level through the configured slog logger.
//
// # Thread Safety
//
// An Analysis may be run concurrently; each run builds its own State.
package analysis
