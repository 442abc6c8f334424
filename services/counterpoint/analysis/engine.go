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
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/counterpoint/services/counterpoint/score"
)

// =============================================================================
// ANALYSIS
// =============================================================================

// Analysis checks one two-part score against the rules of a species.
//
// Description:
//
//	Construction fixes the score, species, configuration and rule list.
//	Run derives the aligned data, applies every rule once and returns the
//	union of their findings. The score is only read, so Run may be called
//	repeatedly and always yields the same findings.
//
// Thread Safety: Safe for concurrent use; each Run builds its own state.
type Analysis struct {
	score       *score.Score
	species     int
	config      Configuration
	customCfg   bool
	rules       []Rule
	logger      *slog.Logger
	concurrency int
}

// Option configures an Analysis.
type Option func(*Analysis)

// WithConfiguration replaces the species defaults. The configuration is
// validated by New.
func WithConfiguration(cfg Configuration) Option {
	return func(a *Analysis) {
		a.config = cfg.Clone()
		a.customCfg = true
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analysis) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithConcurrency runs up to n rules at once. Values below 2 run rules one
// after another.
func WithConcurrency(n int) Option {
	return func(a *Analysis) {
		a.concurrency = n
	}
}

// WithRules replaces the default rule list.
func WithRules(rules ...Rule) Option {
	return func(a *Analysis) {
		a.rules = append([]Rule(nil), rules...)
	}
}

// New creates an analysis.
//
// Inputs:
//
//	sc - The score; parts P1 and P2 carry the voices and are named CP and CF.
//	species - 1 or 2.
//	opts - Optional configuration options.
//
// Outputs:
//
//	*Analysis - The configured analysis.
//	error - Non-nil if the species or configuration is invalid.
//
// Errors:
//
//	ErrInvalidInput - sc is nil
//	ErrInvalidSpecies - species is not 1 or 2
//	ErrInvalidConfiguration - a configuration passed with WithConfiguration
//	    fails validation
func New(sc *score.Score, species int, opts ...Option) (*Analysis, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: score must not be nil", ErrInvalidInput)
	}
	cfg, err := ForSpecies(species)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		score:       sc,
		species:     species,
		config:      cfg,
		rules:       DefaultRules(),
		logger:      slog.Default(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.customCfg {
		if err := a.config.Validate(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Species returns the species number.
func (a *Analysis) Species() int { return a.species }

// Configuration returns a copy of the configuration in use.
func (a *Analysis) Configuration() Configuration { return a.config.Clone() }

// Rules returns the rule names in execution order.
func (a *Analysis) Rules() []string {
	names := make([]string, len(a.rules))
	for i, r := range a.rules {
		names[i] = r.Name
	}
	return names
}

// =============================================================================
// REPORT
// =============================================================================

// Report is the result of one run.
type Report struct {
	RunID    uuid.UUID     `json:"run_id"`
	Title    string        `json:"title,omitempty"`
	Species  int           `json:"species"`
	CPIsTop  bool          `json:"cp_is_top"`
	RulesRun int           `json:"rules_run"`
	Findings FindingSet    `json:"findings"`
	Duration time.Duration `json:"duration_ns"`
}

// Strings returns the deduplicated diagnostic messages, sorted by position.
func (r *Report) Strings() []string {
	return r.Findings.Strings()
}

// Clean reports whether no rule found anything.
func (r *Report) Clean() bool {
	return r.Findings.Len() == 0
}

// =============================================================================
// RUN
// =============================================================================

// Run derives the aligned data and applies every rule once.
//
// Description:
//
//	Setup failures abort the run before any rule executes. Rules never fail;
//	each contributes zero or more findings and the report holds their
//	union. With WithConcurrency(n > 1) rules run in parallel, each into its
//	own buffer, and the buffers are merged afterwards.
//
// Inputs:
//
//	ctx - Context carrying the trace span; rules are not cancellable.
//
// Outputs:
//
//	*Report - The findings and run metadata.
//	error - Non-nil if a precondition fails.
//
// Errors:
//
//	ErrInvalidInput - ctx is nil
//	*PreconditionError - voice roles or alignment could not be established;
//	    matches ErrVoiceRoles or ErrMisalignedVoices with errors.Is
//
// Thread Safety: Safe for concurrent use.
func (a *Analysis) Run(ctx context.Context) (*Report, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	runID := uuid.New()
	ctx, span := startAnalysisSpan(ctx, a.species, len(a.rules), runID.String())
	defer span.End()
	start := time.Now()

	logger := a.logger.With(
		slog.String("run_id", runID.String()),
		slog.Int("species", a.species),
	)

	state, err := newState(a.score, a.species, a.config)
	if err != nil {
		setAnalysisSpanError(span, err)
		recordAnalysisMetrics(ctx, a.species, time.Since(start), nil, false)
		logger.Debug("Analysis precondition failed", slog.String("error", err.Error()))
		return nil, err
	}

	findings, err := a.apply(state)
	if err != nil {
		setAnalysisSpanError(span, err)
		recordAnalysisMetrics(ctx, a.species, time.Since(start), nil, false)
		return nil, err
	}

	report := &Report{
		RunID:    runID,
		Title:    a.score.Metadata.Title,
		Species:  a.species,
		CPIsTop:  state.CPIsTop,
		RulesRun: len(a.rules),
		Findings: findings,
		Duration: time.Since(start),
	}

	setAnalysisSpanResult(span, state.Len(), findings.Len(), state.CPIsTop)
	recordAnalysisMetrics(ctx, a.species, report.Duration, findings, true)

	logger.Debug("Analysis completed",
		slog.Int("timepoints", state.Len()),
		slog.Int("rules", len(a.rules)),
		slog.Int("findings", findings.Len()),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}

// apply runs the rules against a built state.
func (a *Analysis) apply(state *State) (FindingSet, error) {
	findings := NewFindingSet()

	if a.concurrency < 2 {
		for _, r := range a.rules {
			findings.Add(r.Check(state)...)
		}
		return findings, nil
	}

	buffers := make([][]Finding, len(a.rules))
	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, r := range a.rules {
		i, r := i, r
		g.Go(func() error {
			buffers[i] = r.Check(state)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, buf := range buffers {
		findings.Add(buf...)
	}
	return findings, nil
}
