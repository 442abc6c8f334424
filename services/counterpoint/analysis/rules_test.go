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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/counterpoint/services/counterpoint/score"
)

// =============================================================================
// Helpers
// =============================================================================

// twoPart builds a score from two parts; P1 is the upper part.
func twoPart(t *testing.T, tonic, mode string, top, bottom score.PartDocument) *score.Score {
	t.Helper()
	top.ID, bottom.ID = TopPart, BottomPart
	doc := &score.Document{
		Title: t.Name(),
		Key:   score.KeyDocument{Tonic: tonic, Mode: mode},
		Parts: []score.PartDocument{top, bottom},
	}
	sc, err := doc.Build()
	require.NoError(t, err)
	return sc
}

// cpOver builds a score in the given key with the counterpoint above.
func cpOver(t *testing.T, tonic, mode string, cp, cf []string) *score.Score {
	t.Helper()
	return twoPart(t, tonic, mode,
		score.PartDocument{Name: TagCounterpoint, Notes: cp},
		score.PartDocument{Name: TagCantusFirmus, Notes: cf},
	)
}

// cpUnder builds a score in the given key with the counterpoint below.
func cpUnder(t *testing.T, tonic, mode string, cf, cp []string) *score.Score {
	t.Helper()
	return twoPart(t, tonic, mode,
		score.PartDocument{Name: TagCantusFirmus, Notes: cf},
		score.PartDocument{Name: TagCounterpoint, Notes: cp},
	)
}

// check runs the named rules and returns the rendered findings.
func check(t *testing.T, sc *score.Score, species int, rules ...string) []string {
	t.Helper()
	return checkWith(t, sc, species, nil, rules...)
}

func checkWith(t *testing.T, sc *score.Score, species int, cfg *Configuration, rules ...string) []string {
	t.Helper()
	selected, err := SelectRules(rules...)
	require.NoError(t, err)

	opts := []Option{WithRules(selected...)}
	if cfg != nil {
		opts = append(opts, WithConfiguration(*cfg))
	}
	a, err := New(sc, species, opts...)
	require.NoError(t, err)

	report, err := a.Run(context.Background())
	require.NoError(t, err)
	return report.Strings()
}

type ruleCase struct {
	name    string
	species int
	sc      func(t *testing.T) *score.Score
	want    []string
}

func runRuleCases(t *testing.T, rule string, cases []ruleCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			species := tc.species
			if species == 0 {
				species = 1
			}
			got := check(t, tc.sc(t), species, rule)
			if len(tc.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func inC(cp, cf []string) func(t *testing.T) *score.Score {
	return func(t *testing.T) *score.Score { return cpOver(t, "C", "major", cp, cf) }
}

func notes(n ...string) []string { return n }

// =============================================================================
// Rule catalog
// =============================================================================

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 27)

	names := make(map[string]bool)
	covered := make(map[Kind]bool)
	for _, r := range rules {
		assert.False(t, names[r.Name], "duplicate rule %s", r.Name)
		names[r.Name] = true
		assert.NotNil(t, r.Check, r.Name)
		assert.NotEmpty(t, r.Description, r.Name)
		for _, k := range r.Kinds {
			covered[k] = true
		}
	}

	for _, k := range Kinds() {
		assert.True(t, covered[k], "no rule reports %s", k)
	}

	assert.Equal(t, "melodic_cadence", rules[0].Name)
	assert.Equal(t, "compound_melodic_interval", rules[len(rules)-1].Name)
}

func TestSelectRules(t *testing.T) {
	rules, err := SelectRules("step_recovery", "consecutive_fifths")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	// default order is kept
	assert.Equal(t, "consecutive_fifths", rules[0].Name)
	assert.Equal(t, "step_recovery", rules[1].Name)

	_, err = SelectRules("consecutive_fifths", "parallel_thirds")
	assert.ErrorIs(t, err, ErrUnknownRule)
}

// =============================================================================
// Vertical rules
// =============================================================================

func TestConsecutivePerfect(t *testing.T) {
	t.Run("octaves reported once at the later position", func(t *testing.T) {
		sc := cpOver(t, "C", "major", notes("C5", "E5", "D5"), notes("C4", "E4", "F4"))
		assert.Equal(t, []string{"At #2: consecutive octaves"}, check(t, sc, 1, "consecutive_octaves"))
		assert.Empty(t, check(t, sc, 1, "consecutive_fifths", "consecutive_unisons"))
	})

	t.Run("fifths", func(t *testing.T) {
		sc := cpOver(t, "C", "major", notes("G4", "A4", "C5"), notes("C4", "D4", "E4"))
		assert.Equal(t, []string{"At #2: consecutive fifths"}, check(t, sc, 1, "consecutive_fifths"))
	})

	t.Run("unisons", func(t *testing.T) {
		sc := cpOver(t, "C", "major", notes("C4", "D4", "G4"), notes("C4", "D4", "E4"))
		assert.Equal(t, []string{"At #2: consecutive unisons"}, check(t, sc, 1, "consecutive_unisons"))
	})

	t.Run("octave then fifth", func(t *testing.T) {
		sc := cpOver(t, "C", "major", notes("C5", "A4"), notes("C4", "D4"))
		assert.Empty(t, check(t, sc, 1, "consecutive_unisons", "consecutive_fifths", "consecutive_octaves"))
	})
}

func TestDirectPerfect(t *testing.T) {
	runRuleCases(t, "direct_fifths", []ruleCase{
		{name: "similar motion with leap above", sc: inC(notes("C5", "A4"), notes("E4", "D4")),
			want: []string{"At #1: direct fifths"}},
		{name: "contrary motion", sc: inC(notes("C5", "A4"), notes("C4", "D4"))},
		{name: "step above", sc: inC(notes("B4", "A4"), notes("F4", "D4"))},
		{name: "lower voice holds", sc: inC(notes("C5", "G4"), notes("C4", "C4"))},
	})

	runRuleCases(t, "direct_octaves", []ruleCase{
		{name: "similar motion with leap above", sc: inC(notes("E5", "C5"), notes("G4", "C4")),
			want: []string{"At #1: direct octaves"}},
	})
}

func TestDirectPerfect_SecondSpeciesOnlyIntoCantusAttacks(t *testing.T) {
	// the off-beat octave is leapt into while the cantus firmus holds
	sc := cpOver(t, "C", "major",
		notes("E5/1/2", "C5/1/2", "D5/1"),
		notes("C4/1", "B3/1"),
	)
	assert.Empty(t, check(t, sc, 2, "direct_octaves", "direct_fifths"))
}

func TestConsecutivePerfectOnBeat(t *testing.T) {
	sc, err := score.Load("testdata/species2.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"At #3: consecutive octaves in cantus firmus notes"},
		check(t, sc, 2, "consecutive_octaves_on_beat"))
	assert.Empty(t, check(t, sc, 2, "consecutive_octaves", "consecutive_fifths_on_beat"))

	first := cpOver(t, "C", "major", notes("C5", "D5"), notes("C4", "D4"))
	assert.Empty(t, check(t, first, 1, "consecutive_octaves_on_beat"))
}

func TestVoiceCrossing(t *testing.T) {
	sc := cpUnder(t, "C", "major", notes("C4", "D4", "E4"), notes("A3", "E4", "C4"))
	assert.Equal(t, []string{"At #2: voice crossing"}, check(t, sc, 1, "voice_crossing"))
}

func TestVoiceOverlap(t *testing.T) {
	runRuleCases(t, "voice_overlap", []ruleCase{
		{name: "upper voice below previous lower note", sc: inC(notes("E4", "B3"), notes("C4", "G3")),
			want: []string{"At #2: voice overlap"}},
		{name: "lower voice above previous upper note", sc: inC(notes("E4", "G4"), notes("C4", "F4")),
			want: []string{"At #2: voice overlap"}},
		{name: "contrary motion", sc: inC(notes("E4", "F4"), notes("C4", "B3"))},
	})
}

func TestParallelRun(t *testing.T) {
	runRuleCases(t, "parallel_run", []ruleCase{
		{
			name: "six major thirds",
			sc:   inC(notes("E4", "F#4", "G#4", "A4", "B4", "C#5"), notes("C4", "D4", "E4", "F4", "G4", "A4")),
			want: []string{
				"At #5: too many consecutive parallel intervals",
				"At #6: too many consecutive parallel intervals",
			},
		},
		{
			name: "mixed thirds",
			sc:   inC(notes("E4", "F4", "G4", "A4", "B4", "C5"), notes("C4", "D4", "E4", "F4", "G4", "A4")),
		},
	})
}

func TestStrongBeatDissonance(t *testing.T) {
	runRuleCases(t, "strong_beat_dissonance", []ruleCase{
		{name: "ninth", sc: inC(notes("D5", "C5"), notes("C4", "C4")),
			want: []string{"At #1: forbidden strong beat dissonance"}},
		{name: "fourth", sc: inC(notes("F4", "E4"), notes("C4", "C4")),
			want: []string{"At #1: forbidden strong beat dissonance"}},
		{name: "consonant", sc: inC(notes("E4", "G4"), notes("C4", "C4"))},
	})
}

func TestWeakBeatDissonance(t *testing.T) {
	sc, err := score.Load("testdata/species2.yaml")
	require.NoError(t, err)
	// #2 is a passing tone; #4 is a neighbour tone
	assert.Equal(t, []string{"At #4: forbidden weak beat dissonance"}, check(t, sc, 2, "weak_beat_dissonance"))
	assert.Empty(t, check(t, sc, 2, "strong_beat_dissonance"))
}

// =============================================================================
// Opening, cadence and content
// =============================================================================

func TestStartingPitch(t *testing.T) {
	tests := []struct {
		name    string
		species int
		sc      func(t *testing.T) *score.Score
		flagged bool
	}{
		{"tonic above", 1, inC(notes("C5", "B4"), notes("C4", "D4")), false},
		{"fifth above", 1, inC(notes("G4", "A4"), notes("C4", "D4")), false},
		{"third above in first species", 1, inC(notes("E5", "D5"), notes("C4", "B3")), true},
		{"third above in second species", 2, inC(notes("E5", "D5"), notes("C4", "B3")), false},
		{"tonic below", 1, func(t *testing.T) *score.Score {
			return cpUnder(t, "C", "major", notes("G4", "A4"), notes("C3", "D3"))
		}, false},
		{"fifth below", 1, func(t *testing.T) *score.Score {
			return cpUnder(t, "C", "major", notes("G4", "A4"), notes("G3", "F3"))
		}, true},
		{"leading rest is skipped", 2, inC(notes("R/1/2", "C5/1/2", "B4/1"), notes("C4/1", "D4/1")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := check(t, tt.sc(t), tt.species, "starting_pitch")
			if tt.flagged {
				assert.Equal(t, []string{"At #1: forbidden starting pitch"}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestMelodicCadence(t *testing.T) {
	missing := []string{"At #2: missing melodic cadence"}
	runRuleCases(t, "melodic_cadence", []ruleCase{
		{name: "leading tone over supertonic", sc: inC(notes("C5", "B4", "C5"), notes("E4", "D4", "C4"))},
		{name: "supertonic over leading tone", sc: inC(notes("E5", "D5", "C5"), notes("C4", "B3", "C4"))},
		{name: "cantus firmus from the dominant", sc: inC(notes("C5", "B4", "C5"), notes("C4", "G3", "C4")),
			want: missing},
		{name: "both voices from the supertonic", sc: inC(notes("E5", "D5", "C5"), notes("E4", "D4", "C4")),
			want: missing},
		{name: "ends on a rest", sc: inC(notes("C5", "B4", "R"), notes("E4", "D4", "C4")),
			want: missing},
		{name: "raised leading tone in minor", sc: func(t *testing.T) *score.Score {
			return cpOver(t, "A", "minor", notes("C5", "G#4", "A4"), notes("C4", "B3", "A3"))
		}},
		{name: "natural seventh in minor", sc: func(t *testing.T) *score.Score {
			return cpOver(t, "A", "minor", notes("C5", "G4", "A4"), notes("C4", "B3", "A3"))
		}, want: missing},
		{name: "dorian keeps its seventh", sc: func(t *testing.T) *score.Score {
			return cpOver(t, "D", "dorian", notes("F5", "C5", "D5"), notes("F4", "E4", "D4"))
		}},
	})
}

func TestForbiddenRest(t *testing.T) {
	sc := cpOver(t, "C", "major", notes("C5", "R", "B4", "C5"), notes("C4", "E4", "D4", "C4"))
	assert.Equal(t, []string{"At #2: forbidden rest"}, check(t, sc, 1, "forbidden_rest"))
}

func TestForbiddenDuration(t *testing.T) {
	runRuleCases(t, "forbidden_duration", []ruleCase{
		{
			name: "halves in first species",
			sc:   inC(notes("C5/1", "B4/1/2", "C5/1/2", "E5/1"), notes("C4/1", "D4/1", "E4/1")),
			want: []string{"At #2: forbidden duration", "At #3: forbidden duration"},
		},
		{
			name:    "second species with final whole",
			species: 2,
			sc:      inC(notes("C5/1/2", "E5/1/2", "D5/1/2", "B4/1/2", "C5/1"), notes("C4/1", "D4/1", "C4/1")),
		},
		{
			name:    "second species ending on a half",
			species: 2,
			sc:      inC(notes("C5/1/2", "D5/1/2", "B4/1/2", "C5/1/2"), notes("C4/1", "D4/1")),
			want:    []string{"At #4: forbidden duration"},
		},
		{
			name:    "second species whole before the end",
			species: 2,
			sc:      inC(notes("C5/1", "B4/1/2", "D5/1/2", "C5/1"), notes("C4/1", "D4/1", "C4/1")),
			want:    []string{"At #1: forbidden duration"},
		},
	})
}

func TestNonDiatonicPitch(t *testing.T) {
	runRuleCases(t, "non_diatonic_pitch", []ruleCase{
		{
			name: "only the chromatic note",
			sc:   inC(notes("C5", "D5", "F#5", "E5", "D5", "C5"), notes("C4", "B3", "A3", "G3", "B3", "C4")),
			want: []string{"At #3: forbidden non-diatonic pitch"},
		},
		{name: "raised leading tone in minor", sc: func(t *testing.T) *score.Score {
			return cpOver(t, "A", "minor", notes("A4", "G#4", "A4"), notes("A3", "B3", "A3"))
		}},
		{name: "chromatic note in minor", sc: func(t *testing.T) *score.Score {
			return cpOver(t, "A", "minor", notes("A4", "D#5", "E5"), notes("A3", "B3", "C4"))
		}, want: []string{"At #2: forbidden non-diatonic pitch"}},
		{name: "raised seventh outside aeolian", sc: func(t *testing.T) *score.Score {
			return cpOver(t, "D", "dorian", notes("D5", "C#5", "D5"), notes("D4", "E4", "D4"))
		}, want: []string{"At #2: forbidden non-diatonic pitch"}},
	})
}

// =============================================================================
// Melodic rules
// =============================================================================

func TestDissonantMelodicInterval(t *testing.T) {
	runRuleCases(t, "dissonant_melodic_interval", []ruleCase{
		{name: "augmented fourth", sc: inC(notes("C5", "F#5", "G5"), notes("C4", "D4", "E4")),
			want: []string{"At #1: dissonant melodic interval"}},
		{name: "diminished fifth", sc: inC(notes("B4", "F5", "E5"), notes("D4", "D4", "C4")),
			want: []string{"At #1: dissonant melodic interval"}},
		{name: "perfect fourth", sc: inC(notes("C5", "F5", "E5"), notes("C4", "D4", "E4"))},
	})
}

func TestMelodicUnisons(t *testing.T) {
	cp, cf := notes("C5", "C5", "C5"), notes("C4", "D4", "E4")
	assert.Equal(t, []string{"At #2: too many melodic unisons"}, check(t, cpOver(t, "C", "major", cp, cf), 1, "melodic_unisons"))
	assert.Equal(t, []string{
		"At #1: too many melodic unisons",
		"At #2: too many melodic unisons",
	}, check(t, cpOver(t, "C", "major", cp, cf), 2, "melodic_unisons"))
}

func TestLeapSizes(t *testing.T) {
	threeFifths := inC(notes("C5", "G5", "C5", "G5"), notes("C4", "E4", "E4", "C4"))
	threeFourths := inC(notes("C5", "F5", "C5", "F5"), notes("C4", "A4", "A4", "A4"))

	runRuleCases(t, "leap_sizes", []ruleCase{
		{name: "second fifth", sc: threeFifths, want: []string{"At #2: too many leaps of a fifth"}},
		{name: "fifths in second species", species: 2, sc: threeFifths},
		{name: "fourths in second species", species: 2, sc: threeFourths},
		// the third fourth is also the third large leap
		{name: "third fourth", sc: threeFourths},
		{name: "sixth", sc: inC(notes("C5", "A5", "G5"), notes("C4", "D4", "E4")),
			want: []string{"At #1: too many leaps of a sixth"}},
		{name: "seventh", sc: inC(notes("C5", "B5", "C6"), notes("C4", "D4", "E4")),
			want: []string{"At #1: too many leaps of a seventh"}},
		{name: "octave", sc: inC(notes("C5", "C6", "B5"), notes("C4", "D4", "E4")),
			want: []string{"At #1: too many leaps of an octave"}},
	})

	runRuleCases(t, "large_leaps", []ruleCase{
		{name: "third large leap", sc: threeFifths, want: []string{"At #3: too many large leaps"}},
		{name: "second species", species: 2, sc: threeFourths, want: []string{"At #3: too many large leaps"}},
		{name: "thirds are not large", sc: inC(notes("C5", "E5", "C5", "E5"), notes("C4", "C4", "C4", "C4"))},
	})
}

func TestConsecutiveLeaps(t *testing.T) {
	runRuleCases(t, "consecutive_leaps", []ruleCase{
		{name: "three leaps", sc: inC(notes("C5", "E5", "G5", "E5"), notes("C4", "C4", "C4", "C4")),
			want: []string{"At #3: too many consecutive leaps"}},
		{name: "step resets", sc: inC(notes("C5", "E5", "F5", "A5", "C6"), notes("C4", "C4", "C4", "C4", "C4"))},
	})
}

func TestSameDirection(t *testing.T) {
	sc := cpOver(t, "C", "major", notes("C5", "D5", "E5", "F5", "G5"), notes("C4", "B3", "A3", "G3", "C4"))
	assert.Equal(t, []string{"At #4: too many consecutive intervals in same direction"}, check(t, sc, 1, "same_direction"))

	cfg := Species1()
	cfg.MaxSameDirection = 4
	assert.Empty(t, checkWith(t, sc, 1, &cfg, "same_direction"))

	wave := cpOver(t, "C", "major", notes("C5", "D5", "E5", "D5", "C5", "D5"), notes("C4", "B3", "C4", "B3", "A3", "B3"))
	assert.Empty(t, check(t, wave, 1, "same_direction"))
}

func TestStepRecovery(t *testing.T) {
	cf3 := notes("C4", "D4", "E4")
	runRuleCases(t, "step_recovery", []ruleCase{
		{name: "fifth then third down", sc: inC(notes("G5", "C5", "A4", "B4"), notes("C4", "E4", "F4", "D4")),
			want: []string{"At #1: missing reverse by step recovery"}},
		{name: "recovered", sc: inC(notes("G5", "C5", "D5"), cf3)},
		{name: "step in the same direction", sc: inC(notes("G5", "C5", "B4"), cf3),
			want: []string{"At #1: missing reverse by step recovery"}},
		{name: "leap at the end", sc: inC(notes("C5", "D5", "G5"), cf3)},
		{name: "fourth is below threshold", sc: inC(notes("C5", "F5", "A5"), cf3)},
		{name: "followed by a rest", sc: inC(notes("G5", "C5", "R"), cf3),
			want: []string{"At #1: missing reverse by step recovery"}},
	})
}

func TestStepwiseLineHasNoLeapFindings(t *testing.T) {
	sc := cpOver(t, "C", "major", notes("C5", "D5", "E5", "D5", "C5"), notes("C4", "B3", "C4", "B3", "A3"))
	assert.Empty(t, check(t, sc, 1, "step_recovery", "consecutive_leaps", "large_leaps", "leap_sizes"))
}

func TestCompoundMelodicInterval(t *testing.T) {
	sc := cpOver(t, "C", "major", notes("C5", "E6", "D6"), notes("C4", "D4", "E4"))
	assert.Equal(t, []string{"At #2: forbidden compound melodic interval"}, check(t, sc, 1, "compound_melodic_interval"))
}
