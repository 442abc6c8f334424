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
	"fmt"

	"github.com/AleutianAI/counterpoint/services/counterpoint/theory"
)

// CheckFunc scans the state and returns its findings. It must not modify
// the state.
type CheckFunc func(s *State) []Finding

// Rule is a named check.
type Rule struct {
	// Name is the snake_case identifier, e.g. "step_recovery".
	Name string

	// Description is a one-line summary for listings.
	Description string

	// Kinds lists the finding kinds the rule can report.
	Kinds []Kind

	Check CheckFunc
}

// DefaultRules returns every rule in declared order.
func DefaultRules() []Rule {
	return []Rule{
		{"melodic_cadence", "last two notes form a legal cadence in both voices", []Kind{MissingCadence}, checkCadence},
		{"starting_pitch", "counterpoint starts on a legal scale degree", []Kind{ForbiddenStartingPitch}, checkStartingPitch},
		consecutivePerfectRule(theory.SpanUnison, ConsecutiveUnisons),
		consecutivePerfectRule(theory.SpanFifth, ConsecutiveFifths),
		consecutivePerfectRule(theory.SpanOctave, ConsecutiveOctaves),
		directPerfectRule(theory.SpanUnison, DirectUnisons),
		directPerfectRule(theory.SpanFifth, DirectFifths),
		directPerfectRule(theory.SpanOctave, DirectOctaves),
		{"voice_crossing", "the lower voice never sounds above the upper", []Kind{VoiceCrossing}, checkVoiceCrossing},
		{"voice_overlap", "no voice moves past the other voice's previous note", []Kind{VoiceOverlap}, checkVoiceOverlap},
		onBeatPerfectRule(theory.SpanUnison, ConsecutiveUnisonsOnBeat),
		onBeatPerfectRule(theory.SpanFifth, ConsecutiveFifthsOnBeat),
		onBeatPerfectRule(theory.SpanOctave, ConsecutiveOctavesOnBeat),
		{"weak_beat_dissonance", "off-beat dissonances are passing tones", []Kind{WeakBeatDissonance}, checkWeakBeat},
		{"strong_beat_dissonance", "cantus firmus attacks are consonant", []Kind{StrongBeatDissonance}, checkStrongBeat},
		{"parallel_run", "limits runs of the same imperfect vertical interval", []Kind{TooManyParallel}, checkParallelRun},
		{"forbidden_rest", "no rest after the first note", []Kind{ForbiddenRest}, checkRest},
		{"forbidden_duration", "note values match the species", []Kind{ForbiddenDuration}, checkDuration},
		{"non_diatonic_pitch", "counterpoint stays in the key", []Kind{NonDiatonicPitch}, checkNonDiatonic},
		{"dissonant_melodic_interval", "no augmented or diminished melodic intervals", []Kind{DissonantMelodicInterval}, checkDissonantMelodic},
		{"melodic_unisons", "limits repeated notes", []Kind{TooManyUnisons}, checkMelodicUnisons},
		{"leap_sizes", "limits leaps of each size from a fourth to an octave",
			[]Kind{TooManyFourths, TooManyFifths, TooManySixths, TooManySevenths, TooManyOctaves}, checkLeapSizes},
		{"large_leaps", "limits leaps larger than a third", []Kind{TooManyLargeLeaps}, checkLargeLeaps},
		{"consecutive_leaps", "limits runs of leaps", []Kind{TooManyConsecutiveLeaps}, checkConsecutiveLeaps},
		{"same_direction", "limits runs of motion in one direction", []Kind{TooManySameDirection}, checkSameDirection},
		{"step_recovery", "large leaps are followed by a step the other way", []Kind{MissingStepRecovery}, checkStepRecovery},
		{"compound_melodic_interval", "no melodic interval beyond an octave", []Kind{CompoundMelodicInterval}, checkCompound},
	}
}

// SelectRules returns the default rules with the given names, in declared
// order.
func SelectRules(names ...string) ([]Rule, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Rule
	for _, r := range DefaultRules() {
		if want[r.Name] {
			out = append(out, r)
			delete(want, r.Name)
		}
	}
	for n := range want {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, n)
	}
	return out, nil
}

// spanName is used to build rule names from a perfect interval span.
func spanName(span int) string {
	switch span {
	case theory.SpanUnison:
		return "unisons"
	case theory.SpanFifth:
		return "fifths"
	case theory.SpanOctave:
		return "octaves"
	}
	return fmt.Sprintf("span_%d", span)
}

// isPerfectOf reports whether iv is the perfect form of span.
func isPerfectOf(iv *theory.Interval, span int) bool {
	return iv != nil && iv.Span == span && iv.IsPerfect()
}
