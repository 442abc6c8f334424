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

import "fmt"

// Kind identifies a category of finding.
type Kind int

// Vertical findings.
const (
	ConsecutiveUnisons Kind = iota
	ConsecutiveFifths
	ConsecutiveOctaves
	DirectUnisons
	DirectFifths
	DirectOctaves
	ConsecutiveUnisonsOnBeat
	ConsecutiveFifthsOnBeat
	ConsecutiveOctavesOnBeat
	VoiceOverlap
	VoiceCrossing
	WeakBeatDissonance
	StrongBeatDissonance
	TooManyParallel
)

// Melodic findings.
const (
	ForbiddenStartingPitch Kind = iota + TooManyParallel + 1
	ForbiddenRest
	ForbiddenDuration
	MissingCadence
	NonDiatonicPitch
	DissonantMelodicInterval
	TooManyUnisons
	TooManyFourths
	TooManyFifths
	TooManySixths
	TooManySevenths
	TooManyOctaves
	TooManyLargeLeaps
	TooManyConsecutiveLeaps
	TooManySameDirection
	MissingStepRecovery
	CompoundMelodicInterval

	kindCount
)

type kindInfo struct {
	name        string
	description string
}

var catalog = [kindCount]kindInfo{
	ConsecutiveUnisons:       {"consecutive_unisons", "consecutive unisons"},
	ConsecutiveFifths:        {"consecutive_fifths", "consecutive fifths"},
	ConsecutiveOctaves:       {"consecutive_octaves", "consecutive octaves"},
	DirectUnisons:            {"direct_unisons", "direct unisons"},
	DirectFifths:             {"direct_fifths", "direct fifths"},
	DirectOctaves:            {"direct_octaves", "direct octaves"},
	ConsecutiveUnisonsOnBeat: {"consecutive_unisons_on_beat", "consecutive unisons in cantus firmus notes"},
	ConsecutiveFifthsOnBeat:  {"consecutive_fifths_on_beat", "consecutive fifths in cantus firmus notes"},
	ConsecutiveOctavesOnBeat: {"consecutive_octaves_on_beat", "consecutive octaves in cantus firmus notes"},
	VoiceOverlap:             {"voice_overlap", "voice overlap"},
	VoiceCrossing:            {"voice_crossing", "voice crossing"},
	WeakBeatDissonance:       {"weak_beat_dissonance", "forbidden weak beat dissonance"},
	StrongBeatDissonance:     {"strong_beat_dissonance", "forbidden strong beat dissonance"},
	TooManyParallel:          {"too_many_parallel", "too many consecutive parallel intervals"},
	ForbiddenStartingPitch:   {"forbidden_starting_pitch", "forbidden starting pitch"},
	ForbiddenRest:            {"forbidden_rest", "forbidden rest"},
	ForbiddenDuration:        {"forbidden_duration", "forbidden duration"},
	MissingCadence:           {"missing_cadence", "missing melodic cadence"},
	NonDiatonicPitch:         {"non_diatonic_pitch", "forbidden non-diatonic pitch"},
	DissonantMelodicInterval: {"dissonant_melodic_interval", "dissonant melodic interval"},
	TooManyUnisons:           {"too_many_unisons", "too many melodic unisons"},
	TooManyFourths:           {"too_many_fourths", "too many leaps of a fourth"},
	TooManyFifths:            {"too_many_fifths", "too many leaps of a fifth"},
	TooManySixths:            {"too_many_sixths", "too many leaps of a sixth"},
	TooManySevenths:          {"too_many_sevenths", "too many leaps of a seventh"},
	TooManyOctaves:           {"too_many_octaves", "too many leaps of an octave"},
	TooManyLargeLeaps:        {"too_many_large_leaps", "too many large leaps"},
	TooManyConsecutiveLeaps:  {"too_many_consecutive_leaps", "too many consecutive leaps"},
	TooManySameDirection:     {"too_many_same_direction", "too many consecutive intervals in same direction"},
	MissingStepRecovery:      {"missing_step_recovery", "missing reverse by step recovery"},
	CompoundMelodicInterval:  {"compound_melodic_interval", "forbidden compound melodic interval"},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		m[catalog[k].name] = k
	}
	return m
}()

// Valid reports whether k is in the catalog.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// Name returns the snake_case identifier, e.g. "consecutive_fifths".
func (k Kind) Name() string {
	if !k.Valid() {
		return fmt.Sprintf("kind_%d", int(k))
	}
	return catalog[k].name
}

// Description returns the fixed message text, e.g. "consecutive fifths".
func (k Kind) Description() string {
	if !k.Valid() {
		return "unknown finding"
	}
	return catalog[k].description
}

// String returns the name.
func (k Kind) String() string { return k.Name() }

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.Name()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind looks up a kind by name.
func ParseKind(name string) (Kind, error) {
	k, ok := kindsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}
