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
	"github.com/AleutianAI/counterpoint/services/counterpoint/theory"
)

// majorSecond is the largest melodic step; anything larger is a leap.
var majorSecond = theory.Interval{Span: theory.SpanSecond, Qual: theory.QualMajor, Sign: 1}

// =============================================================================
// PARALLEL AND DIRECT PERFECT INTERVALS
// =============================================================================

// consecutivePerfectRule flags the second of two adjacent vertical intervals
// that are both the perfect form of span.
func consecutivePerfectRule(span int, kind Kind) Rule {
	return Rule{
		Name:        "consecutive_" + spanName(span),
		Description: "no parallel " + spanName(span),
		Kinds:       []Kind{kind},
		Check: func(s *State) []Finding {
			var out []Finding
			for i := 0; i+1 < len(s.Vertical); i++ {
				if isPerfectOf(s.Vertical[i], span) && isPerfectOf(s.Vertical[i+1], span) {
					out = append(out, Finding{Index: i + 1, Kind: kind})
				}
			}
			return out
		},
	}
}

// directPerfectRule flags a perfect interval approached from a different
// interval with both voices moving the same way and the upper voice leaping.
// In second species only motion into a cantus firmus attack counts.
func directPerfectRule(span int, kind Kind) Rule {
	return Rule{
		Name:        "direct_" + spanName(span),
		Description: "no " + spanName(span) + " approached by similar motion with a leap above",
		Kinds:       []Kind{kind},
		Check: func(s *State) []Finding {
			var out []Finding
			for i := 0; i+1 < len(s.Vertical); i++ {
				if s.Species == 2 && !s.CFAttack[i+1] {
					continue
				}
				if !isPerfectOf(s.Vertical[i+1], span) || s.Vertical[i] == nil || isPerfectOf(s.Vertical[i], span) {
					continue
				}
				if s.CPIntervals[i] == nil {
					continue
				}
				top, bottom := s.TopIntervals[i], s.BottomIntervals[i]
				if top == nil || bottom == nil || bottom.IsUnison() {
					continue
				}
				if top.Greater(majorSecond) && top.Sign == bottom.Sign {
					out = append(out, Finding{Index: i, Kind: kind})
				}
			}
			return out
		},
	}
}

// onBeatPerfectRule compares the vertical intervals at successive cantus
// firmus attacks, catching second species parallels hidden by an off-beat
// note. It reports at the later attack and does nothing in first species.
func onBeatPerfectRule(span int, kind Kind) Rule {
	return Rule{
		Name:        "consecutive_" + spanName(span) + "_on_beat",
		Description: "no parallel " + spanName(span) + " between cantus firmus notes",
		Kinds:       []Kind{kind},
		Check: func(s *State) []Finding {
			if s.Species != 2 {
				return nil
			}
			var out []Finding
			prev := -1
			for i, attack := range s.CFAttack {
				if !attack {
					continue
				}
				if prev >= 0 && isPerfectOf(s.Vertical[prev], span) && isPerfectOf(s.Vertical[i], span) {
					out = append(out, Finding{Index: i, Kind: kind})
				}
				prev = i
			}
			return out
		},
	}
}

// =============================================================================
// VOICE SPACING
// =============================================================================

func checkVoiceCrossing(s *State) []Finding {
	var out []Finding
	for i, iv := range s.Vertical {
		if iv != nil && iv.IsDescending() {
			out = append(out, Finding{Index: i, Kind: VoiceCrossing})
		}
	}
	return out
}

// checkVoiceOverlap flags a note that moves past the other voice's previous
// note: below it for the upper voice, above it for the lower voice.
func checkVoiceOverlap(s *State) []Finding {
	var out []Finding
	for i := 0; i+1 < s.Len(); i++ {
		up0, up1 := s.Top[i].Event, s.Top[i+1].Event
		lo0, lo1 := s.Bottom[i].Event, s.Bottom[i+1].Event
		if up0.Rest || up1.Rest || lo0.Rest || lo1.Rest {
			continue
		}
		if up1.Pitch.Less(lo0.Pitch) || up0.Pitch.Less(lo1.Pitch) {
			out = append(out, Finding{Index: i + 1, Kind: VoiceOverlap})
		}
	}
	return out
}

// =============================================================================
// DISSONANCE TREATMENT
// =============================================================================

func isHarshVertical(iv *theory.Interval) bool {
	return iv != nil && (iv.IsDissonant() || iv.IsFourth())
}

// isPassing reports whether the counterpoint note at i is approached and left
// by seconds in the same direction.
func (s *State) isPassing(i int) bool {
	if i < 1 || i >= len(s.CPIntervals) {
		return false
	}
	in, out := s.CPIntervals[i-1], s.CPIntervals[i]
	return in != nil && out != nil && in.IsSecond() && out.IsSecond() && in.Sign == out.Sign
}

func checkWeakBeat(s *State) []Finding {
	var out []Finding
	for i, iv := range s.Vertical {
		if s.CFAttack[i] || !isHarshVertical(iv) {
			continue
		}
		if !s.isPassing(i) {
			out = append(out, Finding{Index: i, Kind: WeakBeatDissonance})
		}
	}
	return out
}

func checkStrongBeat(s *State) []Finding {
	var out []Finding
	for i, iv := range s.Vertical {
		if s.CFAttack[i] && isHarshVertical(iv) {
			out = append(out, Finding{Index: i, Kind: StrongBeatDissonance})
		}
	}
	return out
}

// checkParallelRun counts repeats of the same imperfect vertical interval.
// The first interval of a run counts zero; a rest, a different interval or a
// perfect interval starts a new run.
func checkParallelRun(s *State) []Finding {
	var out []Finding
	var prev *theory.Interval
	count := 0
	for i, iv := range s.Vertical {
		switch {
		case iv == nil:
			prev, count = nil, 0
		case prev == nil || iv.Pos() != prev.Pos() || iv.IsPerfect():
			prev, count = iv, 0
		default:
			count++
			if s.Config.MaxParallel.Exceeded(count) {
				out = append(out, Finding{Index: i, Kind: TooManyParallel})
			}
		}
	}
	return out
}
