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

// majorThird is the largest leap that is not a large leap.
var majorThird = theory.Interval{Span: theory.SpanThird, Qual: theory.QualMajor, Sign: 1}

// =============================================================================
// OPENING AND CADENCE
// =============================================================================

// degrees resolves scale degrees in the state's key. With raise set, degree 7
// becomes the raised leading tone in minor.
func (s *State) degrees(raise bool, ds ...int) ([]theory.Pnum, bool) {
	out := make([]theory.Pnum, 0, len(ds))
	for _, d := range ds {
		var p theory.Pnum
		var err error
		if raise && d == 7 && s.Key.IsMinor() {
			p, err = s.Key.RaisedLeadingTone()
		} else {
			p, err = s.Key.Degree(d)
		}
		if err != nil {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}

// checkStartingPitch checks the first counterpoint note against the degrees
// allowed for its position above or below the cantus firmus.
func checkStartingPitch(s *State) []Finding {
	allowed := s.Config.StartBelow
	if s.CPIsTop {
		allowed = s.Config.StartAbove
	}
	legal, ok := s.degrees(false, allowed...)
	if !ok {
		return []Finding{{Index: 0, Kind: ForbiddenStartingPitch}}
	}

	for _, snd := range s.CP {
		if snd.Event.Rest {
			continue
		}
		pc := snd.Event.Pitch.PitchClass()
		for _, p := range legal {
			if p == pc {
				return nil
			}
		}
		break
	}
	return []Finding{{Index: 0, Kind: ForbiddenStartingPitch}}
}

// checkCadence matches the counterpoint's last two notes against the cadence
// patterns. The matched pattern is consumed and the cantus firmus's last two
// notes must match one of the others.
func checkCadence(s *State) []Finding {
	n := s.Len()
	missing := []Finding{{Index: n - 2, Kind: MissingCadence}}

	cp0, cp1 := s.CP[n-2].Event, s.CP[n-1].Event
	cf0, cf1 := s.CF[n-2].Event, s.CF[n-1].Event
	if cp0.Rest || cp1.Rest || cf0.Rest || cf1.Rest {
		return missing
	}

	patterns := make([][2]theory.Pnum, 0, len(s.Config.CadencePatterns))
	for _, cp := range s.Config.CadencePatterns {
		ps, ok := s.degrees(true, cp[0], cp[1])
		if !ok {
			continue
		}
		patterns = append(patterns, [2]theory.Pnum{ps[0], ps[1]})
	}

	cpLast := [2]theory.Pnum{cp0.Pitch.PitchClass(), cp1.Pitch.PitchClass()}
	cfLast := [2]theory.Pnum{cf0.Pitch.PitchClass(), cf1.Pitch.PitchClass()}

	matched := -1
	for i, p := range patterns {
		if p == cpLast {
			matched = i
			break
		}
	}
	if matched < 0 {
		return missing
	}
	for i, p := range patterns {
		if i != matched && p == cfLast {
			return nil
		}
	}
	return missing
}

// =============================================================================
// RESTS, DURATIONS AND PITCH CONTENT
// =============================================================================

func checkRest(s *State) []Finding {
	var out []Finding
	for i := 1; i < s.Len(); i++ {
		if s.CP[i].Attack && s.CP[i].Event.Rest {
			out = append(out, Finding{Index: i, Kind: ForbiddenRest})
		}
	}
	return out
}

// checkDuration compares each counterpoint event with the first cantus
// firmus duration: equal in first species, half in second species except the
// event attacking at the final timepoint, which must be equal.
func checkDuration(s *State) []Finding {
	whole := s.CF[0].Event.Duration
	half := whole.Mul(theory.MustRatio(1, 2))
	last := s.Len() - 1

	var out []Finding
	for i, snd := range s.CP {
		if !snd.Attack {
			continue
		}
		want := whole
		if s.Species == 2 && i != last {
			want = half
		}
		if !snd.Event.Duration.Equal(want) {
			out = append(out, Finding{Index: i, Kind: ForbiddenDuration})
		}
	}
	return out
}

func checkNonDiatonic(s *State) []Finding {
	allowed := make(map[theory.Pnum]bool, 8)
	for _, p := range s.Key.Scale() {
		allowed[p] = true
	}
	if s.Key.IsMinor() {
		if lt, err := s.Key.RaisedLeadingTone(); err == nil {
			allowed[lt] = true
		}
	}

	var out []Finding
	for i, snd := range s.CP {
		if !snd.Attack || snd.Event.Rest {
			continue
		}
		if !allowed[snd.Event.Pitch.PitchClass()] {
			out = append(out, Finding{Index: i, Kind: NonDiatonicPitch})
		}
	}
	return out
}

// =============================================================================
// MELODIC INTERVALS
// =============================================================================

func checkDissonantMelodic(s *State) []Finding {
	var out []Finding
	for i, iv := range s.CPIntervals {
		if iv != nil && (iv.IsDiminished() || iv.IsAugmented()) {
			out = append(out, Finding{Index: i, Kind: DissonantMelodicInterval})
		}
	}
	return out
}

func checkMelodicUnisons(s *State) []Finding {
	var out []Finding
	count := 0
	for i, iv := range s.CPIntervals {
		if iv == nil || !iv.IsUnison() || !iv.IsPerfect() {
			continue
		}
		count++
		if s.Config.MaxUnisons.Exceeded(count) {
			out = append(out, Finding{Index: i, Kind: TooManyUnisons})
		}
	}
	return out
}

// checkLeapSizes counts leaps of a fourth through an octave per size. A size
// over its ceiling is reported only while the running total of these leaps is
// still within MaxLargeLeaps; beyond that the large leap rule reports.
func checkLeapSizes(s *State) []Finding {
	type ceiling struct {
		limit Limit
		kind  Kind
	}
	ceilings := map[int]ceiling{
		theory.SpanFourth:  {s.Config.MaxFourths, TooManyFourths},
		theory.SpanFifth:   {s.Config.MaxFifths, TooManyFifths},
		theory.SpanSixth:   {s.Config.MaxSixths, TooManySixths},
		theory.SpanSeventh: {s.Config.MaxSevenths, TooManySevenths},
		theory.SpanOctave:  {s.Config.MaxOctaves, TooManyOctaves},
	}

	var out []Finding
	counts := make(map[int]int, len(ceilings))
	large := 0
	for i, iv := range s.CPIntervals {
		if iv == nil {
			continue
		}
		c, ok := ceilings[iv.Span]
		if !ok {
			continue
		}
		counts[iv.Span]++
		large++
		if !s.Config.MaxLargeLeaps.Exceeded(large) && c.limit.Exceeded(counts[iv.Span]) {
			out = append(out, Finding{Index: i, Kind: c.kind})
		}
	}
	return out
}

func checkLargeLeaps(s *State) []Finding {
	var out []Finding
	count := 0
	for i, iv := range s.CPIntervals {
		if iv == nil || !iv.Greater(majorThird) {
			continue
		}
		count++
		if s.Config.MaxLargeLeaps.Exceeded(count) {
			out = append(out, Finding{Index: i, Kind: TooManyLargeLeaps})
		}
	}
	return out
}

func checkConsecutiveLeaps(s *State) []Finding {
	var out []Finding
	count := 0
	for i, iv := range s.CPIntervals {
		if iv == nil || !iv.Greater(majorSecond) {
			count = 0
			continue
		}
		count++
		if s.Config.MaxConsecutiveLeaps.Exceeded(count) {
			out = append(out, Finding{Index: i, Kind: TooManyConsecutiveLeaps})
		}
	}
	return out
}

// checkSameDirection counts runs of melodic intervals with the same sign. A
// run's first interval counts one; a rest starts over.
func checkSameDirection(s *State) []Finding {
	var out []Finding
	count, sign := 0, 0
	for i, iv := range s.CPIntervals {
		if iv == nil {
			count, sign = 0, 0
			continue
		}
		if count > 0 && iv.Sign == sign {
			count++
		} else {
			count, sign = 1, iv.Sign
		}
		if s.Config.MaxSameDirection.Exceeded(count) {
			out = append(out, Finding{Index: i, Kind: TooManySameDirection})
		}
	}
	return out
}

// checkStepRecovery requires a leap at or above the step threshold to be
// followed by a second in the opposite direction. The final interval has no
// follower and is not checked.
func checkStepRecovery(s *State) []Finding {
	threshold := s.Config.StepThresholdInterval()
	var out []Finding
	for i := 0; i+1 < len(s.CPIntervals); i++ {
		leap := s.CPIntervals[i]
		if leap == nil || leap.Less(threshold) {
			continue
		}
		next := s.CPIntervals[i+1]
		if next == nil || next.Sign == leap.Sign || !next.IsSecond() {
			out = append(out, Finding{Index: i, Kind: MissingStepRecovery})
		}
	}
	return out
}

// checkCompound reports at the note that completes the interval.
func checkCompound(s *State) []Finding {
	var out []Finding
	for i, iv := range s.CPIntervals {
		if iv != nil && iv.IsCompound() {
			out = append(out, Finding{Index: i + 1, Kind: CompoundMelodicInterval})
		}
	}
	return out
}
