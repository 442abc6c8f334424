// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// SPANS AND QUALITIES
// =============================================================================

// Span indexes of simple intervals.
const (
	SpanUnison = iota
	SpanSecond
	SpanThird
	SpanFourth
	SpanFifth
	SpanSixth
	SpanSeventh
	SpanOctave
)

// Quality indexes. Values below QualMinor are diminished (QualDiminished is
// single, each step down adds one degree of diminution); values above
// QualMajor are augmented.
const (
	QualDiminished = 4
	QualMinor      = 5
	QualPerfect    = 6
	QualMajor      = 7
	QualAugmented  = 8
)

// naturalSemitones is the semitone size of the major or perfect form of each
// simple span.
var naturalSemitones = [8]int{0, 2, 4, 5, 7, 9, 11, 12}

// isPerfectType reports whether a span takes perfect rather than major/minor
// qualities.
func isPerfectType(span int) bool {
	switch span {
	case SpanUnison, SpanFourth, SpanFifth, SpanOctave:
		return true
	}
	return false
}

// =============================================================================
// INTERVAL
// =============================================================================

// Interval is a spelled, directed interval.
//
// Description:
//
//	Span is the simple diatonic size (0 = unison .. 7 = octave), Qual the
//	quality index, Xoct the number of octaves added to the simple span and
//	Sign the direction (1 ascending, -1 descending). A unison is ascending.
//
// Thread Safety: Interval is an immutable value type.
type Interval struct {
	Span int
	Qual int
	Xoct int
	Sign int
}

// Between returns the interval from one pitch to another.
//
// Inputs:
//
//	from - The starting pitch.
//	to - The ending pitch.
//
// Outputs:
//
//	Interval - Descending when to is spelled below from.
func Between(from, to Pitch) Interval {
	sign := 1
	if to.Less(from) {
		from, to = to, from
		sign = -1
	}

	steps := to.diatonic() - from.diatonic()
	span, xoct := steps%7, steps/7
	if span == 0 && xoct > 0 {
		span, xoct = SpanOctave, xoct-1
	}

	semis := to.Keynum() - from.Keynum() - 12*xoct
	diff := semis - naturalSemitones[span]

	var qual int
	if isPerfectType(span) {
		switch {
		case diff == 0:
			qual = QualPerfect
		case diff > 0:
			qual = QualMajor + diff
		default:
			qual = QualMinor + diff
		}
	} else {
		switch {
		case diff >= 0:
			qual = QualMajor + diff
		case diff == -1:
			qual = QualMinor
		default:
			qual = QualPerfect + diff
		}
	}
	return Interval{Span: span, Qual: qual, Xoct: xoct, Sign: sign}
}

// ParseInterval parses symbolic interval names.
//
// Description:
//
//	The form is an optional "-" for descending, a quality and a diatonic
//	number: "P5", "-M3", "m10", "d5", "oo7", "+4", "aa6", "P12".
//	Diminished may be written "d" or "o", augmented "a" or "+", repeated up
//	to five times.
func ParseInterval(s string) (Interval, error) {
	orig := s
	sign := 1
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}

	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	qs, ns := s[:i], s[i:]
	if qs == "" || ns == "" {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, orig)
	}

	num, err := strconv.Atoi(ns)
	if err != nil || num < 1 {
		return Interval{}, fmt.Errorf("%w: bad number in %q", ErrInvalidInterval, orig)
	}
	steps := num - 1
	span, xoct := steps%7, steps/7
	if span == 0 && xoct > 0 {
		span, xoct = SpanOctave, xoct-1
	}

	perfect := isPerfectType(span)
	var qual int
	switch {
	case qs == "P" && perfect:
		qual = QualPerfect
	case qs == "M" && !perfect:
		qual = QualMajor
	case qs == "m" && !perfect:
		qual = QualMinor
	case repeated(qs, 'd', 'o'):
		qual = QualMinor - len(qs)
	case repeated(qs, 'a', '+'):
		qual = QualMajor + len(qs)
	default:
		return Interval{}, fmt.Errorf("%w: bad quality in %q", ErrInvalidInterval, orig)
	}
	return Interval{Span: span, Qual: qual, Xoct: xoct, Sign: sign}, nil
}

// repeated reports whether s is one to five copies of a or of b.
func repeated(s string, a, b byte) bool {
	if len(s) < 1 || len(s) > 5 {
		return false
	}
	c := s[0]
	if c != a && c != b {
		return false
	}
	return strings.Count(s, string(c)) == len(s)
}

// MustParseInterval is like ParseInterval but panics on error.
func MustParseInterval(s string) Interval {
	iv, err := ParseInterval(s)
	if err != nil {
		panic(err)
	}
	return iv
}

// String returns the symbolic name, e.g. "-m3" or "P12".
func (iv Interval) String() string {
	var b strings.Builder
	if iv.Sign < 0 {
		b.WriteByte('-')
	}
	switch {
	case iv.Qual < QualMinor:
		b.WriteString(strings.Repeat("d", QualMinor-iv.Qual))
	case iv.Qual == QualMinor:
		b.WriteByte('m')
	case iv.Qual == QualPerfect:
		b.WriteByte('P')
	case iv.Qual == QualMajor:
		b.WriteByte('M')
	default:
		b.WriteString(strings.Repeat("a", iv.Qual-QualMajor))
	}
	b.WriteString(strconv.Itoa(iv.Span + 1 + 7*iv.Xoct))
	return b.String()
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

func (iv Interval) IsUnison() bool  { return iv.Span == SpanUnison }
func (iv Interval) IsSecond() bool  { return iv.Span == SpanSecond }
func (iv Interval) IsThird() bool   { return iv.Span == SpanThird }
func (iv Interval) IsFourth() bool  { return iv.Span == SpanFourth }
func (iv Interval) IsFifth() bool   { return iv.Span == SpanFifth }
func (iv Interval) IsSixth() bool   { return iv.Span == SpanSixth }
func (iv Interval) IsSeventh() bool { return iv.Span == SpanSeventh }
func (iv Interval) IsOctave() bool  { return iv.Span == SpanOctave }

func (iv Interval) IsPerfect() bool    { return iv.Qual == QualPerfect }
func (iv Interval) IsMajor() bool      { return iv.Qual == QualMajor }
func (iv Interval) IsMinor() bool      { return iv.Qual == QualMinor }
func (iv Interval) IsDiminished() bool { return iv.Qual < QualMinor }
func (iv Interval) IsAugmented() bool  { return iv.Qual > QualMajor }

func (iv Interval) IsAscending() bool  { return iv.Sign >= 0 }
func (iv Interval) IsDescending() bool { return iv.Sign < 0 }

// IsSimple reports whether the interval is an octave or smaller.
func (iv Interval) IsSimple() bool { return iv.Xoct == 0 }

// IsCompound reports whether the interval is larger than an octave.
func (iv Interval) IsCompound() bool { return iv.Xoct > 0 }

// IsConsonant reports whether the simple form of the interval is a perfect
// unison, fourth, fifth or octave, or a major or minor third or sixth.
func (iv Interval) IsConsonant() bool {
	switch iv.Span {
	case SpanUnison, SpanFourth, SpanFifth, SpanOctave:
		return iv.Qual == QualPerfect
	case SpanThird, SpanSixth:
		return iv.Qual == QualMajor || iv.Qual == QualMinor
	}
	return false
}

// IsDissonant is the negation of IsConsonant.
func (iv Interval) IsDissonant() bool { return !iv.IsConsonant() }

// Semitones returns the size of the interval in semitones, ignoring direction.
func (iv Interval) Semitones() int {
	var diff int
	if isPerfectType(iv.Span) {
		switch {
		case iv.Qual == QualPerfect:
			diff = 0
		case iv.Qual > QualPerfect:
			diff = iv.Qual - QualMajor
		default:
			diff = iv.Qual - QualMinor
		}
	} else {
		switch {
		case iv.Qual >= QualMajor:
			diff = iv.Qual - QualMajor
		case iv.Qual == QualMinor:
			diff = -1
		default:
			diff = iv.Qual - QualPerfect
		}
	}
	return naturalSemitones[iv.Span] + diff + 12*iv.Xoct
}

// Pos orders intervals by total diatonic size, then quality. Direction is
// ignored.
func (iv Interval) Pos() int {
	return ((iv.Span + iv.Xoct*7 + 1) << 8) + iv.Qual
}

// Compare returns -1, 0 or 1 by Pos.
func (iv Interval) Compare(other Interval) int {
	switch a, b := iv.Pos(), other.Pos(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (iv Interval) Less(other Interval) bool    { return iv.Compare(other) < 0 }
func (iv Interval) Greater(other Interval) bool { return iv.Compare(other) > 0 }

// Transpose moves a pitch class by the interval, respecting direction.
//
// Outputs:
//
//	Pnum - The transposed pitch class.
//	error - ErrInvalidInterval when the result needs more than two
//	        accidentals.
func (iv Interval) Transpose(p Pnum) (Pnum, error) {
	sign := 1
	if iv.Sign < 0 {
		sign = -1
	}
	letter := mod(int(p.Letter)+sign*iv.Span, 7)
	target := mod(p.Semitone()+sign*iv.Semitones(), 12)
	acc, ok := spellAccidental(letter, target)
	if !ok {
		return Pnum{}, fmt.Errorf("%w: cannot transpose %s by %s", ErrInvalidInterval, p, iv)
	}
	return Pnum{Letter: Letter(letter), Accidental: acc}, nil
}

// spellAccidental finds the accidental that makes letter sound at the given
// pitch class semitone.
func spellAccidental(letter, semitone int) (Accidental, bool) {
	off := semitone - letterSemitones[letter]
	if off > 6 {
		off -= 12
	} else if off < -6 {
		off += 12
	}
	if off < -2 || off > 2 {
		return 0, false
	}
	return Accidental(off + int(Natural)), true
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
