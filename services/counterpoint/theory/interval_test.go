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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     string
		semis    int
	}{
		{"C4", "C4", "P1", 0},
		{"C4", "E4", "M3", 4},
		{"C4", "Eb4", "m3", 3},
		{"C4", "G4", "P5", 7},
		{"C4", "F#4", "a4", 6},
		{"B3", "F4", "d5", 6},
		{"D4", "A3", "-P4", 5},
		{"C4", "C5", "P8", 12},
		{"C4", "E5", "M10", 16},
		{"G4", "C3", "-P12", 19},
		{"C4", "C#4", "a1", 1},
		{"E4", "D4", "-M2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.from+"-"+tt.to, func(t *testing.T) {
			iv := Between(MustParsePitch(tt.from), MustParsePitch(tt.to))
			assert.Equal(t, tt.want, iv.String())
			assert.Equal(t, tt.semis, iv.Semitones())
		})
	}
}

func TestBetween_Classification(t *testing.T) {
	t.Run("unison is ascending", func(t *testing.T) {
		iv := Between(MustParsePitch("A3"), MustParsePitch("A3"))
		assert.True(t, iv.IsUnison())
		assert.True(t, iv.IsPerfect())
		assert.True(t, iv.IsAscending())
	})

	t.Run("compound tenth keeps its span", func(t *testing.T) {
		iv := Between(MustParsePitch("C3"), MustParsePitch("E4"))
		assert.True(t, iv.IsThird())
		assert.True(t, iv.IsCompound())
		assert.False(t, iv.IsSimple())
		assert.True(t, iv.IsConsonant())
	})

	t.Run("octave is simple", func(t *testing.T) {
		iv := Between(MustParsePitch("C3"), MustParsePitch("C4"))
		assert.True(t, iv.IsOctave())
		assert.False(t, iv.IsCompound())
	})

	t.Run("descending", func(t *testing.T) {
		iv := Between(MustParsePitch("G4"), MustParsePitch("E4"))
		assert.True(t, iv.IsDescending())
		assert.Equal(t, -1, iv.Sign)
	})
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input string
		want  Interval
	}{
		{"P1", Interval{Span: 0, Qual: QualPerfect, Sign: 1}},
		{"M2", Interval{Span: 1, Qual: QualMajor, Sign: 1}},
		{"-M3", Interval{Span: 2, Qual: QualMajor, Sign: -1}},
		{"m10", Interval{Span: 2, Qual: QualMinor, Xoct: 1, Sign: 1}},
		{"P8", Interval{Span: 7, Qual: QualPerfect, Sign: 1}},
		{"P12", Interval{Span: 4, Qual: QualPerfect, Xoct: 1, Sign: 1}},
		{"P15", Interval{Span: 7, Qual: QualPerfect, Xoct: 1, Sign: 1}},
		{"+4", Interval{Span: 3, Qual: QualAugmented, Sign: 1}},
		{"aa6", Interval{Span: 5, Qual: QualAugmented + 1, Sign: 1}},
		{"d5", Interval{Span: 4, Qual: QualDiminished, Sign: 1}},
		{"oo7", Interval{Span: 6, Qual: QualDiminished - 1, Sign: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInterval_Invalid(t *testing.T) {
	for _, input := range []string{"", "P", "5", "P3", "M5", "m1", "P0", "x4", "dddddd5", "-"} {
		_, err := ParseInterval(input)
		assert.ErrorIs(t, err, ErrInvalidInterval, "input %q", input)
	}
}

func TestInterval_Semitones(t *testing.T) {
	tests := map[string]int{
		"P1": 0, "m2": 1, "M2": 2, "a2": 3, "d4": 4, "P4": 5, "a4": 6, "d5": 6,
		"P5": 7, "m6": 8, "M6": 9, "d7": 9, "oo7": 8, "m7": 10, "P8": 12, "m10": 15,
	}
	for name, want := range tests {
		assert.Equal(t, want, MustParseInterval(name).Semitones(), name)
	}
}

func TestInterval_Compare(t *testing.T) {
	m2 := MustParseInterval("M2")
	assert.True(t, MustParseInterval("m3").Greater(m2))
	assert.True(t, MustParseInterval("a2").Greater(m2))
	assert.True(t, MustParseInterval("m2").Less(m2))
	assert.Equal(t, 0, MustParseInterval("-M2").Compare(m2), "sign is ignored")
	assert.True(t, MustParseInterval("P8").Less(MustParseInterval("m9")))
	assert.True(t, MustParseInterval("P5").Greater(MustParseInterval("M3")))
}

func TestInterval_IsConsonant(t *testing.T) {
	consonant := []string{"P1", "m3", "M3", "P4", "P5", "m6", "M6", "P8", "M10", "P12"}
	dissonant := []string{"m2", "M2", "a4", "d5", "m7", "M7", "a1", "m9"}

	for _, name := range consonant {
		assert.True(t, MustParseInterval(name).IsConsonant(), name)
	}
	for _, name := range dissonant {
		assert.True(t, MustParseInterval(name).IsDissonant(), name)
	}
}

func TestInterval_Transpose(t *testing.T) {
	tests := []struct {
		interval, from, want string
	}{
		{"M3", "C", "E"},
		{"m3", "E", "G"},
		{"a1", "G", "G#"},
		{"a1", "B#", "B##"},
		{"-P5", "C", "F"},
		{"P4", "F", "Bb"},
		{"M2", "B", "C#"},
	}

	for _, tt := range tests {
		got, err := MustParseInterval(tt.interval).Transpose(MustParsePnum(tt.from))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "%s + %s", tt.from, tt.interval)
	}

	_, err := MustParseInterval("a1").Transpose(MustParsePnum("B##"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
