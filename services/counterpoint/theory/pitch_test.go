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
	"errors"
	"testing"
)

func TestParsePitch(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		keynum int
	}{
		{"C4", "C4", 60},
		{"c4", "C4", 60},
		{"F#4", "F#4", 66},
		{"Fs4", "F#4", 66},
		{"Bb3", "Bb3", 58},
		{"Bf3", "Bb3", 58},
		{"Ebb5", "Ebb5", 74},
		{"C##2", "C##2", 38},
		{"C00", "C00", 0},
		{"C0", "C0", 12},
		{"G9", "G9", 127},
	}

	for _, tt := range tests {
		p, err := ParsePitch(tt.input)
		if err != nil {
			t.Errorf("ParsePitch(%q) error: %v", tt.input, err)
			continue
		}
		if got := p.String(); got != tt.want {
			t.Errorf("ParsePitch(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
		if got := p.Keynum(); got != tt.keynum {
			t.Errorf("ParsePitch(%q).Keynum() = %d, want %d", tt.input, got, tt.keynum)
		}
	}
}

func TestParsePitch_Invalid(t *testing.T) {
	for _, input := range []string{"", "C", "H4", "C10", "Cx4", "G#9", "Cb00", "C4 "} {
		if _, err := ParsePitch(input); !errors.Is(err, ErrInvalidPitch) {
			t.Errorf("ParsePitch(%q) error = %v, want ErrInvalidPitch", input, err)
		}
	}
}

func TestPitch_Less(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"C4", "D4", true},
		{"D4", "C4", false},
		{"B3", "C4", true},
		{"B#3", "C4", true},
		{"C4", "C#4", true},
		{"C4", "C4", false},
	}

	for _, tt := range tests {
		got := MustParsePitch(tt.a).Less(MustParsePitch(tt.b))
		if got != tt.want {
			t.Errorf("%s.Less(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPitch_PitchClass(t *testing.T) {
	p := MustParsePitch("Eb5")
	pc := p.PitchClass()
	if pc != MustParsePnum("Eb") {
		t.Errorf("PitchClass() = %v, want Eb", pc)
	}
	if pc.Semitone() != 3 {
		t.Errorf("Semitone() = %d, want 3", pc.Semitone())
	}
}

func TestPnum_Semitone(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"C", 0},
		{"Cb", 11},
		{"Cbb", 10},
		{"B#", 0},
		{"G#", 8},
		{"F", 5},
	}

	for _, tt := range tests {
		if got := MustParsePnum(tt.input).Semitone(); got != tt.want {
			t.Errorf("%s.Semitone() = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParsePnum_Invalid(t *testing.T) {
	for _, input := range []string{"", "X", "C4", "C#b"} {
		if _, err := ParsePnum(input); !errors.Is(err, ErrInvalidPitch) {
			t.Errorf("ParsePnum(%q) error = %v, want ErrInvalidPitch", input, err)
		}
	}
}
