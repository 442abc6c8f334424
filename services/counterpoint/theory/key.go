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
	"strings"
)

// Mode is a diatonic mode.
type Mode int

const (
	Ionian Mode = iota
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Aeolian
	Locrian

	Major = Ionian
	Minor = Aeolian
)

var modeNames = [...]string{"ionian", "dorian", "phrygian", "lydian", "mixolydian", "aeolian", "locrian"}

// majorSteps are the semitone steps of the ionian scale; other modes are
// rotations of it.
var majorSteps = [7]int{2, 2, 1, 2, 2, 2, 1}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m < Ionian || m > Locrian {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the seven modal names plus "major" and "minor".
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	}
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidKey, s)
}

// Key is a tonic and a mode with its spelled diatonic scale.
//
// Thread Safety: Key is immutable after NewKey returns.
type Key struct {
	tonic Pnum
	mode  Mode
	scale [7]Pnum
}

// NewKey builds a key and spells its scale.
//
// Outputs:
//
//	Key - The key.
//	error - ErrInvalidKey when the mode is unknown or a scale degree or the
//	        raised leading tone needs more than two accidentals.
func NewKey(tonic Pnum, mode Mode) (Key, error) {
	if mode < Ionian || mode > Locrian {
		return Key{}, fmt.Errorf("%w: unknown mode %d", ErrInvalidKey, int(mode))
	}
	k := Key{tonic: tonic, mode: mode}

	semis := tonic.Semitone()
	for d := 0; d < 7; d++ {
		letter := (int(tonic.Letter) + d) % 7
		acc, ok := spellAccidental(letter, semis%12)
		if !ok {
			return Key{}, fmt.Errorf("%w: cannot spell degree %d of %s %s", ErrInvalidKey, d+1, tonic, mode)
		}
		k.scale[d] = Pnum{Letter: Letter(letter), Accidental: acc}
		semis += majorSteps[(int(mode)+d)%7]
	}
	if _, err := k.RaisedLeadingTone(); err != nil {
		return Key{}, err
	}
	return k, nil
}

// ParseKey parses a tonic and mode such as ("D", "dorian").
func ParseKey(tonic, mode string) (Key, error) {
	t, err := ParsePnum(tonic)
	if err != nil {
		return Key{}, fmt.Errorf("%w: tonic: %v", ErrInvalidKey, err)
	}
	m, err := ParseMode(mode)
	if err != nil {
		return Key{}, err
	}
	return NewKey(t, m)
}

func (k Key) Tonic() Pnum { return k.tonic }
func (k Key) Mode() Mode  { return k.mode }

// IsMinor reports whether the key is aeolian.
func (k Key) IsMinor() bool { return k.mode == Aeolian }

// Scale returns a copy of the seven scale degrees starting on the tonic.
func (k Key) Scale() []Pnum {
	out := make([]Pnum, 7)
	copy(out, k.scale[:])
	return out
}

// Degree returns the 1-based scale degree n.
func (k Key) Degree(n int) (Pnum, error) {
	if n < 1 || n > 7 {
		return Pnum{}, fmt.Errorf("%w: degree %d out of range 1..7", ErrInvalidKey, n)
	}
	return k.scale[n-1], nil
}

// RaisedLeadingTone returns the seventh degree raised by an augmented unison.
func (k Key) RaisedLeadingTone() (Pnum, error) {
	p, err := Interval{Span: SpanUnison, Qual: QualAugmented, Sign: 1}.Transpose(k.scale[6])
	if err != nil {
		return Pnum{}, fmt.Errorf("%w: raised leading tone of %s", ErrInvalidKey, k)
	}
	return p, nil
}

// Contains reports whether p is one of the key's seven scale degrees.
func (k Key) Contains(p Pnum) bool {
	for _, s := range k.scale {
		if s == p {
			return true
		}
	}
	return false
}

// String returns e.g. "D dorian".
func (k Key) String() string {
	return k.tonic.String() + " " + k.mode.String()
}
