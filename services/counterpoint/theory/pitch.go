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

// =============================================================================
// LETTERS AND ACCIDENTALS
// =============================================================================

// Letter is a diatonic note name, C through B.
type Letter uint8

const (
	LetterC Letter = iota
	LetterD
	LetterE
	LetterF
	LetterG
	LetterA
	LetterB
)

// letterSemitones holds the semitone offset of each natural letter above C.
var letterSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// String returns the upper-case letter name.
func (l Letter) String() string {
	if l > LetterB {
		return "?"
	}
	return string("CDEFGAB"[l])
}

// Accidental is a chromatic alteration from double flat to double sharp.
type Accidental uint8

const (
	DoubleFlat Accidental = iota
	Flat
	Natural
	Sharp
	DoubleSharp
)

// String returns the accidental symbol; natural is empty.
func (a Accidental) String() string {
	switch a {
	case DoubleFlat:
		return "bb"
	case Flat:
		return "b"
	case Natural:
		return ""
	case Sharp:
		return "#"
	case DoubleSharp:
		return "##"
	default:
		return "?"
	}
}

// offset returns the accidental's semitone adjustment.
func (a Accidental) offset() int {
	return int(a) - int(Natural)
}

// parseAccidental consumes an accidental prefix from s.
// Flats may be written "b" or "f", sharps "#" or "s", naturals "n" or nothing.
func parseAccidental(s string) (Accidental, string) {
	two := []struct {
		prefix string
		acc    Accidental
	}{
		{"bb", DoubleFlat}, {"ff", DoubleFlat},
		{"##", DoubleSharp}, {"ss", DoubleSharp},
	}
	for _, t := range two {
		if strings.HasPrefix(s, t.prefix) {
			return t.acc, s[len(t.prefix):]
		}
	}
	if s == "" {
		return Natural, s
	}
	switch s[0] {
	case 'b', 'f':
		return Flat, s[1:]
	case '#', 's':
		return Sharp, s[1:]
	case 'n':
		return Natural, s[1:]
	}
	return Natural, s
}

// =============================================================================
// PITCH CLASS
// =============================================================================

// Pnum is a spelled pitch class: a letter and accidental without octave.
//
// Pnums are comparable and usable as map keys.
type Pnum struct {
	Letter     Letter
	Accidental Accidental
}

// ParsePnum parses a pitch class such as "C", "F#", "Bb" or "Ebb".
func ParsePnum(s string) (Pnum, error) {
	if s == "" {
		return Pnum{}, fmt.Errorf("%w: empty pitch class", ErrInvalidPitch)
	}
	letter, ok := parseLetter(s[0])
	if !ok {
		return Pnum{}, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	acc, rest := parseAccidental(s[1:])
	if rest != "" {
		return Pnum{}, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	return Pnum{Letter: letter, Accidental: acc}, nil
}

// MustParsePnum is like ParsePnum but panics on error.
func MustParsePnum(s string) Pnum {
	p, err := ParsePnum(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pitch class name, e.g. "F#".
func (p Pnum) String() string {
	return p.Letter.String() + p.Accidental.String()
}

// Semitone returns the pitch class as 0..11 above C.
func (p Pnum) Semitone() int {
	return ((letterSemitones[p.Letter]+p.Accidental.offset())%12 + 12) % 12
}

// =============================================================================
// PITCH
// =============================================================================

// Pitch is a spelled pitch with octave.
type Pitch struct {
	Letter     Letter
	Accidental Accidental
	// Octave is the octave index 0..10; index 0 is written "00" and index
	// n > 0 is written n-1.
	Octave int
}

// NewPitch creates a pitch and checks that it fits the MIDI key range.
func NewPitch(letter Letter, acc Accidental, octave int) (Pitch, error) {
	if letter > LetterB || acc > DoubleSharp || octave < 0 || octave > 10 {
		return Pitch{}, fmt.Errorf("%w: letter=%d accidental=%d octave=%d", ErrInvalidPitch, letter, acc, octave)
	}
	p := Pitch{Letter: letter, Accidental: acc, Octave: octave}
	if k := p.Keynum(); k < 0 || k > 127 {
		return Pitch{}, fmt.Errorf("%w: %s is outside the key range", ErrInvalidPitch, p)
	}
	return p, nil
}

// ParsePitch parses a pitch string such as "C4", "F#3", "Bf2" or "C00".
func ParsePitch(s string) (Pitch, error) {
	if len(s) < 2 {
		return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	letter, ok := parseLetter(s[0])
	if !ok {
		return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	acc, rest := parseAccidental(s[1:])

	var octave int
	switch {
	case rest == "00":
		octave = 0
	case len(rest) == 1 && rest[0] >= '0' && rest[0] <= '9':
		octave = int(rest[0]-'0') + 1
	default:
		return Pitch{}, fmt.Errorf("%w: bad octave in %q", ErrInvalidPitch, s)
	}
	return NewPitch(letter, acc, octave)
}

// MustParsePitch is like ParsePitch but panics on error.
func MustParsePitch(s string) Pitch {
	p, err := ParsePitch(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseLetter(c byte) (Letter, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	i := strings.IndexByte("CDEFGAB", c)
	if i < 0 {
		return 0, false
	}
	return Letter(i), true
}

// String returns the pitch name, e.g. "Eb4".
func (p Pitch) String() string {
	oct := "00"
	if p.Octave > 0 {
		oct = fmt.Sprintf("%d", p.Octave-1)
	}
	return p.Letter.String() + p.Accidental.String() + oct
}

// Keynum returns the MIDI key number; C4 is 60.
func (p Pitch) Keynum() int {
	return p.Octave*12 + letterSemitones[p.Letter] + p.Accidental.offset()
}

// PitchClass returns the spelled pitch class of the pitch.
func (p Pitch) PitchClass() Pnum {
	return Pnum{Letter: p.Letter, Accidental: p.Accidental}
}

// pos orders pitches by spelling: octave, then letter, then accidental.
func (p Pitch) pos() int {
	return p.Octave<<8 | int(p.Letter)<<4 | int(p.Accidental)
}

// diatonic returns the number of letter steps above C00.
func (p Pitch) diatonic() int {
	return p.Octave*7 + int(p.Letter)
}

// Compare returns -1, 0 or 1 as p is lower than, equal to or higher than q.
func (p Pitch) Compare(q Pitch) int {
	switch a, b := p.pos(), q.pos(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether p is spelled lower than q.
func (p Pitch) Less(q Pitch) bool {
	return p.Compare(q) < 0
}
