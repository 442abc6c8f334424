// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package theory provides the pitch, interval, key and duration primitives
// used by the counterpoint analyzer.
//
// # Pitches
//
// A Pitch is spelled: letter, accidental and octave. Two pitches that sound
// the same (B#3 and C4) are different pitches and order by spelling:
//
//	p := theory.MustParsePitch("F#4")
//	p.Keynum()       // 66
//	p.PitchClass()   // F#
//
// Octave indexes follow the written octave plus one, so index 0 is the
// octave written "00" and C4 (middle C) has index 5.
//
// # Intervals
//
// An Interval is measured in lines-and-spaces (span) and quality, plus
// extra octaves for compound intervals and a sign for direction:
//
//	theory.Between(theory.MustParsePitch("D4"), theory.MustParsePitch("A3")) // -P4
//	theory.MustParseInterval("m10").IsCompound()                            // true
//
// Intervals compare by size (span, extra octaves, then quality); the sign is
// ignored when comparing.
//
// # Keys
//
//	key, _ := theory.NewKey(theory.MustParsePnum("D"), theory.Dorian)
//	key.Scale() // D E F G A B C
//
// # Thread Safety
//
// All types are immutable values and safe for concurrent use.
package theory
