// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package score models a small multi-part score and aligns its voices on a
// shared timeline.
//
// A Score holds ordered Parts; each part has one Voice whose ID is the part
// ID plus ".1" (P1.1, P2.1). Voices hold Events, each a pitched note or a
// rest with an exact duration.
//
// Timepoints merges the onsets of every voice into one ordered list. At each
// timepoint every voice reports the event sounding then, whether it starts
// there (an attack) or is held over from earlier:
//
//	s, _ := score.Load("testdata/fux_dorian.yaml")
//	for _, tp := range score.Timepoints(s) {
//	    cp, _ := tp.Get("P1.1")
//	    fmt.Println(tp.Time, cp.Event, cp.Attack)
//	}
//
// Score documents are YAML:
//
//	title: Fux D dorian
//	key: {tonic: D, mode: dorian}
//	parts:
//	  - {id: P1, name: CP, notes: [A4/1, ...]}
//	  - {id: P2, name: CF, notes: [D4/1, ...]}
//
// Note tokens are "<pitch>/<duration>" and rests "R/<duration>". The duration
// may be omitted and defaults to a whole note (1).
package score
