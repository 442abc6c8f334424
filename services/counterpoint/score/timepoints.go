// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package score

import (
	"sort"

	"github.com/AleutianAI/counterpoint/services/counterpoint/theory"
)

// Sounding is the event a voice sounds at a timepoint.
type Sounding struct {
	Event Event

	// Onset is when the event started.
	Onset theory.Ratio

	// Ordinal is the event's index within its voice. Two soundings with the
	// same ordinal are the same event.
	Ordinal int

	// Attack is true when the event starts at this timepoint rather than
	// being held over.
	Attack bool
}

// Timepoint is one position on the shared timeline.
type Timepoint struct {
	Index  int
	Time   theory.Ratio
	Events map[string]Sounding
}

// Get returns the sounding of a voice; ok is false when the voice has no
// event at this time.
func (tp Timepoint) Get(voiceID string) (Sounding, bool) {
	s, ok := tp.Events[voiceID]
	return s, ok
}

// Timepoints aligns every voice of the score on the union of their onsets.
//
// Description:
//
//	Each onset of any voice becomes a timepoint. At each timepoint every
//	voice that is still sounding contributes the event covering that time,
//	so a whole note against two half notes appears at both half-note
//	timepoints, attacked at the first and held at the second. A voice that
//	has already ended is absent from the timepoint.
//
// Outputs:
//
//	[]Timepoint - Ordered by time, indexed from 0.
func Timepoints(s *Score) []Timepoint {
	type span struct {
		onset, end theory.Ratio
	}
	voices := s.Voices()
	spans := make([][]span, len(voices))
	times := map[theory.Ratio]struct{}{}

	for vi, v := range voices {
		t := theory.Zero
		for _, e := range v.Events {
			end := t.Add(e.Duration)
			spans[vi] = append(spans[vi], span{onset: t, end: end})
			times[t] = struct{}{}
			t = end
		}
	}

	ordered := make([]theory.Ratio, 0, len(times))
	for t := range times {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Cmp(ordered[j]) < 0 })

	out := make([]Timepoint, len(ordered))
	cursor := make([]int, len(voices))
	for i, t := range ordered {
		tp := Timepoint{Index: i, Time: t, Events: make(map[string]Sounding, len(voices))}
		for vi, v := range voices {
			for cursor[vi] < len(spans[vi]) && spans[vi][cursor[vi]].end.Cmp(t) <= 0 {
				cursor[vi]++
			}
			k := cursor[vi]
			if k >= len(spans[vi]) || spans[vi][k].onset.Cmp(t) > 0 {
				continue
			}
			tp.Events[v.ID] = Sounding{
				Event:   v.Events[k],
				Onset:   spans[vi][k].onset,
				Ordinal: k,
				Attack:  spans[vi][k].onset.Equal(t),
			}
		}
		out[i] = tp
	}
	return out
}
