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
	"fmt"

	"github.com/AleutianAI/counterpoint/services/counterpoint/theory"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event is a note or a rest with an exact duration.
//
// Pitch is meaningless when Rest is true.
type Event struct {
	Pitch    theory.Pitch
	Duration theory.Ratio
	Rest     bool
}

// NewNote returns a pitched event.
func NewNote(p theory.Pitch, dur theory.Ratio) Event {
	return Event{Pitch: p, Duration: dur}
}

// NewRest returns a rest event.
func NewRest(dur theory.Ratio) Event {
	return Event{Duration: dur, Rest: true}
}

// String returns the event in note token form, e.g. "D4/1" or "R/1/2".
func (e Event) String() string {
	if e.Rest {
		return "R/" + e.Duration.String()
	}
	return e.Pitch.String() + "/" + e.Duration.String()
}

// =============================================================================
// PARTS AND VOICES
// =============================================================================

// Voice is an ordered sequence of events.
type Voice struct {
	ID     string
	Events []Event
}

// Duration returns the total length of the voice.
func (v *Voice) Duration() theory.Ratio {
	total := theory.Zero
	for _, e := range v.Events {
		total = total.Add(e.Duration)
	}
	return total
}

// Part is one staff of the score.
//
// Name carries the role tag used by the analyzer ("CP" or "CF").
type Part struct {
	ID     string
	Name   string
	Voices []*Voice
}

// NewPart creates a part with a single voice "<id>.1".
func NewPart(id, name string, events []Event) *Part {
	return &Part{
		ID:     id,
		Name:   name,
		Voices: []*Voice{{ID: id + ".1", Events: events}},
	}
}

// =============================================================================
// SCORE
// =============================================================================

// Metadata holds score-level information.
type Metadata struct {
	Title   string
	MainKey theory.Key
}

// Score is an ordered list of parts plus metadata.
//
// Thread Safety: a Score is not modified by this module after construction
// and may be read concurrently.
type Score struct {
	Metadata Metadata
	Parts    []*Part
}

// New creates a score.
func New(meta Metadata, parts ...*Part) *Score {
	return &Score{Metadata: meta, Parts: parts}
}

// Part looks up a part by identifier.
func (s *Score) Part(id string) (*Part, error) {
	for _, p := range s.Parts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPartNotFound, id)
}

// Voices returns every voice of every part in score order.
func (s *Score) Voices() []*Voice {
	var out []*Voice
	for _, p := range s.Parts {
		out = append(out, p.Voices...)
	}
	return out
}
