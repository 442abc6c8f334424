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
	"github.com/AleutianAI/counterpoint/services/counterpoint/score"
	"github.com/AleutianAI/counterpoint/services/counterpoint/theory"
)

// Part identifiers and role tags.
const (
	TopPart    = "P1"
	BottomPart = "P2"

	TagCounterpoint = "CP"
	TagCantusFirmus = "CF"
)

// State is the aligned data every rule reads.
//
// Description:
//
//	All sequences are indexed by timepoint. Melodic interval sequences have
//	one entry fewer than the timepoints; entry i is the motion from
//	timepoint i to i+1 and is nil when either event is a rest or the voice
//	does not attack at i+1. Vertical entries are measured from the bottom
//	voice to the top voice and are nil when either voice rests.
//
// Thread Safety: Read-only once built; rules may read it concurrently.
type State struct {
	Species int
	Config  Configuration
	Key     theory.Key

	Timepoints []score.Timepoint

	Top    []score.Sounding
	Bottom []score.Sounding
	CP     []score.Sounding
	CF     []score.Sounding

	// CPIsTop is true when the counterpoint sounds above the cantus firmus.
	CPIsTop bool

	CPIntervals     []*theory.Interval
	TopIntervals    []*theory.Interval
	BottomIntervals []*theory.Interval
	Vertical        []*theory.Interval

	// CFAttack marks the timepoints where a cantus firmus event starts.
	CFAttack []bool
}

// Len returns the number of timepoints.
func (s *State) Len() int { return len(s.Timepoints) }

// newState derives the aligned data for a run.
//
// Errors:
//
//	*PreconditionError wrapping ErrVoiceRoles - parts P1/P2 missing or
//	    neither is tagged as counterpoint or cantus firmus
//	*PreconditionError wrapping ErrMisalignedVoices - a voice is missing at
//	    some timepoint, or there are fewer than two timepoints
func newState(sc *score.Score, species int, cfg Configuration) (*State, error) {
	top, err := sc.Part(TopPart)
	if err != nil {
		return nil, preconditionf(ErrVoiceRoles, "%v", err)
	}
	bottom, err := sc.Part(BottomPart)
	if err != nil {
		return nil, preconditionf(ErrVoiceRoles, "%v", err)
	}

	var cpIsTop bool
	switch {
	case top.Name == TagCounterpoint:
		cpIsTop = true
	case bottom.Name == TagCounterpoint || top.Name == TagCantusFirmus:
		cpIsTop = false
	default:
		return nil, preconditionf(ErrVoiceRoles, "parts named %q and %q", top.Name, bottom.Name)
	}

	if len(top.Voices) == 0 || len(bottom.Voices) == 0 {
		return nil, preconditionf(ErrMisalignedVoices, "part without a voice")
	}
	topID, bottomID := top.Voices[0].ID, bottom.Voices[0].ID

	tps := score.Timepoints(sc)
	if len(tps) < 2 {
		return nil, preconditionf(ErrMisalignedVoices, "%d timepoints, need at least 2", len(tps))
	}

	s := &State{
		Species:    species,
		Config:     cfg,
		Key:        sc.Metadata.MainKey,
		Timepoints: tps,
		CPIsTop:    cpIsTop,
		Top:        make([]score.Sounding, len(tps)),
		Bottom:     make([]score.Sounding, len(tps)),
	}
	for i, tp := range tps {
		t, ok := tp.Get(topID)
		if !ok {
			return nil, preconditionf(ErrMisalignedVoices, "voice %s missing at #%d", topID, i+1)
		}
		b, ok := tp.Get(bottomID)
		if !ok {
			return nil, preconditionf(ErrMisalignedVoices, "voice %s missing at #%d", bottomID, i+1)
		}
		s.Top[i], s.Bottom[i] = t, b
	}

	if cpIsTop {
		s.CP, s.CF = s.Top, s.Bottom
	} else {
		s.CP, s.CF = s.Bottom, s.Top
	}

	s.TopIntervals = melodicIntervals(s.Top)
	s.BottomIntervals = melodicIntervals(s.Bottom)
	if cpIsTop {
		s.CPIntervals = s.TopIntervals
	} else {
		s.CPIntervals = s.BottomIntervals
	}

	s.Vertical = make([]*theory.Interval, len(tps))
	s.CFAttack = make([]bool, len(tps))
	for i := range tps {
		s.Vertical[i] = between(s.Bottom[i], s.Top[i])
		s.CFAttack[i] = s.CF[i].Attack
	}
	return s, nil
}

// melodicIntervals returns the motion between consecutive timepoints of one
// voice.
func melodicIntervals(voice []score.Sounding) []*theory.Interval {
	out := make([]*theory.Interval, len(voice)-1)
	for i := 0; i+1 < len(voice); i++ {
		if !voice[i+1].Attack {
			continue
		}
		out[i] = between(voice[i], voice[i+1])
	}
	return out
}

func between(from, to score.Sounding) *theory.Interval {
	if from.Event.Rest || to.Event.Rest {
		return nil
	}
	iv := theory.Between(from.Event.Pitch, to.Event.Pitch)
	return &iv
}
