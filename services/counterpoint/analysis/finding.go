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
	"encoding/json"
	"fmt"
	"sort"
)

// Finding is one diagnostic: a rule category at a timepoint.
//
// Index is 0-based; the rendered message uses the 1-based position.
type Finding struct {
	Index int
	Kind  Kind
}

// Position returns the 1-based timepoint position.
func (f Finding) Position() int { return f.Index + 1 }

// String renders the finding, e.g. "At #3: consecutive fifths".
func (f Finding) String() string {
	return fmt.Sprintf("At #%d: %s", f.Position(), f.Kind.Description())
}

// MarshalJSON writes position, kind, and message.
func (f Finding) MarshalJSON() ([]byte, error) {
	kind, err := f.Kind.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Position int    `json:"position"`
		Kind     string `json:"kind"`
		Message  string `json:"message"`
	}{f.Position(), string(kind), f.String()})
}

// FindingSet is a set of findings; adding a duplicate has no effect.
//
// Thread Safety: Not safe for concurrent mutation. The engine gives each
// concurrently running rule its own buffer and merges afterwards.
type FindingSet map[Finding]struct{}

// NewFindingSet creates a set holding the given findings.
func NewFindingSet(findings ...Finding) FindingSet {
	s := make(FindingSet, len(findings))
	s.Add(findings...)
	return s
}

// Add inserts findings.
func (s FindingSet) Add(findings ...Finding) {
	for _, f := range findings {
		s[f] = struct{}{}
	}
}

// Merge inserts every finding of other. Merging is commutative.
func (s FindingSet) Merge(other FindingSet) {
	for f := range other {
		s[f] = struct{}{}
	}
}

// Len returns the number of distinct findings.
func (s FindingSet) Len() int { return len(s) }

// Contains reports whether f is in the set.
func (s FindingSet) Contains(f Finding) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the findings ordered by position, then catalog order.
func (s FindingSet) Sorted() []Finding {
	out := make([]Finding, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Strings returns the rendered messages in sorted order.
func (s FindingSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, f := range sorted {
		out[i] = f.String()
	}
	return out
}

// CountByKind tallies findings per kind.
func (s FindingSet) CountByKind() map[Kind]int {
	out := make(map[Kind]int)
	for f := range s {
		out[f.Kind]++
	}
	return out
}

// MarshalJSON writes the findings as a sorted array.
func (s FindingSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}
