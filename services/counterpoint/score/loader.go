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
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/counterpoint/services/counterpoint/theory"
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

var documentValidate = validator.New()

// =============================================================================
// Document Types
// =============================================================================

// Document is the YAML form of a score.
//
// # Validation
//
//   - Key: tonic and mode are required
//   - Parts: at least one, unique IDs, each with a name and one or more notes
type Document struct {
	Title string         `yaml:"title"`
	Key   KeyDocument    `yaml:"key"`
	Parts []PartDocument `yaml:"parts" validate:"required,min=1,unique=ID,dive"`
}

// KeyDocument names the governing key.
type KeyDocument struct {
	Tonic string `yaml:"tonic" validate:"required"`
	Mode  string `yaml:"mode" validate:"required"`
}

// PartDocument is one part with its note tokens.
type PartDocument struct {
	ID    string   `yaml:"id" validate:"required,alphanum"`
	Name  string   `yaml:"name" validate:"required"`
	Notes []string `yaml:"notes" validate:"required,min=1,dive,required"`
}

// =============================================================================
// Loading
// =============================================================================

// Load reads and parses a score document from disk.
func Load(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading score %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes, validates and builds a score from YAML.
//
// Outputs:
//
//	*Score - The score, parts in document order.
//	error - Wraps ErrInvalidDocument, ErrInvalidEvent or theory.ErrInvalidKey.
func Parse(data []byte) (*Score, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc.Build()
}

// Build validates the document and converts it to a Score.
func (d *Document) Build() (*Score, error) {
	if err := documentValidate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	key, err := theory.ParseKey(d.Key.Tonic, d.Key.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	parts := make([]*Part, 0, len(d.Parts))
	for _, pd := range d.Parts {
		events := make([]Event, 0, len(pd.Notes))
		for i, tok := range pd.Notes {
			e, err := ParseEvent(tok)
			if err != nil {
				return nil, fmt.Errorf("part %s note %d: %w", pd.ID, i+1, err)
			}
			events = append(events, e)
		}
		parts = append(parts, NewPart(pd.ID, pd.Name, events))
	}

	return New(Metadata{Title: d.Title, MainKey: key}, parts...), nil
}

// ParseEvent parses a note token such as "D4/1", "F#3/1/2", "R/1/2" or "C5".
//
// Description:
//
//	The text before the first "/" is a pitch or "R" for a rest; the rest is
//	a positive ratio duration, defaulting to 1.
func ParseEvent(tok string) (Event, error) {
	head, durText, hasDur := strings.Cut(strings.TrimSpace(tok), "/")

	dur := theory.MustRatio(1, 1)
	if hasDur {
		d, err := theory.ParseRatio(durText)
		if err != nil {
			return Event{}, fmt.Errorf("%w: %q: %w", ErrInvalidEvent, tok, err)
		}
		dur = d
	}
	if !dur.IsPositive() {
		return Event{}, fmt.Errorf("%w: %q: duration must be positive", ErrInvalidEvent, tok)
	}

	if strings.EqualFold(head, "R") {
		return NewRest(dur), nil
	}
	p, err := theory.ParsePitch(head)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %q: %w", ErrInvalidEvent, tok, err)
	}
	return NewNote(p, dur), nil
}

// Document returns the YAML document form of the score.
func (s *Score) Document() *Document {
	key := s.Metadata.MainKey
	d := &Document{
		Title: s.Metadata.Title,
		Key:   KeyDocument{Tonic: key.Tonic().String(), Mode: key.Mode().String()},
	}
	for _, p := range s.Parts {
		pd := PartDocument{ID: p.ID, Name: p.Name}
		for _, v := range p.Voices {
			for _, e := range v.Events {
				pd.Notes = append(pd.Notes, e.String())
			}
		}
		d.Parts = append(d.Parts, pd)
	}
	return d
}
