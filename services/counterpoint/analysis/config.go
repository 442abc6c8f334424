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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/counterpoint/services/counterpoint/theory"
)

// =============================================================================
// LIMIT
// =============================================================================

// Limit is a ceiling on a count. Unlimited disables the ceiling.
type Limit int

// Unlimited is a Limit that is never exceeded.
const Unlimited Limit = -1

// Exceeded reports whether n is over the limit.
func (l Limit) Exceeded(n int) bool {
	return l != Unlimited && n > int(l)
}

// String returns the number or "unlimited".
func (l Limit) String() string {
	if l == Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(int(l))
}

// MarshalYAML writes Unlimited as "unlimited".
func (l Limit) MarshalYAML() (any, error) {
	if l == Unlimited {
		return "unlimited", nil
	}
	return int(l), nil
}

// UnmarshalYAML accepts a non-negative integer, "unlimited" or "inf".
func (l *Limit) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "unlimited", "inf", ".inf", "none":
		*l = Unlimited
		return nil
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: limit %q must be a non-negative integer or \"unlimited\"", ErrInvalidConfiguration, node.Value)
	}
	*l = Limit(n)
	return nil
}

// =============================================================================
// CONFIGURATION
// =============================================================================

var configValidate = validator.New()

// Configuration holds the thresholds for one species.
//
// Description:
//
//	Leap ceilings count melodic intervals of the counterpoint by size.
//	MaxLargeLeaps counts every leap larger than a major third and gates the
//	per-size ceilings: a per-size finding is reported only while the large
//	leap count is within its own ceiling. StepThreshold is the diatonic size
//	(5 = fifth) from which a leap must be recovered by a step in the
//	opposite direction. StartAbove and StartBelow list the legal scale
//	degrees of the first counterpoint note when it sounds above or below the
//	cantus firmus. CadencePatterns lists the legal scale degrees of the last
//	two notes.
//
// Thread Safety: Configuration is a value; use Clone before sharing a copy
// that will be modified.
type Configuration struct {
	MaxUnisons          Limit    `yaml:"max_unisons" validate:"gte=-1"`
	MaxFourths          Limit    `yaml:"max_fourths" validate:"gte=-1"`
	MaxFifths           Limit    `yaml:"max_fifths" validate:"gte=-1"`
	MaxSixths           Limit    `yaml:"max_sixths" validate:"gte=-1"`
	MaxSevenths         Limit    `yaml:"max_sevenths" validate:"gte=-1"`
	MaxOctaves          Limit    `yaml:"max_octaves" validate:"gte=-1"`
	MaxLargeLeaps       Limit    `yaml:"max_large_leaps" validate:"gte=-1"`
	MaxSameDirection    Limit    `yaml:"max_same_direction" validate:"gte=-1"`
	MaxParallel         Limit    `yaml:"max_parallel" validate:"gte=-1"`
	MaxConsecutiveLeaps Limit    `yaml:"max_consecutive_leaps" validate:"gte=-1"`
	StepThreshold       int      `yaml:"step_threshold" validate:"min=2,max=8"`
	StartAbove          []int    `yaml:"start_above" validate:"required,min=1,dive,min=1,max=7"`
	StartBelow          []int    `yaml:"start_below" validate:"required,min=1,dive,min=1,max=7"`
	CadencePatterns     [][2]int `yaml:"cadence_patterns" validate:"required,min=1,dive,dive,min=1,max=7"`
}

// baseConfiguration is the template both species start from.
func baseConfiguration() Configuration {
	return Configuration{
		MaxUnisons:          1,
		MaxFourths:          2,
		MaxFifths:           1,
		MaxSixths:           0,
		MaxSevenths:         0,
		MaxOctaves:          0,
		MaxLargeLeaps:       2,
		MaxSameDirection:    3,
		MaxParallel:         3,
		MaxConsecutiveLeaps: 2,
		StepThreshold:       5,
		StartAbove:          []int{1, 5},
		StartBelow:          []int{1},
		CadencePatterns:     [][2]int{{2, 1}, {7, 1}},
	}
}

// Species1 returns the first species configuration.
func Species1() Configuration {
	return baseConfiguration()
}

// Species2 returns the second species configuration: no ceiling on melodic
// fourths and fifths, no melodic unisons, and the third added to the legal
// starting degrees above the cantus firmus.
func Species2() Configuration {
	c := baseConfiguration()
	c.MaxFourths = Unlimited
	c.MaxFifths = Unlimited
	c.MaxUnisons = 0
	c.StartAbove = []int{1, 3, 5}
	return c
}

// ForSpecies returns the default configuration of a species.
//
// Errors:
//
//	ErrInvalidSpecies - species is not 1 or 2
func ForSpecies(species int) (Configuration, error) {
	switch species {
	case 1:
		return Species1(), nil
	case 2:
		return Species2(), nil
	}
	return Configuration{}, fmt.Errorf("%w: %d is not 1 or 2", ErrInvalidSpecies, species)
}

// Clone returns a deep copy.
func (c Configuration) Clone() Configuration {
	out := c
	out.StartAbove = append([]int(nil), c.StartAbove...)
	out.StartBelow = append([]int(nil), c.StartBelow...)
	out.CadencePatterns = append([][2]int(nil), c.CadencePatterns...)
	return out
}

// Validate checks ranges and required lists.
func (c Configuration) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// StepThresholdInterval returns the smallest leap that needs recovery:
// perfect for unisons, fourths, fifths and octaves, major otherwise.
func (c Configuration) StepThresholdInterval() theory.Interval {
	q := "M"
	switch c.StepThreshold {
	case 1, 4, 5, 8:
		q = "P"
	}
	iv, err := theory.ParseInterval(q + strconv.Itoa(c.StepThreshold))
	if err != nil {
		// unvalidated threshold; fall back to the default fifth
		return theory.Interval{Span: theory.SpanFifth, Qual: theory.QualPerfect, Sign: 1}
	}
	return iv
}

// ParseConfiguration overlays YAML overrides on the defaults of a species.
//
// Description:
//
//	Only the keys present in the document change; list keys replace the
//	default list. The result is validated.
//
// Inputs:
//
//	data - YAML document, e.g. "max_fourths: unlimited\nstart_above: [1, 5]"
//	species - 1 or 2
func ParseConfiguration(data []byte, species int) (Configuration, error) {
	cfg, err := ForSpecies(species)
	if err != nil {
		return Configuration{}, err
	}
	overlay := cfg.Clone()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return Configuration{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := overlay.Validate(); err != nil {
		return Configuration{}, err
	}
	return overlay, nil
}

// LoadConfiguration reads overrides from a YAML file.
func LoadConfiguration(path string, species int) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("reading configuration %s: %w", path, err)
	}
	cfg, err := ParseConfiguration(data, species)
	if err != nil {
		return Configuration{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
