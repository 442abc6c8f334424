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
	"errors"
	"fmt"
)

// Sentinel errors for the analysis package.
var (
	// ErrInvalidSpecies indicates a species number other than 1 or 2.
	ErrInvalidSpecies = errors.New("invalid species")

	// ErrInvalidConfiguration indicates a configuration that fails validation.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrVoiceRoles indicates the counterpoint and cantus firmus parts could
	// not be identified from the part names.
	ErrVoiceRoles = errors.New("cannot identify counterpoint and cantus firmus voices")

	// ErrMisalignedVoices indicates the two voices do not cover the same
	// timeline.
	ErrMisalignedVoices = errors.New("misaligned voices")

	// ErrInvalidInput indicates a nil score or context.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownKind indicates a finding kind name not in the catalog.
	ErrUnknownKind = errors.New("unknown finding kind")

	// ErrUnknownRule indicates a rule name not among the default rules.
	ErrUnknownRule = errors.New("unknown rule")
)

// PreconditionError reports why an analysis could not start.
//
// Thread Safety: Immutable after creation.
type PreconditionError struct {
	// Reason describes the failed precondition, e.g. "voice P2.1 missing at #4".
	Reason string

	// Err is ErrVoiceRoles or ErrMisalignedVoices.
	Err error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %v: %s", e.Err, e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func preconditionf(err error, format string, args ...any) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...), Err: err}
}
