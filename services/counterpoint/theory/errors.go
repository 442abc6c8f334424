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

import "errors"

// Sentinel errors for the theory package.
var (
	// ErrInvalidPitch indicates a pitch string or value that cannot be spelled.
	ErrInvalidPitch = errors.New("invalid pitch")

	// ErrInvalidInterval indicates an interval string or value out of range.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidKey indicates a key whose scale cannot be spelled.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidRatio indicates a malformed ratio or a zero denominator.
	ErrInvalidRatio = errors.New("invalid ratio")
)
