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

import (
	"fmt"
	"strconv"
	"strings"
)

// Ratio is an exact rational number used for durations and onsets.
//
// Description:
//
//	Ratios are kept in lowest terms with a positive denominator, so equal
//	values compare equal with == and can be used as map keys. The zero
//	value is 0/1 once normalised; use NewRatio or Zero rather than a
//	literal.
type Ratio struct {
	num int64
	den int64
}

// Zero is 0/1.
var Zero = Ratio{num: 0, den: 1}

// NewRatio returns num/den in lowest terms.
func NewRatio(num, den int64) (Ratio, error) {
	if den == 0 {
		return Ratio{}, fmt.Errorf("%w: zero denominator", ErrInvalidRatio)
	}
	return normalize(num, den), nil
}

// MustRatio is like NewRatio but panics on error.
func MustRatio(num, den int64) Ratio {
	r, err := NewRatio(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRatio parses "3", "1/2" or "-3/4".
func ParseRatio(s string) (Ratio, error) {
	ns, ds, found := strings.Cut(strings.TrimSpace(s), "/")
	num, err := strconv.ParseInt(ns, 10, 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	den := int64(1)
	if found {
		den, err = strconv.ParseInt(ds, 10, 64)
		if err != nil {
			return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
		}
	}
	return NewRatio(num, den)
}

func normalize(num, den int64) Ratio {
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g == 0 {
		return Zero
	}
	return Ratio{num: num / g, den: den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

func (r Ratio) Num() int64 { return r.num }

// Den returns the denominator; the zero value reports 1.
func (r Ratio) Den() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

func (r Ratio) Add(o Ratio) Ratio {
	return normalize(r.num*o.Den()+o.num*r.Den(), r.Den()*o.Den())
}

func (r Ratio) Sub(o Ratio) Ratio {
	return normalize(r.num*o.Den()-o.num*r.Den(), r.Den()*o.Den())
}

func (r Ratio) Mul(o Ratio) Ratio {
	return normalize(r.num*o.num, r.Den()*o.Den())
}

// Div returns r/o. Dividing by zero returns ErrInvalidRatio.
func (r Ratio) Div(o Ratio) (Ratio, error) {
	if o.num == 0 {
		return Ratio{}, fmt.Errorf("%w: division by zero", ErrInvalidRatio)
	}
	return normalize(r.num*o.Den(), r.Den()*o.num), nil
}

// Cmp returns -1, 0 or 1.
func (r Ratio) Cmp(o Ratio) int {
	a, b := r.num*o.Den(), o.num*r.Den()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal compares by value, treating the zero value as 0/1.
func (r Ratio) Equal(o Ratio) bool { return r.Cmp(o) == 0 }

// IsPositive reports whether r > 0.
func (r Ratio) IsPositive() bool { return r.num > 0 }

func (r Ratio) String() string {
	if r.Den() == 1 {
		return strconv.FormatInt(r.num, 10)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}
