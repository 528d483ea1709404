// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package costunit formats cost values for reports.
//
// Callgrind counts run into the billions, so integer values are printed
// with "_" separating groups of three digits. Relative values and fit
// scores are printed with two decimal places.
package costunit

import "strconv"

// Int formats v in decimal with digit grouping.
func Int(v int64) string {
	s := strconv.FormatInt(v, 10)
	digits := s
	sign := ""
	if s[0] == '-' {
		sign, digits = s[:1], s[1:]
	}
	if len(digits) <= 3 {
		return s
	}

	// Left-most group may be short; the rest come in threes.
	var out []byte
	first := len(digits) % 3
	if first == 0 {
		first = 3
	}
	out = append(out, digits[:first]...)
	for i := first; i < len(digits); i += 3 {
		out = append(out, '_')
		out = append(out, digits[i:i+3]...)
	}
	return sign + string(out)
}

// Float formats v with two decimal places.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
