// elPrep: a high-performance tool for analyzing SAM/BAM files.
// Copyright (c) 2017-2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

package metrics

import "math"

// IdentityPrecision is the scale to which identity scores are
// rounded: 7 decimal digits.
const IdentityPrecision = 1e7

// Identity returns matches / (matches + mismatches), rounded to 7
// decimal digits. It returns 0 when there are neither matches nor
// mismatches.
func Identity(matches, mismatches int64) float64 {
	total := matches + mismatches
	if total == 0 {
		return 0
	}
	return math.Round(float64(matches)/float64(total)*IdentityPrecision) / IdentityPrecision
}
