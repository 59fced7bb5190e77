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

import (
	"math/rand"
	"testing"
)

func TestIdentity(t *testing.T) {
	if Identity(0, 0) != 0 {
		t.Error("Identity(0, 0) failed")
	}
	if Identity(1, 3) != 0.25 {
		t.Error("Identity(1, 3) failed")
	}
	if Identity(2, 1) != 0.6666667 {
		t.Error("Identity(2, 1) failed", Identity(2, 1))
	}
	if Identity(5, 0) != 1 {
		t.Error("Identity(5, 0) failed")
	}
	if Identity(0, 5) != 0 {
		t.Error("Identity(0, 5) failed")
	}
	for i := 0; i < 10000; i++ {
		matches, mismatches := rand.Int63n(1<<40), rand.Int63n(1<<40)
		if identity := Identity(matches, mismatches); identity < 0 || identity > 1 {
			t.Error("Identity bounds failed for", matches, mismatches, identity)
		}
	}
}
