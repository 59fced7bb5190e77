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

import "fmt"

// An AmbiguousCigarError is returned when an alignment contains an M
// operation. M does not distinguish matches from mismatches, so the
// identity of such an alignment cannot be determined.
type AmbiguousCigarError struct {
	QNAME string
	Cigar string
}

func (err *AmbiguousCigarError) Error() string {
	return fmt.Sprintf("alignment %v with CIGAR %v contains ambiguous M operations, cannot determine mismatches without = or X operations", err.QNAME, err.Cigar)
}

// An UnknownCigarOperationError is returned when an alignment contains
// a CIGAR operation that cannot be attributed to any counter.
type UnknownCigarOperationError struct {
	QNAME     string
	Cigar     string
	Operation byte
}

func (err *UnknownCigarOperationError) Error() string {
	return fmt.Sprintf("alignment %v with CIGAR %v contains unsupported CIGAR operation %q", err.QNAME, err.Cigar, err.Operation)
}
