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
	"github.com/exascience/elmetrics/sam"
)

// DefaultMaxIndelLength is the default threshold above which
// insertions and deletions count as large indels.
const DefaultMaxIndelLength = 50

// Counters are the metrics derived from the CIGAR operations of one
// alignment.
type Counters struct {
	Matches    int64
	Mismatches int64
	// IndelCount and IndelTotalLength count the insertions and
	// deletions that are longer than the maximum indel length. These
	// are not included in Mismatches.
	IndelCount       int64
	IndelTotalLength int64
	// InferredLength is the read length reconstructed from the
	// CIGAR operations, including clipped bases.
	InferredLength int64
	// End is the reference position after the last aligned base.
	End int64
}

// Interpret walks the CIGAR operations of the given alignment and
// returns the derived counters.
//
// Insertions and deletions of at most maxIndelLength bases count as
// mismatches. Longer ones are counted separately as large indels. A
// maxIndelLength of 0 disables large indels, so that every insertion
// and deletion counts as mismatches.
//
// Interpret returns an *AmbiguousCigarError if the alignment contains
// an M operation, and an *UnknownCigarOperationError for operations
// that are not defined by the SAM format. N and P operations are
// accepted but do not contribute to any counter.
func Interpret(aln *sam.Alignment, maxIndelLength int) (c Counters, err error) {
	c.End = int64(aln.POS)
	isLarge := func(length int64) bool {
		return maxIndelLength > 0 && length > int64(maxIndelLength)
	}
	aln.ForEachCigar(func(operation byte, length uint32) bool {
		l := int64(length)
		switch operation {
		case '=':
			c.Matches += l
			c.InferredLength += l
			c.End += l
		case 'X':
			c.Mismatches += l
			c.InferredLength += l
			c.End += l
		case 'I':
			if isLarge(l) {
				c.IndelCount++
				c.IndelTotalLength += l
			} else {
				c.Mismatches += l
			}
			c.InferredLength += l
		case 'D':
			if isLarge(l) {
				c.IndelCount++
				c.IndelTotalLength += l
			} else {
				c.Mismatches += l
			}
			c.End += l
		case 'S', 'H':
			c.InferredLength += l
		case 'N', 'P':
			// counted by OperatorAudit only
		case 'M':
			err = &AmbiguousCigarError{QNAME: aln.QNAME, Cigar: sam.FormatCigar(aln.Cigar)}
			return false
		default:
			err = &UnknownCigarOperationError{QNAME: aln.QNAME, Cigar: sam.FormatCigar(aln.Cigar), Operation: operation}
			return false
		}
		return true
	})
	if err != nil {
		return Counters{}, err
	}
	return c, nil
}
